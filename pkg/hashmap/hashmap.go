// Package hashmap provides the Frame Hash Map: a concurrency-safe mapping
// from absolute frame index to a content digest of its captured bytes,
// used to detect accidental duplicate frames.
package hashmap

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
)

// Map is safe for concurrent insertion of disjoint keys from multiple Part
// Workers. A single coarse mutex guards it; capture cost already dominates
// so lock contention is not a concern.
type Map struct {
	mu   sync.Mutex
	hash map[int][]byte
}

// New creates an empty Frame Hash Map.
func New() *Map {
	return &Map{hash: make(map[int][]byte)}
}

// Digest returns the content digest of b, used as the value inserted for
// a frame index.
func Digest(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

// Insert records the digest of b under frameIndex.
func (m *Map) Insert(frameIndex int, b []byte) {
	digest := Digest(b)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hash[frameIndex] = digest
}

// Len reports how many frame indices have been recorded.
func (m *Map) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.hash)
}

// DuplicatePair is one consecutive pair of frame indices whose digests
// are equal.
type DuplicatePair struct {
	First  int
	Second int
}

// FirstDuplicate scans [startFrame, startFrame+durationFrames) in order
// and returns the first consecutive pair sharing a digest. A pair with a
// missing index is skipped (a gap is an incomplete capture, not a
// duplicate) and scanning continues; ok=false means no complete pair
// matched.
func (m *Map) FirstDuplicate(startFrame, durationFrames int) (DuplicatePair, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := startFrame; i < startFrame+durationFrames-1; i++ {
		a, ok := m.hash[i]
		if !ok {
			continue
		}
		b, ok := m.hash[i+1]
		if !ok {
			continue
		}
		if string(a) == string(b) {
			return DuplicatePair{First: i, Second: i + 1}, true
		}
	}
	return DuplicatePair{}, false
}

// MissingIndices reports any frame index in [startFrame,
// startFrame+durationFrames) with no recorded digest, sorted ascending.
// A non-empty result indicates an incomplete capture.
func (m *Map) MissingIndices(startFrame, durationFrames int) []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var missing []int
	for i := startFrame; i < startFrame+durationFrames; i++ {
		if _, ok := m.hash[i]; !ok {
			missing = append(missing, i)
		}
	}
	sort.Ints(missing)
	return missing
}

func (p DuplicatePair) String() string {
	return fmt.Sprintf("(%d,%d)", p.First, p.Second)
}
