package mocks

import (
	"sync"

	"github.com/scenerender/core/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	RunConfigJSON   []byte
	CapturedFrames  map[int][]byte
	ProgressSnaps   [][]byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:        enabled,
		CapturedFrames: make(map[int][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveRunConfig(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunConfigJSON = data
	return nil
}

func (m *DebugSink) SaveCapturedFrame(frameIndex int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CapturedFrames[frameIndex] = data
	return nil
}

func (m *DebugSink) SaveProgress(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProgressSnaps = append(m.ProgressSnaps, data)
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                               { return false }
func (m *NullSink) SaveRunConfig(data []byte) error              { return nil }
func (m *NullSink) SaveCapturedFrame(frameIndex int, data []byte) error { return nil }
func (m *NullSink) SaveProgress(data []byte) error               { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
