// Package partition splits a frame range into contiguous, non-overlapping
// parts for concurrent rendering.
package partition

// Part is a half-open frame interval [Start, End) assigned to one worker.
type Part struct {
	PartNum int
	Start   int
	End     int
}

// Length returns the number of frames in the part.
func (p Part) Length() int {
	return p.End - p.Start
}

// Split partitions [startFrame, startFrame+durationFrames) into concurrency
// contiguous parts. base = durationFrames / concurrency frames go to each
// of the first concurrency-1 parts; the last part absorbs the remainder,
// so it is always the same size or larger than the others. concurrency
// must already be clamped to durationFrames by the caller.
func Split(startFrame, durationFrames, concurrency int) []Part {
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > durationFrames {
		concurrency = durationFrames
	}

	base := durationFrames / concurrency
	remainder := durationFrames % concurrency

	parts := make([]Part, concurrency)
	cursor := startFrame
	for i := 0; i < concurrency; i++ {
		length := base
		if i == concurrency-1 {
			length += remainder
		}
		parts[i] = Part{
			PartNum: i,
			Start:   cursor,
			End:     cursor + length,
		}
		cursor += length
	}
	return parts
}

// ClampConcurrency clamps concurrency to [1, durationFrames].
func ClampConcurrency(concurrency, durationFrames int) int {
	if concurrency > durationFrames {
		return durationFrames
	}
	if concurrency < 1 {
		return 1
	}
	return concurrency
}
