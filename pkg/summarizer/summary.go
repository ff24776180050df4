// Package summarizer generates a human-readable report of a completed
// render run.
package summarizer

import "time"

// Summary contains all data collected about one render run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Scene information
	Scene SceneInfo

	// Run configuration
	Settings Settings

	// Timing results
	Timing TimingInfo

	// Output video details
	Output OutputInfo
}

// SceneInfo identifies the scene that was rendered.
type SceneInfo struct {
	EntryPath string
}

// TimingInfo contains timing measurements for the run.
type TimingInfo struct {
	TotalDurationMs int
	TimedOut        bool
	TimeoutSec      int
}

// Settings contains the run configuration used.
type Settings struct {
	Width          int
	Height         int
	FPS            int
	DurationFrames int
	Concurrency    int
	CaptureMethod  string
	ImageFormat    string
	RawOutput      bool
}

// OutputInfo contains information about the output video.
type OutputInfo struct {
	Path             string
	FramesRendered   int
	ProbedFrameCount int
	Probed           bool
	FileSize         int64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithScene sets scene information.
func (b *Builder) WithScene(entryPath string) *Builder {
	b.summary.Scene = SceneInfo{EntryPath: entryPath}
	return b
}

// WithTiming sets the total duration of the run in milliseconds.
func (b *Builder) WithTiming(totalDurationMs int) *Builder {
	b.summary.Timing.TotalDurationMs = totalDurationMs
	return b
}

// WithTimeout marks the run as timed out (or not) with its configured
// frame render timeout in seconds.
func (b *Builder) WithTimeout(timedOut bool, timeoutSec int) *Builder {
	b.summary.Timing.TimedOut = timedOut
	b.summary.Timing.TimeoutSec = timeoutSec
	return b
}

// WithSettings sets the run configuration.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithOutput sets output video information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
