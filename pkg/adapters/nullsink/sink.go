// Package nullsink provides a no-op debug sink implementation.
package nullsink

import "github.com/scenerender/core/pkg/ports"

// Sink is a no-op implementation of ports.DebugSink. It discards all debug
// output; used whenever a RunConfig does not enable a debug directory.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveRunConfig does nothing.
func (s *Sink) SaveRunConfig(data []byte) error {
	return nil
}

// SaveCapturedFrame does nothing.
func (s *Sink) SaveCapturedFrame(frameIndex int, data []byte) error {
	return nil
}

// SaveProgress does nothing.
func (s *Sink) SaveProgress(data []byte) error {
	return nil
}

var _ ports.DebugSink = (*Sink)(nil)
