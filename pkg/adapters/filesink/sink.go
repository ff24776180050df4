// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"path/filepath"

	"github.com/scenerender/core/pkg/ports"
)

// Sink saves debug output under a directory: the resolved run
// configuration, periodic progress snapshots, and any captured frame
// passed to SaveCapturedFrame (the render pipeline does not call it).
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new Sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{baseDir: baseDir, fs: fs}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveRunConfig saves the resolved run configuration as JSON.
func (s *Sink) SaveRunConfig(data []byte) error {
	path := filepath.Join(s.baseDir, "run-config.json")
	return s.fs.WriteFile(path, data)
}

// SaveCapturedFrame saves the raw bytes for one absolute frame index.
func (s *Sink) SaveCapturedFrame(frameIndex int, data []byte) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%06d", frameIndex))
	return s.fs.WriteFile(path, data)
}

// SaveProgress saves a snapshot of the aggregated progress report.
func (s *Sink) SaveProgress(data []byte) error {
	path := filepath.Join(s.baseDir, "progress.json")
	return s.fs.WriteFile(path, data)
}

var _ ports.DebugSink = (*Sink)(nil)
