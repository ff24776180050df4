// Package fsbundler provides the default ports.Bundler: it does not build
// anything, it only confirms the configured scene entry path already
// exists on disk. A real bundler (esbuild, webpack, a framework's dev
// server) sits behind the same seam for callers that need one.
package fsbundler

import (
	"context"
	"fmt"

	"github.com/scenerender/core/pkg/ports"
)

// Bundler confirms a pre-built scene entry path exists.
type Bundler struct {
	fs ports.FileSystem
}

// New returns a pass-through Bundler backed by fs.
func New(fs ports.FileSystem) *Bundler {
	return &Bundler{fs: fs}
}

// Build confirms entryPath exists and returns it unchanged.
func (b *Bundler) Build(ctx context.Context, entryPath string) (string, error) {
	exists, err := b.fs.Exists(entryPath)
	if err != nil {
		return "", fmt.Errorf("check scene entry path: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("scene entry path does not exist: %s", entryPath)
	}
	return entryPath, nil
}

// Stop does nothing; there is no watcher/process to release.
func (b *Bundler) Stop() error {
	return nil
}

var _ ports.Bundler = (*Bundler)(nil)
