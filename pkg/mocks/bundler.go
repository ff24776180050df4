package mocks

import (
	"context"

	"github.com/scenerender/core/pkg/ports"
)

// Bundler is a mock implementation of ports.Bundler.
type Bundler struct {
	BuildFunc func(ctx context.Context, entryPath string) (string, error)
	StopFunc  func() error

	BuildCalls []string
	StopCalled bool
}

func (m *Bundler) Build(ctx context.Context, entryPath string) (string, error) {
	m.BuildCalls = append(m.BuildCalls, entryPath)
	if m.BuildFunc != nil {
		return m.BuildFunc(ctx, entryPath)
	}
	return entryPath, nil
}

func (m *Bundler) Stop() error {
	m.StopCalled = true
	if m.StopFunc != nil {
		return m.StopFunc()
	}
	return nil
}

var _ ports.Bundler = (*Bundler)(nil)
