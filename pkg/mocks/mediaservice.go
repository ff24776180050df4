package mocks

import (
	"context"

	"github.com/scenerender/core/pkg/ports"
)

// MediaService is a mock implementation of ports.MediaService.
type MediaService struct {
	StartFunc func(ctx context.Context, secret string) (int, error)
	StopFunc  func() error

	StartedSecrets []string
	StopCalled     bool
}

func (m *MediaService) Start(ctx context.Context, secret string) (int, error) {
	m.StartedSecrets = append(m.StartedSecrets, secret)
	if m.StartFunc != nil {
		return m.StartFunc(ctx, secret)
	}
	return 0, nil
}

func (m *MediaService) Stop() error {
	m.StopCalled = true
	if m.StopFunc != nil {
		return m.StopFunc()
	}
	return nil
}

var _ ports.MediaService = (*MediaService)(nil)
