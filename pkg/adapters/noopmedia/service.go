// Package noopmedia provides the default ports.MediaService: it starts
// nothing and reports port 0. Scenes that do not pull frames from a
// local HTTP service (the common case) never notice it is not running.
package noopmedia

import (
	"context"

	"github.com/scenerender/core/pkg/ports"
)

// Service is a no-op ports.MediaService.
type Service struct{}

// New returns a no-op Service.
func New() *Service {
	return &Service{}
}

// Start does nothing and reports port 0.
func (s *Service) Start(ctx context.Context, secret string) (int, error) {
	return 0, nil
}

// Stop does nothing.
func (s *Service) Stop() error {
	return nil
}

var _ ports.MediaService = (*Service)(nil)
