package config

import (
	"time"

	"github.com/scenerender/core/pkg/ports"
)

// Builder provides a fluent interface for constructing a RunConfig.
type Builder struct {
	cfg RunConfig
}

// NewBuilder starts from Defaults().
func NewBuilder() *Builder {
	return &Builder{cfg: Defaults()}
}

func (b *Builder) WithFrameRange(startFrame, durationFrames, fps int) *Builder {
	b.cfg.StartFrame = startFrame
	b.cfg.DurationFrames = durationFrames
	b.cfg.FPS = fps
	return b
}

func (b *Builder) WithDimensions(width, height int) *Builder {
	b.cfg.Width = width
	b.cfg.Height = height
	return b
}

func (b *Builder) WithConcurrency(concurrency int) *Builder {
	b.cfg.Concurrency = concurrency
	return b
}

func (b *Builder) WithCaptureMethod(method ports.CaptureMethod) *Builder {
	b.cfg.CaptureMethod = method
	return b
}

func (b *Builder) WithExtensionPath(path string) *Builder {
	b.cfg.ExtensionPath = path
	return b
}

func (b *Builder) WithSceneEntryPath(path string) *Builder {
	b.cfg.SceneEntryPath = path
	return b
}

func (b *Builder) WithOutputPath(path string) *Builder {
	b.cfg.OutputPath = path
	return b
}

func (b *Builder) WithFrameRenderTimeout(d time.Duration) *Builder {
	b.cfg.FrameRenderTimeout = d
	return b
}

func (b *Builder) WithHashCheck(enabled bool) *Builder {
	b.cfg.EnableHashCheck = enabled
	return b
}

// Build validates and returns the constructed RunConfig.
func (b *Builder) Build() (RunConfig, error) {
	if err := b.cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return b.cfg, nil
}
