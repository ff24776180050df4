package config

import (
	"errors"
	"testing"

	"github.com/scenerender/core/pkg/ports"
)

func TestValidate_RejectsZeroDuration(t *testing.T) {
	cfg := Defaults()
	cfg.SceneEntryPath = "/tmp/dist/index.html"
	cfg.DurationFrames = 0

	err := cfg.Validate()
	assertConfigError(t, err)
}

func TestValidate_RejectsExtensionWithHeadless(t *testing.T) {
	cfg := Defaults()
	cfg.SceneEntryPath = "/tmp/dist/index.html"
	cfg.CaptureMethod = ports.CaptureExtension
	cfg.Headless = true

	err := cfg.Validate()
	assertConfigError(t, err)
}

func TestValidate_RejectsExtensionWithoutExtensionPath(t *testing.T) {
	cfg := Defaults()
	cfg.SceneEntryPath = "/tmp/dist/index.html"
	cfg.CaptureMethod = ports.CaptureExtension
	cfg.Headless = false

	err := cfg.Validate()
	assertConfigError(t, err)
}

func TestValidate_RejectsBadJPEGQuality(t *testing.T) {
	cfg := Defaults()
	cfg.SceneEntryPath = "/tmp/dist/index.html"
	cfg.ImageFormat = ports.ImageFormatJPEG
	cfg.JPEGQuality = 0

	err := cfg.Validate()
	assertConfigError(t, err)
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	cfg := Defaults()
	cfg.SceneEntryPath = "/tmp/dist/index.html"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults + entry path to validate, got %v", err)
	}
}

func TestResolvedConcurrency_Clamp(t *testing.T) {
	cfg := Defaults()
	cfg.DurationFrames = 2
	cfg.Concurrency = 8
	if got := cfg.ResolvedConcurrency(); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	cases := []struct {
		name string
		cfg  RunConfig
		want string
	}{
		{"single frame jpeg", RunConfig{DurationFrames: 1, ImageFormat: ports.ImageFormatJPEG}, "output.jpg"},
		{"single frame png", RunConfig{DurationFrames: 1, ImageFormat: ports.ImageFormatPNG}, "output.png"},
		{"multi raw mov", RunConfig{DurationFrames: 10, RawOutput: true, ImageFormat: ports.ImageFormatJPEG}, "output.mov"},
		{"multi raw mkv", RunConfig{DurationFrames: 10, RawOutput: true, ImageFormat: ports.ImageFormatPNG}, "output.mkv"},
		{"multi transcoded", RunConfig{DurationFrames: 10}, "output.mp4"},
	}
	for _, c := range cases {
		if got := c.cfg.DefaultOutputPath(); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestBuilder_BuildValidatesAndReturns(t *testing.T) {
	cfg, err := NewBuilder().
		WithFrameRange(0, 10, 30).
		WithSceneEntryPath("/tmp/dist/index.html").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DurationFrames != 10 || cfg.FPS != 30 {
		t.Fatalf("builder did not apply frame range: %+v", cfg)
	}
}

func assertConfigError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a configuration error")
	}
	var runErr *ports.RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected *ports.RunError, got %T", err)
	}
	if runErr.Kind != ports.ErrConfiguration {
		t.Fatalf("expected ErrConfiguration, got %v", runErr.Kind)
	}
}
