// Package config provides configuration loading and management for the
// rendering engine's Run Configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/scenerender/core/pkg/ports"
	"gopkg.in/yaml.v3"
)

// RunConfig is the immutable-for-a-run configuration for one rendering
// job: frame range, capture strategy, resource limits, and paths.
type RunConfig struct {
	StartFrame     int `yaml:"start_frame"`
	DurationFrames int `yaml:"duration_frames"`
	FPS            int `yaml:"fps"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Concurrency int `yaml:"concurrency"`

	CaptureMethod ports.CaptureMethod `yaml:"capture_method"`
	ImageFormat   ports.ImageFormat   `yaml:"image_format"`
	JPEGQuality   int                 `yaml:"jpeg_quality"`

	FrameRenderTimeout time.Duration `yaml:"frame_render_timeout"`
	SettleDelay        time.Duration `yaml:"settle_delay"`

	RawOutput             bool `yaml:"raw_output"`
	FailOnPageErrors      bool `yaml:"fail_on_page_errors"`
	EnableFrameCountCheck bool `yaml:"enable_frame_count_check"`
	EnableHashCheck       bool `yaml:"enable_hash_check"`

	UserData           interface{} `yaml:"user_data"`
	VideoComponentType string      `yaml:"video_component_type"`

	SceneEntryPath string `yaml:"scene_entry_path"`
	TempDir        string `yaml:"temp_dir"`
	OutputPath     string `yaml:"output_path"`

	Headless          bool   `yaml:"headless"`
	ChromePath        string `yaml:"chrome_path"`
	IgnoreHTTPSErrors bool   `yaml:"ignore_https_errors"`
	ExtensionPath     string `yaml:"extension_path"`

	DevMode bool `yaml:"dev_mode"`

	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`

	LogLevel string `yaml:"log_level"`
}

// Defaults returns a RunConfig with default values.
func Defaults() RunConfig {
	return RunConfig{
		StartFrame:     0,
		DurationFrames: 1,
		FPS:            30,

		Width:  1280,
		Height: 720,

		Concurrency: 4,

		CaptureMethod: ports.CaptureScreenshot,
		ImageFormat:   ports.ImageFormatJPEG,
		JPEGQuality:   80,

		FrameRenderTimeout: 30 * time.Second,
		SettleDelay:        250 * time.Millisecond,

		RawOutput:             false,
		FailOnPageErrors:      true,
		EnableFrameCountCheck: true,
		EnableHashCheck:       false,

		TempDir: os.TempDir(),

		Headless: true,

		LogLevel: "info",
	}
}

// LoadFromFile loads a RunConfig from a YAML file, starting from Defaults.
func LoadFromFile(path string) (RunConfig, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks field invariants and returns a Configuration error
// describing the first violation found. It must be called, and must
// pass, before any external resource (browser, encoder subprocess, temp
// directory) is allocated.
func (c RunConfig) Validate() error {
	switch {
	case c.DurationFrames < 1:
		return ports.NewRunError(ports.ErrConfiguration, fmt.Errorf("durationFrames must be >= 1, got %d", c.DurationFrames))
	case c.StartFrame < 0:
		return ports.NewRunError(ports.ErrConfiguration, fmt.Errorf("startFrame must be >= 0, got %d", c.StartFrame))
	case c.FPS < 1:
		return ports.NewRunError(ports.ErrConfiguration, fmt.Errorf("fps must be >= 1, got %d", c.FPS))
	case c.Width <= 0 || c.Height <= 0:
		return ports.NewRunError(ports.ErrConfiguration, fmt.Errorf("width/height must be positive, got %dx%d", c.Width, c.Height))
	case c.ImageFormat == ports.ImageFormatJPEG && (c.JPEGQuality < 1 || c.JPEGQuality > 100):
		return ports.NewRunError(ports.ErrConfiguration, fmt.Errorf("jpegQuality must be in [1,100], got %d", c.JPEGQuality))
	case c.CaptureMethod == ports.CaptureExtension && c.Headless:
		return ports.NewRunError(ports.ErrConfiguration, fmt.Errorf("capture method %q is incompatible with headless mode", c.CaptureMethod))
	case c.CaptureMethod == ports.CaptureExtension && c.ExtensionPath == "":
		return ports.NewRunError(ports.ErrConfiguration, fmt.Errorf("capture method %q requires extensionPath", c.CaptureMethod))
	case c.SceneEntryPath == "":
		return ports.NewRunError(ports.ErrConfiguration, fmt.Errorf("sceneEntryPath is required"))
	}
	return nil
}

// ResolvedConcurrency returns Concurrency clamped to [1, DurationFrames].
func (c RunConfig) ResolvedConcurrency() int {
	if c.Concurrency > c.DurationFrames {
		return c.DurationFrames
	}
	if c.Concurrency < 1 {
		return 1
	}
	return c.Concurrency
}

// DefaultOutputPath derives a default output path from DurationFrames,
// ImageFormat, and RawOutput when OutputPath is unspecified.
func (c RunConfig) DefaultOutputPath() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}

	if c.DurationFrames == 1 {
		if c.ImageFormat == ports.ImageFormatPNG {
			return "output.png"
		}
		return "output.jpg"
	}

	if c.RawOutput {
		if c.ImageFormat == ports.ImageFormatPNG {
			return "output.mkv"
		}
		return "output.mov"
	}

	return "output.mp4"
}
