// Package main provides the CLI entry point for scenerender.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/scenerender/core/pkg/adapters/chromebrowser"
	"github.com/scenerender/core/pkg/adapters/extensionbrowser"
	"github.com/scenerender/core/pkg/adapters/ffmpegtool"
	"github.com/scenerender/core/pkg/adapters/filesink"
	"github.com/scenerender/core/pkg/adapters/fsbundler"
	"github.com/scenerender/core/pkg/adapters/logger"
	"github.com/scenerender/core/pkg/adapters/noopmedia"
	"github.com/scenerender/core/pkg/adapters/nullsink"
	"github.com/scenerender/core/pkg/adapters/osfilesystem"
	"github.com/scenerender/core/pkg/config"
	"github.com/scenerender/core/pkg/orchestrator"
	"github.com/scenerender/core/pkg/ports"
	"github.com/scenerender/core/pkg/summarizer"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Render  RenderCmd  `cmd:"" help:"Render a scene to a video file."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// RenderCmd defines the render subcommand.
type RenderCmd struct {
	SceneEntryPath string `arg:"" help:"Path to the bundled scene entry HTML file."`
	Output         string `short:"o" help:"Output video file path."`

	StartFrame     int `help:"First absolute frame index to render." default:"0"`
	DurationFrames int `help:"Number of frames to render." required:""`
	FPS            int `help:"Frames per second." default:"30"`

	Width  int `short:"W" help:"Viewport width." default:"1280"`
	Height int `short:"H" help:"Viewport height." default:"720"`

	Concurrency int `short:"c" help:"Number of parts to render concurrently (0 = number of CPUs)."`

	CaptureMethod string `enum:"screencast,extension,screenshot" default:"screenshot" help:"Frame capture strategy."`
	ImageFormat   string `enum:"jpeg,png" default:"jpeg" help:"Captured image format."`
	JPEGQuality   int    `default:"80" help:"JPEG quality (1-100)."`

	RawOutput             bool `help:"Concatenate parts without re-encoding."`
	NoFailOnPageErrors    bool `help:"Do not fail the run on page-reported errors."`
	NoFrameCountCheck     bool `help:"Skip the probed frame count verification."`
	EnableHashCheck       bool `help:"Fail verification on duplicate adjacent frame hashes."`

	VideoComponentType string `help:"Custom element tag name hosting the scene's video component."`

	NoHeadless        bool   `help:"Run the browser in non-headless mode."`
	ChromePath        string `help:"Path to the Chrome executable."`
	IgnoreHTTPSErrors bool   `help:"Ignore HTTPS certificate errors."`
	ExtensionPath     string `help:"Path to an unpacked extension directory, required by the extension capture method."`

	DevMode bool `help:"Enable the scene's development mode."`

	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`
	Summary  string `help:"Write an execution summary to this path (Markdown)."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("scenerender"),
		kong.Description("Render a declarative, frame-indexed browser scene to a video file."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the render command.
func (cmd *RenderCmd) Run() error {
	cfg := cmd.buildConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	fs := osfilesystem.New()

	var sink ports.DebugSink
	if cmd.Debug {
		if err := fs.MkdirAll(cmd.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cmd.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	var browser ports.Browser
	if cfg.CaptureMethod == ports.CaptureExtension {
		browser = extensionbrowser.New()
	} else {
		browser = chromebrowser.New()
	}

	orch := orchestrator.New(
		fsbundler.New(fs),
		noopmedia.New(),
		browser,
		ffmpegtool.New(),
		ffmpegtool.New(),
		fs,
		sink,
		log,
	)

	log.Info(l10n.F("Recording %s (%d frames)...", cmd.SceneEntryPath, cmd.DurationFrames))

	result, runErr := orch.Run(ctx, cfg)
	if runErr != nil {
		var runError *ports.RunError
		if errors.As(runErr, &runError) && runError.Kind == ports.ErrConfiguration {
			return fmt.Errorf("invalid configuration: %w", runError.Err)
		}
		return runErr
	}

	log.Info(l10n.F("Output saved to %s", result.OutputPath))

	if cmd.Summary != "" {
		s := summarizer.NewBuilder().
			WithScene(cmd.SceneEntryPath).
			WithTiming(int(result.TotalDuration.Milliseconds())).
			WithSettings(summarizer.Settings{
				Width:          cfg.Width,
				Height:         cfg.Height,
				FPS:            cfg.FPS,
				DurationFrames: cfg.DurationFrames,
				Concurrency:    cfg.ResolvedConcurrency(),
				CaptureMethod:  string(cfg.CaptureMethod),
				ImageFormat:    string(cfg.ImageFormat),
				RawOutput:      cfg.RawOutput,
			}).
			WithOutput(summarizer.OutputInfo{
				Path:             result.OutputPath,
				FramesRendered:   result.FramesRendered,
				ProbedFrameCount: result.ProbedFrameCount,
				Probed:           result.Probed,
			}).
			Build()

		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(summarizer.WithVersion(version)))
		if err := writer.Write(cmd.Summary, s); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", cmd.Summary))
		}
	}

	return nil
}

func (cmd *RenderCmd) buildConfig() config.RunConfig {
	cfg := config.Defaults()

	cfg.SceneEntryPath = cmd.SceneEntryPath
	cfg.OutputPath = cmd.Output

	cfg.StartFrame = cmd.StartFrame
	cfg.DurationFrames = cmd.DurationFrames
	cfg.FPS = cmd.FPS

	cfg.Width = cmd.Width
	cfg.Height = cmd.Height

	if cmd.Concurrency > 0 {
		cfg.Concurrency = cmd.Concurrency
	} else {
		cfg.Concurrency = runtime.NumCPU()
	}

	cfg.CaptureMethod = ports.CaptureMethod(cmd.CaptureMethod)
	cfg.ImageFormat = ports.ImageFormat(cmd.ImageFormat)
	cfg.JPEGQuality = cmd.JPEGQuality

	cfg.RawOutput = cmd.RawOutput
	cfg.FailOnPageErrors = !cmd.NoFailOnPageErrors
	cfg.EnableFrameCountCheck = !cmd.NoFrameCountCheck
	cfg.EnableHashCheck = cmd.EnableHashCheck

	cfg.VideoComponentType = cmd.VideoComponentType

	cfg.Headless = !cmd.NoHeadless
	cfg.ChromePath = cmd.ChromePath
	cfg.IgnoreHTTPSErrors = cmd.IgnoreHTTPSErrors
	cfg.ExtensionPath = cmd.ExtensionPath

	cfg.DevMode = cmd.DevMode

	cfg.Debug = cmd.Debug
	cfg.DebugDir = cmd.DebugDir

	cfg.LogLevel = cmd.LogLevel

	return cfg
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("scenerender version %s", version))
	return nil
}
