// Package orchestrator drives one render run through its lifecycle:
// Bundling, ServiceStarting, BrowserLaunching, Rendering, Concatenating,
// Verifying, then Cleanup.
package orchestrator

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/scenerender/core/pkg/adapters/scenepage"
	"github.com/scenerender/core/pkg/capture"
	"github.com/scenerender/core/pkg/concat"
	"github.com/scenerender/core/pkg/config"
	"github.com/scenerender/core/pkg/encodersink"
	"github.com/scenerender/core/pkg/hashmap"
	"github.com/scenerender/core/pkg/pagedriver"
	"github.com/scenerender/core/pkg/partition"
	"github.com/scenerender/core/pkg/partworker"
	"github.com/scenerender/core/pkg/pipeline"
	"github.com/scenerender/core/pkg/ports"
)

// RunResult summarizes a completed run for the CLI/summarizer.
type RunResult struct {
	OutputPath       string
	FramesRendered   int
	TotalDuration    time.Duration
	ProbedFrameCount int
	Probed           bool
}

// Orchestrator wires the external collaborators (bundler, media service,
// browser, encoder tool) and the internal stages into one run.
type Orchestrator struct {
	bundleStage        pipeline.Stage[pipeline.BundleInput, pipeline.BundleResult]
	serviceStage       pipeline.Stage[pipeline.ServiceInput, pipeline.ServiceResult]
	browserLaunchStage pipeline.Stage[pipeline.BrowserLaunchInput, pipeline.BrowserLaunchResult]
	concatStage        pipeline.Stage[pipeline.ConcatInput, pipeline.ConcatResult]
	verifyStage        pipeline.Stage[pipeline.VerifyInput, pipeline.VerifyResult]

	bundler      ports.Bundler
	mediaService ports.MediaService
	browser      ports.Browser
	encoderTool  ports.EncoderTool

	fs   ports.FileSystem
	sink ports.DebugSink
	log  ports.Logger

	// partArtifacts collects every Part Artifact path render() allocates,
	// so cleanup can remove them on both success and failure.
	partArtifacts []string
}

// New constructs an Orchestrator from its external collaborators.
func New(
	bundler ports.Bundler,
	mediaService ports.MediaService,
	browser ports.Browser,
	encoderTool ports.EncoderTool,
	probeTool ports.ProbeTool,
	fs ports.FileSystem,
	sink ports.DebugSink,
	log ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		bundleStage:        bundleStage{bundler: bundler},
		serviceStage:       serviceStage{service: mediaService},
		browserLaunchStage: browserLaunchStage{browser: browser},
		concatStage:        concat.NewConcatenator(encoderTool, fs, log),
		verifyStage:        concat.NewVerifier(probeTool, log),

		bundler:      bundler,
		mediaService: mediaService,
		browser:      browser,
		encoderTool:  encoderTool,

		fs:   fs,
		sink: sink,
		log:  log.WithComponent("orchestrator"),
	}
}

// Run executes one render job end to end. Cleanup always runs, in
// reverse-acquisition order, regardless of where the run fails; cleanup
// failures are logged as warnings and never mask the primary error.
func (o *Orchestrator) Run(ctx context.Context, cfg config.RunConfig) (RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return RunResult{}, err
	}
	start := time.Now()

	if o.sink.Enabled() {
		if data, err := json.Marshal(cfg); err == nil {
			_ = o.sink.SaveRunConfig(data)
		}
	}

	defer o.cleanup()

	o.log.Info("Starting render of %d frames at %d fps", cfg.DurationFrames, cfg.FPS)

	entry, err := o.bundleStage.Execute(ctx, pipeline.BundleInput{SceneEntryPath: cfg.SceneEntryPath})
	if err != nil {
		return RunResult{}, err
	}
	o.log.Info("Bundled scene entry: %s", entry.EntryPath)

	secret := newSecret()
	service, err := o.serviceStage.Execute(ctx, pipeline.ServiceInput{Secret: secret})
	if err != nil {
		return RunResult{}, err
	}
	o.log.Info("Media service listening on port %d", service.Port)

	launchOpts := ports.BrowserOptions{
		Headless:          cfg.Headless,
		ChromePath:        cfg.ChromePath,
		WindowWidth:       cfg.Width,
		WindowHeight:      cfg.Height,
		IgnoreHTTPSErrors: cfg.IgnoreHTTPSErrors,
		ExtensionPath:     cfg.ExtensionPath,
	}
	if _, err := o.browserLaunchStage.Execute(ctx, pipeline.BrowserLaunchInput{Options: launchOpts}); err != nil {
		return RunResult{}, err
	}
	o.log.Info("Browser launched (headless=%v)", cfg.Headless)

	hashes := hashmap.New()
	concurrency := cfg.ResolvedConcurrency()
	parts := partition.Split(cfg.StartFrame, cfg.DurationFrames, concurrency)

	artifacts, err := o.render(ctx, cfg, entry, service, secret, parts, hashes)
	if err != nil {
		return RunResult{}, err
	}
	o.log.Info("Rendered all %d parts", len(artifacts))

	outputPath := cfg.DefaultOutputPath()
	concatResult, err := o.concatStage.Execute(ctx, pipeline.ConcatInput{
		PartPaths:  artifacts,
		OutputPath: outputPath,
		RawOutput:  cfg.RawOutput,
		TempDir:    cfg.TempDir,
	})
	if err != nil {
		return RunResult{}, err
	}

	verifyResult, err := o.verifyStage.Execute(ctx, pipeline.VerifyInput{
		OutputPath:            concatResult.OutputPath,
		StartFrame:            cfg.StartFrame,
		DurationFrames:        cfg.DurationFrames,
		EnableFrameCountCheck: cfg.EnableFrameCountCheck,
		EnableHashCheck:       cfg.EnableHashCheck,
		Hashes:                hashes,
	})
	if err != nil {
		return RunResult{}, err
	}

	o.log.Info("Run completed in %s", time.Since(start).Round(time.Millisecond))

	return RunResult{
		OutputPath:       concatResult.OutputPath,
		FramesRendered:   cfg.DurationFrames,
		TotalDuration:    time.Since(start),
		ProbedFrameCount: verifyResult.ProbedFrameCount,
		Probed:           verifyResult.Probed,
	}, nil
}

// render fans out one Part Worker per partition.Part, aborting the
// remaining workers and awaiting their settlement on the first failure.
func (o *Orchestrator) render(
	ctx context.Context,
	cfg config.RunConfig,
	entry pipeline.BundleResult,
	service pipeline.ServiceResult,
	secret string,
	parts []partition.Part,
	hashes *hashmap.Map,
) ([]string, error) {
	renderCtx, cancelAll := context.WithCancel(ctx)
	defer cancelAll()

	capturer, err := capture.ForMethod(cfg.CaptureMethod, cfg.ImageFormat, cfg.JPEGQuality)
	if err != nil {
		return nil, ports.NewRunError(ports.ErrConfiguration, err)
	}

	progress := newProgressTracker(cfg.DurationFrames, cfg.FPS, o.sink, o.log)

	workers := make([]*partworker.Worker, len(parts))
	artifacts := make([]string, len(parts))

	for i, part := range parts {
		artifactPath := filepath.Join(cfg.TempDir, fmt.Sprintf("part%d-%d-%d.mkv", part.PartNum, part.Start, part.End))
		artifacts[i] = artifactPath
		o.partArtifacts = append(o.partArtifacts, artifactPath)

		page, err := o.browser.NewPage(renderCtx)
		if err != nil {
			cancelAll()
			o.awaitStarted(workers[:i])
			return nil, ports.NewPartError(ports.ErrBundlerOrPageLoad, part.PartNum, err)
		}

		sink := encodersink.New(o.encoderTool, o.log)
		if err := sink.Open(renderCtx, part.PartNum, ports.PartEncoderOptions{
			Format:      cfg.ImageFormat,
			JPEGQuality: cfg.JPEGQuality,
			FPS:         cfg.FPS,
			OutPath:     artifactPath,
		}); err != nil {
			_ = page.Close()
			cancelAll()
			o.awaitStarted(workers[:i])
			return nil, err
		}

		driver := pagedriver.New(page, scenepage.New(page), capturer, sink, o.log, pagedriver.Options{
			PartNum:            part.PartNum,
			Width:              cfg.Width,
			Height:             cfg.Height,
			EntryURL:           entry.EntryPath,
			FrameRenderTimeout: cfg.FrameRenderTimeout,
			SettleDelay:        cfg.SettleDelay,
			FailOnPageErrors:   cfg.FailOnPageErrors,
			EnableHashCheck:    cfg.EnableHashCheck,
			Hashes:             hashes,
			OnProgress:         progress.partProgressFunc(part.PartNum),
			Init: ports.InitParams{
				Width:              cfg.Width,
				Height:             cfg.Height,
				FPS:                cfg.FPS,
				ServerPort:         service.Port,
				DurationFrames:     cfg.DurationFrames,
				RenderID:           part.Start,
				UserData:           cfg.UserData,
				VideoComponentType: cfg.VideoComponentType,
				ImageFormat:        cfg.ImageFormat,
				JPEGQuality:        cfg.JPEGQuality,
				Secret:             secret,
				DevMode:            cfg.DevMode,
			},
		})

		w := partworker.New(part, driver, sink, artifactPath, o.log)
		workers[i] = w
		w.Run(renderCtx)
	}

	if err := awaitFailFast(workers, cancelAll); err != nil {
		return nil, err
	}

	return artifacts, nil
}

// workerCompletion reports one worker's settlement, tagged with its index
// so the caller can tell which Part it belongs to.
type workerCompletion struct {
	index int
	err   error
}

// awaitFailFast awaits every worker's settlement in the order workers
// actually finish, not slice order, so a fast failure from any worker
// triggers cancelAll immediately instead of waiting behind a still-running
// earlier-indexed peer. It still drains every worker before returning, so
// the run only proceeds once all peers have actually stopped.
func awaitFailFast(workers []*partworker.Worker, cancelAll context.CancelFunc) error {
	completions := make(chan workerCompletion, len(workers))
	for i, w := range workers {
		go func(i int, w *partworker.Worker) {
			_, err := w.Wait()
			completions <- workerCompletion{index: i, err: err}
		}(i, w)
	}

	var firstErr error
	for range workers {
		c := <-completions
		if c.err != nil && firstErr == nil {
			firstErr = c.err
			cancelAll()
		}
	}
	return firstErr
}

// awaitStarted aborts and waits for workers that were already running
// when a later part failed to even start (NewPage/sink.Open).
func (o *Orchestrator) awaitStarted(workers []*partworker.Worker) {
	for _, w := range workers {
		if w == nil {
			continue
		}
		w.Abort()
		if _, err := w.Wait(); err != nil {
			o.log.Warn("Worker teardown reported an error: %s", err)
		}
	}
}

// cleanup tears down external resources in reverse-acquisition order.
// Every step is best-effort: failures are logged, never returned. Part
// Artifacts are removed last, on both success and failure, so tempDir
// never accumulates per-part encoded video across runs.
func (o *Orchestrator) cleanup() {
	if err := o.browser.Close(); err != nil {
		o.log.Warn("Failed to close browser: %s", err)
	}
	if err := o.mediaService.Stop(); err != nil {
		o.log.Warn("Failed to stop media service: %s", err)
	}
	if err := o.bundler.Stop(); err != nil {
		o.log.Warn("Failed to stop bundler: %s", err)
	}
	for _, path := range o.partArtifacts {
		if err := o.fs.Remove(path); err != nil {
			o.log.Warn("Failed to remove part artifact %s: %s", path, err)
		}
	}
}

func newSecret() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// progressTracker aggregates per-part frame counts into periodic
// ProgressReport snapshots, saved through the DebugSink and logged once
// roughly every second of rendering.
type progressTracker struct {
	mu          sync.Mutex
	totalFrames int
	fps         int
	perPart     map[int]int
	framesDone  int
	started     time.Time
	sink        ports.DebugSink
	log         ports.Logger
}

func newProgressTracker(totalFrames, fps int, sink ports.DebugSink, log ports.Logger) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		fps:         fps,
		perPart:     make(map[int]int),
		started:     time.Now(),
		sink:        sink,
		log:         log,
	}
}

func (p *progressTracker) partProgressFunc(partNum int) pagedriver.ProgressFunc {
	return func(frameIndex int) {
		p.record(partNum)
	}
}

// record increments the completed-frame counters and emits a snapshot
// every ceil(fps) frames, so the reporting cadence stays roughly once
// per second regardless of how many parts are running concurrently.
func (p *progressTracker) record(partNum int) {
	p.mu.Lock()
	p.perPart[partNum]++
	p.framesDone++
	framesDone := p.framesDone
	emitEvery := p.fps
	if emitEvery < 1 {
		emitEvery = 1
	}
	shouldEmit := framesDone%emitEvery == 0 || framesDone == p.totalFrames
	var report pipeline.ProgressReport
	if shouldEmit {
		report = p.snapshotLocked()
	}
	p.mu.Unlock()

	if !shouldEmit {
		return
	}
	elapsed := time.Since(p.started).Seconds()
	instFPS := 0.0
	if elapsed > 0 {
		instFPS = float64(framesDone) / elapsed
	}
	p.log.Info("Rendered %d/%d frames (%.1f fps)", framesDone, p.totalFrames, instFPS)
	if p.sink.Enabled() {
		if data, err := json.Marshal(report); err == nil {
			_ = p.sink.SaveProgress(data)
		}
	}
}

func (p *progressTracker) snapshotLocked() pipeline.ProgressReport {
	elapsed := time.Since(p.started).Seconds()
	fps := 0.0
	if elapsed > 0 {
		fps = float64(p.framesDone) / elapsed
	}
	perPart := make([]pipeline.PartProgress, 0, len(p.perPart))
	for partNum, done := range p.perPart {
		perPart = append(perPart, pipeline.PartProgress{PartNum: partNum, FramesDone: done})
	}
	return pipeline.ProgressReport{
		FramesDone:  p.framesDone,
		TotalFrames: p.totalFrames,
		FPS:         fps,
		PerPart:     perPart,
	}
}
