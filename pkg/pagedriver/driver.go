// Package pagedriver implements the Page Driver: owns one browser page
// bound to one Part, drives it through the scene's readiness ladder frame
// by frame, and hands captured bytes to a FrameSink.
package pagedriver

import (
	"context"
	"fmt"
	"time"

	"github.com/scenerender/core/pkg/hashmap"
	"github.com/scenerender/core/pkg/ports"
)

// FrameSink is the narrow interface the Page Driver needs from the
// Encoder Sink: accept one frame, in order, and acknowledge it.
type FrameSink interface {
	Write(frame []byte) error
}

// ProgressFunc is invoked once per captured frame.
type ProgressFunc func(frameIndex int)

// Options configures one Page Driver run.
type Options struct {
	PartNum            int
	Width, Height      int
	EntryURL           string
	Init               ports.InitParams
	FrameRenderTimeout time.Duration
	SettleDelay        time.Duration
	FailOnPageErrors   bool
	EnableHashCheck    bool
	Hashes             *hashmap.Map
	OnProgress         ProgressFunc
}

// Driver owns one ports.Page for the lifetime of one Part.
type Driver struct {
	page     ports.Page
	scene    ports.ScenePage
	capturer ports.FrameCapturer
	sink     FrameSink
	log      ports.Logger
	opts     Options
}

// New constructs a Driver. scene must wrap the same page instance.
func New(page ports.Page, scene ports.ScenePage, capturer ports.FrameCapturer, sink FrameSink, log ports.Logger, opts Options) *Driver {
	return &Driver{
		page:     page,
		scene:    scene,
		capturer: capturer,
		sink:     sink,
		log:      log.WithComponent("pagedriver"),
		opts:     opts,
	}
}

// Setup creates the viewport, navigates to the scene entry, and calls its
// initialization entry point.
func (d *Driver) Setup(ctx context.Context) error {
	if err := d.page.SetViewport(d.opts.Width, d.opts.Height); err != nil {
		return ports.NewPartError(ports.ErrBundlerOrPageLoad, d.opts.PartNum, fmt.Errorf("set viewport: %w", err))
	}

	if err := d.page.Navigate(d.opts.EntryURL); err != nil {
		return ports.NewPartError(ports.ErrBundlerOrPageLoad, d.opts.PartNum, fmt.Errorf("navigate: %w", err))
	}

	entry, ok := d.scene.(interface {
		HasEntryPoint(ctx context.Context) (bool, error)
	})
	if ok {
		present, err := entry.HasEntryPoint(ctx)
		if err != nil {
			return ports.NewPartError(ports.ErrBundlerOrPageLoad, d.opts.PartNum, err)
		}
		if !present {
			return ports.NewPartError(ports.ErrBundlerOrPageLoad, d.opts.PartNum, fmt.Errorf("scene entry point not found after navigation"))
		}
	}

	if err := d.scene.Init(d.opts.Init); err != nil {
		return ports.NewPartError(ports.ErrBundlerOrPageLoad, d.opts.PartNum, err)
	}
	return nil
}

// RenderFrame runs the full per-frame settle ladder for frameIndex and
// forwards the captured bytes to the sink. The entire sequence is bounded
// by FrameRenderTimeout.
func (d *Driver) RenderFrame(ctx context.Context, frameIndex int) error {
	frameCtx, cancel := context.WithTimeout(ctx, d.opts.FrameRenderTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- d.renderFrame(frameCtx, frameIndex) }()

	select {
	case err := <-errCh:
		return err
	case <-frameCtx.Done():
		return ports.NewPartError(ports.ErrFrameTimeout, d.opts.PartNum, fmt.Errorf("frame %d: %w", frameIndex, frameCtx.Err()))
	}
}

func (d *Driver) renderFrame(ctx context.Context, frameIndex int) error {
	pageErrs, err := d.scene.RenderFrame(frameIndex)
	if err != nil {
		return ports.NewPartError(ports.ErrSceneRender, d.opts.PartNum, fmt.Errorf("frame %d: %w", frameIndex, err))
	}
	if len(pageErrs) > 0 {
		if d.opts.FailOnPageErrors {
			return ports.NewPartError(ports.ErrSceneRender, d.opts.PartNum, fmt.Errorf("frame %d: %d page error(s), first: %s", frameIndex, len(pageErrs), pageErrs[0].Message))
		}
		for _, pe := range pageErrs {
			d.log.Warn("Scene reported a page error on frame %d: %s", frameIndex, pe.Message)
		}
	}

	if err := d.waitUntil(ctx, d.scene.FontsReady); err != nil {
		return ports.NewPartError(ports.ErrFrameTimeout, d.opts.PartNum, fmt.Errorf("frame %d: fonts never became ready: %w", frameIndex, err))
	}

	if err := d.waitUntil(ctx, func() (bool, error) { return d.scene.HasFrameMarker(frameIndex) }); err != nil {
		return ports.NewPartError(ports.ErrFrameTimeout, d.opts.PartNum, fmt.Errorf("frame %d: marker never appeared: %w", frameIndex, err))
	}

	if err := d.waitUntil(ctx, d.scene.Settled); err != nil {
		return ports.NewPartError(ports.ErrFrameTimeout, d.opts.PartNum, fmt.Errorf("frame %d: never settled: %w", frameIndex, err))
	}

	if err := d.page.WaitNetworkIdle(ctx, d.opts.SettleDelay); err != nil {
		return ports.NewPartError(ports.ErrFrameTimeout, d.opts.PartNum, fmt.Errorf("frame %d: network never idle: %w", frameIndex, err))
	}

	data, err := d.capturer.CaptureFrame(d.page, frameIndex)
	if err != nil {
		return ports.NewPartError(ports.ErrSceneRender, d.opts.PartNum, fmt.Errorf("frame %d: capture: %w", frameIndex, err))
	}

	if d.opts.EnableHashCheck && d.opts.Hashes != nil {
		d.opts.Hashes.Insert(frameIndex, data)
	}

	if err := d.sink.Write(data); err != nil {
		return err
	}

	if d.opts.OnProgress != nil {
		d.opts.OnProgress(frameIndex)
	}
	return nil
}

// waitUntil polls predicate until it reports true, an error, or ctx is
// done. Each settle stage is a small named predicate like this one, per
// the readiness ladder: no single signal is sufficient on its own.
func (d *Driver) waitUntil(ctx context.Context, predicate func() (bool, error)) error {
	for {
		ready, err := predicate()
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// Close releases the page.
func (d *Driver) Close() error {
	return d.page.Close()
}
