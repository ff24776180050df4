package pagedriver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scenerender/core/pkg/adapters/logger"
	"github.com/scenerender/core/pkg/hashmap"
	"github.com/scenerender/core/pkg/mocks"
	"github.com/scenerender/core/pkg/ports"
)

type fakeScenePage struct {
	entryPointPresent bool
	initErr           error
	renderFrameFunc   func(frameIndex int) ([]ports.PageError, error)
	fontsReady        bool
	settled           bool
	frameMarkerAt     int
}

func (f *fakeScenePage) HasEntryPoint(ctx context.Context) (bool, error) { return f.entryPointPresent, nil }
func (f *fakeScenePage) Init(params ports.InitParams) error              { return f.initErr }
func (f *fakeScenePage) RenderFrame(frameIndex int) ([]ports.PageError, error) {
	if f.renderFrameFunc != nil {
		return f.renderFrameFunc(frameIndex)
	}
	return nil, nil
}
func (f *fakeScenePage) FontsReady() (bool, error) { return f.fontsReady, nil }
func (f *fakeScenePage) Settled() (bool, error)    { return f.settled, nil }
func (f *fakeScenePage) HasFrameMarker(frameIndex int) (bool, error) {
	return frameIndex <= f.frameMarkerAt, nil
}

type fakeCapturer struct {
	data []byte
}

func (f *fakeCapturer) CaptureFrame(page ports.Page, frameIndex int) ([]byte, error) {
	return f.data, nil
}

type fakeSink struct {
	writes [][]byte
	err    error
}

func (f *fakeSink) Write(frame []byte) error {
	f.writes = append(f.writes, frame)
	return f.err
}

func baseOptions() Options {
	return Options{
		PartNum:            0,
		Width:              640,
		Height:             480,
		EntryURL:           "file:///tmp/dist/index.html",
		FrameRenderTimeout: time.Second,
		SettleDelay:        time.Millisecond,
		FailOnPageErrors:   true,
	}
}

func TestDriver_SetupFailsWhenEntryPointMissing(t *testing.T) {
	page := &mocks.Page{}
	scene := &fakeScenePage{entryPointPresent: false}
	d := New(page, scene, &fakeCapturer{}, &fakeSink{}, logger.NewNoop(), baseOptions())

	err := d.Setup(context.Background())
	var runErr *ports.RunError
	if !errors.As(err, &runErr) || runErr.Kind != ports.ErrBundlerOrPageLoad {
		t.Fatalf("expected ErrBundlerOrPageLoad, got %v", err)
	}
}

func TestDriver_RenderFrameHappyPath(t *testing.T) {
	page := &mocks.Page{}
	scene := &fakeScenePage{entryPointPresent: true, fontsReady: true, settled: true, frameMarkerAt: 5}
	sink := &fakeSink{}
	hashes := hashmap.New()
	opts := baseOptions()
	opts.EnableHashCheck = true
	opts.Hashes = hashes

	var progressed []int
	opts.OnProgress = func(frameIndex int) { progressed = append(progressed, frameIndex) }

	d := New(page, scene, &fakeCapturer{data: []byte("pixels")}, sink, logger.NewNoop(), opts)

	if err := d.Setup(context.Background()); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := d.RenderFrame(context.Background(), 3); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	if len(sink.writes) != 1 || string(sink.writes[0]) != "pixels" {
		t.Fatalf("unexpected sink writes: %v", sink.writes)
	}
	if len(progressed) != 1 || progressed[0] != 3 {
		t.Fatalf("unexpected progress: %v", progressed)
	}
	if hashes.Len() != 1 {
		t.Fatalf("expected 1 hash recorded, got %d", hashes.Len())
	}
}

func TestDriver_RenderFrameFailsOnPageError(t *testing.T) {
	page := &mocks.Page{}
	scene := &fakeScenePage{
		entryPointPresent: true,
		fontsReady:        true,
		settled:           true,
		frameMarkerAt:     5,
		renderFrameFunc: func(frameIndex int) ([]ports.PageError, error) {
			return []ports.PageError{{Message: "boom"}}, nil
		},
	}
	opts := baseOptions()
	opts.FailOnPageErrors = true
	d := New(page, scene, &fakeCapturer{}, &fakeSink{}, logger.NewNoop(), opts)
	_ = d.Setup(context.Background())

	err := d.RenderFrame(context.Background(), 0)
	var runErr *ports.RunError
	if !errors.As(err, &runErr) || runErr.Kind != ports.ErrSceneRender {
		t.Fatalf("expected ErrSceneRender, got %v", err)
	}
}

func TestDriver_RenderFrameTimesOutWhenMarkerNeverAppears(t *testing.T) {
	page := &mocks.Page{}
	scene := &fakeScenePage{entryPointPresent: true, fontsReady: true, settled: true, frameMarkerAt: -1}
	opts := baseOptions()
	opts.FrameRenderTimeout = 20 * time.Millisecond
	d := New(page, scene, &fakeCapturer{}, &fakeSink{}, logger.NewNoop(), opts)
	_ = d.Setup(context.Background())

	err := d.RenderFrame(context.Background(), 0)
	var runErr *ports.RunError
	if !errors.As(err, &runErr) || runErr.Kind != ports.ErrFrameTimeout {
		t.Fatalf("expected ErrFrameTimeout, got %v", err)
	}
}
