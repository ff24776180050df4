// Package partworker implements the Part Worker: composes a Page Driver
// with an Encoder Sink for one partition and exposes an async
// completion/abort lifecycle instead of a synchronous request/response,
// since "run async, cancel cooperatively, await settlement" does not fit
// pipeline.Stage's shape.
package partworker

import (
	"context"
	"fmt"

	"github.com/scenerender/core/pkg/partition"
	"github.com/scenerender/core/pkg/ports"
)

// Result is what a Worker's run produces on success.
type Result struct {
	PartNum      int
	ArtifactPath string
}

// pageDriver is the slice of *pagedriver.Driver a Worker needs.
type pageDriver interface {
	Setup(ctx context.Context) error
	RenderFrame(ctx context.Context, frameIndex int) error
	Close() error
}

// encoderSink is the slice of *encodersink.Sink a Worker needs.
type encoderSink interface {
	End() error
	Kill()
}

// Worker owns one Page Driver and one Encoder Sink for the lifetime of
// one Part.
type Worker struct {
	part   partition.Part
	driver pageDriver
	sink   encoderSink
	log    ports.Logger

	cancel context.CancelFunc
	done   chan error
	result Result
}

// New constructs a Worker. driver and sink must already be wired to the
// same page/outPath for this part; Run calls driver.Setup and sink.Open
// is expected to have already happened, or callers can pass an unopened
// sink and call Open themselves before Run — see Orchestrator wiring.
func New(part partition.Part, driver pageDriver, sink encoderSink, artifactPath string, log ports.Logger) *Worker {
	return &Worker{
		part:   part,
		driver: driver,
		sink:   sink,
		log:    log.WithComponent("partworker"),
		done:   make(chan error, 1),
		result: Result{PartNum: part.PartNum, ArtifactPath: artifactPath},
	}
}

// Run starts the worker asynchronously. It must be called exactly once;
// callers observe completion via Wait.
func (w *Worker) Run(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	go func() {
		w.done <- w.run(workerCtx)
	}()
}

func (w *Worker) run(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			w.sink.Kill()
			return
		}
		if endErr := w.sink.End(); endErr != nil {
			err = endErr
		}
	}()

	if err := w.driver.Setup(ctx); err != nil {
		return err
	}

	for frameIndex := w.part.Start; frameIndex < w.part.End; frameIndex++ {
		select {
		case <-ctx.Done():
			return ports.NewPartError(ports.ErrFrameTimeout, w.part.PartNum, fmt.Errorf("aborted before frame %d", frameIndex))
		default:
		}

		if err := w.driver.RenderFrame(ctx, frameIndex); err != nil {
			return err
		}
	}

	return nil
}

// Abort sets the cooperative cancel flag. Idempotent; safe to call
// multiple times or before Run.
func (w *Worker) Abort() {
	if w.cancel != nil {
		w.cancel()
	}
}

// Wait blocks until the worker settles, returning the Part Artifact path
// on success or the first fatal error.
func (w *Worker) Wait() (Result, error) {
	err := <-w.done
	closeErr := w.driver.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return Result{}, err
	}
	return w.result, nil
}
