package orchestrator

import (
	"context"

	"github.com/scenerender/core/pkg/pipeline"
	"github.com/scenerender/core/pkg/ports"
)

// bundleStage adapts ports.Bundler to pipeline.Stage.
type bundleStage struct {
	bundler ports.Bundler
}

func (s bundleStage) Execute(ctx context.Context, input pipeline.BundleInput) (pipeline.BundleResult, error) {
	entryPath, err := s.bundler.Build(ctx, input.SceneEntryPath)
	if err != nil {
		return pipeline.BundleResult{}, ports.NewRunError(ports.ErrBundlerOrPageLoad, err)
	}
	return pipeline.BundleResult{EntryPath: entryPath}, nil
}

// serviceStage adapts ports.MediaService to pipeline.Stage.
type serviceStage struct {
	service ports.MediaService
}

func (s serviceStage) Execute(ctx context.Context, input pipeline.ServiceInput) (pipeline.ServiceResult, error) {
	port, err := s.service.Start(ctx, input.Secret)
	if err != nil {
		return pipeline.ServiceResult{}, ports.NewRunError(ports.ErrBundlerOrPageLoad, err)
	}
	return pipeline.ServiceResult{Port: port}, nil
}

// browserLaunchStage adapts ports.Browser.Launch to pipeline.Stage.
type browserLaunchStage struct {
	browser ports.Browser
}

func (s browserLaunchStage) Execute(ctx context.Context, input pipeline.BrowserLaunchInput) (pipeline.BrowserLaunchResult, error) {
	if err := s.browser.Launch(ctx, input.Options); err != nil {
		return pipeline.BrowserLaunchResult{}, ports.NewRunError(ports.ErrBundlerOrPageLoad, err)
	}
	return pipeline.BrowserLaunchResult{}, nil
}

var (
	_ pipeline.Stage[pipeline.BundleInput, pipeline.BundleResult]               = bundleStage{}
	_ pipeline.Stage[pipeline.ServiceInput, pipeline.ServiceResult]             = serviceStage{}
	_ pipeline.Stage[pipeline.BrowserLaunchInput, pipeline.BrowserLaunchResult] = browserLaunchStage{}
)
