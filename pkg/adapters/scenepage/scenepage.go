// Package scenepage implements ports.ScenePage by evaluating the small
// JavaScript protocol a built scene page must expose on the global
// `window.__scene` object (init, renderFrame, fontsReady, settled, and a
// frame-marker DOM lookup).
package scenepage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/scenerender/core/pkg/ports"
)

// ScenePage drives one ports.Page through the scene contract.
type ScenePage struct {
	page ports.Page
}

// New wraps page, a page that has already navigated to the scene entry.
func New(page ports.Page) *ScenePage {
	return &ScenePage{page: page}
}

// HasEntryPoint reports whether the page exposes window.__scene, i.e.
// the bundle loaded and registered itself.
func (s *ScenePage) HasEntryPoint(ctx context.Context) (bool, error) {
	var present bool
	err := s.page.Eval(ctx, `typeof window.__scene === "object" && window.__scene !== null`, &present)
	if err != nil {
		return false, fmt.Errorf("scenepage: check entry point: %w", err)
	}
	return present, nil
}

// Init calls window.__scene.init(params) and waits for it to resolve.
func (s *ScenePage) Init(params ports.InitParams) error {
	encoded, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("scenepage: encode init params: %w", err)
	}
	expr := fmt.Sprintf(`window.__scene.init(%s)`, encoded)
	var ok bool
	if err := s.page.Eval(context.Background(), expr, &ok); err != nil {
		return fmt.Errorf("scenepage: init: %w", err)
	}
	return nil
}

// RenderFrame calls window.__scene.renderFrame(frameIndex) and decodes the
// returned error descriptor list.
func (s *ScenePage) RenderFrame(frameIndex int) ([]ports.PageError, error) {
	expr := fmt.Sprintf(`window.__scene.renderFrame(%d)`, frameIndex)
	var errs []ports.PageError
	if err := s.page.Eval(context.Background(), expr, &errs); err != nil {
		return nil, fmt.Errorf("scenepage: renderFrame(%d): %w", frameIndex, err)
	}
	return errs, nil
}

// FontsReady evaluates window.__scene.fontsReady().
func (s *ScenePage) FontsReady() (bool, error) {
	var ready bool
	if err := s.page.Eval(context.Background(), `window.__scene.fontsReady()`, &ready); err != nil {
		return false, fmt.Errorf("scenepage: fontsReady: %w", err)
	}
	return ready, nil
}

// Settled evaluates window.__scene.settled().
func (s *ScenePage) Settled() (bool, error) {
	var settled bool
	if err := s.page.Eval(context.Background(), `window.__scene.settled()`, &settled); err != nil {
		return false, fmt.Errorf("scenepage: settled: %w", err)
	}
	return settled, nil
}

// HasFrameMarker checks for a DOM element identified by frameIndex.
func (s *ScenePage) HasFrameMarker(frameIndex int) (bool, error) {
	expr := fmt.Sprintf(`!!document.querySelector('[data-scene-frame="%d"]')`, frameIndex)
	var present bool
	if err := s.page.Eval(context.Background(), expr, &present); err != nil {
		return false, fmt.Errorf("scenepage: frame marker %d: %w", frameIndex, err)
	}
	return present, nil
}

var _ ports.ScenePage = (*ScenePage)(nil)
