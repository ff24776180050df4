// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"time"

	"github.com/scenerender/core/pkg/ports"
)

// Browser is a mock implementation of ports.Browser.
type Browser struct {
	LaunchFunc  func(ctx context.Context, opts ports.BrowserOptions) error
	NewPageFunc func(ctx context.Context) (ports.Page, error)
	CloseFunc   func() error

	NewPageCalls int
	CloseCalled  bool
}

func (m *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	if m.LaunchFunc != nil {
		return m.LaunchFunc(ctx, opts)
	}
	return nil
}

func (m *Browser) NewPage(ctx context.Context) (ports.Page, error) {
	m.NewPageCalls++
	if m.NewPageFunc != nil {
		return m.NewPageFunc(ctx)
	}
	return &Page{}, nil
}

func (m *Browser) Close() error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Page is a mock implementation of ports.Page.
type Page struct {
	SetViewportFunc       func(width, height int) error
	NavigateFunc          func(url string) error
	EvalFunc              func(ctx context.Context, expr string, out interface{}) error
	WaitPredicateFunc     func(ctx context.Context, expr string) error
	WaitNetworkIdleFunc   func(ctx context.Context, quiet time.Duration) error
	StartScreencastFunc   func(quality int) (<-chan ports.ScreenFrame, error)
	StopScreencastFunc    func() error
	ScreenshotFunc        func(format ports.ImageFormat, quality int) ([]byte, error)
	CaptureVisibleTabFunc func(format ports.ImageFormat, quality int) ([]byte, error)
	SetFrameIndexFunc     func(frameIndex int)
	CloseFunc             func() error

	CloseCalled bool
}

func (m *Page) SetViewport(width, height int) error {
	if m.SetViewportFunc != nil {
		return m.SetViewportFunc(width, height)
	}
	return nil
}

func (m *Page) Navigate(url string) error {
	if m.NavigateFunc != nil {
		return m.NavigateFunc(url)
	}
	return nil
}

func (m *Page) Eval(ctx context.Context, expr string, out interface{}) error {
	if m.EvalFunc != nil {
		return m.EvalFunc(ctx, expr, out)
	}
	return nil
}

func (m *Page) WaitPredicate(ctx context.Context, expr string) error {
	if m.WaitPredicateFunc != nil {
		return m.WaitPredicateFunc(ctx, expr)
	}
	return nil
}

func (m *Page) WaitNetworkIdle(ctx context.Context, quiet time.Duration) error {
	if m.WaitNetworkIdleFunc != nil {
		return m.WaitNetworkIdleFunc(ctx, quiet)
	}
	return nil
}

func (m *Page) StartScreencast(quality int) (<-chan ports.ScreenFrame, error) {
	if m.StartScreencastFunc != nil {
		return m.StartScreencastFunc(quality)
	}
	ch := make(chan ports.ScreenFrame)
	close(ch)
	return ch, nil
}

func (m *Page) StopScreencast() error {
	if m.StopScreencastFunc != nil {
		return m.StopScreencastFunc()
	}
	return nil
}

func (m *Page) Screenshot(format ports.ImageFormat, quality int) ([]byte, error) {
	if m.ScreenshotFunc != nil {
		return m.ScreenshotFunc(format, quality)
	}
	return []byte("screenshot"), nil
}

func (m *Page) CaptureVisibleTab(format ports.ImageFormat, quality int) ([]byte, error) {
	if m.CaptureVisibleTabFunc != nil {
		return m.CaptureVisibleTabFunc(format, quality)
	}
	return []byte("visible-tab"), nil
}

// SetFrameIndex is only present so Page satisfies the optional
// SetFrameIndex(int) interface capture.Screencast probes for; it is not
// part of ports.Page.
func (m *Page) SetFrameIndex(frameIndex int) {
	if m.SetFrameIndexFunc != nil {
		m.SetFrameIndexFunc(frameIndex)
	}
}

func (m *Page) Close() error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ ports.Browser = (*Browser)(nil)
var _ ports.Page = (*Page)(nil)
