// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"time"
)

// Browser abstracts a running browser process that can host multiple
// concurrently-driven pages, one per render Part.
type Browser interface {
	// Launch starts the browser with the given options.
	Launch(ctx context.Context, opts BrowserOptions) error

	// NewPage opens a fresh page in the browser. Each Part Worker owns
	// exactly one Page for its lifetime.
	NewPage(ctx context.Context) (Page, error)

	// Close shuts down the browser and every page opened from it.
	Close() error
}

// Page abstracts a single browser page/tab driven by one Part Worker.
type Page interface {
	// SetViewport sets the viewport to the given CSS-pixel dimensions with
	// a forced device scale factor of 1, so HiDPI hosts do not double the
	// captured resolution.
	SetViewport(width, height int) error

	// Navigate loads the given URL (typically a file:// URL to the
	// pre-built scene entry page) and blocks until the page has loaded.
	Navigate(url string) error

	// Eval evaluates a JavaScript expression against the page and decodes
	// its result into out (which should be a pointer). Used to drive the
	// Scene Page contract (init, render, fontReady, settled, DOM marker).
	Eval(ctx context.Context, expr string, out interface{}) error

	// WaitPredicate polls a JavaScript boolean expression until it returns
	// true or ctx is done.
	WaitPredicate(ctx context.Context, expr string) error

	// WaitNetworkIdle blocks until no network requests have been observed
	// for the given quiet period, or ctx is done.
	WaitNetworkIdle(ctx context.Context, quiet time.Duration) error

	// StartScreencast begins the debug-protocol screencast stream, used by
	// the screencast Frame Capturer strategy. Not supported by all Page
	// implementations (e.g. the extension-backed page).
	StartScreencast(quality int) (<-chan ScreenFrame, error)

	// StopScreencast stops a screencast started with StartScreencast.
	StopScreencast() error

	// Screenshot captures the current viewport as an encoded image, used
	// by the screenshot Frame Capturer strategy.
	Screenshot(format ImageFormat, quality int) ([]byte, error)

	// CaptureVisibleTab asks a pre-loaded extension to capture the visible
	// tab, used by the extension Frame Capturer strategy.
	CaptureVisibleTab(format ImageFormat, quality int) ([]byte, error)

	// Close releases the page.
	Close() error
}

// BrowserOptions configures browser launch settings.
type BrowserOptions struct {
	Headless          bool
	ChromePath        string
	UserAgent         string
	WindowWidth       int
	WindowHeight      int
	IgnoreHTTPSErrors bool
	ExtensionPath     string // unpacked extension directory to load; extensionbrowser always runs non-headless, chromebrowser keeps Headless as given
}

// ImageFormat specifies the captured/encoded image format.
type ImageFormat string

const (
	ImageFormatJPEG ImageFormat = "jpeg"
	ImageFormatPNG  ImageFormat = "png"
)

// ScreenFrame represents a single captured screencast frame matched to the
// frame index the page was displaying when it was captured.
type ScreenFrame struct {
	FrameIndex int
	Data       []byte
}

// CaptureMethod selects the Frame Capturer strategy for a run.
type CaptureMethod string

const (
	CaptureScreencast CaptureMethod = "screencast"
	CaptureExtension  CaptureMethod = "extension"
	CaptureScreenshot CaptureMethod = "screenshot"
)
