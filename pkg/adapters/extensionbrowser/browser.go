// Package extensionbrowser provides a browser implementation backed by
// playwright-go's persistent context, used by the extension Frame
// Capturer strategy: an unpacked extension can only be loaded into a
// non-headless, on-disk browser profile, which chromedp's ephemeral
// allocator does not model but playwright's LaunchPersistentContext does.
package extensionbrowser

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/scenerender/core/pkg/ports"
)

// Browser implements ports.Browser on top of one playwright-launched
// persistent browser context. Unlike chromebrowser's allocator-per-process
// model, the persistent context itself plays the role the extension needs
// a disk-backed profile for, so Browser owns a single context and hands
// out pages from it.
type Browser struct {
	pw          *playwright.Playwright
	context     playwright.BrowserContext
	userDataDir string
}

// New creates a new Browser.
func New() *Browser {
	return &Browser{}
}

// Launch starts the playwright driver and opens a persistent context with
// the configured extension loaded. opts.ExtensionPath must point at an
// unpacked extension directory; opts.Headless is ignored since extensions
// require a head.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	if opts.ExtensionPath == "" {
		return fmt.Errorf("extensionbrowser: ExtensionPath is required")
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("extensionbrowser: start playwright driver: %w", err)
	}
	b.pw = pw

	userDataDir, err := os.MkdirTemp("", "scenerender-extbrowser-*")
	if err != nil {
		pw.Stop()
		return fmt.Errorf("extensionbrowser: create user data dir: %w", err)
	}
	b.userDataDir = userDataDir

	args := []string{
		fmt.Sprintf("--disable-extensions-except=%s", opts.ExtensionPath),
		fmt.Sprintf("--load-extension=%s", opts.ExtensionPath),
	}

	launchOpts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(false),
		Args:     args,
	}
	if opts.ChromePath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.ChromePath)
	}
	if opts.UserAgent != "" {
		launchOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		launchOpts.Viewport = &playwright.Size{Width: opts.WindowWidth, Height: opts.WindowHeight}
	}
	if opts.IgnoreHTTPSErrors {
		launchOpts.IgnoreHttpsErrors = playwright.Bool(true)
	}

	bctx, err := pw.Chromium.LaunchPersistentContext(userDataDir, launchOpts)
	if err != nil {
		pw.Stop()
		os.RemoveAll(userDataDir)
		return fmt.Errorf("extensionbrowser: launch persistent context: %w", err)
	}
	b.context = bctx
	return nil
}

// NewPage opens a fresh tab in the shared persistent context.
func (b *Browser) NewPage(ctx context.Context) (ports.Page, error) {
	pg, err := b.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("extensionbrowser: new page: %w", err)
	}
	return &Page{page: pg}, nil
}

// Close shuts down the persistent context, stops the playwright driver,
// and removes the temporary profile directory.
func (b *Browser) Close() error {
	var errs []error
	if b.context != nil {
		if err := b.context.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	if b.userDataDir != "" {
		os.RemoveAll(b.userDataDir)
	}
	return errors.Join(errs...)
}

// Page implements ports.Page over a playwright Page.
type Page struct {
	page playwright.Page

	activityMu sync.Mutex
	activityCh chan struct{}
}

// SetViewport sets the viewport to the given CSS-pixel size.
func (p *Page) SetViewport(width, height int) error {
	return p.page.SetViewportSize(width, height)
}

// Navigate loads url and blocks until playwright's default load state.
func (p *Page) Navigate(url string) error {
	_, err := p.page.Goto(url)
	if err != nil {
		return fmt.Errorf("extensionbrowser: navigate: %w", err)
	}
	return nil
}

// Eval evaluates expr and decodes the result into out via a JSON
// round-trip, since playwright already deserializes JS values into plain
// Go values (map[string]interface{}, []interface{}, float64, string,
// bool, nil).
func (p *Page) Eval(ctx context.Context, expr string, out interface{}) error {
	val, err := p.page.Evaluate(expr)
	if err != nil {
		return fmt.Errorf("extensionbrowser: eval: %w", err)
	}
	if out == nil {
		return nil
	}
	encoded, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("extensionbrowser: eval: encode result: %w", err)
	}
	return json.Unmarshal(encoded, out)
}

// WaitPredicate polls expr until it evaluates truthy or ctx is done.
func (p *Page) WaitPredicate(ctx context.Context, expr string) error {
	for {
		var ready bool
		if err := p.Eval(ctx, fmt.Sprintf("!!(%s)", expr), &ready); err != nil {
			return err
		}
		if ready {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// WaitNetworkIdle blocks until no request/requestfinished/requestfailed
// event has fired for quiet, or ctx is done.
func (p *Page) WaitNetworkIdle(ctx context.Context, quiet time.Duration) error {
	p.activityMu.Lock()
	p.activityCh = make(chan struct{}, 64)
	ch := p.activityCh
	p.activityMu.Unlock()

	bump := func(...interface{}) {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	p.page.On("request", bump)
	p.page.On("requestfinished", bump)
	p.page.On("requestfailed", bump)

	timer := time.NewTimer(quiet)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
			timer.Reset(quiet)
		case <-timer.C:
			return nil
		}
	}
}

// StartScreencast is unsupported; the extension capture strategy uses
// CaptureVisibleTab instead, the screencast strategy uses chromebrowser.
func (p *Page) StartScreencast(quality int) (<-chan ports.ScreenFrame, error) {
	return nil, fmt.Errorf("extensionbrowser: StartScreencast unsupported, use the screencast capture strategy")
}

// StopScreencast is unsupported, see StartScreencast.
func (p *Page) StopScreencast() error {
	return fmt.Errorf("extensionbrowser: StopScreencast unsupported, use the screencast capture strategy")
}

// Screenshot captures the current viewport through playwright's own
// screenshot call.
func (p *Page) Screenshot(format ports.ImageFormat, quality int) ([]byte, error) {
	opts := playwright.PageScreenshotOptions{}
	if format == ports.ImageFormatPNG {
		opts.Type = playwright.ScreenshotTypePng
	} else {
		opts.Type = playwright.ScreenshotTypeJpeg
		opts.Quality = playwright.Int(quality)
	}
	data, err := p.page.Screenshot(opts)
	if err != nil {
		return nil, fmt.Errorf("extensionbrowser: screenshot: %w", err)
	}
	return data, nil
}

// captureBridgeExpr asks the pre-loaded extension's content script to
// capture the visible tab via chrome.tabs.captureVisibleTab and relay the
// result back as a data URL through a window event, since the page itself
// has no access to that extension-only API.
const captureBridgeExpr = `() => new Promise((resolve, reject) => {
	const id = Math.random().toString(36).slice(2);
	const handler = (event) => {
		if (!event.detail || event.detail.id !== id) return;
		window.removeEventListener('scenerender-capture-result', handler);
		if (event.detail.error) { reject(new Error(event.detail.error)); return; }
		resolve(event.detail.dataUrl);
	};
	window.addEventListener('scenerender-capture-result', handler);
	window.dispatchEvent(new CustomEvent('scenerender-capture-request', {
		detail: { id: id, format: %q, quality: %d },
	}));
})`

// CaptureVisibleTab asks the pre-loaded extension to capture the visible
// tab and decodes the returned data URL into raw image bytes.
func (p *Page) CaptureVisibleTab(format ports.ImageFormat, quality int) ([]byte, error) {
	var dataURL string
	expr := fmt.Sprintf(captureBridgeExpr, string(format), quality)
	if err := p.Eval(context.Background(), expr, &dataURL); err != nil {
		return nil, fmt.Errorf("extensionbrowser: capture visible tab: %w", err)
	}

	_, encoded, found := strings.Cut(dataURL, ",")
	if !found {
		return nil, fmt.Errorf("extensionbrowser: capture visible tab: malformed data URL")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("extensionbrowser: capture visible tab: decode data URL: %w", err)
	}
	return data, nil
}

// Close releases the page.
func (p *Page) Close() error {
	return p.page.Close()
}

var _ ports.Browser = (*Browser)(nil)
var _ ports.Page = (*Page)(nil)
