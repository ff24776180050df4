// Package chromebrowser provides a browser implementation using chromedp.
package chromebrowser

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/scenerender/core/pkg/ports"
)

// Browser implements ports.Browser using chromedp. One allocator hosts a
// browser process; each call to NewPage opens an independent tab with its
// own chromedp context, so N Part Workers can drive N pages concurrently
// against the same process.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// New creates a new Browser.
func New() *Browser {
	return &Browser{}
}

// Launch starts the browser process with the given options.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("safebrowsing-disable-auto-update", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("no-zygote", true),
	}

	if opts.Headless {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("headless", "new"))
	}

	chromePath := ResolveChromePath(opts.ChromePath)
	if chromePath == "" {
		return fmt.Errorf("chrome not found: install Chrome/Chromium, set CHROME_PATH, or pass --chrome-path")
	}
	chromedpOpts = append(chromedpOpts, chromedp.ExecPath(chromePath))

	if opts.UserAgent != "" {
		chromedpOpts = append(chromedpOpts, chromedp.UserAgent(opts.UserAgent))
	}

	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		chromedpOpts = append(chromedpOpts,
			chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight),
			chromedp.Flag("window-size", fmt.Sprintf("%d,%d", opts.WindowWidth, opts.WindowHeight)))
	}

	if opts.IgnoreHTTPSErrors {
		chromedpOpts = append(chromedpOpts,
			chromedp.Flag("ignore-certificate-errors", true),
			chromedp.Flag("allow-insecure-localhost", true))
	}

	if opts.ExtensionPath != "" {
		chromedpOpts = append(chromedpOpts,
			chromedp.Flag("load-extension", opts.ExtensionPath),
			chromedp.Flag("disable-extensions-except", opts.ExtensionPath))
	} else {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("disable-extensions", true))
	}

	b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(ctx, chromedpOpts...)
	return nil
}

// NewPage opens a fresh tab. Each Part Worker drives exactly one Page.
func (b *Browser) NewPage(ctx context.Context) (ports.Page, error) {
	pageCtx, pageCancel := chromedp.NewContext(b.allocCtx)
	if err := chromedp.Run(pageCtx); err != nil {
		pageCancel()
		return nil, fmt.Errorf("chromebrowser: create page: %w", err)
	}
	return &Page{ctx: pageCtx, cancel: pageCancel}, nil
}

// Close shuts down the browser process and every page opened from it.
func (b *Browser) Close() error {
	if b.allocCancel != nil {
		b.allocCancel()
	}
	return nil
}

// Page implements ports.Page for one chromedp tab.
type Page struct {
	ctx    context.Context
	cancel context.CancelFunc

	screencastMu     sync.Mutex
	screencastChan   chan ports.ScreenFrame
	screencastActive bool
	frameIndex       int
}

// SetViewport sets the viewport to the given CSS-pixel size with a forced
// device scale factor of 1, so HiDPI hosts do not double the captured
// resolution.
func (p *Page) SetViewport(width, height int) error {
	return chromedp.Run(p.ctx,
		emulation.SetDeviceMetricsOverride(int64(width), int64(height), 1, false),
	)
}

// Navigate loads url and blocks until the load event fires.
func (p *Page) Navigate(url string) error {
	return chromedp.Run(p.ctx, chromedp.Navigate(url))
}

// Eval evaluates expr and decodes the result into out.
func (p *Page) Eval(ctx context.Context, expr string, out interface{}) error {
	return chromedp.Run(ctx, chromedp.Evaluate(expr, out, chromedp.EvalAsValue))
}

// WaitPredicate polls expr until it evaluates truthy or ctx is done.
func (p *Page) WaitPredicate(ctx context.Context, expr string) error {
	for {
		var ready bool
		if err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf("!!(%s)", expr), &ready)); err != nil {
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

// WaitNetworkIdle blocks until no network activity has been observed for
// quiet, or ctx is done.
func (p *Page) WaitNetworkIdle(ctx context.Context, quiet time.Duration) error {
	activity := make(chan struct{}, 64)
	lctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chromedp.ListenTarget(lctx, func(ev interface{}) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent, *network.EventLoadingFinished, *network.EventLoadingFailed:
			select {
			case activity <- struct{}{}:
			default:
			}
		}
	})

	timer := time.NewTimer(quiet)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-activity:
			timer.Reset(quiet)
		case <-timer.C:
			return nil
		}
	}
}

// StartScreencast begins the debug-protocol screencast stream.
func (p *Page) StartScreencast(quality int) (<-chan ports.ScreenFrame, error) {
	p.screencastMu.Lock()
	defer p.screencastMu.Unlock()

	if p.screencastActive {
		return nil, fmt.Errorf("chromebrowser: screencast already active")
	}

	p.screencastChan = make(chan ports.ScreenFrame, 8)
	p.screencastActive = true

	chromedp.ListenTarget(p.ctx, func(ev interface{}) {
		frame, ok := ev.(*page.EventScreencastFrame)
		if !ok {
			return
		}
		go chromedp.Run(p.ctx, page.ScreencastFrameAck(frame.SessionID))

		data, err := base64.StdEncoding.DecodeString(frame.Data)
		if err != nil {
			return
		}

		p.screencastMu.Lock()
		active := p.screencastActive
		idx := p.frameIndex
		p.screencastMu.Unlock()
		if !active {
			return
		}

		select {
		case p.screencastChan <- ports.ScreenFrame{FrameIndex: idx, Data: data}:
		default:
		}
	})

	err := chromedp.Run(p.ctx,
		page.StartScreencast().
			WithFormat(page.ScreencastFormatJpeg).
			WithQuality(int64(quality)).
			WithEveryNthFrame(1),
	)
	if err != nil {
		p.screencastActive = false
		close(p.screencastChan)
		return nil, fmt.Errorf("chromebrowser: start screencast: %w", err)
	}
	return p.screencastChan, nil
}

// StopScreencast stops a screencast started with StartScreencast.
func (p *Page) StopScreencast() error {
	p.screencastMu.Lock()
	defer p.screencastMu.Unlock()

	if !p.screencastActive {
		return nil
	}
	p.screencastActive = false

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	chromedp.Run(stopCtx, page.StopScreencast())

	close(p.screencastChan)
	return nil
}

// Screenshot captures the current viewport as an encoded image.
func (p *Page) Screenshot(format ports.ImageFormat, quality int) ([]byte, error) {
	var buf []byte
	var err error
	if format == ports.ImageFormatPNG {
		err = chromedp.Run(p.ctx, chromedp.CaptureScreenshot(&buf))
	} else {
		err = chromedp.Run(p.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
			data, captureErr := page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatJpeg).
				WithQuality(int64(quality)).
				Do(ctx)
			if captureErr != nil {
				return captureErr
			}
			buf = data
			return nil
		}))
	}
	if err != nil {
		return nil, fmt.Errorf("chromebrowser: screenshot: %w", err)
	}
	return buf, nil
}

// CaptureVisibleTab is unsupported on the CDP-backed page; the extension
// Frame Capturer strategy uses pkg/adapters/extensionbrowser instead.
func (p *Page) CaptureVisibleTab(format ports.ImageFormat, quality int) ([]byte, error) {
	return nil, fmt.Errorf("chromebrowser: CaptureVisibleTab unsupported, use the extension capture strategy")
}

// Close releases the page's chromedp context.
func (p *Page) Close() error {
	p.StopScreencast()
	if p.cancel != nil {
		p.cancel()
	}
	return nil
}

// SetFrameIndex records which frame index the page is currently displaying,
// so a pending screencast frame can be attributed correctly.
func (p *Page) SetFrameIndex(frameIndex int) {
	p.screencastMu.Lock()
	p.frameIndex = frameIndex
	p.screencastMu.Unlock()
}

var _ ports.Browser = (*Browser)(nil)
var _ ports.Page = (*Page)(nil)
