package chromebrowser

import (
	"context"
	"testing"

	"github.com/scenerender/core/pkg/ports"
)

func TestBrowser_LaunchAndNewPage(t *testing.T) {
	chromePath := ResolveChromePath("")
	if chromePath == "" {
		t.Skip("Chrome not installed, skipping live launch test")
	}

	b := New()
	ctx := context.Background()

	if err := b.Launch(ctx, ports.BrowserOptions{
		ChromePath:   chromePath,
		Headless:     true,
		WindowWidth:  320,
		WindowHeight: 240,
	}); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	defer b.Close()

	page, err := b.NewPage(ctx)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	defer page.Close()

	if err := page.SetViewport(320, 240); err != nil {
		t.Fatalf("SetViewport: %v", err)
	}
}

func TestBrowser_MultiplePagesAreIndependent(t *testing.T) {
	chromePath := ResolveChromePath("")
	if chromePath == "" {
		t.Skip("Chrome not installed, skipping live launch test")
	}

	b := New()
	ctx := context.Background()
	if err := b.Launch(ctx, ports.BrowserOptions{ChromePath: chromePath, Headless: true}); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	defer b.Close()

	p1, err := b.NewPage(ctx)
	if err != nil {
		t.Fatalf("NewPage p1: %v", err)
	}
	defer p1.Close()

	p2, err := b.NewPage(ctx)
	if err != nil {
		t.Fatalf("NewPage p2: %v", err)
	}
	defer p2.Close()
}
