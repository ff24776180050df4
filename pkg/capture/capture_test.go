package capture

import (
	"testing"

	"github.com/scenerender/core/pkg/mocks"
	"github.com/scenerender/core/pkg/ports"
)

func TestForMethod_SelectsVariant(t *testing.T) {
	cases := []struct {
		method ports.CaptureMethod
		want   interface{}
	}{
		{ports.CaptureScreencast, &Screencast{}},
		{ports.CaptureExtension, &Extension{}},
		{ports.CaptureScreenshot, &Screenshot{}},
	}
	for _, c := range cases {
		got, err := ForMethod(c.method, ports.ImageFormatJPEG, 80)
		if err != nil {
			t.Fatalf("ForMethod(%s): %v", c.method, err)
		}
		switch c.want.(type) {
		case *Screencast:
			if _, ok := got.(*Screencast); !ok {
				t.Errorf("expected *Screencast, got %T", got)
			}
		case *Extension:
			if _, ok := got.(*Extension); !ok {
				t.Errorf("expected *Extension, got %T", got)
			}
		case *Screenshot:
			if _, ok := got.(*Screenshot); !ok {
				t.Errorf("expected *Screenshot, got %T", got)
			}
		}
	}
}

func TestForMethod_RejectsUnknown(t *testing.T) {
	if _, err := ForMethod("bogus", ports.ImageFormatJPEG, 80); err == nil {
		t.Fatal("expected an error for an unknown capture method")
	}
}

func TestScreenshot_CaptureFrameDelegatesToPage(t *testing.T) {
	page := &mocks.Page{
		ScreenshotFunc: func(format ports.ImageFormat, quality int) ([]byte, error) {
			if format != ports.ImageFormatPNG || quality != 42 {
				t.Fatalf("unexpected args: %v %d", format, quality)
			}
			return []byte("png-bytes"), nil
		},
	}
	c := NewScreenshot(ports.ImageFormatPNG, 42)
	data, err := c.CaptureFrame(page, 7)
	if err != nil {
		t.Fatalf("CaptureFrame: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected data: %q", data)
	}
}

func TestExtension_CaptureFrameDelegatesToPage(t *testing.T) {
	page := &mocks.Page{
		CaptureVisibleTabFunc: func(format ports.ImageFormat, quality int) ([]byte, error) {
			return []byte("tab-bytes"), nil
		},
	}
	c := NewExtension(ports.ImageFormatJPEG, 80)
	data, err := c.CaptureFrame(page, 3)
	if err != nil {
		t.Fatalf("CaptureFrame: %v", err)
	}
	if string(data) != "tab-bytes" {
		t.Fatalf("unexpected data: %q", data)
	}
}

func TestScreencast_AttachesOncePerPage(t *testing.T) {
	startCalls := 0
	ch := make(chan ports.ScreenFrame, 1)
	ch <- ports.ScreenFrame{FrameIndex: 0, Data: []byte("frame")}

	page := &mocks.Page{
		StartScreencastFunc: func(quality int) (<-chan ports.ScreenFrame, error) {
			startCalls++
			return ch, nil
		},
	}

	c := NewScreencast()
	data, err := c.CaptureFrame(page, 0)
	if err != nil {
		t.Fatalf("CaptureFrame: %v", err)
	}
	if string(data) != "frame" {
		t.Fatalf("unexpected data: %q", data)
	}

	ch <- ports.ScreenFrame{FrameIndex: 1, Data: []byte("frame2")}
	if _, err := c.CaptureFrame(page, 1); err != nil {
		t.Fatalf("CaptureFrame second call: %v", err)
	}

	if startCalls != 1 {
		t.Fatalf("expected StartScreencast to be called once, got %d", startCalls)
	}
}

func TestScreencast_DiscardsStaleFramesUntilIndexMatches(t *testing.T) {
	ch := make(chan ports.ScreenFrame, 3)
	ch <- ports.ScreenFrame{FrameIndex: 4, Data: []byte("stale-a")}
	ch <- ports.ScreenFrame{FrameIndex: 5, Data: []byte("stale-b")}
	ch <- ports.ScreenFrame{FrameIndex: 6, Data: []byte("fresh")}

	var sawIndex int
	page := &mocks.Page{
		StartScreencastFunc: func(quality int) (<-chan ports.ScreenFrame, error) {
			return ch, nil
		},
		SetFrameIndexFunc: func(frameIndex int) {
			sawIndex = frameIndex
		},
	}

	c := NewScreencast()
	data, err := c.CaptureFrame(page, 6)
	if err != nil {
		t.Fatalf("CaptureFrame: %v", err)
	}
	if string(data) != "fresh" {
		t.Fatalf("expected the frame matching index 6, got %q", data)
	}
	if sawIndex != 6 {
		t.Fatalf("expected SetFrameIndex(6), got %d", sawIndex)
	}
}
