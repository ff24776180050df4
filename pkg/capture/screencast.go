package capture

import (
	"fmt"
	"sync"

	"github.com/scenerender/core/pkg/ports"
)

// Screencast captures frames from the browser's debug-protocol screencast
// stream, attached once per page on first use. Lowest overhead of the
// three strategies; only viable when the Page implementation supports it.
type Screencast struct {
	quality int

	mu    sync.Mutex
	chans map[ports.Page]<-chan ports.ScreenFrame
}

// NewScreencast returns a screencast-backed Frame Capturer.
func NewScreencast() *Screencast {
	return &Screencast{quality: 80, chans: make(map[ports.Page]<-chan ports.ScreenFrame)}
}

// CaptureFrame returns the screencast frame matching frameIndex, attaching
// the stream on first use for that page. The CDP screencast stream emits
// continuously and independently of the render loop's pacing, so frames for
// earlier indices can already be queued; CaptureFrame discards those and
// waits for the one actually requested.
func (s *Screencast) CaptureFrame(page ports.Page, frameIndex int) ([]byte, error) {
	ch, err := s.attach(page)
	if err != nil {
		return nil, err
	}

	if setter, ok := page.(interface{ SetFrameIndex(int) }); ok {
		setter.SetFrameIndex(frameIndex)
	}

	for {
		frame, ok := <-ch
		if !ok {
			return nil, fmt.Errorf("capture: screencast stream closed before frame %d", frameIndex)
		}
		if frame.FrameIndex != frameIndex {
			continue
		}
		return frame.Data, nil
	}
}

func (s *Screencast) attach(page ports.Page) (<-chan ports.ScreenFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.chans[page]; ok {
		return ch, nil
	}

	ch, err := page.StartScreencast(s.quality)
	if err != nil {
		return nil, fmt.Errorf("capture: start screencast: %w", err)
	}
	s.chans[page] = ch
	return ch, nil
}
