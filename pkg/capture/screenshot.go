package capture

import (
	"fmt"

	"github.com/scenerender/core/pkg/ports"
)

// Screenshot captures frames via the page's screenshot primitive. Highest
// overhead of the three strategies but the most portable: it works in any
// headless or headed mode with no extension or debug-protocol support
// required.
type Screenshot struct {
	format  ports.ImageFormat
	quality int
}

// NewScreenshot returns a screenshot-backed Frame Capturer.
func NewScreenshot(format ports.ImageFormat, quality int) *Screenshot {
	return &Screenshot{format: format, quality: quality}
}

// CaptureFrame calls the page's screenshot primitive.
func (s *Screenshot) CaptureFrame(page ports.Page, frameIndex int) ([]byte, error) {
	data, err := page.Screenshot(s.format, s.quality)
	if err != nil {
		return nil, fmt.Errorf("capture: screenshot frame %d: %w", frameIndex, err)
	}
	return data, nil
}
