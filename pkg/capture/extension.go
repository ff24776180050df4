package capture

import (
	"fmt"

	"github.com/scenerender/core/pkg/ports"
)

// Extension captures frames via a pre-loaded browser extension asked to
// grab the visible tab. Incompatible with headless mode; the Orchestrator
// rejects that combination before launching the browser (pkg/config).
type Extension struct {
	format  ports.ImageFormat
	quality int
}

// NewExtension returns an extension-backed Frame Capturer.
func NewExtension(format ports.ImageFormat, quality int) *Extension {
	return &Extension{format: format, quality: quality}
}

// CaptureFrame asks the page's pre-loaded extension to capture the visible
// tab.
func (e *Extension) CaptureFrame(page ports.Page, frameIndex int) ([]byte, error) {
	data, err := page.CaptureVisibleTab(e.format, e.quality)
	if err != nil {
		return nil, fmt.Errorf("capture: extension capture frame %d: %w", frameIndex, err)
	}
	return data, nil
}
