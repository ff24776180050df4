// Package capture implements the three Frame Capturer strategies
// (screencast, extension, screenshot) behind one ports.FrameCapturer
// contract. Each strategy is a small tagged variant constructed once at
// run start from the Run Configuration's captureMethod; none of them
// dispatch across strategies mid-run.
package capture

import (
	"fmt"

	"github.com/scenerender/core/pkg/ports"
)

// ForMethod constructs the Frame Capturer selected by method. format and
// quality configure the extension and screenshot strategies; screencast
// ignores them and uses its own fixed quality of 80.
func ForMethod(method ports.CaptureMethod, format ports.ImageFormat, quality int) (ports.FrameCapturer, error) {
	switch method {
	case ports.CaptureScreencast:
		return NewScreencast(), nil
	case ports.CaptureExtension:
		return NewExtension(format, quality), nil
	case ports.CaptureScreenshot, "":
		return NewScreenshot(format, quality), nil
	default:
		return nil, fmt.Errorf("capture: unknown capture method %q", method)
	}
}
