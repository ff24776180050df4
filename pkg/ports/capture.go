package ports

// FrameCapturer returns the encoded image bytes for the frame a Page is
// currently displaying. The three strategies (screencast, extension,
// screenshot) share this one narrow contract but diverge in setup; the
// Orchestrator selects one variant at run start and every Part's Page
// Driver calls it for every frame, never dispatching across variants
// mid-run.
type FrameCapturer interface {
	CaptureFrame(page Page, frameIndex int) ([]byte, error)
}
