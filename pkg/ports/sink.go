package ports

// DebugSink abstracts optional debug output for intermediate rendering
// results, saved only when RunConfig enables it.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveRunConfig saves the resolved run configuration as JSON.
	SaveRunConfig(data []byte) error

	// SaveCapturedFrame saves the raw bytes returned by the Frame
	// Capturer for one absolute frame index.
	SaveCapturedFrame(frameIndex int, data []byte) error

	// SaveProgress saves a snapshot of the aggregated progress report.
	SaveProgress(data []byte) error
}
