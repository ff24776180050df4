package ports

import "context"

// EncoderTool abstracts the external encoder binary (an ffmpeg-shaped
// subprocess). The core never encodes pixels itself; it streams encoded
// image bytes into one subprocess per Part and shells out again, in concat
// mode, to merge per-part files into the final output.
type EncoderTool interface {
	// OpenPartEncoder spawns a subprocess that reads a raw stream of
	// images (format, one concatenated blob per frame) from its stdin at
	// the given fps, and writes a container file to outPath on clean
	// end-of-input.
	OpenPartEncoder(ctx context.Context, opts PartEncoderOptions) (PartEncoderProcess, error)

	// Concat spawns a subprocess that merges the ordered part files listed
	// in descriptorPath (a concat demuxer script) into outPath. When raw
	// is true the operation is a stream copy (remux); otherwise it
	// re-encodes into a standard container.
	Concat(ctx context.Context, descriptorPath, outPath string, raw bool) error
}

// PartEncoderOptions configures a single part's encoder subprocess.
type PartEncoderOptions struct {
	Format      ImageFormat
	JPEGQuality int
	FPS         int
	OutPath     string
}

// PartEncoderProcess is one running encoder subprocess for one Part.
type PartEncoderProcess interface {
	// Write appends one encoded image to the stream. It does not return
	// until the OS has acknowledged the write; per-write acknowledgement
	// is the sole backpressure mechanism (draining OS-level buffers has
	// been observed to hang on some platforms and is not used).
	Write(frame []byte) error

	// End closes the input stream and waits for the subprocess to exit.
	// Returns an error if it exits non-zero.
	End() error

	// Kill force-terminates the subprocess. Idempotent. Used on failure
	// paths so an aborted Part Worker never leaks a process.
	Kill()
}

// ProbeTool abstracts the external media probe binary (an ffprobe-shaped
// subprocess) used by the Verifier's optional frame-count check.
type ProbeTool interface {
	// Probe inspects the media file at path and reports its frame count
	// and basic format metadata.
	Probe(ctx context.Context, path string) (ProbeResult, error)
}

// ProbeResult reports metadata recovered from a probed media file.
type ProbeResult struct {
	Width      int
	Height     int
	FPS        float64
	DurationMs int
	FrameCount int
}
