package summarizer

import (
	"fmt"
	"strings"
)

// Translator maps an English label to a localized string, falling back
// to the key itself when no translation exists.
type Translator func(key string) string

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the label translator used by the formatter.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion sets the tool version shown in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// NewMarkdownFormatter creates a MarkdownFormatter with the given options.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *MarkdownFormatter) t(key string) string {
	return f.translate(key)
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", f.t("Render Summary"))
	fmt.Fprintf(&b, "- %s: %s\n", f.t("Generated At"), summary.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- %s: %s\n\n", f.t("Scene Entry"), summary.Scene.EntryPath)

	fmt.Fprintf(&b, "## %s\n\n", f.t("Settings"))
	s := summary.Settings
	fmt.Fprintf(&b, "- %s: %dx%d\n", f.t("Canvas Size"), s.Width, s.Height)
	fmt.Fprintf(&b, "- %s: %d\n", f.t("FPS"), s.FPS)
	fmt.Fprintf(&b, "- %s: %d\n", f.t("Duration Frames"), s.DurationFrames)
	fmt.Fprintf(&b, "- %s: %d\n", f.t("Concurrency"), s.Concurrency)
	fmt.Fprintf(&b, "- %s: %s\n", f.t("Capture Method"), s.CaptureMethod)
	fmt.Fprintf(&b, "- %s: %s\n\n", f.t("Image Format"), s.ImageFormat)

	fmt.Fprintf(&b, "## %s\n\n", f.t("Timing"))
	if summary.Timing.TimedOut {
		fmt.Fprintf(&b, "- %s: %s (%ds)\n\n", f.t("Total Duration"), f.t("Timeout"), summary.Timing.TimeoutSec)
	} else {
		fmt.Fprintf(&b, "- %s: %d ms\n\n", f.t("Total Duration"), summary.Timing.TotalDurationMs)
	}

	fmt.Fprintf(&b, "## %s\n\n", f.t("Output"))
	o := summary.Output
	fmt.Fprintf(&b, "- %s: %s\n", f.t("Output Path"), o.Path)
	fmt.Fprintf(&b, "- %s: %d\n", f.t("Frames Rendered"), o.FramesRendered)
	if o.Probed {
		fmt.Fprintf(&b, "- %s: %d\n", f.t("Probed Frame Count"), o.ProbedFrameCount)
	} else {
		fmt.Fprintf(&b, "- %s: N/A\n", f.t("Probed Frame Count"))
	}
	if o.FileSize > 0 {
		fmt.Fprintf(&b, "- %s: %s\n", f.t("File Size"), formatBytes(o.FileSize))
	}

	if f.version != "" {
		fmt.Fprintf(&b, "\n---\n%s %s\n", f.t("Generated by scenerender"), f.version)
	}

	return b.String()
}

var _ Formatter = (*MarkdownFormatter)(nil)

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	units := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	return fmt.Sprintf("%.2f %s", float64(n)/float64(div), units[exp])
}
