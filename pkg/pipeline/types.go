package pipeline

import (
	"github.com/scenerender/core/pkg/hashmap"
	"github.com/scenerender/core/pkg/ports"
)

// =============================================================================
// Bundling Stage Types
// =============================================================================

// BundleInput carries the configured scene entry path into the Bundling
// lifecycle state.
type BundleInput struct {
	SceneEntryPath string
}

// BundleResult carries the resolved, confirmed-ready scene entry path.
type BundleResult struct {
	EntryPath string
}

// =============================================================================
// Service Stage Types
// =============================================================================

// ServiceInput carries the per-run shared secret into the ServiceStarting
// lifecycle state.
type ServiceInput struct {
	Secret string
}

// ServiceResult carries the port the Media Service bound to.
type ServiceResult struct {
	Port int
}

// =============================================================================
// Browser Launch Stage Types
// =============================================================================

// BrowserLaunchInput carries the configured browser options into the
// BrowserLaunching lifecycle state.
type BrowserLaunchInput struct {
	Options ports.BrowserOptions
}

// BrowserLaunchResult is empty; the launched Browser is held by the
// Orchestrator directly rather than threaded through the Stage result.
type BrowserLaunchResult struct{}

// =============================================================================
// Concatenation Stage Types
// =============================================================================

// ConcatInput carries the ordered Part Artifact paths into the
// Concatenating lifecycle state.
type ConcatInput struct {
	PartPaths  []string
	OutputPath string
	RawOutput  bool
	TempDir    string
}

// ConcatResult reports the finished artifact path.
type ConcatResult struct {
	OutputPath string
}

// =============================================================================
// Verification Stage Types
// =============================================================================

// VerifyInput carries the finished artifact and the run's verification
// toggles into the Verifying lifecycle state.
type VerifyInput struct {
	OutputPath            string
	StartFrame            int
	DurationFrames        int
	EnableFrameCountCheck bool
	EnableHashCheck       bool
	Hashes                *hashmap.Map
}

// VerifyResult reports what the Verifier found.
type VerifyResult struct {
	ProbedFrameCount int
	Probed           bool
}

// =============================================================================
// Shared
// =============================================================================

// ProgressReport is one aggregated progress snapshot across all Parts,
// emitted by the Orchestrator during Rendering.
type ProgressReport struct {
	FramesDone  int
	TotalFrames int
	FPS         float64
	PerPart     []PartProgress
}

// PartProgress is one Part's contribution to a ProgressReport.
type PartProgress struct {
	PartNum    int
	FramesDone int
	PartLength int
}
