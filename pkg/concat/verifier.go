package concat

import (
	"context"
	"fmt"

	"github.com/scenerender/core/pkg/pipeline"
	"github.com/scenerender/core/pkg/ports"
)

// Verifier optionally re-probes the finished artifact for frame count and
// validates per-frame hash uniqueness collected during capture.
type Verifier struct {
	probe ports.ProbeTool
	log   ports.Logger
}

// NewVerifier returns a Verifier.
func NewVerifier(probe ports.ProbeTool, log ports.Logger) *Verifier {
	return &Verifier{probe: probe, log: log.WithComponent("verify")}
}

// Execute implements pipeline.Stage[VerifyInput, VerifyResult].
func (v *Verifier) Execute(ctx context.Context, input pipeline.VerifyInput) (pipeline.VerifyResult, error) {
	result := pipeline.VerifyResult{}

	if input.EnableHashCheck && input.Hashes != nil {
		if pair, found := input.Hashes.FirstDuplicate(input.StartFrame, input.DurationFrames); found {
			return result, ports.NewRunError(ports.ErrVerification, fmt.Errorf("duplicate frame pair %s", pair))
		}
	}

	if !input.EnableFrameCountCheck {
		return result, nil
	}

	probed, err := v.probe.Probe(ctx, input.OutputPath)
	if err != nil {
		return result, ports.NewRunError(ports.ErrVerification, fmt.Errorf("probe output: %w", err))
	}
	result.Probed = true
	result.ProbedFrameCount = probed.FrameCount

	if probed.FrameCount != input.DurationFrames {
		return result, ports.NewRunError(ports.ErrVerification, fmt.Errorf("frame count mismatch: probed %d, expected %d", probed.FrameCount, input.DurationFrames))
	}

	v.log.Info("Verified frame count: %d", probed.FrameCount)
	return result, nil
}

var _ pipeline.Stage[pipeline.VerifyInput, pipeline.VerifyResult] = (*Verifier)(nil)
