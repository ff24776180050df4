// Package concat implements the Concatenator & Verifier: merging per-part
// artifacts into the final output and optionally re-probing it.
package concat

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/scenerender/core/pkg/pipeline"
	"github.com/scenerender/core/pkg/ports"
)

// Concatenator merges ordered Part Artifacts into one output file using an
// external encoder tool's concat mode, the same subprocess-pipe idiom as
// the Encoder Sink but fed via a generated concat descriptor instead of
// stdin streaming.
type Concatenator struct {
	tool ports.EncoderTool
	fs   ports.FileSystem
	log  ports.Logger
}

// NewConcatenator returns a Concatenator.
func NewConcatenator(tool ports.EncoderTool, fs ports.FileSystem, log ports.Logger) *Concatenator {
	return &Concatenator{tool: tool, fs: fs, log: log.WithComponent("concat")}
}

// Execute implements pipeline.Stage[ConcatInput, ConcatResult].
func (c *Concatenator) Execute(ctx context.Context, input pipeline.ConcatInput) (pipeline.ConcatResult, error) {
	descriptorPath := filepath.Join(input.TempDir, "concat.txt")
	if err := c.fs.WriteFile(descriptorPath, []byte(buildDescriptor(input.PartPaths))); err != nil {
		return pipeline.ConcatResult{}, ports.NewRunError(ports.ErrEncoder, fmt.Errorf("write concat descriptor: %w", err))
	}
	defer c.fs.Remove(descriptorPath)

	c.log.Info("Concatenating %d parts (raw=%v)", len(input.PartPaths), input.RawOutput)
	if err := c.tool.Concat(ctx, descriptorPath, input.OutputPath, input.RawOutput); err != nil {
		return pipeline.ConcatResult{}, ports.NewRunError(ports.ErrEncoder, fmt.Errorf("concat: %w", err))
	}
	c.log.Info("Wrote output to %s", input.OutputPath)

	return pipeline.ConcatResult{OutputPath: input.OutputPath}, nil
}

func buildDescriptor(partPaths []string) string {
	var b strings.Builder
	for _, p := range partPaths {
		b.WriteString(fmt.Sprintf("file '%s'\n", p))
	}
	return b.String()
}

var _ pipeline.Stage[pipeline.ConcatInput, pipeline.ConcatResult] = (*Concatenator)(nil)
