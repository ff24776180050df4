package concat

import (
	"context"
	"errors"
	"testing"

	"github.com/scenerender/core/pkg/adapters/logger"
	"github.com/scenerender/core/pkg/hashmap"
	"github.com/scenerender/core/pkg/mocks"
	"github.com/scenerender/core/pkg/pipeline"
	"github.com/scenerender/core/pkg/ports"
)

func TestConcatenator_WritesDescriptorAndCallsTool(t *testing.T) {
	fs := mocks.NewFileSystem()
	var gotDescriptor, gotOut string
	var gotRaw bool
	tool := &mocks.EncoderTool{
		ConcatFunc: func(ctx context.Context, descriptorPath, outPath string, raw bool) error {
			gotDescriptor = descriptorPath
			gotOut = outPath
			gotRaw = raw
			return nil
		},
	}

	c := NewConcatenator(tool, fs, logger.NewNoop())
	result, err := c.Execute(context.Background(), pipeline.ConcatInput{
		PartPaths:  []string{"part0.mkv", "part1.mkv"},
		OutputPath: "output.mp4",
		RawOutput:  true,
		TempDir:    "/tmp/scenerender-run",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.OutputPath != "output.mp4" {
		t.Fatalf("unexpected output path: %s", result.OutputPath)
	}
	if gotOut != "output.mp4" || !gotRaw {
		t.Fatalf("unexpected tool args: out=%s raw=%v", gotOut, gotRaw)
	}
	if gotDescriptor == "" {
		t.Fatal("expected a descriptor path to be passed")
	}
	// descriptor should have been cleaned up after the call
	if _, ok := fs.GetFile(gotDescriptor); ok {
		t.Fatal("expected descriptor file to be removed after concat")
	}
}

func TestConcatenator_WrapsToolFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	tool := &mocks.EncoderTool{
		ConcatFunc: func(ctx context.Context, descriptorPath, outPath string, raw bool) error {
			return errors.New("ffmpeg exploded")
		},
	}
	c := NewConcatenator(tool, fs, logger.NewNoop())
	_, err := c.Execute(context.Background(), pipeline.ConcatInput{PartPaths: []string{"p.mkv"}, OutputPath: "out.mp4"})

	var runErr *ports.RunError
	if !errors.As(err, &runErr) || runErr.Kind != ports.ErrEncoder {
		t.Fatalf("expected ErrEncoder, got %v", err)
	}
}

func TestVerifier_PassesOnMatchingFrameCount(t *testing.T) {
	probe := &mocks.ProbeTool{
		ProbeFunc: func(ctx context.Context, path string) (ports.ProbeResult, error) {
			return ports.ProbeResult{FrameCount: 10}, nil
		},
	}
	v := NewVerifier(probe, logger.NewNoop())
	result, err := v.Execute(context.Background(), pipeline.VerifyInput{
		OutputPath:            "out.mp4",
		DurationFrames:        10,
		EnableFrameCountCheck: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Probed || result.ProbedFrameCount != 10 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestVerifier_FailsOnFrameCountMismatch(t *testing.T) {
	probe := &mocks.ProbeTool{
		ProbeFunc: func(ctx context.Context, path string) (ports.ProbeResult, error) {
			return ports.ProbeResult{FrameCount: 9}, nil
		},
	}
	v := NewVerifier(probe, logger.NewNoop())
	_, err := v.Execute(context.Background(), pipeline.VerifyInput{
		OutputPath:            "out.mp4",
		DurationFrames:        10,
		EnableFrameCountCheck: true,
	})
	var runErr *ports.RunError
	if !errors.As(err, &runErr) || runErr.Kind != ports.ErrVerification {
		t.Fatalf("expected ErrVerification, got %v", err)
	}
}

func TestVerifier_FailsOnDuplicateHashPair(t *testing.T) {
	hashes := hashmap.New()
	hashes.Insert(5, []byte("same"))
	hashes.Insert(6, []byte("same"))

	v := NewVerifier(&mocks.ProbeTool{}, logger.NewNoop())
	_, err := v.Execute(context.Background(), pipeline.VerifyInput{
		StartFrame:      0,
		DurationFrames:  10,
		EnableHashCheck: true,
		Hashes:          hashes,
	})
	var runErr *ports.RunError
	if !errors.As(err, &runErr) || runErr.Kind != ports.ErrVerification {
		t.Fatalf("expected ErrVerification, got %v", err)
	}
}
