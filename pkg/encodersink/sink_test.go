package encodersink

import (
	"context"
	"errors"
	"testing"

	"github.com/scenerender/core/pkg/adapters/logger"
	"github.com/scenerender/core/pkg/mocks"
	"github.com/scenerender/core/pkg/ports"
)

func TestSink_WriteForwardsFramesInOrder(t *testing.T) {
	proc := &mocks.PartEncoderProcess{}
	tool := &mocks.EncoderTool{
		OpenPartEncoderFunc: func(ctx context.Context, opts ports.PartEncoderOptions) (ports.PartEncoderProcess, error) {
			return proc, nil
		},
	}

	sink := New(tool, logger.NewNoop())
	if err := sink.Open(context.Background(), 0, ports.PartEncoderOptions{OutPath: "part0.mkv", FPS: 30}); err != nil {
		t.Fatalf("Open: %v", err)
	}

	frames := [][]byte{[]byte("frame0"), []byte("frame1"), []byte("frame2")}
	for _, f := range frames {
		if err := sink.Write(f); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	if len(proc.WrittenFrames) != 3 {
		t.Fatalf("expected 3 frames written, got %d", len(proc.WrittenFrames))
	}
	for i, f := range proc.WrittenFrames {
		if string(f) != string(frames[i]) {
			t.Errorf("frame %d out of order: got %q want %q", i, f, frames[i])
		}
	}

	if err := sink.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if !proc.EndCalled {
		t.Error("expected End to be called on the underlying process")
	}
}

func TestSink_WriteFailureWrapsEncoderError(t *testing.T) {
	proc := &mocks.PartEncoderProcess{
		WriteFunc: func(frame []byte) error { return errors.New("broken pipe") },
	}
	tool := &mocks.EncoderTool{
		OpenPartEncoderFunc: func(ctx context.Context, opts ports.PartEncoderOptions) (ports.PartEncoderProcess, error) {
			return proc, nil
		},
	}

	sink := New(tool, logger.NewNoop())
	_ = sink.Open(context.Background(), 2, ports.PartEncoderOptions{})

	err := sink.Write([]byte("frame"))
	var runErr *ports.RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected *ports.RunError, got %T", err)
	}
	if runErr.Kind != ports.ErrEncoder || runErr.PartNum != 2 {
		t.Fatalf("unexpected run error: %+v", runErr)
	}
}

func TestSink_KillIsIdempotentAndSafeBeforeOpen(t *testing.T) {
	sink := New(&mocks.EncoderTool{}, logger.NewNoop())
	sink.Kill() // must not panic when never opened

	proc := &mocks.PartEncoderProcess{}
	tool := &mocks.EncoderTool{
		OpenPartEncoderFunc: func(ctx context.Context, opts ports.PartEncoderOptions) (ports.PartEncoderProcess, error) {
			return proc, nil
		},
	}
	sink = New(tool, logger.NewNoop())
	_ = sink.Open(context.Background(), 0, ports.PartEncoderOptions{})
	sink.Kill()
	sink.Kill()
	if !proc.KillCalled {
		t.Error("expected underlying process Kill to be called")
	}
}
