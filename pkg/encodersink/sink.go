// Package encodersink implements the Encoder Sink: a one-way ordered byte
// stream of encoded frame images into one encoder subprocess per Part.
package encodersink

import (
	"context"
	"fmt"

	"github.com/scenerender/core/pkg/ports"
)

// Sink owns one ports.PartEncoderProcess for one Part. It is not safe for
// concurrent use: the Page Driver calls Write in strict frame order from a
// single goroutine.
type Sink struct {
	tool    ports.EncoderTool
	log     ports.Logger
	partNum int
	proc    ports.PartEncoderProcess
}

// New returns a Sink bound to tool, logging through log.
func New(tool ports.EncoderTool, log ports.Logger) *Sink {
	return &Sink{tool: tool, log: log.WithComponent("encoder")}
}

// Open spawns the part's encoder subprocess.
func (s *Sink) Open(ctx context.Context, partNum int, opts ports.PartEncoderOptions) error {
	proc, err := s.tool.OpenPartEncoder(ctx, opts)
	if err != nil {
		return ports.NewPartError(ports.ErrEncoder, partNum, fmt.Errorf("open encoder: %w", err))
	}
	s.partNum = partNum
	s.proc = proc
	s.log.Debug("Opened encoder for part %d: %s at %d fps", partNum, opts.OutPath, opts.FPS)
	return nil
}

// Write appends one encoded frame, blocking until the write is
// acknowledged. Per-write acknowledgement is the sole backpressure
// mechanism; OS-level drain events are not used.
func (s *Sink) Write(frame []byte) error {
	if err := s.proc.Write(frame); err != nil {
		s.log.Error("Encoder write failed for part %d: %s", s.partNum, err)
		return ports.NewPartError(ports.ErrEncoder, s.partNum, fmt.Errorf("write frame: %w", err))
	}
	return nil
}

// End closes the input stream and waits for the subprocess to exit
// cleanly. A non-zero exit is a fatal Encoder error for the owning part.
func (s *Sink) End() error {
	if err := s.proc.End(); err != nil {
		s.log.Error("Encoder exited with an error for part %d: %s", s.partNum, err)
		return ports.NewPartError(ports.ErrEncoder, s.partNum, err)
	}
	s.log.Debug("Closed encoder for part %d", s.partNum)
	return nil
}

// Kill force-terminates the subprocess. Idempotent; used on failure paths
// so an aborted Part Worker never leaks a process.
func (s *Sink) Kill() {
	if s.proc == nil {
		return
	}
	s.proc.Kill()
	s.log.Debug("Killed encoder for part %d", s.partNum)
}
