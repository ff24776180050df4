package mocks

import (
	"context"

	"github.com/scenerender/core/pkg/ports"
)

// EncoderTool is a mock implementation of ports.EncoderTool.
type EncoderTool struct {
	OpenPartEncoderFunc func(ctx context.Context, opts ports.PartEncoderOptions) (ports.PartEncoderProcess, error)
	ConcatFunc          func(ctx context.Context, descriptorPath, outPath string, raw bool) error

	OpenCalls   []ports.PartEncoderOptions
	ConcatCalls int
}

func (m *EncoderTool) OpenPartEncoder(ctx context.Context, opts ports.PartEncoderOptions) (ports.PartEncoderProcess, error) {
	m.OpenCalls = append(m.OpenCalls, opts)
	if m.OpenPartEncoderFunc != nil {
		return m.OpenPartEncoderFunc(ctx, opts)
	}
	return &PartEncoderProcess{}, nil
}

func (m *EncoderTool) Concat(ctx context.Context, descriptorPath, outPath string, raw bool) error {
	m.ConcatCalls++
	if m.ConcatFunc != nil {
		return m.ConcatFunc(ctx, descriptorPath, outPath, raw)
	}
	return nil
}

// PartEncoderProcess is a mock implementation of ports.PartEncoderProcess.
type PartEncoderProcess struct {
	WriteFunc func(frame []byte) error
	EndFunc   func() error
	KillFunc  func()

	WrittenFrames [][]byte
	EndCalled     bool
	KillCalled    bool
}

func (m *PartEncoderProcess) Write(frame []byte) error {
	m.WrittenFrames = append(m.WrittenFrames, frame)
	if m.WriteFunc != nil {
		return m.WriteFunc(frame)
	}
	return nil
}

func (m *PartEncoderProcess) End() error {
	m.EndCalled = true
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	return nil
}

func (m *PartEncoderProcess) Kill() {
	m.KillCalled = true
	if m.KillFunc != nil {
		m.KillFunc()
	}
}

// ProbeTool is a mock implementation of ports.ProbeTool.
type ProbeTool struct {
	ProbeFunc func(ctx context.Context, path string) (ports.ProbeResult, error)
}

func (m *ProbeTool) Probe(ctx context.Context, path string) (ports.ProbeResult, error) {
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, path)
	}
	return ports.ProbeResult{}, nil
}

var _ ports.EncoderTool = (*EncoderTool)(nil)
var _ ports.PartEncoderProcess = (*PartEncoderProcess)(nil)
var _ ports.ProbeTool = (*ProbeTool)(nil)
