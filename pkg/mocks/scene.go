package mocks

import "github.com/scenerender/core/pkg/ports"

// ScenePage is a mock implementation of ports.ScenePage.
type ScenePage struct {
	InitFunc           func(params ports.InitParams) error
	RenderFrameFunc    func(frameIndex int) ([]ports.PageError, error)
	FontsReadyFunc     func() (bool, error)
	SettledFunc        func() (bool, error)
	HasFrameMarkerFunc func(frameIndex int) (bool, error)

	InitCalls        []ports.InitParams
	RenderFrameCalls []int
}

func (m *ScenePage) Init(params ports.InitParams) error {
	m.InitCalls = append(m.InitCalls, params)
	if m.InitFunc != nil {
		return m.InitFunc(params)
	}
	return nil
}

func (m *ScenePage) RenderFrame(frameIndex int) ([]ports.PageError, error) {
	m.RenderFrameCalls = append(m.RenderFrameCalls, frameIndex)
	if m.RenderFrameFunc != nil {
		return m.RenderFrameFunc(frameIndex)
	}
	return nil, nil
}

func (m *ScenePage) FontsReady() (bool, error) {
	if m.FontsReadyFunc != nil {
		return m.FontsReadyFunc()
	}
	return true, nil
}

func (m *ScenePage) Settled() (bool, error) {
	if m.SettledFunc != nil {
		return m.SettledFunc()
	}
	return true, nil
}

func (m *ScenePage) HasFrameMarker(frameIndex int) (bool, error) {
	if m.HasFrameMarkerFunc != nil {
		return m.HasFrameMarkerFunc(frameIndex)
	}
	return true, nil
}

var _ ports.ScenePage = (*ScenePage)(nil)
