package camera

import (
	"fmt"
	"sync"

	. "m7s.live/camera/v5/pkg"
	"m7s.live/camera/v5/pkg/config"
)

type PreviewState byte

const (
	PreviewStateNotStarted PreviewState = iota
	PreviewStateStarting
	PreviewStateRunning
	PreviewStatePaused
	PreviewStateStopping
)

func (s PreviewState) String() string {
	switch s {
	case PreviewStateNotStarted:
		return "not_started"
	case PreviewStateStarting:
		return "starting"
	case PreviewStateRunning:
		return "running"
	case PreviewStatePaused:
		return "paused"
	case PreviewStateStopping:
		return "stopping"
	}
	return fmt.Sprintf("preview_state(%d)", byte(s))
}

// PreviewHandler drives the preview sink. Preview counts as started once the
// first frame has been observed, not when the engine acknowledges the command.
type PreviewHandler struct {
	mu          sync.Mutex
	settings    config.Preview
	state       PreviewState
	sink        Sink
	previewType *MediaType
}

func NewPreviewHandler(settings config.Preview) *PreviewHandler {
	return &PreviewHandler{settings: settings}
}

func (p *PreviewHandler) StartPreview(engine Engine, baseType *MediaType, cb SampleCallback) (err error) {
	if engine == nil || baseType == nil || cb == nil {
		return ErrInvalidArgument
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != PreviewStateNotStarted {
		return fmt.Errorf("%w: preview is %s", ErrInvalidOperation, p.state)
	}
	if p.sink == nil {
		if err = p.initPreviewSink(engine, baseType, cb); err != nil {
			return
		}
	}
	p.state = PreviewStateStarting
	if err = engine.StartPreview(); err != nil {
		p.state = PreviewStateNotStarted
	}
	return
}

func (p *PreviewHandler) initPreviewSink(engine Engine, baseType *MediaType, cb SampleCallback) (err error) {
	sink, err := engine.GetSink(SinkPreview)
	if err != nil {
		return
	}
	if err = sink.RemoveAllStreams(); err != nil {
		return
	}
	mt := baseType.Clone()
	mt.SetSubtype(SubtypeRGB32)
	if w, h := mt.FrameSize(); w == 0 || h == 0 {
		mt.SetFrameSize(p.settings.Width, p.settings.Height)
	}
	if p.settings.FPS > 0 && mt.FrameRate().Numerator == 0 {
		mt.SetFrameRate(p.settings.FPS, 1)
	}
	stream, err := sink.AddStream(SourcePreferredVideoPreview, mt)
	if err != nil {
		return
	}
	if err = sink.SetSampleCallback(stream, cb); err != nil {
		return
	}
	p.sink = sink
	p.previewType = mt
	return
}

func (p *PreviewHandler) StopPreview(engine Engine) (err error) {
	if engine == nil {
		return ErrInvalidArgument
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case PreviewStateStarting, PreviewStateRunning, PreviewStatePaused:
	default:
		return fmt.Errorf("%w: preview is %s", ErrInvalidOperation, p.state)
	}
	prev := p.state
	p.state = PreviewStateStopping
	if err = engine.StopPreview(); err != nil {
		p.state = prev
	}
	return
}

// OnPreviewStarted promotes Starting to Running. It reports whether the
// state changed.
func (p *PreviewHandler) OnPreviewStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != PreviewStateStarting {
		return false
	}
	p.state = PreviewStateRunning
	return true
}

func (p *PreviewHandler) OnPreviewStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != PreviewStateStopping {
		return false
	}
	p.state = PreviewStateNotStarted
	return true
}

func (p *PreviewHandler) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case PreviewStatePaused:
		return nil
	case PreviewStateRunning:
		p.state = PreviewStatePaused
		return nil
	}
	return ErrPreviewNotRunning
}

func (p *PreviewHandler) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case PreviewStateRunning:
		return nil
	case PreviewStatePaused:
		p.state = PreviewStateRunning
		return nil
	}
	return ErrPreviewNotRunning
}

// Reset forgets the preview sink after a pipeline failure.
func (p *PreviewHandler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = PreviewStateNotStarted
	p.sink = nil
	p.previewType = nil
}

func (p *PreviewHandler) State() PreviewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *PreviewHandler) IsRunning() bool {
	return p.State() == PreviewStateRunning
}

func (p *PreviewHandler) FrameSize() (width, height uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.previewType.FrameSize()
}
