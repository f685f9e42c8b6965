package plugin_virtual

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"m7s.live/camera/v5/pkg"
	"m7s.live/camera/v5/pkg/codec"
	"m7s.live/camera/v5/pkg/config"
	mp4 "m7s.live/camera/v5/plugin/mp4/pkg"
)

var _ pkg.Engine = (*Engine)(nil)

// Engine is a software capture device. Frames are synthetic color bars paced
// by a ticker; the record sink encodes them to H.264 with silent AAC audio.
// All callbacks run on the goroutine that called Run.
type Engine struct {
	*slog.Logger
	conf       config.Virtual
	sourceType *pkg.MediaType

	mu         sync.Mutex
	callback   pkg.EventCallback
	sinks      map[pkg.SinkType]*Sink
	audioTypes []*pkg.MediaType
	ops        []func()
	wake       chan struct{}
	previewing bool
	recording  bool
	record     *recordSession
	frame      uint64
	frames     map[pkg.Size][]byte
}

type recordSession struct {
	startFrame uint64
	size       pkg.Size
	callback   pkg.SampleCallback
	writer     *mp4.FileWriter
	encoder    *codec.H264PCMEncoder
	aac        *codec.AACCtx
	silence    []byte
	audioTs    time.Duration
}

func (s *recordSession) close() error {
	if s.writer == nil {
		return nil
	}
	return s.writer.Close()
}

func NewEngine(conf config.Virtual, logger *slog.Logger) (*Engine, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		Logger:     logger.With("device", "virtual"),
		conf:       conf,
		sourceType: pkg.NewVideoType(pkg.SubtypeNV12, conf.Width, conf.Height, conf.FPS),
		sinks:      make(map[pkg.SinkType]*Sink),
		wake:       make(chan struct{}, 1),
		frames:     make(map[pkg.Size][]byte),
	}
	if conf.Audio {
		e.audioTypes = []*pkg.MediaType{
			pkg.NewAudioType(pkg.SubtypeAAC, conf.SampleRate, conf.Channels, 12000*conf.Channels),
		}
	}
	return e, nil
}

// SourceType is the native format of the device.
func (e *Engine) SourceType() *pkg.MediaType {
	return e.sourceType.Clone()
}

// SetAudioTypes replaces the encoder output types offered for AAC.
func (e *Engine) SetAudioTypes(types ...*pkg.MediaType) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.audioTypes = types
}

// post queues op for the Run goroutine. e.mu must be held.
func (e *Engine) post(op func()) {
	e.ops = append(e.ops, op)
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) emit(ev pkg.Event) {
	e.mu.Lock()
	cb := e.callback
	e.mu.Unlock()
	if ev.Err != nil {
		e.Warn("event", "type", ev.Type, "error", ev.Err)
	} else {
		e.Debug("event", "type", ev.Type)
	}
	if cb != nil {
		cb.OnEvent(ev)
	}
}

func (e *Engine) RegisterCallback(cb pkg.EventCallback) error {
	if cb == nil {
		return pkg.ErrInvalidArgument
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.callback != nil {
		return fmt.Errorf("%w: callback already registered", pkg.ErrInvalidOperation)
	}
	e.callback = cb
	e.post(func() {
		e.emit(pkg.Event{Type: pkg.EventInitialized})
	})
	return nil
}

func (e *Engine) UnregisterCallback() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callback = nil
}

func (e *Engine) GetSink(kind pkg.SinkType) (pkg.Sink, error) {
	if kind != pkg.SinkPreview && kind != pkg.SinkRecord {
		return nil, fmt.Errorf("%w: sink type %d", pkg.ErrInvalidArgument, kind)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	sink, ok := e.sinks[kind]
	if !ok {
		sink = newSink(kind)
		e.sinks[kind] = sink
	}
	return sink, nil
}

func (e *Engine) StartPreview() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.previewing {
		return fmt.Errorf("%w: preview running", pkg.ErrInvalidOperation)
	}
	sink := e.sinks[pkg.SinkPreview]
	if sink == nil || len(sink.callbackStreams()) == 0 {
		return fmt.Errorf("%w: preview sink has no sample callback", pkg.ErrInvalidOperation)
	}
	e.previewing = true
	e.post(func() {
		e.emit(pkg.Event{Type: pkg.EventPreviewStarted})
	})
	return nil
}

func (e *Engine) StopPreview() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.previewing {
		return fmt.Errorf("%w: preview not running", pkg.ErrInvalidOperation)
	}
	e.previewing = false
	e.post(func() {
		e.emit(pkg.Event{Type: pkg.EventPreviewStopped})
	})
	return nil
}

func (e *Engine) StartRecord() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.recording {
		return fmt.Errorf("%w: record running", pkg.ErrInvalidOperation)
	}
	sink := e.sinks[pkg.SinkRecord]
	if sink == nil {
		return fmt.Errorf("%w: record sink not configured", pkg.ErrInvalidOperation)
	}
	snap := sink.snapshot()
	e.recording = true
	e.post(func() {
		session, err := e.openRecord(snap)
		e.mu.Lock()
		aborted := !e.recording
		if err == nil && !aborted {
			session.startFrame = e.frame
			e.record = session
		} else {
			e.recording = false
		}
		e.mu.Unlock()
		if err == nil && aborted {
			session.close()
			err = fmt.Errorf("%w: device lost while starting", pkg.ErrRecordFailed)
		}
		e.emit(pkg.Event{Type: pkg.EventRecordStarted, Err: err})
	})
	return nil
}

// StopRecord finalizes the file. Unflushed data does not exist in this
// device, so both flags only show up in the log.
func (e *Engine) StopRecord(finalize, flush bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.record == nil {
		return fmt.Errorf("%w: record not running", pkg.ErrInvalidOperation)
	}
	session := e.record
	e.record = nil
	e.recording = false
	e.Debug("stop record", "finalize", finalize, "flush", flush)
	e.post(func() {
		e.emit(pkg.Event{Type: pkg.EventRecordStopped, Err: session.close()})
	})
	return nil
}

func (e *Engine) AudioOutputTypes(subtype pkg.Subtype, lowLatency bool) (ret []*pkg.MediaType, err error) {
	if subtype != pkg.SubtypeAAC {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, mt := range e.audioTypes {
		ret = append(ret, mt.Clone())
	}
	return
}

// Fail simulates a device loss: preview and record stop and an error event
// follows.
func (e *Engine) Fail(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.previewing = false
	e.recording = false
	session := e.record
	e.record = nil
	e.post(func() {
		if session != nil {
			if cerr := session.close(); cerr != nil {
				e.Error("close record", "error", cerr)
			}
		}
		e.emit(pkg.Event{Type: pkg.EventError, Err: err})
	})
}

func (e *Engine) openRecord(snap sinkSnapshot) (session *recordSession, err error) {
	var video, audio *stream
	for i := range snap.streams {
		switch snap.streams[i].source {
		case pkg.SourcePreferredVideoRecord:
			video = &snap.streams[i]
		case pkg.SourcePreferredAudio:
			audio = &snap.streams[i]
		}
	}
	if video == nil {
		return nil, fmt.Errorf("%w: record sink has no video stream", pkg.ErrSinkConfiguration)
	}
	session = &recordSession{size: e.frameSize(video.mt)}
	if video.callback != nil {
		if video.mt.Subtype().Compressed() {
			return nil, fmt.Errorf("%w: cannot stream %s samples", pkg.ErrSinkConfiguration, video.mt.Subtype())
		}
		session.callback = video.callback
		e.Info("record stream", "size", session.size)
		return
	}
	if video.mt.Subtype() != pkg.SubtypeH264 {
		return nil, fmt.Errorf("%w: cannot encode %s", pkg.ErrSinkConfiguration, video.mt.Subtype())
	}
	if snap.outputPath == "" {
		return nil, fmt.Errorf("%w: no output file", pkg.ErrSinkConfiguration)
	}
	if session.encoder, err = codec.NewH264PCMEncoder(int(session.size.Width), int(session.size.Height)); err != nil {
		return nil, err
	}
	videoCtx, err := codec.NewH264Ctx(session.encoder.SPS(), session.encoder.PPS())
	if err != nil {
		return nil, err
	}
	if audio != nil {
		if session.aac, err = codec.NewAACCtx(int(audio.mt.SampleRate()), int(audio.mt.Channels())); err != nil {
			return nil, err
		}
		session.silence = session.aac.SilentFrame()
	}
	if dir := filepath.Dir(snap.outputPath); dir != "" {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	if session.writer, err = mp4.NewFileWriter(snap.outputPath, videoCtx, session.aac, int(e.conf.FPS)); err != nil {
		return nil, err
	}
	e.Info("record file", "path", snap.outputPath, "size", session.size, "audio", session.aac != nil)
	return
}

func (e *Engine) frameSize(mt *pkg.MediaType) pkg.Size {
	w, h := mt.FrameSize()
	if w == 0 || h == 0 {
		w, h = e.sourceType.FrameSize()
	}
	return pkg.Size{Width: w, Height: h}
}

// Run drives the device until ctx is done. Callbacks are only invoked from
// here, in the order they were produced.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(e.conf.FPS))
	defer ticker.Stop()
	defer e.shutdown()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-e.wake:
			e.runOps()
		case <-ticker.C:
			e.runOps()
			e.tick()
		}
	}
}

func (e *Engine) runOps() {
	e.mu.Lock()
	ops := e.ops
	e.ops = nil
	e.mu.Unlock()
	for _, op := range ops {
		op()
	}
}

func (e *Engine) shutdown() {
	e.mu.Lock()
	session := e.record
	e.record = nil
	e.recording = false
	e.previewing = false
	e.mu.Unlock()
	if session != nil {
		if err := session.close(); err != nil {
			e.Error("close record", "error", err)
		}
	}
}

func (e *Engine) tick() {
	e.mu.Lock()
	e.frame++
	n := e.frame
	var preview []stream
	if sink := e.sinks[pkg.SinkPreview]; e.previewing && sink != nil {
		preview = sink.callbackStreams()
	}
	session := e.record
	e.mu.Unlock()
	ticks := int64(n) * 10_000_000 / int64(e.conf.FPS)
	if session != nil {
		e.feedRecord(session, n, ticks)
	}
	for _, st := range preview {
		e.deliver(st.callback, e.frameSize(st.mt), n, ticks)
	}
}

func (e *Engine) render(size pkg.Size, n uint64) []byte {
	frame, ok := e.frames[size]
	if !ok {
		frame = make([]byte, size.Width*size.Height*4)
		e.frames[size] = frame
	}
	bars(frame, int(size.Width), int(size.Height), n)
	return frame
}

func (e *Engine) deliver(cb pkg.SampleCallback, size pkg.Size, n uint64, ticks int64) {
	buf := &frameBuffer{data: e.render(size, n)}
	err := cb.OnSample(&frameSample{ticks: ticks, buf: buf})
	buf.released = true
	if err != nil {
		e.Log(context.Background(), pkg.TraceLevel, "sample callback", "error", err)
	}
}

func (e *Engine) feedRecord(session *recordSession, n uint64, ticks int64) {
	if session.callback != nil {
		e.deliver(session.callback, session.size, n, ticks)
		return
	}
	ts := time.Duration(n-session.startFrame) * time.Second / time.Duration(e.conf.FPS)
	au, err := session.encoder.EncodeRGB32(e.render(session.size, n))
	if err == nil {
		err = session.writer.WriteVideo(au, ts)
	}
	for session.aac != nil && err == nil && session.audioTs <= ts {
		err = session.writer.WriteAudio(session.silence, session.audioTs)
		session.audioTs += time.Duration(session.aac.FrameDuration()) * time.Microsecond
	}
	if err != nil {
		e.Fail(fmt.Errorf("write %s: %w", session.writer.Path(), err))
	}
}
