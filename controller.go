package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	. "m7s.live/camera/v5/pkg"
	"m7s.live/camera/v5/pkg/config"
	"m7s.live/camera/v5/pkg/util"
)

type PendingResultType byte

const (
	PendingResultInitialize PendingResultType = iota
	PendingResultStartPreview
	PendingResultStartRecord
	PendingResultStopRecord
)

func (t PendingResultType) String() string {
	switch t {
	case PendingResultInitialize:
		return "initialize"
	case PendingResultStartPreview:
		return "start_preview"
	case PendingResultStartRecord:
		return "start_record"
	case PendingResultStopRecord:
		return "stop_record"
	}
	return fmt.Sprintf("pending(%d)", byte(t))
}

type (
	// Frame is an application-owned copy of an image stream sample.
	Frame struct {
		Data          []byte
		Width, Height uint32
		Subtype       Subtype
		Timestamp     time.Duration
	}

	RecordingInfo struct {
		Path          string
		StartTime     time.Time
		EndTime       time.Time
		Duration      time.Duration
		Codec         string
		Width, Height uint32
		Timed         bool
	}

	// Application receives the notifications the controller surfaces.
	// Methods may be called from pipeline goroutines and must not block.
	Application interface {
		OnFrameAvailable(Frame)
		OnRecordingStarted()
		OnRecordingStopped(path string)
		OnVideoRecorded(path string, duration time.Duration)
		OnCaptureError(err error)
		OnCameraClosing()
	}

	// PreviewTarget is told when a new preview frame can be pulled with
	// CopyPreviewFrame.
	PreviewTarget interface {
		MarkFrameAvailable()
	}

	RecordStore interface {
		SaveRecording(context.Context, *RecordingInfo) error
	}
)

type Stats struct {
	SamplesReceived   atomic.Uint64
	SamplesDropped    atomic.Uint64
	PreviewFrames     atomic.Uint64
	StreamFrames      atomic.Uint64
	RecordingsStarted atomic.Uint64
	RecordingsStopped atomic.Uint64
	CaptureErrors     atomic.Uint64
}

type ControllerOption func(*CaptureController)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *CaptureController) {
		c.Logger = logger
	}
}

func WithRecordStore(store RecordStore) ControllerOption {
	return func(c *CaptureController) {
		c.store = store
	}
}

func WithPreviewTarget(target PreviewTarget) ControllerOption {
	return func(c *CaptureController) {
		c.previewTarget = target
	}
}

// CaptureController owns one capture device: it routes pipeline samples to
// the preview buffer or the application, relays record and preview commands
// and serializes them against the timed-stop check done for every sample.
type CaptureController struct {
	*slog.Logger
	Stats
	engine         Engine
	app            Application
	store          RecordStore
	sourceType     *MediaType
	confirmTimeout time.Duration
	recordDir      string
	listener       *Listener
	initialized    atomic.Bool
	disposed       atomic.Bool

	// recordMu orders record commands, record events and the timed-stop check.
	recordMu        sync.Mutex
	record          *RecordHandler
	streamListener  *ImageStreamListener
	recordStartedAt time.Time

	preview       *PreviewHandler
	previewMu     sync.RWMutex
	previewBuffer []byte
	previewTarget PreviewTarget

	pendingMu sync.Mutex
	pending   map[PendingResultType]*util.Promise[string]

	storeWG sync.WaitGroup
}

func NewCaptureController(engine Engine, sourceType *MediaType, app Application, conf *config.Engine, opts ...ControllerOption) *CaptureController {
	if app == nil {
		app = nopApplication{}
	}
	c := &CaptureController{
		Logger:         slog.Default(),
		engine:         engine,
		app:            app,
		sourceType:     sourceType,
		confirmTimeout: conf.StartTimeout,
		recordDir:      conf.Record.RecordDir,
		record:         NewRecordHandler(conf.Record),
		preview:        NewPreviewHandler(conf.Preview),
		pending:        make(map[PendingResultType]*util.Promise[string]),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.listener = NewListener(c)
	return c
}

// Init registers the event bridge and waits for the engine to report
// initialization.
func (c *CaptureController) Init(ctx context.Context) (err error) {
	if c.engine == nil || c.sourceType == nil {
		return ErrInvalidArgument
	}
	if c.initialized.Load() {
		return nil
	}
	result, err := c.addPendingResult(PendingResultInitialize)
	if err != nil {
		return
	}
	if err = c.engine.RegisterCallback(c.listener); err != nil {
		c.rejectPendingResult(PendingResultInitialize, err)
		return
	}
	_, err = c.awaitPendingResult(ctx, PendingResultInitialize, result)
	return
}

// Close detaches the bridge from the pipeline and fails every pending request.
func (c *CaptureController) Close() error {
	if c.disposed.Swap(true) {
		return nil
	}
	c.listener.Detach()
	if c.engine != nil {
		c.engine.UnregisterCallback()
	}
	c.recordMu.Lock()
	if c.streamListener != nil {
		c.streamListener.Detach()
		c.streamListener = nil
	}
	c.recordMu.Unlock()
	c.rejectAllPendingResults(ErrDisposed)
	c.app.OnCameraClosing()
	c.storeWG.Wait()
	c.Info("capture controller closed")
	return nil
}

func (c *CaptureController) checkReady() error {
	if c.disposed.Load() {
		return ErrDisposed
	}
	if !c.initialized.Load() {
		return ErrNotInitialized
	}
	return nil
}

func (c *CaptureController) SetPreviewTarget(target PreviewTarget) {
	c.previewMu.Lock()
	c.previewTarget = target
	c.previewMu.Unlock()
}

// StartPreview returns once the first preview frame has been observed.
func (c *CaptureController) StartPreview(ctx context.Context) (width, height uint32, err error) {
	if err = c.checkReady(); err != nil {
		return
	}
	result, err := c.addPendingResult(PendingResultStartPreview)
	if err != nil {
		return
	}
	if err = c.preview.StartPreview(c.engine, c.sourceType, c.listener); err != nil {
		c.rejectPendingResult(PendingResultStartPreview, err)
		return
	}
	if _, err = c.awaitPendingResult(ctx, PendingResultStartPreview, result); err != nil {
		return
	}
	width, height = c.preview.FrameSize()
	return
}

func (c *CaptureController) StopPreview() error {
	if err := c.checkReady(); err != nil {
		return err
	}
	return c.preview.StopPreview(c.engine)
}

func (c *CaptureController) PausePreview() error {
	return c.preview.Pause()
}

func (c *CaptureController) ResumePreview() error {
	return c.preview.Resume()
}

// StartRecording records into path. maxDurationMs < 0 records until
// StopRecording, otherwise the recording stops by itself and the
// application receives OnVideoRecorded.
func (c *CaptureController) StartRecording(ctx context.Context, path string, maxDurationMs int64) error {
	return c.startRecord(ctx, FileTarget{Path: path}, maxDurationMs)
}

// StartImageStream delivers uncompressed frames to Application.OnFrameAvailable.
func (c *CaptureController) StartImageStream(ctx context.Context) error {
	return c.startRecord(ctx, nil, -1)
}

func (c *CaptureController) startRecord(ctx context.Context, target RecordTarget, maxDurationMs int64) (err error) {
	if err = c.checkReady(); err != nil {
		return
	}
	result, err := c.addPendingResult(PendingResultStartRecord)
	if err != nil {
		return
	}
	c.recordMu.Lock()
	var streamListener *ImageStreamListener
	if target == nil {
		streamListener = NewImageStreamListener(c)
		target = StreamTarget{Callback: streamListener}
	}
	if err = c.record.StartRecord(target, maxDurationMs, c.engine, c.sourceType); err == nil && streamListener != nil {
		c.streamListener = streamListener
	}
	c.recordMu.Unlock()
	if err != nil {
		c.Error("start record", "error", err)
		c.rejectPendingResult(PendingResultStartRecord, err)
		return
	}
	c.Info("record starting", "target", fmt.Sprintf("%+v", target), "maxDurationMs", maxDurationMs)
	_, err = c.awaitPendingResult(ctx, PendingResultStartRecord, result)
	return
}

// StopRecording returns the path of the finalized file.
func (c *CaptureController) StopRecording(ctx context.Context) (string, error) {
	return c.stopRecord(ctx, false)
}

func (c *CaptureController) StopImageStream(ctx context.Context) error {
	_, err := c.stopRecord(ctx, true)
	return err
}

func (c *CaptureController) stopRecord(ctx context.Context, streaming bool) (path string, err error) {
	if err = c.checkReady(); err != nil {
		return
	}
	if c.record.IsStreaming() != streaming {
		return "", fmt.Errorf("%w: no %s in progress", ErrInvalidOperation, util.Conditional(streaming, "image stream", "recording"))
	}
	result, err := c.addPendingResult(PendingResultStopRecord)
	if err != nil {
		return
	}
	c.recordMu.Lock()
	err = c.record.StopRecord(c.engine)
	c.recordMu.Unlock()
	if err != nil {
		c.rejectPendingResult(PendingResultStopRecord, err)
		return
	}
	return c.awaitPendingResult(ctx, PendingResultStopRecord, result)
}

func (c *CaptureController) GetRecordedVideoDimensions() (width, height uint32) {
	return c.record.VideoFrameSize()
}

func (c *CaptureController) GetRecordedVideoFormatName() string {
	return c.record.MediaSubtype()
}

func (c *CaptureController) RecordState() RecordState {
	return c.record.State()
}

func (c *CaptureController) PreviewState() PreviewState {
	return c.preview.State()
}

// CopyPreviewFrame copies the latest preview frame into dst.
func (c *CaptureController) CopyPreviewFrame(dst []byte) (frame []byte, width, height uint32) {
	c.previewMu.RLock()
	frame = append(dst[:0], c.previewBuffer...)
	c.previewMu.RUnlock()
	width, height = c.preview.FrameSize()
	return
}

// OnEvent is called by the Listener on a pipeline goroutine.
func (c *CaptureController) OnEvent(event Event) {
	c.Debug("capture event", "type", event.Type, "error", event.Err)
	switch event.Type {
	case EventInitialized:
		if event.Err != nil {
			c.rejectPendingResult(PendingResultInitialize, event.Err)
			return
		}
		c.initialized.Store(true)
		c.resolvePendingResult(PendingResultInitialize, "")
	case EventPreviewStarted:
		// success is confirmed by the first frame
		if event.Err != nil {
			c.preview.Reset()
			c.rejectPendingResult(PendingResultStartPreview, event.Err)
		}
	case EventPreviewStopped:
		if event.Err != nil {
			c.Error("preview stop", "error", event.Err)
			c.preview.Reset()
			return
		}
		c.preview.OnPreviewStopped()
	case EventRecordStarted:
		c.onRecordStarted(event.Err)
	case EventRecordStopped:
		c.onRecordStopped(event.Err)
	case EventError:
		c.onCaptureError(event.Err)
	}
}

func (c *CaptureController) onRecordStarted(cause error) {
	c.recordMu.Lock()
	if cause != nil {
		c.record.Reset()
		c.dropStreamListener()
		c.recordMu.Unlock()
		err := fmt.Errorf("%w: %w", ErrRecordFailed, cause)
		c.Error("record start", "error", cause)
		c.rejectPendingResult(PendingResultStartRecord, err)
		return
	}
	started := c.record.OnRecordStarted()
	if started {
		c.recordStartedAt = time.Now()
	}
	c.recordMu.Unlock()
	if !started {
		c.Warn("record started event ignored", "state", c.record.State())
		return
	}
	c.RecordingsStarted.Add(1)
	c.Info("record started", "path", c.record.RecordPath(), "type", c.record.Type())
	c.app.OnRecordingStarted()
	c.resolvePendingResult(PendingResultStartRecord, "")
}

func (c *CaptureController) onRecordStopped(cause error) {
	c.recordMu.Lock()
	if cause != nil {
		c.record.Reset()
		c.dropStreamListener()
		c.recordMu.Unlock()
		err := fmt.Errorf("%w: %w", ErrRecordFailed, cause)
		c.Error("record stop", "error", cause)
		c.rejectPendingResult(PendingResultStopRecord, err)
		c.app.OnCaptureError(err)
		return
	}
	width, height := c.record.VideoFrameSize()
	info := &RecordingInfo{
		Path:      c.record.RecordPath(),
		StartTime: c.recordStartedAt,
		EndTime:   time.Now(),
		Duration:  c.record.RecordedDuration(),
		Codec:     c.record.MediaSubtype(),
		Width:     width,
		Height:    height,
		Timed:     c.record.IsTimedRecording(),
	}
	streaming := c.record.IsStreaming()
	stopped := c.record.OnRecordStopped()
	if stopped {
		c.dropStreamListener()
	}
	c.recordMu.Unlock()
	if !stopped {
		c.Warn("record stopped event ignored", "state", c.record.State())
		return
	}
	c.RecordingsStopped.Add(1)
	c.Info("record stopped", "path", info.Path, "duration", info.Duration)
	if !streaming {
		c.app.OnRecordingStopped(info.Path)
		if info.Timed {
			c.app.OnVideoRecorded(info.Path, info.Duration)
		}
		if c.store != nil {
			c.storeWG.Add(1)
			go c.saveRecording(info)
		}
	}
	c.resolvePendingResult(PendingResultStopRecord, info.Path)
}

func (c *CaptureController) saveRecording(info *RecordingInfo) {
	defer c.storeWG.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.store.SaveRecording(ctx, info); err != nil {
		c.Error("save recording", "path", info.Path, "error", err)
	}
}

// dropStreamListener requires recordMu.
func (c *CaptureController) dropStreamListener() {
	if c.streamListener != nil {
		c.streamListener.Detach()
		c.streamListener = nil
	}
}

func (c *CaptureController) onCaptureError(cause error) {
	if cause == nil {
		cause = errors.New("unknown capture error")
	}
	c.CaptureErrors.Add(1)
	c.Error("capture error", "error", cause)
	c.recordMu.Lock()
	c.record.Reset()
	c.dropStreamListener()
	c.recordMu.Unlock()
	c.preview.Reset()
	c.app.OnCaptureError(cause)
	c.rejectAllPendingResults(cause)
}

// UpdateCaptureTime runs for every sample, before any frame routing.
func (c *CaptureController) UpdateCaptureTime(timestampUs int64) {
	c.SamplesReceived.Add(1)
	if c.preview.OnPreviewStarted() {
		w, h := c.preview.FrameSize()
		c.Info("preview started", "width", w, "height", h)
		c.resolvePendingResult(PendingResultStartPreview, "")
	}
	c.recordMu.Lock()
	c.record.UpdateRecordingTime(timestampUs)
	var err error
	if c.record.ShouldStopTimedRecording() {
		if err = c.record.StopRecord(c.engine); err != nil {
			c.record.Reset()
			c.dropStreamListener()
		}
	}
	c.recordMu.Unlock()
	if err != nil {
		err = fmt.Errorf("%w: timed stop: %w", ErrRecordFailed, err)
		c.Error("timed record stop", "error", err)
		c.app.OnCaptureError(err)
	}
}

// IsReadyForSample reports whether a preview frame would be consumed.
func (c *CaptureController) IsReadyForSample() bool {
	c.previewMu.RLock()
	hasTarget := c.previewTarget != nil
	c.previewMu.RUnlock()
	ready := c.initialized.Load() && hasTarget && c.preview.IsRunning()
	if !ready {
		c.SamplesDropped.Add(1)
	}
	return ready
}

func (c *CaptureController) UpdateBuffer(data []byte) bool {
	c.previewMu.Lock()
	target := c.previewTarget
	if target == nil {
		c.previewMu.Unlock()
		return false
	}
	c.previewBuffer = append(c.previewBuffer[:0], data...)
	c.previewMu.Unlock()
	c.PreviewFrames.Add(1)
	target.MarkFrameAvailable()
	return true
}

// EnrichBuffer copies an image stream sample and hands it to the application.
func (c *CaptureController) EnrichBuffer(sample Sample) {
	ticks, _ := sample.Time()
	buf, err := sample.ContiguousBuffer()
	if err != nil || buf == nil {
		c.SamplesDropped.Add(1)
		return
	}
	data, err := buf.Lock()
	var frame Frame
	if err == nil {
		frame.Data = bytes.Clone(data)
	}
	if uerr := buf.Unlock(); err == nil {
		err = uerr
	}
	if err != nil {
		c.SamplesDropped.Add(1)
		c.Log(context.Background(), TraceLevel, "image stream frame dropped", "error", err)
		return
	}
	frame.Width, frame.Height = c.record.VideoFrameSize()
	frame.Subtype = SubtypeARGB32
	frame.Timestamp = time.Duration(TicksToMicroseconds(ticks)) * time.Microsecond
	c.StreamFrames.Add(1)
	c.app.OnFrameAvailable(frame)
}

func (c *CaptureController) addPendingResult(t PendingResultType) (*util.Promise[string], error) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	if c.disposed.Load() {
		return nil, ErrDisposed
	}
	if _, ok := c.pending[t]; ok {
		return nil, fmt.Errorf("%w: %s already pending", ErrDuplicateRequest, t)
	}
	p := util.NewPromise("")
	c.pending[t] = p
	return p, nil
}

func (c *CaptureController) takePendingResult(t PendingResultType) *util.Promise[string] {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	p, ok := c.pending[t]
	if ok {
		delete(c.pending, t)
	}
	return p
}

func (c *CaptureController) HasPendingResult(t PendingResultType) bool {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	_, ok := c.pending[t]
	return ok
}

func (c *CaptureController) resolvePendingResult(t PendingResultType, v string) {
	if p := c.takePendingResult(t); p != nil {
		p.Resolve(v)
	}
}

func (c *CaptureController) rejectPendingResult(t PendingResultType, err error) {
	if p := c.takePendingResult(t); p != nil {
		p.Fulfill(err)
	}
}

func (c *CaptureController) rejectAllPendingResults(err error) {
	c.pendingMu.Lock()
	pending := c.pending
	c.pending = make(map[PendingResultType]*util.Promise[string])
	c.pendingMu.Unlock()
	for _, p := range pending {
		p.Fulfill(err)
	}
}

// awaitPendingResult waits for the confirming event. A request that times
// out is forgotten so it can be issued again.
func (c *CaptureController) awaitPendingResult(ctx context.Context, t PendingResultType, p *util.Promise[string]) (v string, err error) {
	if c.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.confirmTimeout)
		defer cancel()
	}
	if v, err = p.Await(ctx); err != nil && ctx.Err() != nil {
		c.pendingMu.Lock()
		if c.pending[t] == p {
			delete(c.pending, t)
		}
		c.pendingMu.Unlock()
	}
	return
}

type nopApplication struct{}

func (nopApplication) OnFrameAvailable(Frame)                {}
func (nopApplication) OnRecordingStarted()                   {}
func (nopApplication) OnRecordingStopped(string)             {}
func (nopApplication) OnVideoRecorded(string, time.Duration) {}
func (nopApplication) OnCaptureError(error)                  {}
func (nopApplication) OnCameraClosing()                      {}
