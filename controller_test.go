package camera

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "m7s.live/camera/v5/pkg"
	"m7s.live/camera/v5/pkg/config"
)

type fakeApp struct {
	mu       sync.Mutex
	frames   []Frame
	started  int
	stopped  []string
	recorded map[string]time.Duration
	errs     []error
	closing  int
}

func (a *fakeApp) OnFrameAvailable(f Frame) {
	a.mu.Lock()
	a.frames = append(a.frames, f)
	a.mu.Unlock()
}

func (a *fakeApp) OnRecordingStarted() {
	a.mu.Lock()
	a.started++
	a.mu.Unlock()
}

func (a *fakeApp) OnRecordingStopped(path string) {
	a.mu.Lock()
	a.stopped = append(a.stopped, path)
	a.mu.Unlock()
}

func (a *fakeApp) OnVideoRecorded(path string, d time.Duration) {
	a.mu.Lock()
	if a.recorded == nil {
		a.recorded = make(map[string]time.Duration)
	}
	a.recorded[path] = d
	a.mu.Unlock()
}

func (a *fakeApp) OnCaptureError(err error) {
	a.mu.Lock()
	a.errs = append(a.errs, err)
	a.mu.Unlock()
}

func (a *fakeApp) OnCameraClosing() {
	a.mu.Lock()
	a.closing++
	a.mu.Unlock()
}

func (a *fakeApp) errCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.errs)
}

type fakeStore struct {
	saved chan *RecordingInfo
}

func (s *fakeStore) SaveRecording(ctx context.Context, info *RecordingInfo) error {
	s.saved <- info
	return nil
}

type fakeTarget struct {
	mu    sync.Mutex
	marks int
}

func (t *fakeTarget) MarkFrameAvailable() {
	t.mu.Lock()
	t.marks++
	t.mu.Unlock()
}

func testConfig() *config.Engine {
	var conf config.Engine
	conf.StartTimeout = 2 * time.Second
	conf.Record.RecordAudio = true
	conf.Preview = config.Preview{Width: 640, Height: 480, FPS: 30}
	return &conf
}

func newTestController(t *testing.T, engine *fakeEngine, opts ...ControllerOption) (*CaptureController, *fakeApp) {
	t.Helper()
	app := &fakeApp{}
	c := NewCaptureController(engine, sourceType(), app, testConfig(), opts...)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, app
}

func ticks(us int64) int64 {
	return us * 10
}

func TestControllerNotInitialized(t *testing.T) {
	engine := newFakeEngine()
	c := NewCaptureController(engine, sourceType(), nil, testConfig())
	if err := c.StartRecording(context.Background(), "a.mp4", -1); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("err = %v", err)
	}
	if _, err := c.StopRecording(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("err = %v", err)
	}
}

func TestControllerInitFailure(t *testing.T) {
	engine := newFakeEngine()
	engine.holdInit = true
	c := NewCaptureController(engine, sourceType(), nil, testConfig())
	errc := make(chan error, 1)
	go func() { errc <- c.Init(context.Background()) }()
	waitFor(t, "pending init", func() bool { return c.HasPendingResult(PendingResultInitialize) })
	cause := errors.New("no device")
	engine.emit(Event{Type: EventInitialized, Err: cause})
	if err := <-errc; !errors.Is(err, cause) {
		t.Errorf("err = %v", err)
	}
}

func TestControllerRecordingRoundTrip(t *testing.T) {
	engine := newFakeEngine()
	store := &fakeStore{saved: make(chan *RecordingInfo, 1)}
	c, app := newTestController(t, engine, WithRecordStore(store))
	ctx := context.Background()
	if err := c.StartRecording(ctx, "clip.mp4", -1); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	if c.RecordState() != RecordStateRunning {
		t.Fatalf("state = %s", c.RecordState())
	}
	if w, h := c.GetRecordedVideoDimensions(); w != 1280 || h != 720 {
		t.Errorf("dimensions = %dx%d", w, h)
	}
	if c.GetRecordedVideoFormatName() != "H264" {
		t.Errorf("format = %q", c.GetRecordedVideoFormatName())
	}
	c.listener.OnSample(&fakeSample{ticks: ticks(1_000_000)})
	c.listener.OnSample(&fakeSample{ticks: ticks(3_000_000)})
	path, err := c.StopRecording(ctx)
	if err != nil {
		t.Fatalf("StopRecording: %v", err)
	}
	if path != "clip.mp4" {
		t.Errorf("path = %q", path)
	}
	if c.RecordState() != RecordStateNotStarted {
		t.Errorf("state = %s", c.RecordState())
	}
	if w, h := c.GetRecordedVideoDimensions(); w != 0 || h != 0 || c.GetRecordedVideoFormatName() != "" {
		t.Errorf("idle format = %dx%d %q", w, h, c.GetRecordedVideoFormatName())
	}
	select {
	case info := <-store.saved:
		if info.Path != "clip.mp4" || info.Duration != 2*time.Second || info.Timed {
			t.Errorf("info = %+v", info)
		}
		if info.Codec != "H264" || info.Width != 1280 || info.Height != 720 {
			t.Errorf("info = %+v", info)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("recording not saved")
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.started != 1 || len(app.stopped) != 1 || app.stopped[0] != "clip.mp4" {
		t.Errorf("started=%d stopped=%v", app.started, app.stopped)
	}
	if len(app.recorded) != 0 {
		t.Errorf("continuous recording reported as timed: %v", app.recorded)
	}
	if c.RecordingsStarted.Load() != 1 || c.RecordingsStopped.Load() != 1 {
		t.Errorf("stats started=%d stopped=%d", c.RecordingsStarted.Load(), c.RecordingsStopped.Load())
	}
}

func TestControllerTimedRecordingStopsOnce(t *testing.T) {
	engine := newFakeEngine()
	engine.holdStop = true
	c, app := newTestController(t, engine)
	if err := c.StartRecording(context.Background(), "timed.mp4", 5000); err != nil {
		t.Fatal(err)
	}
	const start = 20_000_000
	for _, us := range []int64{start, start + 2_500_000, start + 4_999_999} {
		c.listener.OnSample(&fakeSample{ticks: ticks(us)})
	}
	if _, stops := engine.counts(); stops != 0 {
		t.Fatalf("stopped early: %d", stops)
	}
	for _, us := range []int64{start + 5_000_001, start + 5_033_334, start + 5_066_667} {
		c.listener.OnSample(&fakeSample{ticks: ticks(us)})
	}
	if _, stops := engine.counts(); stops != 1 {
		t.Fatalf("engine stop called %d times, want 1", stops)
	}
	if c.RecordState() != RecordStateStopping {
		t.Fatalf("state = %s", c.RecordState())
	}
	engine.emit(Event{Type: EventRecordStopped})
	waitFor(t, "video recorded", func() bool {
		app.mu.Lock()
		defer app.mu.Unlock()
		return len(app.recorded) == 1
	})
	app.mu.Lock()
	d := app.recorded["timed.mp4"]
	app.mu.Unlock()
	// samples seen while stopping still count
	if d != 5_066_667*time.Microsecond {
		t.Errorf("duration = %v", d)
	}
	// a late duplicate confirmation is ignored
	c.OnEvent(Event{Type: EventRecordStopped})
	if c.RecordingsStopped.Load() != 1 {
		t.Errorf("stopped = %d", c.RecordingsStopped.Load())
	}
}

func TestControllerStopRacesTimedStop(t *testing.T) {
	const start = 1_000_000
	for i := 0; i < 200; i++ {
		engine := newFakeEngine()
		engine.holdStop = true
		c, _ := newTestController(t, engine)
		if err := c.StartRecording(context.Background(), "race.mp4", 1000); err != nil {
			t.Fatal(err)
		}
		c.listener.OnSample(&fakeSample{ticks: ticks(start)})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		begin := make(chan struct{})
		userErr := make(chan error, 1)
		sampled := make(chan struct{})
		go func() {
			<-begin
			_, err := c.StopRecording(ctx)
			userErr <- err
		}()
		go func() {
			<-begin
			c.listener.OnSample(&fakeSample{ticks: ticks(start + 1_500_000)})
			close(sampled)
		}()
		close(begin)
		<-sampled
		waitFor(t, "hardware stop", func() bool {
			_, stops := engine.counts()
			return stops > 0
		})
		engine.emit(Event{Type: EventRecordStopped})
		if err := <-userErr; err != nil && !errors.Is(err, ErrInvalidOperation) {
			t.Fatalf("iteration %d: user stop: %v", i, err)
		}
		cancel()
		waitFor(t, "recording stopped", func() bool { return c.RecordState() == RecordStateNotStarted })
		if _, stops := engine.counts(); stops != 1 {
			t.Fatalf("iteration %d: engine stop called %d times, want 1", i, stops)
		}
		c.Close()
	}
}

func TestControllerTimedStopFailure(t *testing.T) {
	engine := newFakeEngine()
	c, app := newTestController(t, engine)
	if err := c.StartRecording(context.Background(), "timed.mp4", 1000); err != nil {
		t.Fatal(err)
	}
	engine.mu.Lock()
	engine.stopRecordErr = errors.New("encoder stalled")
	engine.mu.Unlock()
	c.listener.OnSample(&fakeSample{ticks: ticks(0)})
	c.listener.OnSample(&fakeSample{ticks: ticks(1_000_000)})
	if c.RecordState() != RecordStateNotStarted {
		t.Errorf("state = %s", c.RecordState())
	}
	if app.errCount() != 1 || !errors.Is(app.errs[0], ErrRecordFailed) {
		t.Errorf("errs = %v", app.errs)
	}
}

func TestControllerDuplicateRequest(t *testing.T) {
	engine := newFakeEngine()
	engine.holdRecord = true
	c, _ := newTestController(t, engine)
	errc := make(chan error, 1)
	go func() { errc <- c.StartRecording(context.Background(), "a.mp4", -1) }()
	waitFor(t, "start command", func() bool {
		starts, _ := engine.counts()
		return starts == 1
	})
	if err := c.StartRecording(context.Background(), "b.mp4", -1); !errors.Is(err, ErrDuplicateRequest) {
		t.Errorf("err = %v", err)
	}
	engine.emit(Event{Type: EventRecordStarted})
	if err := <-errc; err != nil {
		t.Fatal(err)
	}
	if c.HasPendingResult(PendingResultStartRecord) {
		t.Error("pending result kept")
	}
}

func TestControllerStartFailureEvent(t *testing.T) {
	engine := newFakeEngine()
	engine.holdRecord = true
	c, app := newTestController(t, engine)
	errc := make(chan error, 1)
	go func() { errc <- c.StartRecording(context.Background(), "a.mp4", -1) }()
	waitFor(t, "start command", func() bool {
		starts, _ := engine.counts()
		return starts == 1
	})
	cause := errors.New("disk full")
	engine.emit(Event{Type: EventRecordStarted, Err: cause})
	err := <-errc
	if !errors.Is(err, ErrRecordFailed) || !errors.Is(err, cause) {
		t.Errorf("err = %v", err)
	}
	if c.RecordState() != RecordStateNotStarted {
		t.Errorf("state = %s", c.RecordState())
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.started != 0 {
		t.Error("application told about a failed start")
	}
}

func TestControllerStopWhileNotRunning(t *testing.T) {
	c, _ := newTestController(t, newFakeEngine())
	if _, err := c.StopRecording(context.Background()); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("err = %v", err)
	}
	if c.HasPendingResult(PendingResultStopRecord) {
		t.Error("pending stop kept after rejection")
	}
	if err := c.StopImageStream(context.Background()); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("err = %v", err)
	}
}

func TestControllerConfirmationTimeout(t *testing.T) {
	engine := newFakeEngine()
	engine.holdRecord = true
	c, _ := newTestController(t, engine)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := c.StartRecording(ctx, "a.mp4", -1); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v", err)
	}
	if c.HasPendingResult(PendingResultStartRecord) {
		t.Error("timed out request still pending")
	}
}

func TestControllerCloseRejectsPending(t *testing.T) {
	engine := newFakeEngine()
	engine.holdRecord = true
	app := &fakeApp{}
	c := NewCaptureController(engine, sourceType(), app, testConfig())
	if err := c.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	errc := make(chan error, 1)
	go func() { errc <- c.StartRecording(context.Background(), "a.mp4", -1) }()
	waitFor(t, "pending start", func() bool { return c.HasPendingResult(PendingResultStartRecord) })
	c.Close()
	if err := <-errc; !errors.Is(err, ErrDisposed) {
		t.Errorf("err = %v", err)
	}
	if err := c.StartRecording(context.Background(), "b.mp4", -1); !errors.Is(err, ErrDisposed) {
		t.Errorf("err = %v", err)
	}
	if app.closing != 1 {
		t.Errorf("closing = %d", app.closing)
	}
	// events after close never reach the controller
	c.listener.OnEvent(Event{Type: EventRecordStarted})
	if c.RecordState() != RecordStateStarting {
		t.Errorf("state = %s", c.RecordState())
	}
}

func TestControllerCaptureError(t *testing.T) {
	engine := newFakeEngine()
	engine.holdStop = true
	c, app := newTestController(t, engine)
	if err := c.StartRecording(context.Background(), "a.mp4", -1); err != nil {
		t.Fatal(err)
	}
	errc := make(chan error, 1)
	go func() {
		_, err := c.StopRecording(context.Background())
		errc <- err
	}()
	waitFor(t, "stop command", func() bool {
		_, stops := engine.counts()
		return stops == 1
	})
	cause := errors.New("device lost")
	engine.emit(Event{Type: EventError, Err: cause})
	if err := <-errc; !errors.Is(err, cause) {
		t.Errorf("err = %v", err)
	}
	if c.RecordState() != RecordStateNotStarted {
		t.Errorf("state = %s", c.RecordState())
	}
	if app.errCount() != 1 || c.CaptureErrors.Load() != 1 {
		t.Errorf("errors app=%d stats=%d", app.errCount(), c.CaptureErrors.Load())
	}
	// the sink was dropped so the next recording rebuilds it
	if err := c.StartRecording(context.Background(), "b.mp4", -1); err != nil {
		t.Fatal(err)
	}
	if engine.getSinkCalls != 2 {
		t.Errorf("GetSink = %d", engine.getSinkCalls)
	}
}

func TestControllerPreview(t *testing.T) {
	engine := newFakeEngine()
	target := &fakeTarget{}
	c, _ := newTestController(t, engine, WithPreviewTarget(target))
	type result struct {
		w, h uint32
		err  error
	}
	resc := make(chan result, 1)
	go func() {
		w, h, err := c.StartPreview(context.Background())
		resc <- result{w, h, err}
	}()
	waitFor(t, "preview starting", func() bool { return c.PreviewState() == PreviewStateStarting })
	sink := engine.sinks[SinkPreview]
	if sink.callback != c.listener {
		t.Fatal("preview sink not wired to the listener")
	}
	if sink.streams[0].Subtype() != SubtypeRGB32 {
		t.Errorf("preview subtype = %s", sink.streams[0].Subtype())
	}
	frame := &fakeBuffer{data: []byte{9, 8, 7, 6}}
	// the first sample promotes preview to running, then is forwarded
	if err := c.listener.OnSample(&fakeSample{ticks: 10, buf: frame}); err != nil {
		t.Fatal(err)
	}
	res := <-resc
	if res.err != nil || res.w != 1280 || res.h != 720 {
		t.Fatalf("StartPreview = %+v", res)
	}
	if frame.locks != 1 || frame.unlocks != 1 {
		t.Errorf("locks=%d unlocks=%d", frame.locks, frame.unlocks)
	}
	data, w, h := c.CopyPreviewFrame(nil)
	if string(data) != "\x09\x08\x07\x06" || w != 1280 || h != 720 {
		t.Errorf("frame = %v %dx%d", data, w, h)
	}
	if target.marks != 1 || c.PreviewFrames.Load() != 1 {
		t.Errorf("marks=%d frames=%d", target.marks, c.PreviewFrames.Load())
	}

	if err := c.PausePreview(); err != nil {
		t.Fatal(err)
	}
	paused := &fakeBuffer{data: []byte{1}}
	c.listener.OnSample(&fakeSample{ticks: 20, buf: paused})
	if paused.locks != 0 {
		t.Error("paused preview consumed a frame")
	}
	if err := c.ResumePreview(); err != nil {
		t.Fatal(err)
	}
	if err := c.StopPreview(); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "preview stopped", func() bool { return c.PreviewState() == PreviewStateNotStarted })
	if err := c.PausePreview(); !errors.Is(err, ErrPreviewNotRunning) {
		t.Errorf("err = %v", err)
	}
}

func TestControllerNotReadyWithoutTarget(t *testing.T) {
	engine := newFakeEngine()
	c, _ := newTestController(t, engine)
	done := make(chan error, 1)
	go func() {
		_, _, err := c.StartPreview(context.Background())
		done <- err
	}()
	waitFor(t, "preview starting", func() bool { return c.PreviewState() == PreviewStateStarting })
	c.listener.OnSample(&fakeSample{ticks: 10})
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	buf := &fakeBuffer{data: []byte{1}}
	c.listener.OnSample(&fakeSample{ticks: 20, buf: buf})
	if buf.locks != 0 {
		t.Error("frame consumed without a preview target")
	}
	if c.SamplesDropped.Load() == 0 {
		t.Error("dropped samples not counted")
	}

	target := &fakeTarget{}
	c.SetPreviewTarget(target)
	buf = &fakeBuffer{data: []byte{2}}
	c.listener.OnSample(&fakeSample{ticks: 30, buf: buf})
	target.mu.Lock()
	marks := target.marks
	target.mu.Unlock()
	if buf.locks != 1 || marks != 1 {
		t.Errorf("after attaching a target: locks=%d marks=%d", buf.locks, marks)
	}
}

func TestControllerImageStream(t *testing.T) {
	engine := newFakeEngine()
	c, app := newTestController(t, engine)
	ctx := context.Background()
	if err := c.StartImageStream(ctx); err != nil {
		t.Fatal(err)
	}
	sink := engine.sinks[SinkRecord]
	if sink.callback == nil || sink.outputs != 0 {
		t.Fatalf("stream sink callback=%v outputs=%d", sink.callback, sink.outputs)
	}
	src := []byte{1, 2, 3, 4}
	buf := &fakeBuffer{data: src}
	if err := sink.callback.OnSample(&fakeSample{ticks: ticks(40_000), buf: buf}); err != nil {
		t.Fatal(err)
	}
	src[0] = 0xff
	app.mu.Lock()
	if len(app.frames) != 1 {
		app.mu.Unlock()
		t.Fatalf("frames = %d", len(app.frames))
	}
	f := app.frames[0]
	app.mu.Unlock()
	if f.Data[0] != 1 || f.Width != 1280 || f.Height != 720 || f.Subtype != SubtypeARGB32 {
		t.Errorf("frame = %+v", f)
	}
	if f.Timestamp != 40*time.Millisecond {
		t.Errorf("timestamp = %v", f.Timestamp)
	}
	if buf.unlocks != 1 {
		t.Errorf("unlocks = %d", buf.unlocks)
	}
	if _, err := c.StopRecording(ctx); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("StopRecording on image stream: %v", err)
	}
	if err := c.StopImageStream(ctx); err != nil {
		t.Fatal(err)
	}
	// a late frame from the detached stream callback is ignored
	sink.callback.OnSample(&fakeSample{buf: &fakeBuffer{data: src}})
	app.mu.Lock()
	defer app.mu.Unlock()
	if len(app.frames) != 1 || len(app.stopped) != 0 {
		t.Errorf("frames=%d stopped=%v", len(app.frames), app.stopped)
	}
}
