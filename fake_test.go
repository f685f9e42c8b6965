package camera

import (
	"sync"
	"testing"
	"time"

	. "m7s.live/camera/v5/pkg"
)

type fakeBuffer struct {
	data      []byte
	lockErr   error
	unlockErr error
	locks     int
	unlocks   int
}

func (b *fakeBuffer) Lock() ([]byte, error) {
	b.locks++
	if b.lockErr != nil {
		return nil, b.lockErr
	}
	return b.data, nil
}

func (b *fakeBuffer) Unlock() error {
	b.unlocks++
	return b.unlockErr
}

type fakeSample struct {
	ticks   int64
	timeErr error
	buf     *fakeBuffer
	bufErr  error
}

func (s *fakeSample) Time() (int64, error) {
	return s.ticks, s.timeErr
}

func (s *fakeSample) ContiguousBuffer() (MediaBuffer, error) {
	if s.bufErr != nil {
		return nil, s.bufErr
	}
	if s.buf == nil {
		return nil, nil
	}
	return s.buf, nil
}

type fakeSink struct {
	removeErr   error
	addErr      error
	outputErr   error
	callbackErr error
	removes     int
	streams     []*MediaType
	sources     []StreamSource
	outputPath  string
	outputs     int
	callback    SampleCallback
	callbackIdx int
}

func (s *fakeSink) RemoveAllStreams() error {
	s.removes++
	if s.removeErr != nil {
		return s.removeErr
	}
	s.streams, s.sources = nil, nil
	return nil
}

func (s *fakeSink) AddStream(source StreamSource, mt *MediaType) (int, error) {
	if s.addErr != nil {
		return 0, s.addErr
	}
	s.streams = append(s.streams, mt)
	s.sources = append(s.sources, source)
	return len(s.streams) - 1, nil
}

func (s *fakeSink) SetOutputFileName(path string) error {
	s.outputs++
	if s.outputErr != nil {
		return s.outputErr
	}
	s.outputPath = path
	return nil
}

func (s *fakeSink) SetSampleCallback(stream int, cb SampleCallback) error {
	if s.callbackErr != nil {
		return s.callbackErr
	}
	s.callbackIdx, s.callback = stream, cb
	return nil
}

// fakeEngine confirms commands asynchronously unless hold is set for them.
type fakeEngine struct {
	mu              sync.Mutex
	cb              EventCallback
	sinks           map[SinkType]*fakeSink
	getSinkCalls    int
	getSinkErr      error
	audioTypes      []*MediaType
	audioErr        error
	startRecordErr  error
	stopRecordErr   error
	startPreviewErr error
	startRecords    int
	stopRecords     int
	startPreviews   int
	stopPreviews    int
	stopArgs        [2]bool
	holdRecord      bool
	holdStop        bool
	holdInit        bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		sinks: map[SinkType]*fakeSink{
			SinkPreview: {},
			SinkRecord:  {},
		},
		audioTypes: []*MediaType{NewAudioType(SubtypeAAC, 48000, 2, 12000)},
	}
}

func (e *fakeEngine) emit(event Event) {
	e.mu.Lock()
	cb := e.cb
	e.mu.Unlock()
	if cb != nil {
		go cb.OnEvent(event)
	}
}

func (e *fakeEngine) RegisterCallback(cb EventCallback) error {
	e.mu.Lock()
	e.cb = cb
	hold := e.holdInit
	e.mu.Unlock()
	if !hold {
		e.emit(Event{Type: EventInitialized})
	}
	return nil
}

func (e *fakeEngine) UnregisterCallback() {
	e.mu.Lock()
	e.cb = nil
	e.mu.Unlock()
}

func (e *fakeEngine) GetSink(t SinkType) (Sink, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.getSinkCalls++
	if e.getSinkErr != nil {
		return nil, e.getSinkErr
	}
	return e.sinks[t], nil
}

func (e *fakeEngine) StartPreview() error {
	e.mu.Lock()
	e.startPreviews++
	err := e.startPreviewErr
	e.mu.Unlock()
	if err == nil {
		e.emit(Event{Type: EventPreviewStarted})
	}
	return err
}

func (e *fakeEngine) StopPreview() error {
	e.mu.Lock()
	e.stopPreviews++
	e.mu.Unlock()
	e.emit(Event{Type: EventPreviewStopped})
	return nil
}

func (e *fakeEngine) StartRecord() error {
	e.mu.Lock()
	e.startRecords++
	err, hold := e.startRecordErr, e.holdRecord
	e.mu.Unlock()
	if err == nil && !hold {
		e.emit(Event{Type: EventRecordStarted})
	}
	return err
}

func (e *fakeEngine) StopRecord(finalize, flush bool) error {
	e.mu.Lock()
	e.stopRecords++
	e.stopArgs = [2]bool{finalize, flush}
	err, hold := e.stopRecordErr, e.holdStop
	e.mu.Unlock()
	if err == nil && !hold {
		e.emit(Event{Type: EventRecordStopped})
	}
	return err
}

func (e *fakeEngine) AudioOutputTypes(subtype Subtype, lowLatency bool) ([]*MediaType, error) {
	return e.audioTypes, e.audioErr
}

func (e *fakeEngine) counts() (startRecords, stopRecords int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startRecords, e.stopRecords
}

func sourceType() *MediaType {
	return NewVideoType(SubtypeNV12, 1280, 720, 30)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}
