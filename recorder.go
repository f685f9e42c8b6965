package camera

import (
	"errors"
	"fmt"
	"sync"
	"time"

	. "m7s.live/camera/v5/pkg"
	"m7s.live/camera/v5/pkg/config"
)

type RecordingType byte

const (
	// RecordingTypeNone means the camera is not recording.
	RecordingTypeNone RecordingType = iota
	// RecordingTypeContinuous runs until a separate stop command.
	RecordingTypeContinuous
	// RecordingTypeTimed is stopped by the owner once the maximum duration passed.
	RecordingTypeTimed
)

// RecordState moves strictly NotStarted -> Starting -> Running -> Stopping -> NotStarted.
type RecordState byte

const (
	RecordStateNotStarted RecordState = iota
	RecordStateStarting
	RecordStateRunning
	RecordStateStopping
)

func (s RecordState) String() string {
	switch s {
	case RecordStateNotStarted:
		return "not_started"
	case RecordStateStarting:
		return "starting"
	case RecordStateRunning:
		return "running"
	case RecordStateStopping:
		return "stopping"
	}
	return fmt.Sprintf("record_state(%d)", byte(s))
}

func (t RecordingType) String() string {
	switch t {
	case RecordingTypeContinuous:
		return "continuous"
	case RecordingTypeTimed:
		return "timed"
	}
	return "none"
}

type (
	// RecordTarget is either a FileTarget or a StreamTarget.
	RecordTarget interface {
		recordTarget()
	}
	// FileTarget encodes compressed video (and audio) into a container file.
	FileTarget struct {
		Path string
	}
	// StreamTarget delivers uncompressed frames to a per-frame callback.
	StreamTarget struct {
		Callback SampleCallback
	}
)

func (FileTarget) recordTarget()   {}
func (StreamTarget) recordTarget() {}

// sinkRequest is the resolved sink setup for one start request.
type sinkRequest struct {
	target RecordTarget
	reuse  bool
}

// planSink decides between reusing the existing record sink and rebuilding it.
// Only a file recording over a sink that was last built for a file is reused.
func planSink(target RecordTarget, haveSink, sinkStreaming bool) sinkRequest {
	_, isFile := target.(FileTarget)
	return sinkRequest{target: target, reuse: isFile && haveSink && !sinkStreaming}
}

// RecordHandler owns the lifecycle of a single recording: record sink
// configuration, start/stop state and timed-duration bookkeeping.
type RecordHandler struct {
	mu               sync.Mutex
	settings         config.Record
	maxDurationMs    int64
	startTimestampUs int64
	durationUs       int64
	filePath         string
	streaming        bool
	state            RecordState
	recordingType    RecordingType
	videoType        *MediaType
	// the record sink outlives a session; sinkType is what it was built with
	sink          Sink
	sinkType      *MediaType
	sinkStreaming bool
}

func NewRecordHandler(settings config.Record) *RecordHandler {
	return &RecordHandler{
		settings:         settings,
		maxDurationMs:    -1,
		startTimestampUs: -1,
	}
}

// StartRecord configures the record sink for target and asks the engine to
// start recording. maxDurationMs < 0 records until StopRecord.
// On any failure the handler keeps its previous state.
func (r *RecordHandler) StartRecord(target RecordTarget, maxDurationMs int64, engine Engine, baseType *MediaType) (err error) {
	if engine == nil || baseType == nil {
		return ErrInvalidArgument
	}
	switch t := target.(type) {
	case FileTarget:
		if t.Path == "" {
			return fmt.Errorf("%w: empty file path", ErrInvalidArgument)
		}
	case StreamTarget:
		if t.Callback == nil {
			return fmt.Errorf("%w: nil sample callback", ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("%w: unknown record target %T", ErrInvalidArgument, target)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != RecordStateNotStarted {
		return fmt.Errorf("%w: recording is %s", ErrInvalidOperation, r.state)
	}
	if err = r.initRecordSink(planSink(target, r.sink != nil, r.sinkStreaming), engine, baseType); err != nil {
		return
	}
	r.recordingType = RecordingTypeContinuous
	if maxDurationMs >= 0 {
		r.recordingType = RecordingTypeTimed
	}
	r.maxDurationMs = maxDurationMs
	r.startTimestampUs = -1
	r.durationUs = 0
	r.filePath = ""
	r.streaming = false
	switch t := target.(type) {
	case FileTarget:
		r.filePath = t.Path
	case StreamTarget:
		r.streaming = true
	}
	r.state = RecordStateStarting
	if err = engine.StartRecord(); err != nil {
		r.reset()
	}
	return
}

func (r *RecordHandler) initRecordSink(req sinkRequest, engine Engine, baseType *MediaType) (err error) {
	if req.reuse {
		path := req.target.(FileTarget).Path
		if err = r.sink.SetOutputFileName(path); err != nil {
			r.dropSink()
			return
		}
		r.videoType = r.sinkType.Clone()
		return
	}
	sink, err := engine.GetSink(SinkRecord)
	if err != nil {
		return
	}
	if err = sink.RemoveAllStreams(); err != nil {
		return
	}
	r.dropSink()
	subtype := SubtypeH264
	if _, ok := req.target.(StreamTarget); ok {
		subtype = SubtypeARGB32
	}
	videoType := buildVideoType(baseType, subtype)
	if r.settings.FPS > 0 {
		videoType.SetFrameRate(r.settings.FPS, 1)
	}
	if r.settings.VideoBitrate > 0 {
		videoType.SetBitrate(r.settings.VideoBitrate)
	}
	videoStream, err := sink.AddStream(SourcePreferredVideoRecord, videoType)
	if err != nil {
		return
	}
	switch t := req.target.(type) {
	case FileTarget:
		if r.settings.RecordAudio {
			var audioType *MediaType
			if audioType, err = buildAudioType(engine, r.settings.AudioBitrate); err != nil {
				return fmt.Errorf("%w: %w", ErrSinkConfiguration, err)
			}
			if _, err = sink.AddStream(SourcePreferredAudio, audioType); err != nil {
				return
			}
		}
		err = sink.SetOutputFileName(t.Path)
	case StreamTarget:
		err = sink.SetSampleCallback(videoStream, t.Callback)
	}
	if err != nil {
		return
	}
	_, r.sinkStreaming = req.target.(StreamTarget)
	r.sink = sink
	r.sinkType = videoType
	r.videoType = videoType.Clone()
	return
}

func (r *RecordHandler) dropSink() {
	r.sink = nil
	r.sinkType = nil
	r.sinkStreaming = false
}

func buildVideoType(baseType *MediaType, subtype Subtype) *MediaType {
	mt := baseType.Clone()
	mt.SetSubtype(subtype)
	mt.SetAllSamplesIndependent(true)
	return mt
}

// buildAudioType picks the first low latency AAC output type of the engine.
func buildAudioType(engine Engine, bytesPerSecond uint32) (*MediaType, error) {
	types, err := engine.AudioOutputTypes(SubtypeAAC, true)
	if err != nil {
		return nil, errors.Join(ErrNoAudioEncoder, err)
	}
	if len(types) == 0 || types[0] == nil {
		return nil, ErrNoAudioEncoder
	}
	mt := types[0].Clone()
	if bytesPerSecond > 0 {
		mt.SetAudioBytesPerSecond(bytesPerSecond)
	}
	return mt, nil
}

// StopRecord asks the engine to flush and finalize the running recording.
func (r *RecordHandler) StopRecord(engine Engine) (err error) {
	if engine == nil {
		return ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != RecordStateRunning {
		return fmt.Errorf("%w: recording is %s", ErrInvalidOperation, r.state)
	}
	r.state = RecordStateStopping
	if err = engine.StopRecord(true, false); err != nil {
		r.state = RecordStateRunning
	}
	return
}

// OnRecordStarted confirms a start request. Timing restarts so the first
// update seen while running latches the start timestamp.
func (r *RecordHandler) OnRecordStarted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != RecordStateStarting {
		return false
	}
	r.state = RecordStateRunning
	r.startTimestampUs = -1
	r.durationUs = 0
	return true
}

// OnRecordStopped confirms a stop request and clears the session.
func (r *RecordHandler) OnRecordStopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != RecordStateStopping {
		return false
	}
	r.reset()
	return true
}

// Reset drops the session and the record sink after a pipeline failure.
// The next StartRecord rebuilds the sink.
func (r *RecordHandler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
	r.dropSink()
}

func (r *RecordHandler) reset() {
	r.filePath = ""
	r.streaming = false
	r.startTimestampUs = -1
	r.durationUs = 0
	r.maxDurationMs = -1
	r.state = RecordStateNotStarted
	r.recordingType = RecordingTypeNone
	r.videoType = nil
}

// UpdateRecordingTime runs for every sample. The duration is only meaningful
// while the state is running.
func (r *RecordHandler) UpdateRecordingTime(timestampUs int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.startTimestampUs < 0 {
		r.startTimestampUs = timestampUs
	}
	r.durationUs = max(0, timestampUs-r.startTimestampUs)
}

func (r *RecordHandler) ShouldStopTimedRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shouldStopTimedRecording()
}

func (r *RecordHandler) shouldStopTimedRecording() bool {
	return r.recordingType == RecordingTypeTimed &&
		r.state == RecordStateRunning &&
		r.maxDurationMs > 0 &&
		r.durationUs >= r.maxDurationMs*1000
}

// VideoFrameSize describes the video stream of the current recording. It
// returns zeros while idle.
func (r *RecordHandler) VideoFrameSize() (width, height uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.videoType.FrameSize()
}

func (r *RecordHandler) MediaSubtype() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.videoType.Subtype())
}

func (r *RecordHandler) State() RecordState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *RecordHandler) Type() RecordingType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recordingType
}

func (r *RecordHandler) IsTimedRecording() bool {
	return r.Type() == RecordingTypeTimed
}

func (r *RecordHandler) IsContinuousRecording() bool {
	return r.Type() == RecordingTypeContinuous
}

func (r *RecordHandler) IsStreaming() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.streaming
}

func (r *RecordHandler) RecordPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filePath
}

func (r *RecordHandler) RecordedDuration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.durationUs) * time.Microsecond
}

func (r *RecordHandler) MaxDuration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.maxDurationMs < 0 {
		return -1
	}
	return time.Duration(r.maxDurationMs) * time.Millisecond
}

func (r *RecordHandler) hasSink() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sink != nil
}
