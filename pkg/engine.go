package pkg

import "fmt"

type (
	EventType byte
	SinkType  byte
	// StreamSource selects which device stream feeds a sink stream.
	StreamSource byte
)

const (
	EventInitialized EventType = iota + 1
	EventPreviewStarted
	EventPreviewStopped
	EventRecordStarted
	EventRecordStopped
	EventError
)

const (
	SinkPreview SinkType = iota + 1
	SinkRecord
)

const (
	SourcePreferredVideoPreview StreamSource = iota + 1
	SourcePreferredVideoRecord
	SourcePreferredAudio
)

func (t EventType) String() string {
	switch t {
	case EventInitialized:
		return "initialized"
	case EventPreviewStarted:
		return "preview_started"
	case EventPreviewStopped:
		return "preview_stopped"
	case EventRecordStarted:
		return "record_started"
	case EventRecordStopped:
		return "record_stopped"
	case EventError:
		return "error"
	}
	return fmt.Sprintf("event(%d)", byte(t))
}

type (
	// Event is a notification from the capture pipeline. Err carries the
	// pipeline status for the operation the event confirms.
	Event struct {
		Type EventType
		Err  error
	}

	// MediaBuffer is a view of a sample's memory. The slice returned by Lock
	// is only valid until Unlock.
	MediaBuffer interface {
		Lock() ([]byte, error)
		Unlock() error
	}

	// Sample is a frame delivered by the pipeline. It is only valid for the
	// duration of the callback that delivers it.
	Sample interface {
		// Time is the presentation time in 100-nanosecond device ticks.
		Time() (int64, error)
		ContiguousBuffer() (MediaBuffer, error)
	}

	EventCallback interface {
		OnEvent(Event)
	}

	SampleCallback interface {
		OnSample(Sample) error
	}

	// Sink is an output endpoint of the pipeline graph.
	Sink interface {
		RemoveAllStreams() error
		AddStream(source StreamSource, mt *MediaType) (int, error)
		SetOutputFileName(path string) error
		SetSampleCallback(stream int, cb SampleCallback) error
	}

	// Engine is the hardware capture pipeline. Callbacks registered here are
	// invoked on pipeline-owned goroutines, never from inside a command.
	Engine interface {
		RegisterCallback(EventCallback) error
		UnregisterCallback()
		GetSink(SinkType) (Sink, error)
		StartPreview() error
		StopPreview() error
		StartRecord() error
		StopRecord(finalize, flush bool) error
		// AudioOutputTypes enumerates encoder output types for subtype,
		// best match first.
		AudioOutputTypes(subtype Subtype, lowLatency bool) ([]*MediaType, error)
	}
)

// TicksToMicroseconds converts 100-nanosecond device ticks to microseconds.
func TicksToMicroseconds(ticks int64) int64 {
	return ticks / 10
}
