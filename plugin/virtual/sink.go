package plugin_virtual

import (
	"fmt"
	"sync"

	"m7s.live/camera/v5/pkg"
)

type stream struct {
	source   pkg.StreamSource
	mt       *pkg.MediaType
	callback pkg.SampleCallback
}

// Sink is one output endpoint of the virtual device.
type Sink struct {
	mu         sync.Mutex
	kind       pkg.SinkType
	streams    []stream
	outputPath string
}

type sinkSnapshot struct {
	streams    []stream
	outputPath string
}

func newSink(kind pkg.SinkType) *Sink {
	return &Sink{kind: kind}
}

func (s *Sink) RemoveAllStreams() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streams = nil
	return nil
}

func (s *Sink) AddStream(source pkg.StreamSource, mt *pkg.MediaType) (int, error) {
	if mt == nil {
		return -1, pkg.ErrInvalidArgument
	}
	switch source {
	case pkg.SourcePreferredVideoPreview, pkg.SourcePreferredVideoRecord:
		if mt.MajorType() != pkg.MajorTypeVideo {
			return -1, fmt.Errorf("%w: %s on a video source", pkg.ErrInvalidArgument, mt.Subtype())
		}
	case pkg.SourcePreferredAudio:
		if s.kind != pkg.SinkRecord {
			return -1, fmt.Errorf("%w: audio stream on preview sink", pkg.ErrInvalidOperation)
		}
		if mt.MajorType() != pkg.MajorTypeAudio {
			return -1, fmt.Errorf("%w: %s on the audio source", pkg.ErrInvalidArgument, mt.Subtype())
		}
	default:
		return -1, fmt.Errorf("%w: stream source %d", pkg.ErrInvalidArgument, source)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streams = append(s.streams, stream{source: source, mt: mt.Clone()})
	return len(s.streams) - 1, nil
}

func (s *Sink) SetOutputFileName(path string) error {
	if path == "" {
		return pkg.ErrInvalidArgument
	}
	if s.kind != pkg.SinkRecord {
		return fmt.Errorf("%w: preview sink has no output file", pkg.ErrInvalidOperation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputPath = path
	return nil
}

func (s *Sink) SetSampleCallback(index int, cb pkg.SampleCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.streams) {
		return fmt.Errorf("%w: stream %d of %d", pkg.ErrInvalidArgument, index, len(s.streams))
	}
	s.streams[index].callback = cb
	return nil
}

func (s *Sink) snapshot() sinkSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sinkSnapshot{
		streams:    append([]stream(nil), s.streams...),
		outputPath: s.outputPath,
	}
}

// callbackStreams lists the streams that deliver samples.
func (s *Sink) callbackStreams() (ret []stream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.streams {
		if st.callback != nil {
			ret = append(ret, st)
		}
	}
	return
}
