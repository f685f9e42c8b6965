package camera

import (
	"sync/atomic"

	. "m7s.live/camera/v5/pkg"
)

type (
	// CaptureObserver is what the Listener forwards pipeline traffic to.
	CaptureObserver interface {
		OnEvent(Event)
		UpdateCaptureTime(timestampUs int64)
		IsReadyForSample() bool
		// UpdateBuffer copies a locked frame. data is invalid after it returns.
		UpdateBuffer(data []byte) bool
	}
	// ImageStreamObserver takes over stream-mode samples.
	ImageStreamObserver interface {
		EnrichBuffer(Sample)
	}
)

type (
	captureRef struct {
		CaptureObserver
	}
	imageStreamRef struct {
		ImageStreamObserver
	}
)

// Listener bridges pipeline callbacks to a CaptureObserver. The pipeline may
// call it from any goroutine; after Detach every call is a no-op.
type Listener struct {
	observer atomic.Pointer[captureRef]
}

func NewListener(observer CaptureObserver) *Listener {
	l := &Listener{}
	l.Attach(observer)
	return l
}

func (l *Listener) Attach(observer CaptureObserver) {
	if observer == nil {
		l.observer.Store(nil)
		return
	}
	l.observer.Store(&captureRef{observer})
}

func (l *Listener) Detach() {
	l.observer.Store(nil)
}

func (l *Listener) OnEvent(event Event) {
	if ref := l.observer.Load(); ref != nil {
		ref.OnEvent(event)
	}
}

// OnSample reports the sample time to the observer and, when it wants
// frames, copies the sample's buffer to it. A sample without a contiguous
// buffer is dropped silently. A failed lock is returned to the pipeline.
func (l *Listener) OnSample(sample Sample) (err error) {
	ref := l.observer.Load()
	if ref == nil || sample == nil {
		return nil
	}
	if ticks, terr := sample.Time(); terr == nil {
		ref.UpdateCaptureTime(TicksToMicroseconds(ticks))
	}
	if !ref.IsReadyForSample() {
		return nil
	}
	buf, berr := sample.ContiguousBuffer()
	if berr != nil || buf == nil {
		return nil
	}
	data, err := buf.Lock()
	if err == nil {
		ref.UpdateBuffer(data)
	}
	if uerr := buf.Unlock(); err == nil {
		err = uerr
	}
	return
}

// ImageStreamListener hands every sample of a stream-mode recording to its
// observer without touching the buffer.
type ImageStreamListener struct {
	observer atomic.Pointer[imageStreamRef]
}

func NewImageStreamListener(observer ImageStreamObserver) *ImageStreamListener {
	l := &ImageStreamListener{}
	if observer != nil {
		l.observer.Store(&imageStreamRef{observer})
	}
	return l
}

func (l *ImageStreamListener) Detach() {
	l.observer.Store(nil)
}

func (l *ImageStreamListener) OnSample(sample Sample) error {
	if ref := l.observer.Load(); ref != nil && sample != nil {
		ref.EnrichBuffer(sample)
	}
	return nil
}
