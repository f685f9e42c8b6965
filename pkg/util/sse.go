package util

import (
	"context"
	"net"
	"net/http"
)

var (
	sseEvent = []byte("event: ")
	sseBegin = []byte("data: ")
	sseEnd   = []byte("\n\n")
)

// SSE writes server-sent events until its context ends.
type SSE struct {
	http.ResponseWriter
	context.Context
}

func NewSSE(w http.ResponseWriter, ctx context.Context) *SSE {
	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	header.Set("Access-Control-Allow-Origin", "*")
	return &SSE{
		ResponseWriter: w,
		Context:        ctx,
	}
}

func (sse *SSE) flush(buffers net.Buffers) (n int64, err error) {
	if err = sse.Err(); err != nil {
		return
	}
	if n, err = buffers.WriteTo(sse.ResponseWriter); err == nil {
		if f, ok := sse.ResponseWriter.(http.Flusher); ok {
			f.Flush()
		}
	}
	return
}

// Write sends data as one event. A trailing newline is dropped.
func (sse *SSE) Write(data []byte) (int, error) {
	payload := data
	if l := len(payload); l > 0 && payload[l-1] == '\n' {
		payload = payload[:l-1]
	}
	if _, err := sse.flush(net.Buffers{sseBegin, payload, sseEnd}); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (sse *SSE) WriteEvent(event string, data []byte) (err error) {
	_, err = sse.flush(net.Buffers{sseEvent, []byte(event + "\n"), sseBegin, data, sseEnd})
	return
}
