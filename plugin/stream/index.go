package plugin_stream

import (
	"encoding/binary"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	camera "m7s.live/camera/v5"
	"m7s.live/camera/v5/pkg/config"
)

// FrameHeaderSize prefixes every binary frame message:
// width, height (uint32) and timestamp in microseconds (uint64), big endian.
const FrameHeaderSize = 16

const consumerQueue = 4

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type (
	message struct {
		kind int
		data []byte
	}
	consumer struct {
		id uint
		c  chan message
	}
	Event struct {
		Event    string `json:"event"`
		Path     string `json:"path,omitempty"`
		Duration int64  `json:"durationMs,omitempty"`
		Error    string `json:"error,omitempty"`
	}
)

var _ camera.Application = (*Hub)(nil)

// Hub relays image stream frames and controller notifications to websocket
// clients. A client that cannot keep up loses frames, never the capture.
type Hub struct {
	*slog.Logger
	Next         camera.Application
	WriteTimeout time.Duration
	Dropped      atomic.Uint64
	mu           sync.RWMutex
	consumers    []consumer
	lastID       uint
}

func NewHub(conf config.HTTP, logger *slog.Logger, next camera.Application) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{Logger: logger.With("plugin", "stream"), Next: next, WriteTimeout: conf.WriteTimeout}
}

func (h *Hub) addConsumer() consumer {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastID++
	c := consumer{id: h.lastID, c: make(chan message, consumerQueue)}
	h.consumers = append(h.consumers, c)
	return c
}

func (h *Hub) removeConsumer(id uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, c := range h.consumers {
		if c.id == id {
			h.consumers = append(h.consumers[:i], h.consumers[i+1:]...)
			return
		}
	}
}

func (h *Hub) Consumers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.consumers)
}

func (h *Hub) send(m message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.consumers {
		select {
		case c.c <- m:
		default:
			h.Dropped.Add(1)
		}
	}
}

func (h *Hub) sendEvent(e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		h.Error("marshal event", "error", err)
		return
	}
	h.send(message{websocket.TextMessage, data})
}

func (h *Hub) OnFrameAvailable(frame camera.Frame) {
	data := make([]byte, FrameHeaderSize+len(frame.Data))
	binary.BigEndian.PutUint32(data, frame.Width)
	binary.BigEndian.PutUint32(data[4:], frame.Height)
	binary.BigEndian.PutUint64(data[8:], uint64(frame.Timestamp.Microseconds()))
	copy(data[FrameHeaderSize:], frame.Data)
	h.send(message{websocket.BinaryMessage, data})
	if h.Next != nil {
		h.Next.OnFrameAvailable(frame)
	}
}

func (h *Hub) OnRecordingStarted() {
	h.sendEvent(Event{Event: "recording_started"})
	if h.Next != nil {
		h.Next.OnRecordingStarted()
	}
}

func (h *Hub) OnRecordingStopped(path string) {
	h.sendEvent(Event{Event: "recording_stopped", Path: path})
	if h.Next != nil {
		h.Next.OnRecordingStopped(path)
	}
}

func (h *Hub) OnVideoRecorded(path string, duration time.Duration) {
	h.sendEvent(Event{Event: "video_recorded", Path: path, Duration: duration.Milliseconds()})
	if h.Next != nil {
		h.Next.OnVideoRecorded(path, duration)
	}
}

func (h *Hub) OnCaptureError(err error) {
	h.sendEvent(Event{Event: "capture_error", Error: err.Error()})
	if h.Next != nil {
		h.Next.OnCaptureError(err)
	}
}

func (h *Hub) OnCameraClosing() {
	h.sendEvent(Event{Event: "camera_closing"})
	if h.Next != nil {
		h.Next.OnCameraClosing()
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Warn("upgrade", "error", err)
		return
	}
	var lastPing, lastPong atomic.Int64
	lastPong.Store(time.Now().UnixNano())
	conn.SetPongHandler(func(string) error {
		lastPong.Store(time.Now().UnixNano())
		return nil
	})
	closed := make(chan struct{})
	// read and discard all messages
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
	c := h.addConsumer()
	h.Info("client connected", "id", c.id, "remote", r.RemoteAddr)
	defer func() {
		h.removeConsumer(c.id)
		conn.Close()
		h.Info("client disconnected", "id", c.id)
	}()
	var i uint
	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case m := <-c.c:
			if h.WriteTimeout > 0 {
				conn.SetWriteDeadline(time.Now().Add(h.WriteTimeout))
			}
			if err = conn.WriteMessage(m.kind, m.data); err != nil {
				h.Debug("write", "id", c.id, "error", err)
				return
			}
			if i++; i%30 == 0 {
				if lastPing.Load()-lastPong.Load() > int64(time.Minute) {
					return
				}
				now := time.Now()
				if err = conn.WriteControl(websocket.PingMessage, nil, now.Add(time.Second)); err != nil {
					return
				}
				lastPing.Store(now.UnixNano())
			}
		}
	}
}
