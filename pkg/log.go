package pkg

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

const TraceLevel = slog.Level(-8)

var _ slog.Handler = (*MultiLogHandler)(nil)

func ParseLevel(level string) slog.Level {
	var lv slog.LevelVar
	if level == "trace" {
		lv.Set(TraceLevel)
	} else {
		lv.UnmarshalText([]byte(level))
	}
	return lv.Level()
}

// MultiLogHandler fans a record out to every registered handler.
// Children created through WithAttrs or WithGroup follow later Add and
// Remove calls on their parent.
type MultiLogHandler struct {
	mu          sync.RWMutex
	handlers    []slog.Handler
	origins     []slog.Handler // handler registered with Add that handlers[i] derives from
	children    map[*MultiLogHandler]func(slog.Handler) slog.Handler
	parentLevel *slog.Level
	level       *slog.Level
}

func NewMultiLogHandler(level slog.Level, handlers ...slog.Handler) *MultiLogHandler {
	return &MultiLogHandler{
		handlers: handlers,
		origins:  slices.Clone(handlers),
		level:    &level,
	}
}

func (m *MultiLogHandler) add(origin, h slog.Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, h)
	m.origins = append(m.origins, origin)
	for child, derive := range m.children {
		child.add(origin, derive(h))
	}
}

func (m *MultiLogHandler) Add(h slog.Handler) {
	m.add(h, h)
}

func (m *MultiLogHandler) Remove(h slog.Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := slices.Index(m.origins, h); i != -1 {
		m.handlers = slices.Delete(m.handlers, i, i+1)
		m.origins = slices.Delete(m.origins, i, i+1)
	}
	for child := range m.children {
		child.Remove(h)
	}
}

func (m *MultiLogHandler) SetLevel(level slog.Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.level == nil {
		m.level = &level
	} else {
		*m.level = level
	}
}

// Enabled implements slog.Handler.
func (m *MultiLogHandler) Enabled(_ context.Context, l slog.Level) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.level != nil {
		return l >= *m.level
	}
	if m.parentLevel != nil {
		return l >= *m.parentLevel
	}
	return l >= slog.LevelInfo
}

// Handle implements slog.Handler. A failing handler does not keep the
// record from the others.
func (m *MultiLogHandler) Handle(ctx context.Context, rec slog.Record) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, rec.Level) {
			continue
		}
		if err := h.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiLogHandler) derive(fn func(slog.Handler) slog.Handler) *MultiLogHandler {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := &MultiLogHandler{
		handlers:    make([]slog.Handler, len(m.handlers)),
		origins:     slices.Clone(m.origins),
		parentLevel: m.parentLevel,
	}
	if m.level != nil {
		result.parentLevel = m.level
	}
	for i, h := range m.handlers {
		result.handlers[i] = fn(h)
	}
	if m.children == nil {
		m.children = make(map[*MultiLogHandler]func(slog.Handler) slog.Handler)
	}
	m.children[result] = fn
	return result
}

// WithAttrs implements slog.Handler.
func (m *MultiLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler {
		return h.WithAttrs(attrs)
	})
}

// WithGroup implements slog.Handler.
func (m *MultiLogHandler) WithGroup(name string) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler {
		return h.WithGroup(name)
	})
}
