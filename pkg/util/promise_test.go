package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPromiseResolve(t *testing.T) {
	p := NewPromise("")
	go func() {
		time.Sleep(10 * time.Millisecond)
		p.Resolve("out.mp4")
	}()
	v, err := p.Await(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if v != "out.mp4" {
		t.Errorf("expected out.mp4, got %q", v)
	}
	if p.IsPending() {
		t.Error("promise should be settled")
	}
}

func TestPromiseSettlesOnce(t *testing.T) {
	errFirst := errors.New("first")
	p := NewPromise(0)
	p.Fulfill(errFirst)
	p.Resolve(42)
	v, err := p.Await(context.Background())
	if !errors.Is(err, errFirst) {
		t.Errorf("expected first error, got %v", err)
	}
	if v != 0 {
		t.Errorf("value must not change after settle, got %d", v)
	}
}

func TestPromiseAwaitContext(t *testing.T) {
	p := NewPromise(struct{}{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := p.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if !p.IsPending() {
		t.Error("promise should still be pending")
	}
}
