package util

import (
	"context"
	"errors"
	"sync"
)

// Promise is settled exactly once; later Fulfill/Resolve calls are ignored.
type Promise[T any] struct {
	context.Context
	context.CancelCauseFunc
	Value  T
	settle sync.Once
}

func NewPromise[T any](v T) *Promise[T] {
	p := &Promise[T]{Value: v}
	p.Context, p.CancelCauseFunc = context.WithCancelCause(context.Background())
	return p
}

var ErrResolve = errors.New("promise resolved")

func (p *Promise[T]) Fulfill(err error) {
	p.settle.Do(func() {
		p.CancelCauseFunc(Conditional(err == nil, ErrResolve, err))
	})
}

func (p *Promise[T]) Resolve(v T) {
	p.settle.Do(func() {
		p.Value = v
		p.CancelCauseFunc(ErrResolve)
	})
}

func (p *Promise[T]) IsPending() bool {
	return p.Err() == nil
}

// Await blocks until the promise settles or ctx is done.
func (p *Promise[T]) Await(ctx context.Context) (v T, err error) {
	select {
	case <-p.Done():
		if err = context.Cause(p.Context); errors.Is(err, ErrResolve) {
			return p.Value, nil
		}
		return
	case <-ctx.Done():
		return v, context.Cause(ctx)
	}
}

func Conditional[T any](cond bool, t, f T) T {
	if cond {
		return t
	}
	return f
}
