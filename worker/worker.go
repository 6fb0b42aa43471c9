package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotStarted  = errors.New("worker not started")
	ErrJoinTimeout = errors.New("worker join timed out")
)

// PanicError is returned from Join when the worker's function panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Worker runs one function on its own goroutine and hands its outcome,
// a value or an error, to whoever joins it.
type Worker[T any] struct {
	id      string
	fn      func() (T, error)
	once    sync.Once
	started atomic.Bool
	done    chan struct{}

	// written once by run before done is closed
	value T
	err   error
}

// New returns an unstarted worker for fn.
func New[T any](fn func() (T, error)) *Worker[T] {
	return &Worker[T]{
		id:   uuid.NewString(),
		fn:   fn,
		done: make(chan struct{}),
	}
}

// NewFunc wraps a function that produces no value.
func NewFunc(fn func() error) *Worker[struct{}] {
	return New(func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

// Go creates and starts a worker for fn.
func Go[T any](fn func() (T, error)) *Worker[T] {
	w := New(fn)
	w.Start()
	return w
}

// ID identifies the worker in logs.
func (w *Worker[T]) ID() string {
	return w.id
}

// Start launches the worker's goroutine. Calls after the first do nothing.
func (w *Worker[T]) Start() {
	w.once.Do(func() {
		w.started.Store(true)
		go w.run()
	})
}

func (w *Worker[T]) run() {
	defer close(w.done)
	defer func() {
		if r := recover(); r != nil {
			var zero T
			w.value = zero
			w.err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	w.value, w.err = w.fn()
}

// Done is closed once the worker's function has returned.
func (w *Worker[T]) Done() <-chan struct{} {
	return w.done
}

// Join blocks until the worker finishes or timeout elapses, then returns the
// function's value or the exact error it returned. A timeout of zero or less
// waits indefinitely. On timeout the worker keeps running and ErrJoinTimeout
// is returned; a later Join still collects the outcome.
func (w *Worker[T]) Join(timeout time.Duration) (T, error) {
	var zero T
	if !w.started.Load() {
		return zero, ErrNotStarted
	}
	if timeout <= 0 {
		<-w.done
		return w.value, w.err
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-w.done:
		return w.value, w.err
	case <-timer.C:
		return zero, ErrJoinTimeout
	}
}

// Wait is Join bounded by ctx instead of a timeout. When ctx ends first its
// error is returned.
func (w *Worker[T]) Wait(ctx context.Context) (T, error) {
	var zero T
	if !w.started.Load() {
		return zero, ErrNotStarted
	}
	select {
	case <-w.done:
		return w.value, w.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
