// Package mutation tracks the lifecycle of a single wrapped async operation
// through the states initial, loading, success, empty, and error, without
// manual bookkeeping in the view-model. A Mutation notifies its own
// subscribers on every transition and is intentionally decoupled from the
// process-wide store observer.
package mutation

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// Producer is the wrapped async operation. A nil-able result value that is
// nil maps to the empty state; a returned error maps to the error state.
type Producer[T any] func(ctx context.Context) (T, error)

// Mutation is the async-operation tracker. Create one per long-lived
// operation slot on a view-model; it is garbage-collected with its owner
// and needs no explicit teardown.
type Mutation[T any] struct {
	producer Producer[T]

	mu    sync.Mutex
	state State[T]
	gen   uint64

	subMu sync.Mutex
	subs  []*subEntry[T]
}

type subEntry[T any] struct {
	fn      func(prev, next State[T])
	removed atomic.Bool
}

// New wraps producer in a Mutation starting in the initial state. Producer
// panics are recovered into the error state, never propagated to the
// caller of Call.
func New[T any](producer Producer[T]) *Mutation[T] {
	return &Mutation[T]{producer: producer}
}

// NewEither wraps a dual-channel producer: a left result maps to the error
// state (non-error lefts wrapped in LeftError), a right result maps to
// success, or to empty when the right value is absent.
func NewEither[L, R any](producer func(ctx context.Context) Either[L, R]) *Mutation[R] {
	return New(func(ctx context.Context) (R, error) {
		result := producer(ctx)
		if result.IsLeft() {
			var zero R
			return zero, leftToError(result.Left())
		}
		return result.Right(), nil
	})
}

// State returns the current lifecycle state.
func (m *Mutation[T]) State() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to run synchronously on every transition with the
// previous and next states, and returns an idempotent cancel.
func (m *Mutation[T]) Subscribe(fn func(prev, next State[T])) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	entry := &subEntry[T]{fn: fn}
	m.subMu.Lock()
	m.subs = append(m.subs, entry)
	m.subMu.Unlock()

	return func() {
		entry.removed.Store(true)
		m.subMu.Lock()
		for i, e := range m.subs {
			if e == entry {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				break
			}
		}
		m.subMu.Unlock()
	}
}

// Call transitions to loading, runs the producer, and settles into
// success, empty, or error. Calling while already loading is a no-op, so
// at most one producer invocation is in flight per Mutation. Call blocks
// until the producer finishes; run it from a goroutine (or a UI command)
// when the caller must not wait.
func (m *Mutation[T]) Call(ctx context.Context) {
	m.mu.Lock()
	if m.state.Status == StatusLoading {
		m.mu.Unlock()
		return
	}
	gen := m.gen
	prev := m.state
	m.state = Loading[T]()
	m.mu.Unlock()

	m.notify(prev, Loading[T]())

	next := m.run(ctx)

	m.mu.Lock()
	// A Reset during the producer run bumps gen; the late result is
	// suppressed rather than clobbering the reset state.
	if m.gen != gen || m.state.Status != StatusLoading {
		m.mu.Unlock()
		return
	}
	m.state = next
	m.mu.Unlock()

	m.notify(Loading[T](), next)
}

// Reset transitions back to initial from any state, allowing the next Call
// to re-trigger the producer. An in-flight producer keeps running but its
// eventual result is discarded.
func (m *Mutation[T]) Reset() {
	m.mu.Lock()
	m.gen++
	prev := m.state
	m.state = Initial[T]()
	m.mu.Unlock()

	if prev.Status != StatusInitial {
		m.notify(prev, Initial[T]())
	}
}

func (m *Mutation[T]) run(ctx context.Context) (settled State[T]) {
	defer func() {
		if r := recover(); r != nil {
			settled = Failure[T](recoveredError(r))
		}
	}()

	data, err := m.producer(ctx)
	if err != nil {
		return Failure[T](err)
	}
	if isAbsent(data) {
		return Empty[T]()
	}
	return Success(data)
}

func (m *Mutation[T]) notify(prev, next State[T]) {
	m.subMu.Lock()
	entries := make([]*subEntry[T], len(m.subs))
	copy(entries, m.subs)
	m.subMu.Unlock()

	for _, entry := range entries {
		if !entry.removed.Load() {
			entry.fn(prev, next)
		}
	}
}

// OnDone subscribes side-effect callbacks for the terminal success and
// error transitions. Either callback may be nil.
func OnDone[T any](m *Mutation[T], onSuccess func(T), onError func(error)) (cancel func()) {
	return m.Subscribe(func(prev, next State[T]) {
		switch next.Status {
		case StatusSuccess:
			if onSuccess != nil {
				onSuccess(next.Data)
			}
		case StatusError:
			if onError != nil {
				onError(next.Err)
			}
		}
	})
}

func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

// isAbsent reports whether a resolved value counts as absent: the nil
// value of a nil-able kind. Non-nil-able result types never produce the
// empty state.
func isAbsent(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
