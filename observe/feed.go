package observe

import (
	"context"
	"sync/atomic"
)

// Feed is a buffered notification channel handed to subscribers that consume
// events from another goroutine (a render loop, typically). Publishing is
// non-blocking: when the buffer is full the event is dropped and counted,
// on the grounds that a dropped rebuild trigger is superseded by the next
// one. Consumers re-read current state rather than replaying the feed.
type Feed[T any] struct {
	channel chan T
	closed  atomic.Int32
	dropped atomic.Int64
}

// NewFeed creates a Feed with the given buffer size. Sizes below one are
// raised to one so a lone pending trigger is never lost.
func NewFeed[T any](bufferSize int) *Feed[T] {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Feed[T]{channel: make(chan T, bufferSize)}
}

// Publish offers value to the feed without blocking. It reports whether the
// value was accepted; false means the buffer was full or the feed is closed.
func (f *Feed[T]) Publish(value T) bool {
	if f.IsClosed() {
		return false
	}
	select {
	case f.channel <- value:
		return true
	default:
		f.dropped.Add(1)
		return false
	}
}

// Receive blocks until a value arrives, the feed drains after close, or ctx
// is done.
func (f *Feed[T]) Receive(ctx context.Context) (T, error) {
	select {
	case value, ok := <-f.channel:
		if !ok {
			var zero T
			return zero, context.Canceled
		}
		return value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// C exposes the receive side for use in select statements.
func (f *Feed[T]) C() <-chan T {
	return f.channel
}

// Close marks the feed closed. Pending buffered values remain readable.
// Safe to call more than once.
func (f *Feed[T]) Close() {
	if f.closed.CompareAndSwap(0, 1) {
		close(f.channel)
	}
}

// IsClosed reports whether Close has been called.
func (f *Feed[T]) IsClosed() bool {
	return f.closed.Load() == 1
}

// Dropped returns the number of values rejected because the buffer was full.
func (f *Feed[T]) Dropped() int64 {
	return f.dropped.Load()
}
