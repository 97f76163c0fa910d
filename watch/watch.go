// Package watch layers selective notification contracts on top of the
// store's raw change feed: rebuild filters, side-effect listeners, slice
// selectors, and scope-bound subscriptions that re-attach when the
// provided store instance is replaced. All filtering happens on the
// subscriber side; the store itself never learns about filters.
package watch

import (
	"sync"

	"github.com/luma-ui/statekit/observe"
	"github.com/luma-ui/statekit/store"
)

// Subscription is a cancelable attachment to a store's change feed.
type Subscription struct {
	mu       sync.Mutex
	cancel   func()
	canceled bool
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Cancel releases the subscription. Idempotent.
func (s *Subscription) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	done := s.canceled
	s.canceled = true
	s.mu.Unlock()

	if !done && cancel != nil {
		cancel()
	}
}

// Option configures a filtered subscription over values of type T.
type Option[T any] func(*config[T])

type config[T any] struct {
	when func(prev, next T) bool
}

// WithWhen gates the callback on a (previous, next) predicate. Absent
// filter means every accepted change to the kind fires the callback.
func WithWhen[T any](when func(prev, next T) bool) Option[T] {
	return func(c *config[T]) {
		c.when = when
	}
}

func buildConfig[T any](opts []Option[T]) config[T] {
	var cfg config[T]
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// OnChange invokes fn with (previous, next) after every accepted write to
// the primary kind that passes the build filter. The callback runs
// synchronously on the writer's goroutine.
func OnChange[P any](s *store.Store[P], fn func(prev, next P), opts ...Option[P]) *Subscription {
	cfg := buildConfig(opts)
	cancel := s.Subscribe(func(c observe.Change) {
		prev, next, ok := primaryPair[P](s, c)
		if !ok {
			return
		}
		if cfg.when != nil && !cfg.when(prev, next) {
			return
		}
		fn(prev, next)
	})
	return newSubscription(cancel)
}

// OnKind is OnChange for a secondary kind. The previous value is the zero
// T when the write seeded the kind.
func OnKind[P, T any](s *store.Store[P], kind store.Kind[T], fn func(prev, next T), opts ...Option[T]) *Subscription {
	cfg := buildConfig(opts)
	cancel := s.Subscribe(func(c observe.Change) {
		if c.Kind != kind.Name() {
			return
		}
		prev, _ := c.Previous.(T)
		next, ok := c.Next.(T)
		if !ok {
			return
		}
		if cfg.when != nil && !cfg.when(prev, next) {
			return
		}
		fn(prev, next)
	})
	return newSubscription(cancel)
}

// Listen invokes the one-shot side-effect callback fn with the new primary
// value for every accepted write passing the listen filter. Listen filters
// are independent from build filters: attach both an OnChange and a Listen
// to the same store to render and side-effect on different conditions.
func Listen[P any](s *store.Store[P], fn func(next P), opts ...Option[P]) *Subscription {
	cfg := buildConfig(opts)
	cancel := s.Subscribe(func(c observe.Change) {
		prev, next, ok := primaryPair[P](s, c)
		if !ok {
			return
		}
		if cfg.when != nil && !cfg.when(prev, next) {
			return
		}
		fn(next)
	})
	return newSubscription(cancel)
}

func primaryPair[P any](s *store.Store[P], c observe.Change) (prev, next P, ok bool) {
	if c.Kind != s.PrimaryKind() {
		return prev, next, false
	}
	prev, _ = c.Previous.(P)
	next, ok = c.Next.(P)
	return prev, next, ok
}
