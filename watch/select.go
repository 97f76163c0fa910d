package watch

import (
	"reflect"

	"github.com/luma-ui/statekit/observe"
	"github.com/luma-ui/statekit/store"
)

// SelectOption configures a selector subscription over derived values R.
type SelectOption[R any] func(*selectConfig[R])

type selectConfig[R any] struct {
	equals func(a, b R) bool
}

// WithSelectEquals overrides the equality used to deduplicate derived
// values. The default is reflect.DeepEqual.
func WithSelectEquals[R any](equals func(a, b R) bool) SelectOption[R] {
	return func(c *selectConfig[R]) {
		if equals != nil {
			c.equals = equals
		}
	}
}

// Select derives a narrower value from the primary state with sel and
// invokes fn only when the derived value differs from the previously
// derived one, even if the underlying state changed in unrelated ways.
// The comparison baseline is seeded from the current state at
// subscription time.
func Select[P, R any](s *store.Store[P], sel func(P) R, fn func(prev, next R), opts ...SelectOption[R]) *Subscription {
	cfg := selectConfig[R]{equals: func(a, b R) bool { return reflect.DeepEqual(a, b) }}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	// last is only touched from the store's notification path, which runs
	// on the writer's goroutine.
	last := sel(s.State())
	cancel := s.Subscribe(func(c observe.Change) {
		_, next, ok := primaryPair[P](s, c)
		if !ok {
			return
		}
		derived := sel(next)
		if cfg.equals(last, derived) {
			return
		}
		prev := last
		last = derived
		fn(prev, derived)
	})
	return newSubscription(cancel)
}
