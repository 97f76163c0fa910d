package watch

import (
	"github.com/luma-ui/statekit/scope"
)

// Bind resolves tok from sc, attaches a subscription to the resolved value
// with attach, and re-attaches whenever a replacement value is provided at
// or above sc: the old subscription is released before the new one
// attaches, so no change is double-delivered across the swap. Re-providing
// the same instance is a no-op. Canceling the returned subscription stops
// both the current attachment and future rebinds.
//
// Rebinds run synchronously from Provide, on the providing goroutine,
// the same cooperative thread that drives writes and renders.
func Bind[T comparable](sc *scope.Scope, tok scope.Token[T], attach func(T) *Subscription) (*Subscription, error) {
	current, err := scope.Resolve(sc, tok)
	if err != nil {
		return nil, err
	}
	inner := attach(current)

	removeWatch := scope.OnReplace(sc, tok, func() {
		next, err := scope.Resolve(sc, tok)
		if err != nil || next == current {
			return
		}
		inner.Cancel()
		current = next
		inner = attach(next)
	})

	return newSubscription(func() {
		removeWatch()
		inner.Cancel()
	}), nil
}
