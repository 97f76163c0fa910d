// Package scope provides ancestor-scope provisioning for stores and other
// shared values: a parent-linked chain of scopes where a value provided
// under a typed token is resolvable from any descendant scope, with the
// nearest provider winning. The hosting framework owns scope lifetimes and
// closes a scope exactly once when its subtree is permanently removed.
package scope

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Token is a typed key for a provided value. Declare tokens as package-level
// variables shared by providers and resolvers.
type Token[T any] struct {
	name string
}

// NewToken declares a token named name.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

// Name returns the token's key.
func (t Token[T]) Name() string {
	return t.name
}

// NotProvidedError reports a resolve for a token with no provider anywhere
// up the ancestor chain. This is a programmer error surfaced fail-fast.
type NotProvidedError struct {
	Token string
}

func (e *NotProvidedError) Error() string {
	return fmt.Sprintf("no value provided for token %q in scope or any ancestor", e.Token)
}

// Disposable is implemented by provided values that need teardown when
// their owning scope closes. store.Store implements it.
type Disposable interface {
	Dispose()
}

type watcher struct {
	fn      func()
	removed atomic.Bool
}

// Scope is one node of the provisioning chain.
type Scope struct {
	parent *Scope

	mu       sync.RWMutex
	values   map[string]any
	watchers map[string][]*watcher
	closed   bool
}

// New creates a root scope.
func New() *Scope {
	return &Scope{
		values:   make(map[string]any),
		watchers: make(map[string][]*watcher),
	}
}

// Child creates a scope nested under sc. Values provided on the child
// shadow the parent's for resolvers at or below the child.
func (sc *Scope) Child() *Scope {
	child := New()
	child.parent = sc
	return child
}

// Provide registers value under tok on sc, replacing any previous value for
// the token at this scope. Replacement watchers registered at or below sc
// fire synchronously after the swap.
func Provide[T any](sc *Scope, tok Token[T], value T) {
	sc.mu.Lock()
	if sc.closed {
		sc.mu.Unlock()
		return
	}
	sc.values[tok.name] = value
	entries := snapshotWatchers(sc.watchers[tok.name])
	sc.mu.Unlock()

	runWatchers(entries)
}

// Resolve walks from sc up the ancestor chain and returns the nearest value
// provided for tok, or *NotProvidedError when no provider exists.
func Resolve[T any](sc *Scope, tok Token[T]) (T, error) {
	for cur := sc; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		v, ok := cur.values[tok.name]
		cur.mu.RUnlock()
		if ok {
			if tv, ok := v.(T); ok {
				return tv, nil
			}
		}
	}
	var zero T
	return zero, &NotProvidedError{Token: tok.name}
}

// MustResolve is Resolve that panics on a missing provider. Use at
// mount-time where a missing provider is a wiring bug to surface loudly.
func MustResolve[T any](sc *Scope, tok Token[T]) T {
	v, err := Resolve(sc, tok)
	if err != nil {
		panic(err)
	}
	return v
}

// OnReplace registers fn to run whenever a value for tok is provided on sc
// or any ancestor, and returns an idempotent remove. Subscribers use it to
// re-attach when the resolved instance changes.
func OnReplace[T any](sc *Scope, tok Token[T], fn func()) (remove func()) {
	if fn == nil {
		return func() {}
	}

	var removes []func()
	for cur := sc; cur != nil; cur = cur.parent {
		removes = append(removes, cur.addWatcher(tok.name, fn))
	}
	return func() {
		for _, r := range removes {
			r()
		}
	}
}

func (sc *Scope) addWatcher(key string, fn func()) (remove func()) {
	entry := &watcher{fn: fn}
	sc.mu.Lock()
	if sc.closed {
		sc.mu.Unlock()
		return func() {}
	}
	sc.watchers[key] = append(sc.watchers[key], entry)
	sc.mu.Unlock()

	return func() {
		entry.removed.Store(true)
		sc.mu.Lock()
		entries := sc.watchers[key]
		for i, e := range entries {
			if e == entry {
				sc.watchers[key] = append(entries[:i], entries[i+1:]...)
				break
			}
		}
		sc.mu.Unlock()
	}
}

// Close tears the scope down: watchers are dropped and provided values
// implementing Disposable are disposed. Idempotent. Parent scopes are
// untouched.
func (sc *Scope) Close() {
	sc.mu.Lock()
	if sc.closed {
		sc.mu.Unlock()
		return
	}
	sc.closed = true
	values := make([]any, 0, len(sc.values))
	for _, v := range sc.values {
		values = append(values, v)
	}
	sc.values = nil
	sc.watchers = nil
	sc.mu.Unlock()

	for _, v := range values {
		if d, ok := v.(Disposable); ok {
			d.Dispose()
		}
	}
}

func snapshotWatchers(entries []*watcher) []*watcher {
	out := make([]*watcher, len(entries))
	copy(out, entries)
	return out
}

func runWatchers(entries []*watcher) {
	for _, entry := range entries {
		if !entry.removed.Load() {
			entry.fn()
		}
	}
}
