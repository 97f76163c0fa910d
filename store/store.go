// Package store implements a multi-slice reactive state container for
// view-models. A Store holds one or more independently-typed immutable state
// slices keyed by Kind, detects no-op writes by value equality, and notifies
// a change observer plus its direct subscribers on every accepted write.
//
// Construction splits the surface in two: the *Store is the public
// read/subscribe side, the *Writer is the mutation capability kept private
// to the owning view-model. External callers therefore cannot write.
//
//	type Counter struct {
//		store *store.Store[CounterState]
//		w     *store.Writer[CounterState]
//	}
//
//	func NewCounter() *Counter {
//		s, w := store.New("counter", CounterState{})
//		return &Counter{store: s, w: w}
//	}
//
// Reads and subscriptions are safe for concurrent use. Writes follow a
// single-writer discipline: the owning view-model issues them from one
// goroutine, and notifications fire synchronously on that goroutine in
// write order (change hook, then observer, then subscribers).
package store

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/luma-ui/statekit/observe"
)

// Store holds the current state slices of one view-model. P is the primary
// state type, seeded at construction and always readable via State.
type Store[P any] struct {
	ref         observe.StoreRef
	primaryKind string
	primaryType reflect.Type
	equals      func(a, b any) bool

	// observer is nil when the store follows the live process-wide slot;
	// an injected observer is pinned for the store's lifetime.
	observer observe.Observer
	hook     func(prev, next any)

	mu       sync.RWMutex
	slots    map[string]any
	disposed bool
	closers  []func()

	subMu sync.Mutex
	subs  []*subEntry
}

type subEntry struct {
	fn      func(observe.Change)
	removed atomic.Bool
}

// Option configures a Store at construction.
type Option[P any] func(*Store[P])

// WithObserver pins an injected observer instead of the process-wide
// default slot. Useful for tests and for composing observers explicitly.
func WithObserver[P any](observer observe.Observer) Option[P] {
	return func(s *Store[P]) {
		s.observer = observer
	}
}

// WithChangeHook installs an instance-local hook invoked with (previous,
// next) before the observer and subscribers see an accepted write.
// Intended for diagnostic side effects on the owning view-model.
func WithChangeHook[P any](hook func(prev, next any)) Option[P] {
	return func(s *Store[P]) {
		s.hook = hook
	}
}

// WithStateEquals overrides the value equality used for the primary kind.
// The default is reflect.DeepEqual.
func WithStateEquals[P any](equals func(a, b P) bool) Option[P] {
	return func(s *Store[P]) {
		if equals != nil {
			s.equals = eraseEquals(equals)
		}
	}
}

// New creates a store named name seeded with the initial primary value and
// returns the read surface together with the write capability. It reports
// OnCreate to the store's observer.
func New[P any](name string, initial P, opts ...Option[P]) (*Store[P], *Writer[P]) {
	primaryType := reflect.TypeOf((*P)(nil)).Elem()
	s := &Store[P]{
		ref:         observe.StoreRef{ID: uuid.NewString(), Name: name},
		primaryKind: primaryType.String(),
		primaryType: primaryType,
		equals:      eraseEquals(deepEquals[P]),
		slots:       make(map[string]any),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.slots[s.primaryKind] = initial
	s.obs().OnCreate(s.ref)
	return s, &Writer[P]{store: s}
}

// Ref returns the store's observer-facing identity.
func (s *Store[P]) Ref() observe.StoreRef {
	return s.ref
}

// PrimaryKind returns the slot name of the primary kind. Changes to the
// primary state carry this name in their Kind field.
func (s *Store[P]) PrimaryKind() string {
	return s.primaryKind
}

// State returns the current primary value.
func (s *Store[P]) State() P {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[s.primaryKind].(P)
}

// Get returns the current value for kind, failing with
// *NotInitializedError when the kind has never been written on s.
func Get[P, T any](s *Store[P], kind Kind[T]) (T, error) {
	s.mu.RLock()
	v, ok := s.slots[kind.name]
	s.mu.RUnlock()

	if !ok {
		var zero T
		return zero, &NotInitializedError{Kind: kind.name, Store: s.ref.Name}
	}
	return v.(T), nil
}

// Lookup returns the current value for kind and whether it has ever been
// written. It never fails.
func Lookup[P, T any](s *Store[P], kind Kind[T]) (T, bool) {
	s.mu.RLock()
	v, ok := s.slots[kind.name]
	s.mu.RUnlock()

	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Subscribe registers fn to run synchronously after every accepted write,
// in registration order, and returns an idempotent cancel. Subscribing to
// a disposed store is inert.
func (s *Store[P]) Subscribe(fn func(observe.Change)) (cancel func()) {
	if fn == nil || s.isDisposed() {
		return func() {}
	}

	entry := &subEntry{fn: fn}
	s.subMu.Lock()
	s.subs = append(s.subs, entry)
	s.subMu.Unlock()

	return func() {
		entry.removed.Store(true)
		s.subMu.Lock()
		for i, e := range s.subs {
			if e == entry {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
		s.subMu.Unlock()
	}
}

// Watch subscribes a Feed carrying change notifications for consumption
// from another goroutine. The feed closes when ctx is done or the store is
// disposed. Publishing never blocks the writer; see observe.Feed.
func (s *Store[P]) Watch(ctx context.Context, buffer int) *observe.Feed[observe.Change] {
	feed := observe.NewFeed[observe.Change](buffer)
	unsubscribe := s.Subscribe(func(c observe.Change) {
		feed.Publish(c)
	})

	var once sync.Once
	stop := func() {
		once.Do(func() {
			unsubscribe()
			feed.Close()
		})
	}
	s.addCloser(stop)
	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			stop()
		}()
	}
	return feed
}

// Dispose marks the store disposed, reports OnDispose, releases the
// subscriber list, and closes open feeds. Idempotent; writes after Dispose
// are silently dropped so late async callbacks stay harmless.
func (s *Store[P]) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	s.obs().OnDispose(s.ref)

	s.subMu.Lock()
	s.subs = nil
	s.subMu.Unlock()

	for _, closer := range closers {
		closer()
	}
}

// Disposed reports whether Dispose has been called.
func (s *Store[P]) Disposed() bool {
	return s.isDisposed()
}

func (s *Store[P]) isDisposed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.disposed
}

func (s *Store[P]) addCloser(closer func()) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		closer()
		return
	}
	s.closers = append(s.closers, closer)
	s.mu.Unlock()
}

func (s *Store[P]) obs() observe.Observer {
	if s.observer != nil {
		return s.observer
	}
	return observe.Default()
}

// write applies one slot update. No-op when the store is disposed or the
// new value equals the current one for the slot.
func (s *Store[P]) write(kind string, value any, equals func(a, b any) bool) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	prev, seeded := s.slots[kind]
	if seeded && equals(prev, value) {
		s.mu.Unlock()
		return
	}
	s.slots[kind] = value
	hook := s.hook
	s.mu.Unlock()

	change := observe.Change{
		Store:     s.ref,
		Kind:      kind,
		Previous:  prev,
		Next:      value,
		Timestamp: time.Now(),
	}
	if hook != nil {
		hook(prev, value)
	}
	s.obs().OnChange(change)
	s.notify(change)
}

func (s *Store[P]) notify(change observe.Change) {
	s.subMu.Lock()
	entries := make([]*subEntry, len(s.subs))
	copy(entries, s.subs)
	s.subMu.Unlock()

	for _, entry := range entries {
		if !entry.removed.Load() {
			entry.fn(change)
		}
	}
}
