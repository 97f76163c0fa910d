package store

import "reflect"

// Kind is a compile-time-checked token naming one slot of a store's state
// map. A store always carries its primary kind (the type parameter of
// Store); secondary kinds are declared with DefineKind and seeded by the
// owning view-model's first Put. Tokens are typically package-level
// variables shared between the writer and its subscribers.
type Kind[T any] struct {
	name   string
	equals func(a, b T) bool
}

// KindOption configures a Kind at definition time.
type KindOption[T any] func(*Kind[T])

// WithEquals overrides the value equality used to detect no-op writes for
// this kind. The default is reflect.DeepEqual.
func WithEquals[T any](equals func(a, b T) bool) KindOption[T] {
	return func(k *Kind[T]) {
		if equals != nil {
			k.equals = equals
		}
	}
}

// DefineKind declares a secondary kind named name.
func DefineKind[T any](name string, opts ...KindOption[T]) Kind[T] {
	k := Kind[T]{name: name, equals: deepEquals[T]}
	for _, opt := range opts {
		if opt != nil {
			opt(&k)
		}
	}
	return k
}

// Name returns the slot name the kind writes to.
func (k Kind[T]) Name() string {
	return k.name
}

func deepEquals[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

// eraseEquals adapts a typed equality to the store's untyped slot map.
// Values of unexpected dynamic type compare unequal, so a write never
// silently no-ops against a slot holding something else.
func eraseEquals[T any](equals func(a, b T) bool) func(a, b any) bool {
	return func(a, b any) bool {
		av, aok := a.(T)
		bv, bok := b.(T)
		if !aok || !bok {
			return false
		}
		return equals(av, bv)
	}
}
