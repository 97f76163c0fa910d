package store

import "reflect"

// Writer is the mutation capability of a Store. New hands it to the caller
// exactly once; view-models keep it unexported so external code can only
// read and subscribe.
type Writer[P any] struct {
	store *Store[P]
}

// Store returns the read surface the writer mutates.
func (w *Writer[P]) Store() *Store[P] {
	return w.store
}

// SetState writes value to the primary kind.
func (w *Writer[P]) SetState(value P) {
	s := w.store
	s.write(s.primaryKind, value, s.equals)
}

// Update reads the current primary value, applies fn, and writes the
// result back to the primary kind.
func (w *Writer[P]) Update(fn func(P) P) {
	w.SetState(fn(w.store.State()))
}

// Put writes value under kind, seeding the slot on first write. When the
// value's runtime type is assignable to the store's primary state type the
// write targets the primary kind instead, regardless of the token passed,
// so pushing a specialization of the primary state can never fork a second
// slot.
func Put[P, T any](w *Writer[P], kind Kind[T], value T) {
	s := w.store
	if t := reflect.TypeOf(value); t != nil && t.AssignableTo(s.primaryType) {
		s.write(s.primaryKind, value, s.equals)
		return
	}
	s.write(kind.name, value, eraseEquals(kind.equals))
}
