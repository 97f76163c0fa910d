// Package observe provides the change-observation spine shared by every
// store in the process: the Observer contract, a bounded change History,
// composable observer implementations, and the process-wide default slot.
package observe

import "time"

// StoreRef identifies a store instance to an observer. The ID is unique per
// instance; the Name is the human-readable label given at construction.
type StoreRef struct {
	ID   string
	Name string
}

// Change describes one accepted write on a store. Previous is nil when the
// write seeded a kind for the first time.
type Change struct {
	Store     StoreRef
	Kind      string
	Previous  any
	Next      any
	Timestamp time.Time
}

// Observer receives lifecycle and change events from stores. Implementations
// must not write back into the reporting store from inside a callback.
type Observer interface {
	// OnCreate is called once when a store is constructed.
	OnCreate(ref StoreRef)
	// OnChange is called after every accepted (non no-op) write.
	OnChange(change Change)
	// OnDispose is called once when a store is disposed.
	OnDispose(ref StoreRef)
}
