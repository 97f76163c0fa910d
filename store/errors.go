package store

import "fmt"

// NotInitializedError reports a read of a kind that has never been written
// on the store. This is a programmer error: callers introducing a secondary
// kind must guarantee write-before-read ordering for it.
type NotInitializedError struct {
	Kind  string
	Store string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("state kind %q has never been written on store %q", e.Kind, e.Store)
}
