package mutation

import "fmt"

// Either carries exactly one of a typed failure ("left") or a typed
// success ("right"). Producers that model expected failures as data rather
// than error returns hand it to NewEither.
type Either[L, R any] struct {
	left   L
	right  R
	isLeft bool
}

// Left builds an Either holding a failure value.
func Left[L, R any](value L) Either[L, R] {
	return Either[L, R]{left: value, isLeft: true}
}

// Right builds an Either holding a success value.
func Right[L, R any](value R) Either[L, R] {
	return Either[L, R]{right: value}
}

// IsLeft reports whether the Either holds a failure value.
func (e Either[L, R]) IsLeft() bool {
	return e.isLeft
}

// Left returns the failure value; meaningful only when IsLeft.
func (e Either[L, R]) Left() L {
	return e.left
}

// Right returns the success value; meaningful only when not IsLeft.
func (e Either[L, R]) Right() R {
	return e.right
}

// LeftError wraps a left value that does not itself implement error, so it
// can travel in State.Err without losing the typed payload.
type LeftError[L any] struct {
	Value L
}

func (e LeftError[L]) Error() string {
	return fmt.Sprint(e.Value)
}

// leftToError converts a left value into the error stored on the error
// state. Values already implementing error pass through unchanged.
func leftToError[L any](value L) error {
	if err, ok := any(value).(error); ok {
		return err
	}
	return LeftError[L]{Value: value}
}
