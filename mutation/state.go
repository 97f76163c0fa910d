package mutation

// Status enumerates the lifecycle phases of an async operation.
type Status int

const (
	StatusInitial Status = iota
	StatusLoading
	StatusSuccess
	StatusEmpty
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusInitial:
		return "initial"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the tagged lifecycle variant of a Mutation. Data is meaningful
// only for StatusSuccess, Err only for StatusError. The zero value is the
// initial state.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
}

// Initial returns the initial state.
func Initial[T any]() State[T] {
	return State[T]{}
}

// Loading returns the loading state.
func Loading[T any]() State[T] {
	return State[T]{Status: StatusLoading}
}

// Success returns a success state carrying data.
func Success[T any](data T) State[T] {
	return State[T]{Status: StatusSuccess, Data: data}
}

// Empty returns the empty state, reached when a producer resolves to an
// absent value of a nil-able result type.
func Empty[T any]() State[T] {
	return State[T]{Status: StatusEmpty}
}

// Failure returns an error state carrying err.
func Failure[T any](err error) State[T] {
	return State[T]{Status: StatusError, Err: err}
}

// Fold dispatches on the lifecycle phase and returns the result of the
// matching branch. This is the render-side entry point: UI code supplies
// one renderer per state. Nil branches yield the zero R.
func Fold[T, R any](s State[T], initial func() R, loading func() R, success func(T) R, empty func() R, failure func(error) R) R {
	var branch func() R
	switch s.Status {
	case StatusLoading:
		branch = loading
	case StatusSuccess:
		if success != nil {
			data := s.Data
			branch = func() R { return success(data) }
		}
	case StatusEmpty:
		branch = empty
	case StatusError:
		if failure != nil {
			err := s.Err
			branch = func() R { return failure(err) }
		}
	default:
		branch = initial
	}

	if branch == nil {
		var zero R
		return zero
	}
	return branch()
}
