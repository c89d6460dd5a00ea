package records

// Result is the outcome of a single gateway call. A failed result keeps the
// fault for logging only; state transitions never surface it to the user.
type Result[T any] struct {
	Value T
	Fault error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

func Failed[T any](fault error) Result[T] {
	return Result[T]{Fault: fault}
}

func ResultOf[T any](value T, err error) Result[T] {
	if err != nil {
		return Failed[T](err)
	}
	return Ok(value)
}

func (r Result[T]) Failed() bool {
	return r.Fault != nil
}
