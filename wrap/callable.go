package wrap

import (
	"errors"
	"fmt"
)

// Func is the callable every combinator consumes and produces.
// The arity of a call is len(args).
type Func[P, T any] func(args ...P) (T, error)

// Thunk is a callable that takes no arguments.
type Thunk[T any] func() (T, error)

// ErrArity is returned by the fixed-arity adapters when a call carries the
// wrong number of arguments.
var ErrArity = errors.New("wrong number of arguments")

// Lift adapts an infallible variadic function to a Func.
func Lift[P, T any](fn func(args ...P) T) Func[P, T] {
	if fn == nil {
		panicNilFunc("Lift")
	}
	return func(args ...P) (T, error) {
		return fn(args...), nil
	}
}

// LiftThunk adapts an infallible nullary function to a Thunk.
func LiftThunk[T any](fn func() T) Thunk[T] {
	if fn == nil {
		panicNilFunc("LiftThunk")
	}
	return func() (T, error) {
		return fn(), nil
	}
}

// Arity1 adapts a unary function to a Func. A call with a different number
// of arguments fails with ErrArity before fn is reached. Arity2 through
// Arity4 do the same for wider functions.
func Arity1[P, T any](fn func(P) (T, error)) Func[P, T] {
	if fn == nil {
		panicNilFunc("Arity1")
	}
	return func(args ...P) (T, error) {
		if err := checkArity(1, args); err != nil {
			var zero T
			return zero, err
		}
		return fn(args[0])
	}
}

// Arity2 adapts a binary function to a Func; see Arity1.
func Arity2[P, T any](fn func(P, P) (T, error)) Func[P, T] {
	if fn == nil {
		panicNilFunc("Arity2")
	}
	return func(args ...P) (T, error) {
		if err := checkArity(2, args); err != nil {
			var zero T
			return zero, err
		}
		return fn(args[0], args[1])
	}
}

// Arity3 adapts a ternary function to a Func; see Arity1.
func Arity3[P, T any](fn func(P, P, P) (T, error)) Func[P, T] {
	if fn == nil {
		panicNilFunc("Arity3")
	}
	return func(args ...P) (T, error) {
		if err := checkArity(3, args); err != nil {
			var zero T
			return zero, err
		}
		return fn(args[0], args[1], args[2])
	}
}

// Arity4 adapts a four-argument function to a Func; see Arity1.
func Arity4[P, T any](fn func(P, P, P, P) (T, error)) Func[P, T] {
	if fn == nil {
		panicNilFunc("Arity4")
	}
	return func(args ...P) (T, error) {
		if err := checkArity(4, args); err != nil {
			var zero T
			return zero, err
		}
		return fn(args[0], args[1], args[2], args[3])
	}
}

func checkArity[P any](want int, args []P) error {
	if len(args) != want {
		return fmt.Errorf("%w: want %d, got %d", ErrArity, want, len(args))
	}
	return nil
}

// panicNilFunc reports a nil callable handed to a constructor.
// That is a programming error, never a failure of the wrapped function.
func panicNilFunc(who string) {
	panic(fmt.Sprintf("wrap.%s: nil function provided", who))
}
