package wrap

import "slices"

// Partial returns a Func that calls fn with fixed followed by the call's own
// arguments. The prefix is copied, so later changes to the caller's slice
// are not observed. Partial holds no mutable state and is safe for
// concurrent use.
func Partial[P, T any](fn Func[P, T], fixed ...P) Func[P, T] {
	if fn == nil {
		panicNilFunc("Partial")
	}
	prefix := slices.Clone(fixed)
	return func(args ...P) (T, error) {
		return fn(slices.Concat(prefix, args)...)
	}
}

// Bind returns a Thunk that calls fn with exactly fixed on every call.
// Unlike Once, nothing is memoized: a non-deterministic fn yields a fresh
// result per call.
func Bind[P, T any](fn Func[P, T], fixed ...P) Thunk[T] {
	if fn == nil {
		panicNilFunc("Bind")
	}
	bound := slices.Clone(fixed)
	return func() (T, error) {
		return fn(slices.Clone(bound)...)
	}
}
