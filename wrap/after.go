package wrap

import (
	"sync/atomic"

	"github.com/rickb777/date/v2/timespan"
)

const kindAfter = "after"

// After returns a Func that suppresses its first n-1 calls and forwards every
// call from the n-th on, with that call's own arguments.
//
// Suppressed calls return None and a nil error. Forwarded calls return
// Some(result), or None and fn's error unchanged. n <= 0 activates on the
// first call, and so does n == 1. The counter keeps decrementing past zero
// and is never reset; a negative n starts it at zero.
//
// Under concurrent use exactly the right number of calls is suppressed, but
// which goroutine's call activates first is nondeterministic.
func After[P, T any](n int, fn Func[P, T], opts ...Option) Func[P, Optional[T]] {
	if fn == nil {
		panicNilFunc("After")
	}
	a := &after{
		config: newConfig(kindAfter, opts),
	}
	// Every n <= 0 behaves alike; starting at 0 keeps the first decrement
	// from wrapping around at math.MinInt.
	a.times.Store(int64(max(n, 0)))
	return func(args ...P) (Optional[T], error) {
		if a.suppress() {
			return None[T](), nil
		}
		var (
			res T
			err error
		)
		span := a.timed(func() {
			res, err = fn(args...)
		})
		if err != nil {
			a.emit(EventFailed, "", span, err)
			return None[T](), err
		}
		a.emit(EventActivated, "", span, nil)
		return Some(res), nil
	}
}

// AfterThunk is the zero-argument variant of After.
func AfterThunk[T any](n int, fn Thunk[T], opts ...Option) Thunk[Optional[T]] {
	if fn == nil {
		panicNilFunc("AfterThunk")
	}
	f := After(n, func(...struct{}) (T, error) {
		return fn()
	}, opts...)
	return func() (Optional[T], error) {
		return f()
	}
}

type after struct {
	*config
	times atomic.Int64
}

// suppress consumes one unit of the counter and reports whether the call
// falls below the threshold.
func (a *after) suppress() bool {
	if a.times.Add(-1) > 0 {
		a.emit(EventSuppressed, "", timespan.TimeSpan{}, nil)
		return true
	}
	return false
}
