package wrap

import (
	"sync"
	"sync/atomic"

	"github.com/rickb777/date/v2/timespan"
)

const kindOnce = "once"

// Once returns a Func that invokes fn on the first call and replays that
// result on every later call. Later arguments are discarded: first write wins.
//
// The slot is only written after fn returns without error. An error or a
// panic leaves it empty and the next call invokes fn again with its own
// arguments. Concurrent callers wait for an in-progress invocation, so fn
// succeeds at most once.
func Once[P, T any](fn Func[P, T], opts ...Option) Func[P, T] {
	if fn == nil {
		panicNilFunc("Once")
	}
	return (&once[P, T]{
		config: newConfig(kindOnce, opts),
		fn:     fn,
	}).call
}

// OnceThunk is the zero-argument variant of Once.
func OnceThunk[T any](fn Thunk[T], opts ...Option) Thunk[T] {
	if fn == nil {
		panicNilFunc("OnceThunk")
	}
	f := Once(func(...struct{}) (T, error) {
		return fn()
	}, opts...)
	return func() (T, error) {
		return f()
	}
}

type once[P, T any] struct {
	*config
	fn Func[P, T]

	done  atomic.Bool
	mu    sync.Mutex
	value T
}

func (o *once[P, T]) call(args ...P) (T, error) {
	// Fast path: value is published before done is set.
	if o.done.Load() {
		o.emit(EventHit, "", timespan.TimeSpan{}, nil)
		return o.value, nil
	}
	return o.callSlow(args)
}

func (o *once[P, T]) callSlow(args []P) (T, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.done.Load() {
		o.emit(EventHit, "", timespan.TimeSpan{}, nil)
		return o.value, nil
	}

	var (
		res T
		err error
	)
	span := o.timed(func() {
		res, err = o.fn(args...)
	})
	if err != nil {
		o.emit(EventFailed, "", span, err)
		return res, err
	}
	o.value = res
	o.done.Store(true)
	o.emit(EventMiss, "", span, nil)
	return res, nil
}
