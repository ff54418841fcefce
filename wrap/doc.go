// Package wrap provides stateful and stateless function combinators.
//
// A combinator takes a callable and returns a new callable with altered
// invocation semantics, without touching the wrapped function:
//
//   - [After] suppresses the first n-1 calls, then invokes on every call.
//   - [Once] invokes once and replays the first successful result.
//   - [Partial] prepends a fixed argument prefix to every call.
//   - [Bind] fixes the whole argument list and exposes a [Thunk].
//   - [Cached] / [CachedBy] memoize results per derived key, forever.
//
// Every combinator consumes and produces a [Func], so they compose freely:
//
//	double := wrap.Lift(func(xs ...int) int { return xs[0] * 2 })
//	lazy := wrap.After(3, wrap.Cached(double))
//
//	v, err := lazy(4) // None: suppressed
//
// Errors returned by the wrapped function are passed through unchanged, and a
// failed call never writes memo or cache state, so it can be retried.
//
// # Concurrency
//
// Once and the caches serialize their check-invoke-store sequence, so the
// exactly-once (per key) guarantee holds under concurrent callers. After
// consumes its counter atomically; which concurrent call activates it is
// nondeterministic. Partial and Bind own no mutable state.
//
// Caches never evict. Memory grows with the number of distinct keys seen.
package wrap
