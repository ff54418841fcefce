package wrap

import (
	"fmt"
	"sync"

	"github.com/rickb777/date/v2/timespan"
	"golang.org/x/sync/singleflight"
)

const kindCached = "cached"

// Cache memoizes a Func per derived key. The wrapped function runs at most
// once per distinct key, including under concurrent callers. Successful
// results are kept for the lifetime of the Cache; errors are not cached, so
// a failed key is retried on its next call.
type Cache[P any, K comparable, T any] struct {
	*config
	fn    Func[P, T]
	keyFn KeyFunc[P, K]

	group singleflight.Group
	mu    sync.RWMutex
	store Store[K, T]
}

// flight is what a singleflight call hands back, tagged with the key it
// computed.
type flight[K comparable, T any] struct {
	key   K
	value T
}

// NewCache wraps fn with a cache keyed by keyFn. A nil store selects
// NewMapStore.
func NewCache[P any, K comparable, T any](
	fn Func[P, T],
	keyFn KeyFunc[P, K],
	store Store[K, T],
	opts ...Option,
) *Cache[P, K, T] {
	if fn == nil {
		panicNilFunc("NewCache")
	}
	if keyFn == nil {
		panicNilFunc("NewCache: keyFn")
	}
	if store == nil {
		store = NewMapStore[K, T]()
	}
	return &Cache[P, K, T]{
		config: newConfig(kindCached, opts),
		fn:     fn,
		keyFn:  keyFn,
		store:  store,
	}
}

// Cached wraps fn with a cache keyed by its first argument. See FirstArg for
// the collisions this implies.
func Cached[P comparable, T any](fn Func[P, T], opts ...Option) Func[P, T] {
	return NewCache(fn, FirstArg[P], nil, opts...).Call
}

// CachedBy wraps fn with a cache keyed by keyFn.
func CachedBy[P any, K comparable, T any](fn Func[P, T], keyFn KeyFunc[P, K], opts ...Option) Func[P, T] {
	return NewCache(fn, keyFn, nil, opts...).Call
}

// Func returns c as a Func.
func (c *Cache[P, K, T]) Func() Func[P, T] {
	return c.Call
}

// Len returns the number of cached entries.
func (c *Cache[P, K, T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Len()
}

// Call returns the cached result for the key derived from args, invoking
// the wrapped function on a miss.
func (c *Cache[P, K, T]) Call(args ...P) (T, error) {
	key := c.keyFn(args...)
	name := c.keyName(key)

	for {
		// Fast path: already cached.
		if v, ok := c.load(key); ok {
			c.emit(EventHit, name, timespan.TimeSpan{}, nil)
			return v, nil
		}

		// Slow path: singleflight dedup.
		ran := false
		raw, err, shared := c.group.Do(flightKey(key), func() (any, error) {
			ran = true
			// Double-check: another goroutine may have cached while we waited.
			if v, ok := c.load(key); ok {
				c.emit(EventHit, name, timespan.TimeSpan{}, nil)
				return flight[K, T]{key: key, value: v}, nil
			}

			var (
				res  T
				fErr error
			)
			span := c.timed(func() {
				res, fErr = c.fn(args...)
			})
			if fErr != nil {
				c.emit(EventFailed, name, span, fErr)
				return flight[K, T]{key: key, value: res}, fErr
			}

			c.mu.Lock()
			c.store.Store(key, res)
			c.mu.Unlock()
			c.emit(EventMiss, name, span, nil)

			return flight[K, T]{key: key, value: res}, nil
		})

		f := raw.(flight[K, T])
		// Joined the flight of a different key with the same flight name:
		// start over. A key unequal to itself (NaN) never matches anything.
		if f.key != key && key == key {
			continue
		}
		if shared && !ran {
			c.emit(EventDedup, name, timespan.TimeSpan{}, err)
		}
		return f.value, err
	}
}

func (c *Cache[P, K, T]) load(key K) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Load(key)
}

// keyName renders key for events. Nothing is formatted without an observer.
func (c *Cache[P, K, T]) keyName(key K) string {
	if c.observer == nil {
		return ""
	}
	return fmt.Sprintf("%v", key)
}
