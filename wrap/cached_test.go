package wrap_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/on-the-ground/funcwrap/wrap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingSum(calls *int) wrap.Func[int, int] {
	return wrap.Lift(func(args ...int) int {
		*calls++
		return sum(args...)
	})
}

func TestCached_DefaultKeyIsFirstArgument(t *testing.T) {
	calls := 0
	fn := wrap.Cached(countingSum(&calls))

	v, err := fn(1, 5)
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	// Same first argument: cache hit, not 1000.
	v, err = fn(1, 999)
	require.NoError(t, err)
	assert.Equal(t, 6, v)
	assert.Equal(t, 1, calls)

	v, err = fn(2, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 2, calls)
}

func TestCached_CustomKey(t *testing.T) {
	type pair struct{ a, b int }

	calls := 0
	fn := wrap.CachedBy(countingSum(&calls), func(args ...int) pair {
		return pair{args[0], args[1]}
	})

	v, err := fn(1, 5)
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	v, err = fn(1, 999)
	require.NoError(t, err)
	assert.Equal(t, 1000, v)

	v, err = fn(1, 5)
	require.NoError(t, err)
	assert.Equal(t, 6, v)
	assert.Equal(t, 2, calls)
}

func TestCached_HashKey(t *testing.T) {
	calls := 0
	fn := wrap.CachedBy(countingSum(&calls), wrap.HashKey[int])

	v, _ := fn(1, 5)
	assert.Equal(t, 6, v)
	v, _ = fn(1, 999)
	assert.Equal(t, 1000, v)
	v, _ = fn(1, 5)
	assert.Equal(t, 6, v)
	assert.Equal(t, 2, calls)
}

func TestCached_ZeroArgumentsShareZeroKey(t *testing.T) {
	calls := 0
	fn := wrap.Cached(countingSum(&calls))

	v, err := fn()
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	// 0 is also the key of a call starting with 0.
	v, err = fn(0, 42)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.Equal(t, 1, calls)
}

func TestCache_GrowsWithoutBound(t *testing.T) {
	const n = 1000
	calls := 0
	cache := wrap.NewCache(countingSum(&calls), wrap.FirstArg[int], nil)

	for round := 0; round < 2; round++ {
		for i := 0; i < n; i++ {
			v, err := cache.Call(i)
			require.NoError(t, err)
			require.Equal(t, i, v)
		}
		assert.Equal(t, n, cache.Len())
	}
	assert.Equal(t, n, calls)
}

func TestCache_ErrorNotCached(t *testing.T) {
	errBoom := errors.New("boom")
	calls := 0
	fail := true
	cache := wrap.NewCache(func(args ...string) (string, error) {
		calls++
		if fail {
			return "", errBoom
		}
		return strings.ToUpper(args[0]), nil
	}, wrap.FirstArg[string], nil)

	_, err := cache.Call("a")
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, cache.Len())

	fail = false
	v, err := cache.Call("a")
	require.NoError(t, err)
	assert.Equal(t, "A", v)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, 2, calls)
}

func TestCache_PanicDoesNotPoison(t *testing.T) {
	panicking := true
	fn := wrap.Cached(wrap.Lift(func(args ...string) string {
		if panicking {
			panic("kaboom")
		}
		return "recovered"
	}))

	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "expected panic, got none")
			// singleflight wraps panics; check the string representation.
			assert.Contains(t, fmt.Sprint(r), "kaboom")
		}()
		_, _ = fn("k")
	}()

	panicking = false
	v, err := fn("k")
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
}

func TestCache_NaNKeyNeverHits(t *testing.T) {
	calls := 0
	fn := wrap.Cached(wrap.Lift(func(args ...float64) float64 {
		calls++
		return 1
	}))

	_, _ = fn(math.NaN())
	_, _ = fn(math.NaN())
	assert.Equal(t, 2, calls)
}

func TestCache_Events(t *testing.T) {
	rec := &recorder{}
	errBoom := errors.New("boom")
	fn := wrap.CachedBy(func(args ...int) (int, error) {
		if args[0] < 0 {
			return 0, errBoom
		}
		return args[0], nil
	}, wrap.FirstArg[int], wrap.WithName("ints"), wrap.WithObserver(rec))

	_, _ = fn(1)
	_, _ = fn(1)
	_, _ = fn(-1)

	assert.Equal(t, []wrap.Event{wrap.EventMiss, wrap.EventHit, wrap.EventFailed}, rec.kinds())
	assert.Equal(t, "1", rec.events[0].Key)
	assert.Equal(t, "-1", rec.events[2].Key)
	assert.Equal(t, "ints", rec.events[0].Combinator)
}

func TestCache_ConcurrentSameKeyInvokesOnce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	rec := &recorder{}
	cache := wrap.NewCache(func(args ...string) (string, error) {
		calls.Add(1)
		<-release
		return "deduped-" + args[0], nil
	}, wrap.FirstArg[string], nil, wrap.WithObserver(rec))

	const n = 20
	var (
		wg      sync.WaitGroup
		started sync.WaitGroup
	)
	wg.Add(n)
	started.Add(n)

	results := make([]string, n)
	errs := make([]error, n)
	for i := range n {
		go func(i int) {
			defer wg.Done()
			started.Done()
			results[i], errs[i] = cache.Call("1")
		}(i)
	}
	started.Wait()
	close(release)
	wg.Wait()

	for i := range n {
		require.NoErrorf(t, errs[i], "goroutine %d", i)
		assert.Equalf(t, "deduped-1", results[i], "goroutine %d", i)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, 1, rec.count(wrap.EventMiss))
	assert.Equal(t, n-1, rec.count(wrap.EventHit)+rec.count(wrap.EventDedup))
}

func TestCache_ConcurrentDistinctKeys(t *testing.T) {
	var calls atomic.Int32
	fn := wrap.Cached(wrap.Lift(func(args ...int) int {
		calls.Add(1)
		return args[0] * args[0]
	}))

	const keys, perKey = 10, 10
	var wg sync.WaitGroup
	wg.Add(keys * perKey)
	for i := range keys * perKey {
		go func(k int) {
			defer wg.Done()
			v, err := fn(k)
			if err != nil || v != k*k {
				t.Errorf("key %d: got %d, %v", k, v, err)
			}
		}(i % keys)
	}
	wg.Wait()

	assert.Equal(t, int32(keys), calls.Load())
}

func TestCombinators_Compose(t *testing.T) {
	calls := 0
	cached := wrap.Cached(countingSum(&calls))
	fn := wrap.After(2, wrap.Partial(cached, 10))

	res, err := fn(1)
	require.NoError(t, err)
	assert.False(t, res.IsPresent())

	res, err = fn(1)
	require.NoError(t, err)
	assert.Equal(t, wrap.Some(11), res)

	// Key is the fixed first argument 10.
	res, err = fn(5)
	require.NoError(t, err)
	assert.Equal(t, wrap.Some(11), res)
	assert.Equal(t, 1, calls)

	once := wrap.Once(cached)
	v, err := once(10)
	require.NoError(t, err)
	assert.Equal(t, 10+1, v)
}
