package wrap

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// KeyFunc derives a cache key from a call's arguments.
type KeyFunc[P any, K comparable] func(args ...P) K

// FirstArg is the default KeyFunc: the first argument is the key, and the
// rest are ignored. Calls that differ only after the first argument share a
// cache entry. A call without arguments maps to the zero value of P.
func FirstArg[P comparable](args ...P) P {
	if len(args) == 0 {
		var zero P
		return zero
	}
	return args[0]
}

// ASCII unit separator between arguments.
const keySeparator = "\x1f"

// HashKey is a KeyFunc over the whole argument sequence: the xxhash of each
// argument's text, in order. fmt.Stringer arguments contribute String(),
// others their %#v form. Being a 64-bit hash, distinct sequences can collide.
func HashKey[P any](args ...P) uint64 {
	d := xxhash.New()
	for i, arg := range args {
		if i > 0 {
			_, _ = d.WriteString(keySeparator)
		}
		_, _ = d.WriteString(keyText(arg))
	}
	return d.Sum64()
}

func keyText(v any) string {
	if stringer, ok := v.(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprintf("%#v", v)
}

// flightKey names the in-flight call for key. Distinct keys may share a
// name; callers compare the key carried back by the flight.
func flightKey[K comparable](key K) string {
	return strconv.FormatUint(xxhash.Sum64String(fmt.Sprintf("%#v", key)), 16)
}
