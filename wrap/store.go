package wrap

// Store holds cached results by derived key.
//
// A Cache serializes every access to its Store, so implementations need no
// locking of their own. Stores never evict: there is no Delete, and Len
// must only grow.
type Store[K comparable, T any] interface {
	Load(key K) (T, bool)
	Store(key K, value T)
	Len() int
}

type mapStore[K comparable, T any] struct {
	m map[K]T
}

// NewMapStore returns the default unbounded, map-backed Store.
func NewMapStore[K comparable, T any]() Store[K, T] {
	return &mapStore[K, T]{m: make(map[K]T)}
}

func (s *mapStore[K, T]) Load(key K) (T, bool) {
	v, ok := s.m[key]
	return v, ok
}

func (s *mapStore[K, T]) Store(key K, value T) {
	s.m[key] = value
}

func (s *mapStore[K, T]) Len() int {
	return len(s.m)
}
