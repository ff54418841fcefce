package wrap_test

import (
	"sync"

	"github.com/on-the-ground/funcwrap/wrap"
)

// recorder is an Observer collecting every event it receives.
type recorder struct {
	mu     sync.Mutex
	events []wrap.EventData
}

func (r *recorder) On(eventData wrap.EventData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventData)
}

func (r *recorder) kinds() []wrap.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]wrap.Event, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Event
	}
	return kinds
}

func (r *recorder) count(event wrap.Event) int {
	n := 0
	for _, k := range r.kinds() {
		if k == event {
			n++
		}
	}
	return n
}

func sum(args ...int) int {
	total := 0
	for _, a := range args {
		total += a
	}
	return total
}
