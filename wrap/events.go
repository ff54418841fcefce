package wrap

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// Observer receives combinator events. Implementations must be safe for
// concurrent use when the observed combinator is called from several
// goroutines.
type Observer interface {
	On(eventData EventData)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(EventData)

func (f ObserverFunc) On(eventData EventData) {
	f(eventData)
}

// Event represents a combinator event type.
type Event int

const (
	// EventSuppressed is emitted when After swallows a call below its threshold.
	EventSuppressed Event = iota
	// EventActivated is emitted when After forwards a call.
	EventActivated
	// EventHit is emitted when Once or a cache answers from stored state.
	EventHit
	// EventMiss is emitted when Once or a cache invokes the wrapped function.
	EventMiss
	// EventDedup is emitted when a concurrent caller shares an in-flight
	// cache miss instead of triggering a new call.
	EventDedup
	// EventFailed is emitted when the wrapped function returns an error.
	EventFailed
)

func (e Event) String() string {
	switch e {
	case EventSuppressed:
		return "suppressed"
	case EventActivated:
		return "activated"
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	case EventDedup:
		return "dedup"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EventData carries the details of an event.
//
// Span covers the wrapped call for EventActivated, EventMiss and
// EventFailed, and is the zero TimeSpan otherwise. Key is the derived cache
// key formatted with %v, empty outside caches.
type EventData struct {
	Event      Event
	Combinator string
	ID         string
	Key        string
	Span       timespan.TimeSpan
	Err        error
}

func (c *config) emit(event Event, key string, span timespan.TimeSpan, err error) {
	if c.observer == nil {
		return
	}
	c.observer.On(EventData{
		Event:      event,
		Combinator: c.name,
		ID:         c.id,
		Key:        key,
		Span:       span,
		Err:        err,
	})
}

// timed runs call and returns the span it took. Nothing is measured when
// no observer is attached.
func (c *config) timed(call func()) timespan.TimeSpan {
	if c.observer == nil {
		call()
		return timespan.TimeSpan{}
	}
	start := time.Now()
	call()
	return timespan.BetweenTimes(start, time.Now())
}
