package wrap

import "github.com/google/uuid"

// Option configures a stateful combinator at construction time.
type Option func(*config)

type config struct {
	id       string
	name     string
	observer Observer
}

// WithName sets the label reported in events. Defaults to the combinator kind.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithObserver attaches an Observer that receives the combinator's events
// for its whole lifetime.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

func newConfig(kind string, opts []Option) *config {
	c := &config{
		id:   uuid.New().String(),
		name: kind,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
