package refresh

import (
	"time"
)

// Option applies a configuration option to the Scheduler.
type Option func(*Scheduler)

// WithObserver sets the observability sink for cycle events.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithClock overrides the clock used for staleness decisions and reports.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxConcurrency caps in-flight fetches per cycle. Zero or less means unbounded.
func WithMaxConcurrency(n int) Option {
	return func(s *Scheduler) {
		s.maxConcurrency = n
	}
}

// WithFetchTimeout bounds every single fetch. Zero or less disables the deadline.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		s.fetchTimeout = d
	}
}
