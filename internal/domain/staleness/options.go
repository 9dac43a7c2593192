package staleness

import "time"

// Option applies a configuration option to the Policy.
type Option func(*Policy)

// WithCloseToGameThreshold sets how long before the scheduled start polling tightens.
func WithCloseToGameThreshold(d time.Duration) Option {
	return func(p *Policy) {
		if d > 0 {
			p.closeToGame = d
		}
	}
}

// WithStaleThreshold sets the maximum age of a non-live snapshot.
func WithStaleThreshold(d time.Duration) Option {
	return func(p *Policy) {
		if d > 0 {
			p.stale = d
		}
	}
}
