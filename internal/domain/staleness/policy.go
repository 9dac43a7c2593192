// Package staleness decides, per subscription, whether a cached snapshot
// must be re-fetched on the current tick.
package staleness

import (
	"time"

	"github.com/okian/livescores/internal/domain/model"
)

// Default policy thresholds.
const (
	DefaultCloseToGameThreshold = 1 * time.Hour
	DefaultStaleThreshold       = 6 * time.Hour
)

// Reason explains a Decision. Values double as metric labels.
type Reason string

// Decision reasons.
const (
	ReasonNoCache      Reason = "no_cache"
	ReasonLive         Reason = "live"
	ReasonNeverFetched Reason = "never_fetched"
	ReasonCloseToStart Reason = "close_to_start"
	ReasonStale        Reason = "stale"
	ReasonFresh        Reason = "fresh"
)

// Decision is the outcome of evaluating one subscription.
type Decision struct {
	Refresh bool
	Reason  Reason
}

// Label returns "refresh" or "skip".
func (d Decision) Label() string {
	if d.Refresh {
		return "refresh"
	}
	return "skip"
}

// Policy holds the staleness thresholds. The zero value is not usable; use New.
type Policy struct {
	closeToGame time.Duration
	stale       time.Duration
}

// New builds a Policy with default thresholds overridden by opts.
func New(opts ...Option) *Policy {
	p := &Policy{
		closeToGame: DefaultCloseToGameThreshold,
		stale:       DefaultStaleThreshold,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decide evaluates the last cached snapshot (nil when absent) at time now.
func (p *Policy) Decide(info *model.ScoreInfo, now time.Time) Decision {
	if info == nil {
		return Decision{Refresh: true, Reason: ReasonNoCache}
	}
	if info.Event.State == model.StateLive {
		return Decision{Refresh: true, Reason: ReasonLive}
	}
	if info.GeneratedDate == nil {
		return Decision{Refresh: true, Reason: ReasonNeverFetched}
	}
	// A start time already in the past is also "close": the game may have begun
	// while the cached state still says scheduled.
	if info.Event.Date.Sub(now) < p.closeToGame {
		return Decision{Refresh: true, Reason: ReasonCloseToStart}
	}
	if now.Sub(*info.GeneratedDate) > p.stale {
		return Decision{Refresh: true, Reason: ReasonStale}
	}
	return Decision{Refresh: false, Reason: ReasonFresh}
}

// CloseToGameThreshold returns the configured pre-game window.
func (p *Policy) CloseToGameThreshold() time.Duration { return p.closeToGame }

// StaleThreshold returns the configured maximum snapshot age.
func (p *Policy) StaleThreshold() time.Duration { return p.stale }
