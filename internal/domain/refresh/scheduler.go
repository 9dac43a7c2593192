// Package refresh runs refresh cycles: load the active subscriptions, decide
// which ones are stale, fetch those concurrently and write the results back,
// retiring subscriptions whose game has finished.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/livescores/internal/domain/model"
	"github.com/okian/livescores/internal/domain/staleness"
)

// ReasonCacheError marks a subscription skipped because its snapshot could not be read.
const ReasonCacheError staleness.Reason = "cache_error"

// Defaults for the fan-out.
const (
	DefaultMaxConcurrency = 16
	DefaultFetchTimeout   = 10 * time.Second
)

// SubscriptionSet is the active set as seen by the scheduler.
type SubscriptionSet interface {
	ListActive(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, member string) (bool, error)
}

// Cache reads and writes snapshots.
type Cache interface {
	Get(ctx context.Context, sub model.Subscription) (*model.ScoreInfo, error)
	Put(ctx context.Context, sub model.Subscription, info *model.ScoreInfo) error
}

// Fetcher fetches a fresh snapshot for a subscription.
type Fetcher interface {
	Fetch(ctx context.Context, sub model.Subscription) (*model.ScoreInfo, error)
}

// Policy decides whether a snapshot needs refreshing.
type Policy interface {
	Decide(info *model.ScoreInfo, now time.Time) staleness.Decision
}

// Report summarizes one cycle.
type Report struct {
	CycleID        string        `json:"cycleId"`
	StartedAt      time.Time     `json:"startedAt"`
	Duration       time.Duration `json:"duration"`
	Active         int           `json:"active"`
	Malformed      int           `json:"malformed"`
	Selected       int           `json:"selected"`
	Skipped        int           `json:"skipped"`
	CacheErrors    int           `json:"cacheErrors"`
	Fetched        int           `json:"fetched"`
	FetchFailures  int           `json:"fetchFailures"`
	Written        int           `json:"written"`
	WriteFailures  int           `json:"writeFailures"`
	Retired        int           `json:"retired"`
	RetireFailures int           `json:"retireFailures"`
}

// Cycle outcomes as recorded in metrics.
const (
	OutcomeOK      = "ok"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"
)

// Outcome is OutcomePartial when any read, fetch, write or retirement failed.
func (r Report) Outcome() string {
	if r.CacheErrors > 0 || r.FetchFailures > 0 || r.WriteFailures > 0 || r.RetireFailures > 0 {
		return OutcomePartial
	}
	return OutcomeOK
}

// Scheduler runs one refresh cycle at a time.
type Scheduler struct {
	subs    SubscriptionSet
	cache   Cache
	fetcher Fetcher
	policy  Policy

	observer       Observer
	now            func() time.Time
	maxConcurrency int
	fetchTimeout   time.Duration

	running sync.Mutex

	mu   sync.RWMutex
	last *Report
}

// New creates a Scheduler.
func New(subs SubscriptionSet, cache Cache, fetcher Fetcher, policy Policy, opts ...Option) *Scheduler {
	s := &Scheduler{
		subs:           subs,
		cache:          cache,
		fetcher:        fetcher,
		policy:         policy,
		observer:       NewLogObserver(nil),
		now:            time.Now,
		maxConcurrency: DefaultMaxConcurrency,
		fetchTimeout:   DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// entry is one parsed active-set member. raw is kept for removal.
type entry struct {
	raw string
	sub model.Subscription
}

// RunCycle performs one cycle. It fails only when another cycle is running or
// the active set cannot be listed; all other failures are per subscription.
func (s *Scheduler) RunCycle(ctx context.Context) (Report, error) {
	if !s.running.TryLock() {
		s.observer.CycleRejected(ctx)
		return Report{}, ErrCycleInProgress
	}
	defer s.running.Unlock()

	started := s.now()
	r := Report{CycleID: uuid.NewString(), StartedAt: started}

	members, err := s.subs.ListActive(ctx)
	if err != nil {
		err = fmt.Errorf("list active subscriptions: %w", err)
		r.Duration = s.now().Sub(started)
		s.observer.CycleFailed(ctx, r, err)
		return r, err
	}

	entries := make([]entry, 0, len(members))
	for _, raw := range members {
		sub, err := model.ParseSubscription(raw)
		if err != nil {
			r.Malformed++
			s.observer.MalformedMember(ctx, r.CycleID, raw, err)
			continue
		}
		entries = append(entries, entry{raw: raw, sub: sub})
	}
	r.Active = len(entries)
	s.observer.CycleStarted(ctx, r.CycleID, r.Active)

	selected, toFetch := s.selectStale(ctx, &r, entries, started)
	results := s.fetchAll(ctx, r.CycleID, toFetch)
	r.Fetched = len(results)
	r.FetchFailures = len(toFetch) - len(results)

	s.writeBack(ctx, &r, selected, results)

	r.Duration = s.now().Sub(started)
	s.mu.Lock()
	last := r
	s.last = &last
	s.mu.Unlock()
	s.observer.CycleFinished(ctx, r)
	return r, nil
}

// selectStale applies the policy to each entry. toFetch holds each distinct
// subscription once, even when several raw members decode to it.
func (s *Scheduler) selectStale(ctx context.Context, r *Report, entries []entry, now time.Time) ([]entry, []model.Subscription) {
	selected := make([]entry, 0, len(entries))
	toFetch := make([]model.Subscription, 0, len(entries))
	seen := make(map[model.Subscription]struct{}, len(entries))

	for _, e := range entries {
		info, err := s.cache.Get(ctx, e.sub)
		if err != nil {
			r.CacheErrors++
			s.observer.Decided(ctx, r.CycleID, e.sub, staleness.Decision{Reason: ReasonCacheError})
			continue
		}
		d := s.policy.Decide(info, now)
		s.observer.Decided(ctx, r.CycleID, e.sub, d)
		if !d.Refresh {
			r.Skipped++
			continue
		}
		selected = append(selected, e)
		if _, dup := seen[e.sub]; !dup {
			seen[e.sub] = struct{}{}
			toFetch = append(toFetch, e.sub)
		}
	}
	r.Selected = len(selected)
	return selected, toFetch
}

// fetchAll fetches every subscription concurrently and returns only the successes.
func (s *Scheduler) fetchAll(ctx context.Context, cycleID string, subs []model.Subscription) map[model.Subscription]*model.ScoreInfo {
	results := make(map[model.Subscription]*model.ScoreInfo, len(subs))
	if len(subs) == 0 {
		return results
	}

	var mu sync.Mutex
	// Plain Group: one failure must not cancel the siblings.
	var g errgroup.Group
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}

	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			begin := time.Now()
			info, err := s.fetchOne(ctx, sub)
			s.observer.FetchDone(ctx, cycleID, sub, time.Since(begin), err)
			if err != nil {
				return nil
			}
			mu.Lock()
			results[sub] = info
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

type fetchResult struct {
	info *model.ScoreInfo
	err  error
}

// fetchOne enforces the fetch deadline even when the fetcher ignores its context.
func (s *Scheduler) fetchOne(ctx context.Context, sub model.Subscription) (*model.ScoreInfo, error) {
	fctx, cancel := ctx, context.CancelFunc(func() {})
	if s.fetchTimeout > 0 {
		fctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
	}
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		info, err := s.fetcher.Fetch(fctx, sub)
		done <- fetchResult{info: info, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		if res.info == nil {
			return nil, errEmptyResult
		}
		return res.info, nil
	case <-fctx.Done():
		return nil, fmt.Errorf("fetch %s: %w", sub.Key(), fctx.Err())
	}
}

// writeBack persists results in active-set order and retires finished games.
// A subscription is only removed after its final snapshot was written.
func (s *Scheduler) writeBack(ctx context.Context, r *Report, selected []entry, results map[model.Subscription]*model.ScoreInfo) {
	for _, e := range selected {
		info, ok := results[e.sub]
		if !ok {
			continue
		}
		if err := s.cache.Put(ctx, e.sub, info); err != nil {
			r.WriteFailures++
			s.observer.WriteFailed(ctx, r.CycleID, e.sub, err)
			continue
		}
		r.Written++
		if !info.Event.State.IsTerminal() {
			continue
		}
		if _, err := s.subs.Remove(ctx, e.raw); err != nil {
			r.RetireFailures++
			s.observer.RetireFailed(ctx, r.CycleID, e.sub, err)
			continue
		}
		r.Retired++
		s.observer.Retired(ctx, r.CycleID, e.sub)
	}
}

// Run runs a cycle immediately and then every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		// Errors are reported through the observer.
		_, _ = s.RunCycle(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// LastReport returns the report of the most recent completed cycle.
func (s *Scheduler) LastReport() (Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return Report{}, false
	}
	return *s.last, true
}
