// Package service wires the score cache, providers and refresh scheduler into
// the operations exposed by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/livescores/internal/adapters/provider"
	"github.com/okian/livescores/internal/adapters/provider/demo"
	"github.com/okian/livescores/internal/adapters/provider/espn"
	"github.com/okian/livescores/internal/adapters/repository"
	"github.com/okian/livescores/internal/domain/model"
	"github.com/okian/livescores/internal/domain/refresh"
	"github.com/okian/livescores/internal/domain/scorecache"
	"github.com/okian/livescores/internal/domain/staleness"
	"github.com/okian/livescores/pkg/logger"
	"github.com/okian/livescores/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultRefreshInterval = 60 * time.Second
)

// Service implements the API dependencies for the live score system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	fetcher   provider.Fetcher
	demo      *demo.Adapter
	cache     *scorecache.Cache
	policy    *staleness.Policy
	scheduler *refresh.Scheduler

	// Configuration
	refreshInterval time.Duration
	closeToGame     time.Duration
	stale           time.Duration
	fetchTimeout    time.Duration
	maxConcurrency  int
	now             func() time.Time

	// State
	started bool
	cancel  context.CancelFunc
	done    chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing key-value store and subscription set.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithFetcher sets the provider used by refresh cycles, usually a provider.Dispatcher.
func WithFetcher(f provider.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithDemoAdapter sets the adapter answering demo ids.
func WithDemoAdapter(a *demo.Adapter) Option {
	return func(s *Service) {
		if a != nil {
			s.demo = a
		}
	}
}

// WithRefreshInterval sets the period of the refresh trigger.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithCloseToGameThreshold sets how far ahead of kickoff a game is refreshed every cycle.
func WithCloseToGameThreshold(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.closeToGame = d
		}
	}
}

// WithStaleThreshold sets the maximum age of a snapshot.
func WithStaleThreshold(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.stale = d
		}
	}
}

// WithFetchTimeout bounds each provider call.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithMaxConcurrentFetches caps in-flight provider calls per cycle.
func WithMaxConcurrentFetches(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxConcurrency = n
		}
	}
}

// WithClock overrides the clock used for staleness decisions.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Without WithStore it runs on an in-memory store,
// and without WithFetcher every subscription goes to ESPN.
func New(opts ...Option) *Service {
	s := &Service{
		refreshInterval: defaultRefreshInterval,
		closeToGame:     staleness.DefaultCloseToGameThreshold,
		stale:           staleness.DefaultStaleThreshold,
		fetchTimeout:    refresh.DefaultFetchTimeout,
		maxConcurrency:  refresh.DefaultMaxConcurrency,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.fetcher == nil {
		s.fetcher = provider.NewDispatcher(
			provider.WithDefault(espn.New(provider.NewClient(espn.DefaultBaseURL))),
		)
	}
	if s.demo == nil {
		s.demo = demo.New(demo.WithClock(s.now))
	}

	s.cache = scorecache.New(s.store, scorecache.WithLogger(s.logger.Named("cache")))
	s.policy = staleness.New(
		staleness.WithCloseToGameThreshold(s.closeToGame),
		staleness.WithStaleThreshold(s.stale),
	)
	s.scheduler = refresh.New(s.store, s.cache, s.fetcher, s.policy,
		refresh.WithObserver(refresh.NewLogObserver(s.logger.Named("refresh"))),
		refresh.WithClock(s.now),
		refresh.WithFetchTimeout(s.fetchTimeout),
		refresh.WithMaxConcurrency(s.maxConcurrency),
	)

	return s
}

// Start launches the periodic refresh trigger. The first cycle runs immediately.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting live score service...")

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		s.scheduler.Run(runCtx, s.refreshInterval)
	}(s.done)

	s.started = true
	s.logger.Info(ctx, "live score service started",
		logger.Duration("refreshInterval", s.refreshInterval),
		logger.Duration("closeToGameThreshold", s.closeToGame),
		logger.Duration("staleThreshold", s.stale),
		logger.Duration("fetchTimeout", s.fetchTimeout),
		logger.Int("maxConcurrentFetches", s.maxConcurrency),
	)
	return nil
}

// Stop stops the refresh trigger, waits for an in-flight cycle and closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping live score service...")

	s.cancel()
	<-s.done

	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "failed to close store", logger.Error(err))
	}

	s.started = false
	s.logger.Info(context.Background(), "live score service stopped")
}

// Subscribe binds contentID to sub and starts tracking the game.
// Demo games are bound but never tracked since they never touch the cache.
func (s *Service) Subscribe(ctx context.Context, contentID string, sub model.Subscription) error {
	if _, err := model.PostKey(contentID); err != nil {
		return err
	}
	if err := sub.Validate(); err != nil {
		return err
	}
	if sub.IsDemo() {
		if _, _, err := demo.ParseEventID(sub.EventID); err != nil {
			return fmt.Errorf("%w: %w", model.ErrInvalidSubscription, err)
		}
	}

	if err := s.cache.BindContent(ctx, contentID, sub); err != nil {
		metrics.RecordErrorByComponent("service", "bind_content")
		return err
	}
	if sub.IsDemo() {
		s.logger.Debug(ctx, "bound demo game", logger.String("contentId", contentID), logger.String("eventId", sub.EventID))
		return nil
	}

	raw, err := sub.Marshal()
	if err != nil {
		return err
	}
	added, err := s.store.Add(ctx, raw)
	if err != nil {
		metrics.RecordErrorByComponent("service", "subscribe")
		return fmt.Errorf("track subscription: %w", err)
	}
	s.logger.Info(ctx, "subscribed",
		logger.String("contentId", contentID),
		logger.String("league", string(sub.League)),
		logger.String("eventId", sub.EventID),
		logger.String("service", string(sub.Service)),
		logger.Bool("new", added),
	)
	return nil
}

// Unsubscribe stops tracking the game bound to contentID. It reports false
// when there is no binding or the game was no longer tracked.
func (s *Service) Unsubscribe(ctx context.Context, contentID string) (bool, error) {
	sub, err := s.cache.SubscriptionForContent(ctx, contentID)
	if err != nil || sub == nil {
		return false, err
	}
	if sub.IsDemo() {
		return false, nil
	}
	raw, err := sub.Marshal()
	if err != nil {
		return false, err
	}
	removed, err := s.store.Remove(ctx, raw)
	if err != nil {
		metrics.RecordErrorByComponent("service", "unsubscribe")
		return false, fmt.Errorf("untrack subscription: %w", err)
	}
	return removed, nil
}

// ScoreForContent returns the latest snapshot for the game bound to contentID,
// or nil when nothing is bound or nothing was fetched yet.
func (s *Service) ScoreForContent(ctx context.Context, contentID string) (*model.ScoreInfo, error) {
	sub, err := s.cache.SubscriptionForContent(ctx, contentID)
	if err != nil || sub == nil {
		return nil, err
	}
	if sub.IsDemo() {
		return s.demo.Resolve(sub.EventID)
	}
	return s.cache.Get(ctx, *sub)
}

// ActiveSubscriptions lists the tracked games. Malformed members are left out.
func (s *Service) ActiveSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	members, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	subs := make([]model.Subscription, 0, len(members))
	for _, raw := range members {
		sub, err := model.ParseSubscription(raw)
		if err != nil {
			continue
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// RefreshNow runs one cycle synchronously. It returns refresh.ErrCycleInProgress
// when the periodic trigger is mid-cycle.
func (s *Service) RefreshNow(ctx context.Context) (refresh.Report, error) {
	return s.scheduler.RunCycle(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":                     s.started,
		"refreshIntervalSeconds":      s.refreshInterval.Seconds(),
		"closeToGameThresholdMinutes": s.policy.CloseToGameThreshold().Minutes(),
		"staleThresholdMinutes":       s.policy.StaleThreshold().Minutes(),
		"fetchTimeoutMs":              s.fetchTimeout.Milliseconds(),
		"maxConcurrentFetches":        s.maxConcurrency,
	}

	if r, ok := s.scheduler.LastReport(); ok {
		stats["lastCycle"] = r
	}

	return stats
}
