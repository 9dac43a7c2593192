// Package provider defines how upstream score data is fetched and normalized,
// and routes each subscription to exactly one adapter.
package provider

import (
	"context"
	"fmt"

	"github.com/okian/livescores/internal/domain/model"
)

// Fetcher fetches one subscription's game and normalizes it into a ScoreInfo.
// Implementations return ErrNoData instead of an empty snapshot.
type Fetcher interface {
	Fetch(ctx context.Context, sub model.Subscription) (*model.ScoreInfo, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, sub model.Subscription) (*model.ScoreInfo, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, sub model.Subscription) (*model.ScoreInfo, error) {
	return f(ctx, sub)
}

// Dispatcher selects exactly one adapter per subscription by its Service:
//
//	srnfl    -> NFL adapter
//	srsoccer -> soccer adapter
//	anything else (espn, empty, unknown) -> default per-league adapter
type Dispatcher struct {
	fallback Fetcher
	nfl      Fetcher
	soccer   Fetcher
}

// DispatcherOption applies a configuration option to the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDefault sets the per-league fallback adapter.
func WithDefault(f Fetcher) DispatcherOption {
	return func(d *Dispatcher) { d.fallback = f }
}

// WithNFL sets the adapter for model.ServiceSRNFL.
func WithNFL(f Fetcher) DispatcherOption {
	return func(d *Dispatcher) { d.nfl = f }
}

// WithSoccer sets the adapter for model.ServiceSRSoccer.
func WithSoccer(f Fetcher) DispatcherOption {
	return func(d *Dispatcher) { d.soccer = f }
}

// NewDispatcher builds a Dispatcher. Arms left unset fail with ErrNoFetcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Route returns the adapter owning sub.
func (d *Dispatcher) Route(sub model.Subscription) (Fetcher, error) {
	var f Fetcher
	switch sub.Service {
	case model.ServiceSRNFL:
		f = d.nfl
	case model.ServiceSRSoccer:
		f = d.soccer
	default:
		f = d.fallback
	}
	if f == nil {
		return nil, fmt.Errorf("%w: service %q", ErrNoFetcher, sub.Service)
	}
	return f, nil
}

// Fetch implements Fetcher by delegating to the routed adapter.
func (d *Dispatcher) Fetch(ctx context.Context, sub model.Subscription) (*model.ScoreInfo, error) {
	f, err := d.Route(sub)
	if err != nil {
		return nil, err
	}
	info, err := f.Fetch(ctx, sub)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, ErrNoData
	}
	return info, nil
}
