// Package demo serves canned games for synthetic "demo-{league}-{fixture}" ids.
// Nothing here touches the network or the score cache.
package demo

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/okian/livescores/internal/adapters/provider/espn"
	"github.com/okian/livescores/internal/domain/model"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// Fixture names a canned game state.
type Fixture string

// Available fixtures.
const (
	FixtureScheduled Fixture = "scheduled"
	FixtureLive      Fixture = "live"
	FixtureFinal     Fixture = "final"
)

// Fixtures lists every fixture in a stable order.
func Fixtures() []Fixture {
	return []Fixture{FixtureScheduled, FixtureLive, FixtureFinal}
}

// Start time of each fixture relative to now.
var startOffsets = map[Fixture]time.Duration{
	FixtureScheduled: 3 * time.Hour,
	FixtureLive:      -time.Hour,
	FixtureFinal:     -26 * time.Hour,
}

// EventID builds the demo id for league and fixture.
func EventID(league model.League, f Fixture) string {
	return fmt.Sprintf("demo-%s-%s", league, f)
}

// ParseEventID splits a demo id into its league and fixture.
func ParseEventID(id string) (model.League, Fixture, error) {
	if !model.IsDemoEventID(id) {
		return "", "", fmt.Errorf("%w: %q", ErrNotDemoID, id)
	}
	rest, ok := strings.CutPrefix(id, "demo-")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownFixture, id)
	}
	// League codes may contain '-', fixtures never do.
	i := strings.LastIndex(rest, "-")
	if i <= 0 {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownFixture, id)
	}
	f := Fixture(rest[i+1:])
	if _, ok := startOffsets[f]; !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownFixture, f)
	}
	league, err := model.ParseLeague(rest[:i])
	if err != nil {
		return "", "", err
	}
	return league, f, nil
}

// Adapter resolves demo ids into snapshots.
type Adapter struct {
	now func() time.Time
}

// Option applies a configuration option to the Adapter.
type Option func(*Adapter)

// WithClock overrides the clock used for start times and GeneratedDate.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates a demo Adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Resolve returns the canned snapshot for a demo id.
func (a *Adapter) Resolve(id string) (*model.ScoreInfo, error) {
	league, f, err := ParseEventID(id)
	if err != nil {
		return nil, err
	}
	raw, err := fixtureFS.ReadFile("fixtures/" + string(f) + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFixture, f)
	}
	info, err := espn.ParseSummary(raw, league)
	if err != nil {
		return nil, fmt.Errorf("demo %s: %w", id, err)
	}

	now := a.now().UTC()
	info.Event.ID = id
	info.Event.Date = now.Add(startOffsets[f]).Truncate(time.Minute)
	info.Service = model.ServiceESPN
	info.Stamp(now)
	return info, nil
}

// Fetch implements provider.Fetcher. The subscription's league is ignored in
// favour of the one encoded in the id.
func (a *Adapter) Fetch(_ context.Context, sub model.Subscription) (*model.ScoreInfo, error) {
	return a.Resolve(sub.EventID)
}
