// Package espn fetches game summaries from the ESPN site API and normalizes
// them into model.ScoreInfo.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/livescores/internal/adapters/provider"
	"github.com/okian/livescores/internal/domain/model"
)

// DefaultBaseURL is the public ESPN site API root.
const DefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"

// ESPN emits minute-precision timestamps without seconds.
var dateLayouts = []string{"2006-01-02T15:04Z", time.RFC3339}

// Adapter is the per-league fallback provider.
type Adapter struct {
	client *provider.Client
	now    func() time.Time
}

// Option applies a configuration option to the Adapter.
type Option func(*Adapter)

// WithClock overrides the clock used to stamp GeneratedDate.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an ESPN adapter on top of client.
func New(client *provider.Client, opts ...Option) *Adapter {
	a := &Adapter{client: client, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Fetch implements provider.Fetcher.
func (a *Adapter) Fetch(ctx context.Context, sub model.Subscription) (*model.ScoreInfo, error) {
	sport := sub.League.Sport()
	if sport == "" {
		return nil, fmt.Errorf("espn: %w: %q", model.ErrUnknownLeague, sub.League)
	}
	path := fmt.Sprintf("/%s/%s/summary", sport, sub.League)

	var resp summaryResponse
	if err := a.client.GetJSON(ctx, path, url.Values{"event": {sub.EventID}}, &resp); err != nil {
		return nil, fmt.Errorf("espn %s/%s: %w", sub.League, sub.EventID, err)
	}
	info, err := normalize(&resp, sub.League)
	if err != nil {
		return nil, fmt.Errorf("espn %s/%s: %w", sub.League, sub.EventID, err)
	}
	if info.Event.ID == "" {
		info.Event.ID = sub.EventID
	}
	info.Stamp(a.now())
	return info, nil
}

// ParseSummary normalizes a raw summary payload. GeneratedDate is left unset.
func ParseSummary(raw []byte, league model.League) (*model.ScoreInfo, error) {
	var resp summaryResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return normalize(&resp, league)
}

func normalize(resp *summaryResponse, league model.League) (*model.ScoreInfo, error) {
	if len(resp.Header.Competitions) == 0 {
		return nil, provider.ErrNoData
	}
	comp := resp.Header.Competitions[0]

	ev := model.Event{
		ID:     resp.Header.ID,
		League: league,
		Sport:  league.Sport(),
		State:  mapState(comp.Status),
		Detail: comp.Status.Type.ShortDetail,
	}
	if ev.ID == "" {
		ev.ID = comp.ID
	}
	if comp.Date != "" {
		d, err := parseDate(comp.Date)
		if err != nil {
			return nil, err
		}
		ev.Date = d
	}

	for _, c := range comp.Competitors {
		team := model.Team{ID: c.Team.ID, Name: c.Team.DisplayName, Abbreviation: c.Team.Abbreviation}
		score := parseScore(c.Score)
		switch strings.ToLower(c.HomeAway) {
		case "home":
			ev.HomeTeam, ev.HomeScore = team, score
		case "away":
			ev.AwayTeam, ev.AwayScore = team, score
		}
	}

	return &model.ScoreInfo{Event: ev, Service: model.ServiceESPN}, nil
}

func mapState(s status) model.EventState {
	if s.Type.Completed {
		return model.StateFinal
	}
	switch s.Type.Name {
	case "STATUS_POSTPONED", "STATUS_CANCELED":
		return model.StatePostponed
	case "STATUS_DELAYED", "STATUS_RAIN_DELAY":
		return model.StateDelayed
	}
	switch s.Type.State {
	case "pre":
		return model.StateScheduled
	case "in":
		return model.StateLive
	case "post":
		return model.StateFinal
	}
	return model.StateUnknown
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Scores are strings upstream and may be blank before kickoff.
func parseScore(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
