package sportradar

import (
	"context"
	"fmt"
	"net/url"

	"github.com/okian/livescores/internal/adapters/provider"
	"github.com/okian/livescores/internal/domain/model"
)

// Soccer fetches soccer v4 sport event summaries.
type Soccer struct {
	client *provider.Client
	cfg    config
}

// NewSoccer creates the adapter for model.ServiceSRSoccer.
func NewSoccer(client *provider.Client, opts ...Option) *Soccer {
	return &Soccer{client: client, cfg: newConfig(opts)}
}

// Fetch implements provider.Fetcher.
func (s *Soccer) Fetch(ctx context.Context, sub model.Subscription) (*model.ScoreInfo, error) {
	return s.FetchSoccerEvent(ctx, sub.League, sub.EventID)
}

// FetchSoccerEvent fetches one match by its sport event id (e.g. sr:sport_event:123).
func (s *Soccer) FetchSoccerEvent(ctx context.Context, league model.League, eventID string) (*model.ScoreInfo, error) {
	path := fmt.Sprintf("/soccer/%s/v4/en/sport_events/%s/summary.json", s.cfg.accessLevel, url.PathEscape(eventID))

	var sum soccerSummary
	if err := s.client.GetJSON(ctx, path, nil, &sum); err != nil {
		return nil, fmt.Errorf("sportradar soccer %s: %w", eventID, err)
	}
	if sum.SportEvent.ID == "" && len(sum.SportEvent.Competitors) == 0 {
		return nil, fmt.Errorf("sportradar soccer %s: %w", eventID, provider.ErrNoData)
	}

	date, err := parseTime(sum.SportEvent.StartTime)
	if err != nil {
		return nil, fmt.Errorf("sportradar soccer %s: %w", eventID, err)
	}

	ev := model.Event{
		ID:        eventID,
		League:    league,
		Sport:     model.SportSoccer,
		State:     soccerState(sum.SportEventStatus.Status),
		Date:      date,
		HomeScore: sum.SportEventStatus.HomeScore,
		AwayScore: sum.SportEventStatus.AwayScore,
	}
	for _, c := range sum.SportEvent.Competitors {
		team := model.Team{ID: c.ID, Name: c.Name, Abbreviation: c.Abbreviation}
		switch c.Qualifier {
		case "home":
			ev.HomeTeam = team
		case "away":
			ev.AwayTeam = team
		}
	}
	if ev.State == model.StateLive && sum.SportEventStatus.Clock != nil {
		ev.Detail = sum.SportEventStatus.Clock.Played
	}

	info := &model.ScoreInfo{Event: ev, Service: model.ServiceSRSoccer}
	info.Stamp(s.cfg.now())
	return info, nil
}

func soccerState(s string) model.EventState {
	switch s {
	case "not_started":
		return model.StateScheduled
	case "live":
		return model.StateLive
	case "closed", "ended":
		return model.StateFinal
	case "postponed", "cancelled", "abandoned":
		return model.StatePostponed
	case "delayed", "interrupted", "suspended":
		return model.StateDelayed
	}
	return model.StateUnknown
}
