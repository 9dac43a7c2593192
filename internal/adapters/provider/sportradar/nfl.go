package sportradar

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/okian/livescores/internal/adapters/provider"
	"github.com/okian/livescores/internal/domain/model"
)

// NFL fetches NFL v7 boxscores.
type NFL struct {
	client *provider.Client
	cfg    config
}

// NewNFL creates the adapter for model.ServiceSRNFL.
func NewNFL(client *provider.Client, opts ...Option) *NFL {
	return &NFL{client: client, cfg: newConfig(opts)}
}

// Fetch implements provider.Fetcher.
func (n *NFL) Fetch(ctx context.Context, sub model.Subscription) (*model.ScoreInfo, error) {
	path := fmt.Sprintf("/nfl/official/%s/v7/en/games/%s/boxscore.json", n.cfg.accessLevel, url.PathEscape(sub.EventID))

	var box nflBoxscore
	if err := n.client.GetJSON(ctx, path, nil, &box); err != nil {
		return nil, fmt.Errorf("sportradar nfl %s: %w", sub.EventID, err)
	}
	if box.ID == "" && box.Status == "" {
		return nil, fmt.Errorf("sportradar nfl %s: %w", sub.EventID, provider.ErrNoData)
	}

	date, err := parseTime(box.Scheduled)
	if err != nil {
		return nil, fmt.Errorf("sportradar nfl %s: %w", sub.EventID, err)
	}

	league := sub.League
	if league == "" {
		league = model.LeagueNFL
	}
	info := &model.ScoreInfo{
		Event: model.Event{
			ID:        sub.EventID,
			League:    league,
			Sport:     model.SportFootball,
			State:     nflState(box.Status),
			Date:      date,
			HomeTeam:  nflTeamOf(box.Home),
			AwayTeam:  nflTeamOf(box.Away),
			HomeScore: box.Home.Points,
			AwayScore: box.Away.Points,
		},
		Service: model.ServiceSRNFL,
	}
	if box.Quarter > 0 && info.Event.State == model.StateLive {
		info.Event.Detail = fmt.Sprintf("Q%d %s", box.Quarter, box.Clock)
	}
	info.Stamp(n.cfg.now())
	return info, nil
}

func nflTeamOf(t nflTeam) model.Team {
	name := strings.TrimSpace(t.Market + " " + t.Name)
	return model.Team{ID: t.ID, Name: name, Abbreviation: t.Alias}
}

func nflState(s string) model.EventState {
	switch s {
	case "inprogress", "halftime":
		return model.StateLive
	case "complete", "closed":
		return model.StateFinal
	case "delayed":
		return model.StateDelayed
	case "postponed", "cancelled":
		return model.StatePostponed
	case "scheduled", "created":
		return model.StateScheduled
	}
	return model.StateUnknown
}
