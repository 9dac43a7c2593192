package sportradar_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/livescores/internal/adapters/provider"
	"github.com/okian/livescores/internal/adapters/provider/sportradar"
	"github.com/okian/livescores/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const boxscore = `{
  "id": "g-1", "status": "inprogress", "scheduled": "2024-09-08T17:00:00+00:00",
  "quarter": 2, "clock": "07:31",
  "home": {"id": "h", "name": "Bears", "market": "Chicago", "alias": "CHI", "points": 10},
  "away": {"id": "a", "name": "Packers", "market": "Green Bay", "alias": "GB", "points": 3}
}`

const soccerSummary = `{
  "sport_event": {
    "id": "sr:sport_event:42", "start_time": "2024-08-17T14:00:00+00:00",
    "competitors": [
      {"id": "sr:competitor:1", "name": "Arsenal", "abbreviation": "ARS", "qualifier": "home"},
      {"id": "sr:competitor:2", "name": "Chelsea", "abbreviation": "CHE", "qualifier": "away"}
    ]
  },
  "sport_event_status": {"status": "closed", "match_status": "ended", "home_score": 2, "away_score": 1}
}`

func newServer(paths map[string]string, seen *[]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = append(*seen, r.URL.EscapedPath()+"?"+r.URL.RawQuery)
		body, ok := paths[r.URL.Path]
		if !ok {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
}

func TestNFL(t *testing.T) {
	Convey("Given a Sportradar NFL server", t, func() {
		var seen []string
		srv := newServer(map[string]string{
			"/nfl/official/trial/v7/en/games/g-1/boxscore.json": boxscore,
			"/nfl/official/trial/v7/en/games/g-0/boxscore.json": `{}`,
		}, &seen)
		defer srv.Close()

		now := time.Date(2024, 9, 8, 18, 0, 0, 0, time.UTC)
		a := sportradar.NewNFL(sportradar.NewClient(srv.URL, "k"), sportradar.WithClock(func() time.Time { return now }))

		Convey("A boxscore is normalized", func() {
			info, err := a.Fetch(context.Background(), model.Subscription{League: model.LeagueNFL, EventID: "g-1", Service: model.ServiceSRNFL})
			So(err, ShouldBeNil)
			So(seen[0], ShouldContainSubstring, "api_key=k")
			So(info.Service, ShouldEqual, model.ServiceSRNFL)
			So(info.Event.State, ShouldEqual, model.StateLive)
			So(info.Event.HomeTeam.Name, ShouldEqual, "Chicago Bears")
			So(info.Event.AwayTeam.Abbreviation, ShouldEqual, "GB")
			So(info.Event.HomeScore, ShouldEqual, 10)
			So(info.Event.Detail, ShouldEqual, "Q2 07:31")
			So(info.GeneratedDate.Equal(now), ShouldBeTrue)
		})

		Convey("An empty payload is ErrNoData", func() {
			_, err := a.Fetch(context.Background(), model.Subscription{League: model.LeagueNFL, EventID: "g-0"})
			So(errors.Is(err, provider.ErrNoData), ShouldBeTrue)
		})

		Convey("A 404 surfaces as an APIError", func() {
			_, err := a.Fetch(context.Background(), model.Subscription{League: model.LeagueNFL, EventID: "nope"})
			var apiErr *provider.APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("A slash in the event id is escaped, not followed", func() {
			_, err := a.Fetch(context.Background(), model.Subscription{League: model.LeagueNFL, EventID: "../../x"})
			So(err, ShouldNotBeNil)
			So(seen[len(seen)-1], ShouldEqual, "/nfl/official/trial/v7/en/games/..%2F..%2Fx/boxscore.json?api_key=k")
		})
	})
}

func TestSoccer(t *testing.T) {
	Convey("Given a Sportradar soccer server on the production tier", t, func() {
		var seen []string
		srv := newServer(map[string]string{
			"/soccer/production/v4/en/sport_events/sr:sport_event:42/summary.json": soccerSummary,
		}, &seen)
		defer srv.Close()

		a := sportradar.NewSoccer(sportradar.NewClient(srv.URL, "k"), sportradar.WithAccessLevel("production"))

		Convey("A closed match is final with both sides mapped", func() {
			info, err := a.Fetch(context.Background(), model.Subscription{League: model.LeagueEPL, EventID: "sr:sport_event:42", Service: model.ServiceSRSoccer})
			So(err, ShouldBeNil)
			So(info.Event.State, ShouldEqual, model.StateFinal)
			So(info.Event.State.IsTerminal(), ShouldBeTrue)
			So(info.Event.League, ShouldEqual, model.LeagueEPL)
			So(info.Event.HomeTeam.Name, ShouldEqual, "Arsenal")
			So(info.Event.AwayTeam.Name, ShouldEqual, "Chelsea")
			So(info.Event.HomeScore, ShouldEqual, 2)
			So(info.Event.AwayScore, ShouldEqual, 1)
			So(info.Event.Date.Equal(time.Date(2024, 8, 17, 14, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(info.GeneratedDate, ShouldNotBeNil)
		})

		Convey("An event id carrying path and query syntax stays inside its segment", func() {
			_, err := a.Fetch(context.Background(), model.Subscription{League: model.LeagueEPL, EventID: "../../../../other/x.json?evil=1", Service: model.ServiceSRSoccer})
			So(err, ShouldNotBeNil)
			So(seen, ShouldHaveLength, 1)
			So(seen[0], ShouldEqual, "/soccer/production/v4/en/sport_events/..%2F..%2F..%2F..%2Fother%2Fx.json%3Fevil=1/summary.json?api_key=k")
		})
	})
}
