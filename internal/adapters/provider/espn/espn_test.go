package espn_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/livescores/internal/adapters/provider"
	"github.com/okian/livescores/internal/adapters/provider/espn"
	"github.com/okian/livescores/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const liveSummary = `{
  "header": {
    "id": "401547417",
    "competitions": [{
      "id": "401547417",
      "date": "2024-01-14T18:00Z",
      "status": {"type": {"name": "STATUS_IN_PROGRESS", "state": "in", "completed": false, "shortDetail": "Q3 4:12"}},
      "competitors": [
        {"homeAway": "home", "score": "21", "team": {"id": "12", "displayName": "Kansas City Chiefs", "abbreviation": "KC"}},
        {"homeAway": "away", "score": "14", "team": {"id": "33", "displayName": "Miami Dolphins", "abbreviation": "MIA"}}
      ]
    }]
  }
}`

func TestFetch(t *testing.T) {
	Convey("Given an ESPN-shaped server", t, func() {
		var gotPath, gotEvent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotEvent = r.URL.Query().Get("event")
			if gotEvent == "missing" {
				_, _ = w.Write([]byte(`{"header":{"competitions":[]}}`))
				return
			}
			_, _ = w.Write([]byte(liveSummary))
		}))
		defer srv.Close()

		now := time.Date(2024, 1, 14, 19, 30, 0, 0, time.UTC)
		a := espn.New(provider.NewClient(srv.URL), espn.WithClock(func() time.Time { return now }))

		Convey("A live game is normalized and stamped", func() {
			info, err := a.Fetch(context.Background(), model.Subscription{League: model.LeagueNFL, EventID: "401547417"})
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/football/nfl/summary")
			So(gotEvent, ShouldEqual, "401547417")
			So(info.Service, ShouldEqual, model.ServiceESPN)
			So(info.Event.State, ShouldEqual, model.StateLive)
			So(info.Event.Sport, ShouldEqual, model.SportFootball)
			So(info.Event.HomeTeam.Abbreviation, ShouldEqual, "KC")
			So(info.Event.HomeScore, ShouldEqual, 21)
			So(info.Event.AwayScore, ShouldEqual, 14)
			So(info.Event.Detail, ShouldEqual, "Q3 4:12")
			So(info.Event.Date.Equal(time.Date(2024, 1, 14, 18, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(info.GeneratedDate, ShouldNotBeNil)
			So(info.GeneratedDate.Equal(now), ShouldBeTrue)
		})

		Convey("An event with no competitions is ErrNoData", func() {
			_, err := a.Fetch(context.Background(), model.Subscription{League: model.LeagueNBA, EventID: "missing"})
			So(errors.Is(err, provider.ErrNoData), ShouldBeTrue)
			So(gotPath, ShouldEqual, "/basketball/nba/summary")
		})

		Convey("An unknown league fails before any request", func() {
			gotPath = ""
			_, err := a.Fetch(context.Background(), model.Subscription{League: "cricket", EventID: "1"})
			So(errors.Is(err, model.ErrUnknownLeague), ShouldBeTrue)
			So(gotPath, ShouldBeEmpty)
		})
	})
}

func TestParseSummaryStates(t *testing.T) {
	Convey("Given summaries in different states", t, func() {
		build := func(name, state string, completed bool) []byte {
			c := "false"
			if completed {
				c = "true"
			}
			return []byte(`{"header":{"id":"1","competitions":[{"date":"2024-01-14T18:00:00Z","status":{"type":{"name":"` +
				name + `","state":"` + state + `","completed":` + c + `}},"competitors":[]}]}}`)
		}

		cases := []struct {
			name, state string
			completed   bool
			want        model.EventState
		}{
			{"STATUS_SCHEDULED", "pre", false, model.StateScheduled},
			{"STATUS_IN_PROGRESS", "in", false, model.StateLive},
			{"STATUS_FINAL", "post", true, model.StateFinal},
			{"STATUS_POSTPONED", "post", false, model.StatePostponed},
			{"STATUS_DELAYED", "in", false, model.StateDelayed},
			{"STATUS_ODD", "??", false, model.StateUnknown},
		}
		for _, c := range cases {
			info, err := espn.ParseSummary(build(c.name, c.state, c.completed), model.LeagueEPL)
			So(err, ShouldBeNil)
			So(info.Event.State, ShouldEqual, c.want)
			So(info.GeneratedDate, ShouldBeNil)
		}
	})
}
