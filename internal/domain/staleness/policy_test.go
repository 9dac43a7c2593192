package staleness_test

import (
	"testing"
	"time"

	"github.com/okian/livescores/internal/domain/model"
	"github.com/okian/livescores/internal/domain/staleness"
	. "github.com/smartystreets/goconvey/convey"
)

func snapshot(state model.EventState, start time.Time, generated *time.Time) *model.ScoreInfo {
	return &model.ScoreInfo{
		Event:         model.Event{ID: "1", League: model.LeagueNFL, State: state, Date: start},
		GeneratedDate: generated,
	}
}

func at(t time.Time) *time.Time { return &t }

func TestPolicyDecide(t *testing.T) {
	now := time.Date(2024, 10, 6, 17, 0, 0, 0, time.UTC)

	Convey("Given the default policy", t, func() {
		p := staleness.New()

		Convey("When nothing is cached", func() {
			d := p.Decide(nil, now)
			So(d.Refresh, ShouldBeTrue)
			So(d.Reason, ShouldEqual, staleness.ReasonNoCache)
		})

		Convey("When the cached game is live", func() {
			Convey("Then it refreshes regardless of timestamps", func() {
				for _, gen := range []*time.Time{nil, at(now), at(now.Add(-time.Minute)), at(now.Add(-48 * time.Hour))} {
					d := p.Decide(snapshot(model.StateLive, now.Add(72*time.Hour), gen), now)
					So(d.Refresh, ShouldBeTrue)
					So(d.Reason, ShouldEqual, staleness.ReasonLive)
				}
			})
		})

		Convey("When a non-live snapshot has no generated date", func() {
			d := p.Decide(snapshot(model.StateScheduled, now.Add(24*time.Hour), nil), now)
			So(d.Refresh, ShouldBeTrue)
			So(d.Reason, ShouldEqual, staleness.ReasonNeverFetched)
		})

		Convey("When fetched 30 minutes ago and the game starts in 2 hours", func() {
			d := p.Decide(snapshot(model.StateScheduled, now.Add(2*time.Hour), at(now.Add(-30*time.Minute))), now)
			Convey("Then neither threshold is crossed and it skips", func() {
				So(d.Refresh, ShouldBeFalse)
				So(d.Reason, ShouldEqual, staleness.ReasonFresh)
				So(d.Label(), ShouldEqual, "skip")
			})
		})

		Convey("When the game starts in 30 minutes", func() {
			d := p.Decide(snapshot(model.StateScheduled, now.Add(30*time.Minute), at(now.Add(-time.Minute))), now)
			Convey("Then the pre-game window forces a refresh even with a recent fetch", func() {
				So(d.Refresh, ShouldBeTrue)
				So(d.Reason, ShouldEqual, staleness.ReasonCloseToStart)
				So(d.Label(), ShouldEqual, "refresh")
			})
		})

		Convey("When the snapshot is 7 hours old and the game is far away", func() {
			d := p.Decide(snapshot(model.StateScheduled, now.Add(10*24*time.Hour), at(now.Add(-7*time.Hour))), now)
			So(d.Refresh, ShouldBeTrue)
			So(d.Reason, ShouldEqual, staleness.ReasonStale)
		})

		Convey("When a final snapshot is cached but not yet retired", func() {
			d := p.Decide(snapshot(model.StateFinal, now.Add(-3*time.Hour), at(now.Add(-time.Minute))), now)
			Convey("Then the past start time keeps it inside the pre-game window", func() {
				So(d.Refresh, ShouldBeTrue)
				So(d.Reason, ShouldEqual, staleness.ReasonCloseToStart)
			})
		})

		Convey("When a postponed or delayed game is past its start time", func() {
			Convey("Then it is refetched on every cycle, even right after a fetch", func() {
				for _, st := range []model.EventState{model.StatePostponed, model.StateDelayed} {
					d := p.Decide(snapshot(st, now.Add(-48*time.Hour), at(now.Add(-time.Second))), now)
					So(d.Refresh, ShouldBeTrue)
					So(d.Reason, ShouldEqual, staleness.ReasonCloseToStart)
					So(st.IsTerminal(), ShouldBeFalse)
				}
			})
		})
	})

	Convey("Given a policy with custom thresholds", t, func() {
		p := staleness.New(
			staleness.WithCloseToGameThreshold(15*time.Minute),
			staleness.WithStaleThreshold(time.Hour),
			staleness.WithStaleThreshold(0), // ignored
		)
		So(p.CloseToGameThreshold(), ShouldEqual, 15*time.Minute)
		So(p.StaleThreshold(), ShouldEqual, time.Hour)

		Convey("When the game starts in 30 minutes with a recent fetch", func() {
			d := p.Decide(snapshot(model.StateScheduled, now.Add(30*time.Minute), at(now.Add(-10*time.Minute))), now)
			So(d.Refresh, ShouldBeFalse)
		})

		Convey("When the snapshot is 90 minutes old", func() {
			d := p.Decide(snapshot(model.StateScheduled, now.Add(5*time.Hour), at(now.Add(-90*time.Minute))), now)
			So(d.Reason, ShouldEqual, staleness.ReasonStale)
		})
	})
}
