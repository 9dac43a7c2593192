package model_test

import (
	"errors"
	"testing"
	"time"

	model "github.com/okian/livescores/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestSubscriptionKeys(t *testing.T) {
	convey.Convey("Given two subscriptions built independently for the same game", t, func() {
		a := model.Subscription{League: model.LeagueNFL, EventID: "401547417", Service: model.ServiceESPN}
		b := model.Subscription{League: model.League("nfl"), EventID: "401547417", Service: model.ServiceSRNFL}

		convey.Convey("Then their cache keys are equal", func() {
			convey.So(a.Key(), convey.ShouldEqual, b.Key())
			convey.So(a.Key(), convey.ShouldEqual, "info:nfl-401547417")
		})
	})

	convey.Convey("Given a content id", t, func() {
		convey.Convey("When it is present", func() {
			key, err := model.PostKey("t3_abc")
			convey.So(err, convey.ShouldBeNil)
			convey.So(key, convey.ShouldEqual, "post:t3_abc")
		})

		convey.Convey("When it is empty", func() {
			_, err := model.PostKey("")
			convey.So(errors.Is(err, model.ErrMissingContentID), convey.ShouldBeTrue)
		})
	})
}

func TestSubscriptionSerialization(t *testing.T) {
	convey.Convey("Given a subscription", t, func() {
		sub := model.Subscription{League: model.LeagueEPL, EventID: "sr:sport_event:1", Service: model.ServiceSRSoccer}

		convey.Convey("When it is marshalled twice", func() {
			first, err := sub.Marshal()
			convey.So(err, convey.ShouldBeNil)
			second, _ := model.Subscription{League: "eng.1", EventID: "sr:sport_event:1", Service: "srsoccer"}.Marshal()

			convey.Convey("Then the serialized forms match byte for byte", func() {
				convey.So(first, convey.ShouldEqual, second)
				convey.So(first, convey.ShouldEqual, `{"league":"eng.1","eventId":"sr:sport_event:1","service":"srsoccer"}`)
			})

			convey.Convey("And it parses back to the same value", func() {
				parsed, err := model.ParseSubscription(first)
				convey.So(err, convey.ShouldBeNil)
				convey.So(parsed, convey.ShouldResemble, sub)
			})
		})

		convey.Convey("When the stored form is malformed", func() {
			_, err := model.ParseSubscription(`{"league":`)
			convey.So(errors.Is(err, model.ErrInvalidSubscription), convey.ShouldBeTrue)

			_, err = model.ParseSubscription(`{"league":"nfl"}`)
			convey.So(errors.Is(err, model.ErrInvalidSubscription), convey.ShouldBeTrue)
		})
	})
}

func TestSubscriptionValidate(t *testing.T) {
	convey.Convey("Given subscriptions to validate", t, func() {
		convey.So(model.Subscription{League: model.LeagueNBA, EventID: "1"}.Validate(), convey.ShouldBeNil)
		convey.So(model.Subscription{League: model.LeagueNBA, EventID: "1", Service: model.ServiceSRNFL}.Validate(), convey.ShouldBeNil)

		err := model.Subscription{League: "cricket", EventID: "1"}.Validate()
		convey.So(errors.Is(err, model.ErrUnknownLeague), convey.ShouldBeTrue)

		err = model.Subscription{League: model.LeagueNBA, EventID: " "}.Validate()
		convey.So(errors.Is(err, model.ErrInvalidSubscription), convey.ShouldBeTrue)

		err = model.Subscription{League: model.LeagueNBA, EventID: "1", Service: "fax"}.Validate()
		convey.So(errors.Is(err, model.ErrInvalidSubscription), convey.ShouldBeTrue)

		for _, id := range []string{"../x.json", "1?api_key=other", "1#frag"} {
			err = model.Subscription{League: model.LeagueEPL, EventID: id, Service: model.ServiceSRSoccer}.Validate()
			convey.So(errors.Is(err, model.ErrInvalidSubscription), convey.ShouldBeTrue)
		}
		convey.So(model.Subscription{League: model.LeagueEPL, EventID: "sr:sport_event:42", Service: model.ServiceSRSoccer}.Validate(), convey.ShouldBeNil)
	})
}

func TestLeagues(t *testing.T) {
	convey.Convey("Given league codes", t, func() {
		l, err := model.ParseLeague(" NFL ")
		convey.So(err, convey.ShouldBeNil)
		convey.So(l, convey.ShouldEqual, model.LeagueNFL)
		convey.So(l.Sport(), convey.ShouldEqual, model.SportFootball)
		convey.So(model.LeagueEPL.Sport(), convey.ShouldEqual, model.SportSoccer)
		convey.So(model.LeagueNHL.Sport(), convey.ShouldEqual, model.SportHockey)

		_, err = model.ParseLeague("xfl")
		convey.So(errors.Is(err, model.ErrUnknownLeague), convey.ShouldBeTrue)

		convey.So(len(model.Leagues()), convey.ShouldEqual, 14)
	})
}

func TestScoreInfo(t *testing.T) {
	convey.Convey("Given event states", t, func() {
		convey.So(model.StateFinal.IsTerminal(), convey.ShouldBeTrue)
		convey.So(model.StateLive.IsTerminal(), convey.ShouldBeFalse)
		convey.So(model.StatePostponed.IsTerminal(), convey.ShouldBeFalse)
	})

	convey.Convey("Given a snapshot being stamped", t, func() {
		info := &model.ScoreInfo{}
		at := time.Date(2024, 9, 8, 17, 0, 0, 0, time.FixedZone("EDT", -4*3600))
		info.Stamp(at)
		convey.So(info.GeneratedDate, convey.ShouldNotBeNil)
		convey.So(info.GeneratedDate.Equal(at), convey.ShouldBeTrue)
		convey.So(info.GeneratedDate.Location(), convey.ShouldEqual, time.UTC)
	})

	convey.Convey("Given demo ids", t, func() {
		convey.So(model.IsDemoEventID("demo-nfl-live"), convey.ShouldBeTrue)
		convey.So(model.Subscription{EventID: "401547417"}.IsDemo(), convey.ShouldBeFalse)
	})
}
