package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "livescores")
				So(manager.subsystem, ShouldEqual, "refresh")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.retirements.Inc()

			Convey("Then the metric names should carry the custom prefix", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, mf := range families {
					if mf.GetName() == "test_unit_retirements_total" {
						found = true
						So(mf.GetMetric()[0].GetCounter().GetValue(), ShouldEqual, 1)
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording refresh metrics", func() {
			So(func() {
				RecordCycle("ok", 12.5, 1700000000)
				RecordCycle("failed", 0, 1700000001)
				RecordCycleRejected()
				UpdateActiveSubscriptions(4)
				RecordDecision("refresh", "live")
				RecordDecision("skip", "fresh")
				RecordRetirement()
			}, ShouldNotPanic)
		})

		Convey("When recording provider and cache metrics", func() {
			So(func() {
				RecordFetch("espn", "ok", 120)
				RecordFetch("srnfl", "error", 5000)
				RecordCacheRead("hit")
				RecordCacheRead("malformed")
				RecordCacheWrite("ok")
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP, error and system metrics", func() {
			So(func() {
				RecordHTTPRequest("refresh", "POST", "202")
				RecordHTTPRequestDuration("refresh", "POST", "202", 3)
				RecordErrorByComponent("scheduler", "fetch_failed")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry should expose them", func() {
			RecordRetirement()
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, mf := range families {
				names = append(names, mf.GetName())
			}
			So(strings.Join(names, ","), ShouldContainSubstring, "livescores_refresh_retirements_total")
		})
	})
}

func TestInit(t *testing.T) {
	Convey("Given the global manager rebuilt with an env label", t, func() {
		Init(WithConstLabels(map[string]string{"env": "staging"}))
		defer Init()

		RecordRetirement()

		Convey("Then every exported series carries the label", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
			for _, mf := range families {
				for _, m := range mf.GetMetric() {
					found := false
					for _, lp := range m.GetLabel() {
						if lp.GetName() == "env" && lp.GetValue() == "staging" {
							found = true
						}
					}
					So(found, ShouldBeTrue)
				}
			}
		})
	})
}
