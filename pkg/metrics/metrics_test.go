package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("wheels"),
				WithMetricPrefix("pre"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "wheels")
				So(manager.Enabled(), ShouldBeFalse)
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
			})

			Convey("Then metric names carry namespace, subsystem and prefix", func() {
				manager.skippedRows.Add(1)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_wheels_pre_skipped_rows_total")
			})
		})

		Convey("When passing empty or nil values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the defaults survive", func() {
				So(manager.namespace, ShouldEqual, "crease")
				So(manager.subsystem, ShouldEqual, "wagonwheel")
				So(manager.histogramBuckets, ShouldResemble, defaultLatencyBuckets)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When passing settings straight from configuration", func() {
			labels := map[string]string{"region": "eu"}
			buckets := []float64{50, 5, 5, 500}
			manager := NewManager(
				WithMetricPrefix("_dev_"),
				WithCustomLabels(labels),
				WithHistogramBuckets(buckets),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)
			labels["region"] = "us"

			Convey("Then the values are normalised and owned by the manager", func() {
				So(manager.metricPrefix, ShouldEqual, "dev")
				So(manager.customLabels["region"], ShouldEqual, "eu")
				So(manager.histogramBuckets, ShouldResemble, []float64{5, 50, 500})
				So(buckets, ShouldResemble, []float64{50, 5, 5, 500})
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording wheel renders", func() {
			before := testutil.ToFloat64(globalManager.wheelRenders.WithLabelValues("boundaries"))
			RecordWheelRender("boundaries", 1.5)
			RecordWheelRender("boundaries", 2.5)

			Convey("Then the per-kind counter advances", func() {
				after := testutil.ToFloat64(globalManager.wheelRenders.WithLabelValues("boundaries"))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When recording skipped rows", func() {
			before := testutil.ToFloat64(globalManager.skippedRows)
			RecordSkippedRows(3)
			RecordSkippedRows(0)
			RecordSkippedRows(-2)

			Convey("Then only positive counts are added", func() {
				So(testutil.ToFloat64(globalManager.skippedRows)-before, ShouldEqual, 3)
			})
		})

		Convey("When recording summaries and progressions", func() {
			summaries := testutil.ToFloat64(globalManager.summaries)
			progressions := testutil.ToFloat64(globalManager.progressions)
			RecordSummary()
			RecordProgression()
			RecordProgression()

			Convey("Then each counter moves on its own", func() {
				So(testutil.ToFloat64(globalManager.summaries)-summaries, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.progressions)-progressions, ShouldEqual, 2)
			})
		})

		Convey("When recording store activity", func() {
			before := testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("deliveries"))
			RecordStoreError("deliveries")
			UpdateDeliveriesTotal(42)
			UpdateBattersTotal(3)

			Convey("Then counters and gauges reflect it", func() {
				So(testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("deliveries"))-before, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.deliveriesTotal), ShouldEqual, 42)
				So(testutil.ToFloat64(globalManager.battersTotal), ShouldEqual, 3)
			})
		})

		Convey("When recording the remaining metrics", func() {
			Convey("Then none of them panic", func() {
				So(func() {
					RecordWheelRenderError("caught-out")
					RecordPageWarning("no_data")
					RecordSummary()
					RecordStoreQueryLatency("batters", 0.4)
					RecordHTTPRequest("/batters", "GET", "200")
					RecordHTTPRequestDuration("/batters", "GET", "200", 3)
					RecordErrorByEndpoint("/batters", "GET", "not_found")
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(8)
					RecordSystemGCPauseTime(0.2)
				}, ShouldNotPanic)
			})
		})

		Convey("When exporting the registry", func() {
			RecordPageWarning("no_angles")
			out, err := testutil.CollectAndLint(globalManager.pageWarnings)

			Convey("Then it gathers crease metrics", func() {
				So(err, ShouldBeNil)
				So(out, ShouldBeEmpty)
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if strings.HasPrefix(f.GetName(), "crease_wagonwheel_") {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given the global manager", t, func() {
		prevManager, prevRegistry := globalManager, customRegistry
		defer func() {
			globalManager, customRegistry = prevManager, prevRegistry
		}()

		Convey("When it is reconfigured from settings", func() {
			m := Configure(
				WithNamespace("cricket"),
				WithSubsystem("wheels"),
				WithMetricPrefix("dev"),
				WithCustomLabels(map[string]string{"region": "eu"}),
				WithRefreshInterval(3*time.Second),
				WithHistogramBuckets([]float64{1, 10, 100}),
			)
			RecordSkippedRows(2)

			Convey("Then package functions use the new manager and registry", func() {
				So(globalManager, ShouldPointTo, m)
				So(RefreshInterval(), ShouldEqual, 3*time.Second)
				So(testutil.ToFloat64(m.skippedRows), ShouldEqual, 2)

				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				var found bool
				for _, f := range families {
					if f.GetName() != "cricket_wheels_dev_skipped_rows_total" {
						continue
					}
					found = true
					So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "region")
					So(f.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "eu")
				}
				So(found, ShouldBeTrue)
				So(GetRegistry(), ShouldNotPointTo, prevRegistry)
			})
		})

		Convey("When a registry option is passed it cannot redirect the global registry", func() {
			other := prometheus.NewRegistry()
			Configure(WithPrometheusRegistry(other))

			Convey("Then GetRegistry still exposes the manager's metrics", func() {
				So(GetRegistry(), ShouldNotPointTo, other)
				RecordSummary()
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
