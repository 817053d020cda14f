package metrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/hoopsight/clutch/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithRegistry(reg),
			metrics.WithNamespace("test"),
			metrics.WithSubsystem("crawl"),
		)

		Convey("Then construction registers the metric families", func() {
			So(m, ShouldNotBeNil)
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording crawl activity", func() {
			Convey("Then helpers do not panic", func() {
				So(func() {
					metrics.RecordGameProcessed()
					metrics.RecordGameSkipped("exhausted")
					metrics.RecordEventsFetched(12)
					metrics.RecordEventsSelected(3)
					metrics.RecordFetchAttempt()
					metrics.RecordFetchRetry()
					metrics.RecordFetchExhausted()
					metrics.RecordFetchLatency(0.25)
					metrics.RecordStoreWrite()
					metrics.RecordStoreWriteError()
					metrics.UpdateLastRunUnix(1700000000)
				}, ShouldNotPanic)
			})
		})

		Convey("When scraping the handler", func() {
			metrics.RecordGameProcessed()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/metrics", nil)
			metrics.Handler().ServeHTTP(rec, req)

			Convey("Then the exposition includes collector metrics", func() {
				So(rec.Code, ShouldEqual, 200)
				So(rec.Body.String(), ShouldContainSubstring, "clutch_collector_games_processed_total")
			})
		})
	})
}
