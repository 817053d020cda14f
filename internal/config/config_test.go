package config_test

import (
	"strings"
	"testing"

	"github.com/hoopsight/clutch/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewDefaults(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := config.New()

		Convey("Then the endpoint templates carry a game/season slot", func() {
			So(strings.Count(cfg.FeedURLTemplate, "%s"), ShouldEqual, 1)
			So(strings.Count(cfg.IndexURLTemplate, "%s"), ShouldEqual, 1)
		})

		Convey("Then the critical window matches the last three minutes of regulation", func() {
			So(cfg.WindowSeconds, ShouldEqual, 180)
			So(cfg.RegulationPeriod, ShouldEqual, 4)
		})

		Convey("Then metrics exposure is off unless configured", func() {
			So(cfg.MetricsAddr, ShouldEqual, "")
		})
	})
}
