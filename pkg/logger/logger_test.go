package logger_test

import (
	"context"
	"testing"

	"github.com/hoopsight/clutch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When logging at each level", func() {
			l := logger.Get()
			ctx := context.Background()

			Convey("Then calls do not panic", func() {
				So(func() {
					l.Debug(ctx, "debug", logger.String("k", "v"))
					l.Info(ctx, "info", logger.Int("n", 1))
					l.Warn(ctx, "warn", logger.Float64("f", 1.5))
					l.Error(ctx, "error", logger.Error(nil))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			named := logger.Named("feed")

			Convey("Then it is usable independently", func() {
				So(named, ShouldNotBeNil)
				So(func() { named.Info(context.Background(), "hello") }, ShouldNotPanic)
			})
		})

		Convey("When setting levels from strings", func() {
			Convey("Then known levels parse and unknown ones fail", func() {
				So(logger.SetLevelString("debug"), ShouldBeNil)
				So(logger.SetLevelString("WARN"), ShouldBeNil)
				So(logger.SetLevelString(""), ShouldBeNil)
				So(logger.SetLevelString("loud"), ShouldNotBeNil)
			})
		})
	})
}
