package logger_test

import (
	"context"
	"testing"

	"github.com/okian/ladder/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		err := logger.Init()
		So(err, ShouldBeNil)

		Convey("When getting the global logger", func() {
			l := logger.Get()

			Convey("Then it should not be nil", func() {
				So(l, ShouldNotBeNil)
			})

			Convey("And logging should not panic", func() {
				So(func() {
					l.Info(context.Background(), "hello",
						logger.String("k", "v"),
						logger.Int("n", 1),
						logger.Float64("f", 1.5),
						logger.Bool("b", true),
					)
				}, ShouldNotPanic)
			})
		})

		Convey("When creating a named logger", func() {
			l := logger.Named("roster")

			Convey("Then it should not be nil", func() {
				So(l, ShouldNotBeNil)
			})
		})

		Convey("When setting the level from a string", func() {
			Convey("Then known levels should be accepted", func() {
				for _, lvl := range []string{"debug", "info", "WARN", "warning", "error", ""} {
					So(logger.SetLevelString(lvl), ShouldBeNil)
				}
			})

			Convey("And unknown levels should be rejected", func() {
				So(logger.SetLevelString("verbose"), ShouldNotBeNil)
			})
		})
	})
}
