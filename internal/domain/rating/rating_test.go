package rating_test

import (
	"testing"

	"github.com/okian/ladder/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGlicko2(t *testing.T) {
	Convey("Given a Glicko-2 engine with default tau", t, func() {
		engine := rating.NewGlicko2()

		Convey("When updating with the worked example from the Glicko-2 paper", func() {
			// Player at 1500/200/0.06 beats 1400/30, loses to 1550/100
			// and loses to 1700/300 in one period.
			games := []rating.Game{
				{OpponentRating: 1400, OpponentRD: 30, Score: 1},
				{OpponentRating: 1550, OpponentRD: 100, Score: 0},
				{OpponentRating: 1700, OpponentRD: 300, Score: 0},
			}
			r, rd, vol := engine.Update(1500, 200, 0.06, games)

			Convey("Then the results should match the published values", func() {
				So(r, ShouldAlmostEqual, 1464.06, 0.5)
				So(rd, ShouldAlmostEqual, 151.52, 0.5)
				So(vol, ShouldAlmostEqual, 0.05999, 0.001)
			})
		})

		Convey("When updating with an empty batch", func() {
			r, rd, vol := engine.Update(1500, 350, 0.06, nil)

			Convey("Then all values should be unchanged", func() {
				So(r, ShouldEqual, 1500)
				So(rd, ShouldEqual, 350)
				So(vol, ShouldEqual, 0.06)
			})
		})

		Convey("When two equal players draw", func() {
			games := []rating.Game{{OpponentRating: 1500, OpponentRD: 350, Score: 0.5}}
			r, rd, _ := engine.Update(1500, 350, 0.06, games)

			Convey("Then the rating should not move and RD should shrink", func() {
				So(r, ShouldAlmostEqual, 1500, 0.0001)
				So(rd, ShouldBeLessThan, 350)
			})
		})

		Convey("When a default player wins", func() {
			games := []rating.Game{{OpponentRating: 1500, OpponentRD: 350, Score: 1}}
			r, rd, _ := engine.Update(1500, 350, 0.06, games)

			Convey("Then the rating should rise and RD should shrink", func() {
				So(r, ShouldBeGreaterThan, 1500)
				So(rd, ShouldBeLessThan, 350)
			})
		})

		Convey("When a default player loses", func() {
			games := []rating.Game{{OpponentRating: 1500, OpponentRD: 350, Score: 0}}
			r, _, _ := engine.Update(1500, 350, 0.06, games)

			Convey("Then the rating should fall", func() {
				So(r, ShouldBeLessThan, 1500)
			})
		})

		Convey("When the same input is applied twice", func() {
			games := []rating.Game{{OpponentRating: 1650, OpponentRD: 120, Score: 1}}
			r1, rd1, v1 := engine.Update(1500, 350, 0.06, games)
			r2, rd2, v2 := engine.Update(1500, 350, 0.06, games)

			Convey("Then the outputs should be identical (pure function)", func() {
				So(r1, ShouldEqual, r2)
				So(rd1, ShouldEqual, rd2)
				So(v1, ShouldEqual, v2)
			})
		})
	})

	Convey("Given engines with different tau", t, func() {
		low := rating.NewGlicko2(rating.WithTau(0.3))
		high := rating.NewGlicko2(rating.WithTau(1.2))

		Convey("When applying a surprising result", func() {
			games := []rating.Game{{OpponentRating: 2200, OpponentRD: 30, Score: 1}}
			_, _, volLow := low.Update(1500, 80, 0.06, games)
			_, _, volHigh := high.Update(1500, 80, 0.06, games)

			Convey("Then higher tau should allow larger volatility growth", func() {
				So(volHigh, ShouldBeGreaterThanOrEqualTo, volLow)
			})
		})
	})
}
