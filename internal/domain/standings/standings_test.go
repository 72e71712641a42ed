package standings_test

import (
	"testing"

	"github.com/okian/ladder/internal/domain/roster"
	"github.com/okian/ladder/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

func add(t *testing.T, r *roster.Roster, name string, rating float64, wins, draws, losses int) *roster.Competitor {
	t.Helper()
	c, err := r.Register(name, roster.WithRating(rating))
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	c.Wins, c.Draws, c.Losses = wins, draws, losses
	return c
}

func names(rows []standings.Row) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Name
	}
	return out
}

func TestBuild(t *testing.T) {
	Convey("Given an empty roster", t, func() {
		r := roster.New()

		Convey("Then the classification should be empty", func() {
			So(standings.Build(r.All()), ShouldBeEmpty)
		})
	})

	Convey("Given competitors with distinct ratings", t, func() {
		r := roster.New()
		add(t, r, "Low", 1400, 0, 0, 1)
		add(t, r, "High", 1600, 1, 0, 0)
		add(t, r, "Mid", 1500, 0, 1, 0)

		rows := standings.Build(r.All())

		Convey("Then rating should dominate the order", func() {
			So(names(rows), ShouldResemble, []string{"High", "Mid", "Low"})
		})

		Convey("Then ranks should be positional 1..N with no duplicates", func() {
			for i, row := range rows {
				So(row.Rank, ShouldEqual, i+1)
			}
		})

		Convey("Then derived stats should be computed per row", func() {
			So(rows[0].Points, ShouldEqual, 1.0)
			So(rows[0].WinPercent, ShouldEqual, 100.0)
			So(rows[0].PointsPerGame, ShouldEqual, 1.0)
			So(rows[1].Points, ShouldEqual, 0.5)
			So(rows[1].WinPercent, ShouldEqual, 0.0)
			So(rows[1].PointsPerGame, ShouldEqual, 0.5)
		})
	})

	Convey("Given a competitor with no games", t, func() {
		r := roster.New()
		add(t, r, "Idle", 1500, 0, 0, 0)

		rows := standings.Build(r.All())

		Convey("Then win% and points-per-game should be zero, not NaN", func() {
			So(rows[0].WinPercent, ShouldEqual, 0.0)
			So(rows[0].PointsPerGame, ShouldEqual, 0.0)
			So(rows[0].Games, ShouldEqual, 0)
		})
	})
}

func TestTieBreaks(t *testing.T) {
	Convey("Given competitors tied on rating", t, func() {
		r := roster.New()
		// Equal rating and points; B has fewer games so a higher
		// points-per-game.
		add(t, r, "A", 1500, 2, 0, 2) // points 2, ppg 0.5
		add(t, r, "B", 1500, 2, 0, 1) // points 2, ppg 0.666
		rows := standings.Build(r.All())

		Convey("Then points-per-game should break the tie", func() {
			So(names(rows), ShouldResemble, []string{"B", "A"})
		})
	})

	Convey("Given competitors equal through points-per-game", t, func() {
		r := roster.New()
		// Equal rating, 2 points over 4 games either way; the win/draw
		// split differs, so win% decides.
		add(t, r, "Drawish", 1500, 1, 2, 1) // win% 25
		add(t, r, "Winnish", 1500, 2, 0, 2) // win% 50
		rows := standings.Build(r.All())

		Convey("Then win percentage should break the tie", func() {
			So(names(rows), ShouldResemble, []string{"Winnish", "Drawish"})
		})
	})

	Convey("Given three competitors identical on every key", t, func() {
		r := roster.New()
		add(t, r, "First", 1500, 1, 0, 3)
		add(t, r, "Second", 1500, 1, 0, 3)
		add(t, r, "Third", 1500, 1, 0, 3)
		rows := standings.Build(r.All())

		Convey("Then full ties should keep registration order, repeatably", func() {
			again := standings.Build(r.All())
			So(names(rows), ShouldResemble, names(again))
			So(names(rows), ShouldResemble, []string{"First", "Second", "Third"})
		})
	})

	Convey("Given winless competitors differing only in losses", t, func() {
		r := roster.New()
		// Zero points all around, so the first six keys tie and the
		// ascending losses key decides.
		add(t, r, "TwoLosses", 1500, 0, 0, 2)
		add(t, r, "OneLoss", 1500, 0, 0, 1)
		rows := standings.Build(r.All())

		Convey("Then fewer losses should rank better", func() {
			So(names(rows), ShouldResemble, []string{"OneLoss", "TwoLosses"})
		})
	})
}
