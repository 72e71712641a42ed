package tabular_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/okian/ladder/internal/adapters/tabular"
	"github.com/okian/ladder/internal/app"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteStandings(t *testing.T) {
	Convey("Given a classification table", t, func() {
		rows := []standings.Row{
			{Rank: 1, Name: "Alice", Rating: 1563.564, RD: 175.403, Volatility: 0.059998, Games: 3, Wins: 2, Draws: 1, Points: 2.5, WinPercent: 66.666, PointsPerGame: 0.8333},
			{Rank: 2, Name: "Bob", Rating: 1436.431, RD: 175.403, Volatility: 0.059998, Games: 3, Losses: 2, Draws: 1, Points: 0.5, WinPercent: 0, PointsPerGame: 0.1666},
		}

		var buf bytes.Buffer
		So(tabular.WriteStandings(&buf, rows), ShouldBeNil)
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

		Convey("Then the CSV should carry rounded display values", func() {
			So(lines, ShouldHaveLength, 3)
			So(lines[0], ShouldEqual, "rank,name,rating,rd,volatility,games,wins,draws,losses,points,win_percent,points_per_game")
			So(lines[1], ShouldEqual, "1,Alice,1563.56,175.40,0.0600,3,2,1,0,2.5,66.67,0.83")
			So(lines[2], ShouldEqual, "2,Bob,1436.44,175.40,0.0600,3,0,1,2,0.5,0.00,0.17")
		})
	})
}

func TestMatchesRoundTrip(t *testing.T) {
	Convey("Given an exported ledger", t, func() {
		when := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
		exported := []model.MatchState{
			{ID: "m-1", PlayedAt: when, Competitor1: "Alice", Competitor2: "Bob", Outcome: model.OutcomeP1},
			{ID: "m-2", PlayedAt: when.Add(time.Hour), Competitor1: "Bob", Competitor2: "Carol", Outcome: model.OutcomeDraw},
		}

		var buf bytes.Buffer
		So(tabular.WriteMatches(&buf, exported), ShouldBeNil)

		Convey("When the CSV is read back", func() {
			matches, skipped, err := tabular.ReadMatches(&buf)

			Convey("Then every record should survive with its id", func() {
				So(err, ShouldBeNil)
				So(skipped, ShouldEqual, 0)
				So(matches, ShouldHaveLength, 2)
				So(matches[0].ID, ShouldEqual, "m-1")
				So(matches[0].PlayedAt.Equal(when), ShouldBeTrue)
				So(matches[0].Outcome, ShouldEqual, model.OutcomeP1)
				So(matches[1].Competitor1, ShouldEqual, "Bob")
			})
		})
	})
}

func TestReadMatches(t *testing.T) {
	Convey("Given a CSV with malformed rows mixed in", t, func() {
		input := strings.Join([]string{
			"id,played_at,competitor1,competitor2,outcome",
			"m-1,2026-05-02T09:30:00Z,Alice,Bob,P1",
			"m-2,not-a-timestamp,Alice,Bob,P2",
			"m-3,2026-05-02T10:30:00Z,Alice,Bob,Victory",
			"m-4,2026-05-02T11:30:00Z,,Bob,P1",
			"m-5,2026-05-02T12:30:00Z,Carol,Bob,Draw",
		}, "\n")

		matches, skipped, err := tabular.ReadMatches(strings.NewReader(input))

		Convey("Then bad rows should be skipped and counted", func() {
			So(err, ShouldBeNil)
			So(skipped, ShouldEqual, 3)
			So(matches, ShouldHaveLength, 2)
			So(matches[1].ID, ShouldEqual, "m-5")
		})
	})

	Convey("Given a CSV without an id column", t, func() {
		input := "played_at,competitor1,competitor2,outcome\n2026-05-02T09:30:00Z,Alice,Bob,P2\n"
		matches, skipped, err := tabular.ReadMatches(strings.NewReader(input))

		Convey("Then rows should parse with an empty id", func() {
			So(err, ShouldBeNil)
			So(skipped, ShouldEqual, 0)
			So(matches, ShouldHaveLength, 1)
			So(matches[0].ID, ShouldBeEmpty)
		})
	})

	Convey("Given an empty input", t, func() {
		matches, skipped, err := tabular.ReadMatches(strings.NewReader(""))

		Convey("Then nothing should be returned and nothing should fail", func() {
			So(err, ShouldBeNil)
			So(skipped, ShouldEqual, 0)
			So(matches, ShouldBeEmpty)
		})
	})
}

func TestCompetitorsRoundTrip(t *testing.T) {
	Convey("Given a seed CSV with overrides and gaps", t, func() {
		input := strings.Join([]string{
			"name,rating,rd,volatility",
			"Veteran,1800,120,0.05",
			"Rookie,,,",
			",1700,100,0.06",
			"Oddball,not-a-number,100,0.06",
		}, "\n")

		seeds, skipped, err := tabular.ReadCompetitors(strings.NewReader(input))

		Convey("Then valid rows should parse and bad rows should be counted", func() {
			So(err, ShouldBeNil)
			So(skipped, ShouldEqual, 2)
			So(seeds, ShouldResemble, []app.CompetitorSeed{
				{Name: "Veteran", Rating: 1800, RD: 120, Volatility: 0.05},
				{Name: "Rookie"},
			})
		})
	})

	Convey("Given an exported registry", t, func() {
		infos := []app.CompetitorInfo{
			{Name: "Alice", Rating: 1563.564, RD: 175.403, Volatility: 0.059998},
		}
		var buf bytes.Buffer
		So(tabular.WriteCompetitors(&buf, infos), ShouldBeNil)

		seeds, skipped, err := tabular.ReadCompetitors(&buf)

		Convey("Then the export should read back as seeds", func() {
			So(err, ShouldBeNil)
			So(skipped, ShouldEqual, 0)
			So(seeds, ShouldHaveLength, 1)
			So(seeds[0].Name, ShouldEqual, "Alice")
			So(seeds[0].Rating, ShouldEqual, 1563.56)
		})
	})
}
