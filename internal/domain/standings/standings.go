// Package standings derives the ranked classification table from current
// competitor state.
package standings

import (
	"sort"

	"github.com/okian/ladder/internal/domain/roster"
)

// Row is one classification entry. Rows are derived on demand and never
// persisted.
type Row struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	Rating        float64 `json:"rating"`
	RD            float64 `json:"rd"`
	Volatility    float64 `json:"volatility"`
	Games         int     `json:"games"`
	Wins          int     `json:"wins"`
	Draws         int     `json:"draws"`
	Losses        int     `json:"losses"`
	Points        float64 `json:"points"`
	WinPercent    float64 `json:"win_percent"`
	PointsPerGame float64 `json:"points_per_game"`
}

// Build computes the classification for the given competitors.
//
// Sort keys, in order: rating, points, points-per-game, win%, wins, draws
// (all descending), then losses ascending. The chain is exhaustive; rows
// equal on all seven keys keep the relative order of the input (the
// roster's registration order). Ranks are positional 1..N and never shared.
func Build(competitors []*roster.Competitor) []Row {
	rows := make([]Row, 0, len(competitors))
	for _, c := range competitors {
		games := c.Games()
		points := float64(c.Wins) + 0.5*float64(c.Draws)
		var winPct, ppg float64
		if games > 0 {
			winPct = float64(c.Wins) / float64(games) * 100
			ppg = points / float64(games)
		}
		rows = append(rows, Row{
			Name:          c.Name(),
			Rating:        c.Rating,
			RD:            c.RD,
			Volatility:    c.Volatility,
			Games:         games,
			Wins:          c.Wins,
			Draws:         c.Draws,
			Losses:        c.Losses,
			Points:        points,
			WinPercent:    winPct,
			PointsPerGame: ppg,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case a.Rating != b.Rating:
			return a.Rating > b.Rating
		case a.Points != b.Points:
			return a.Points > b.Points
		case a.PointsPerGame != b.PointsPerGame:
			return a.PointsPerGame > b.PointsPerGame
		case a.WinPercent != b.WinPercent:
			return a.WinPercent > b.WinPercent
		case a.Wins != b.Wins:
			return a.Wins > b.Wins
		case a.Draws != b.Draws:
			return a.Draws > b.Draws
		case a.Losses != b.Losses:
			return a.Losses < b.Losses
		}
		return false
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
