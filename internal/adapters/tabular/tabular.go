// Package tabular reads and writes CSV renditions of standings, match
// ledgers and competitor seed lists.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/okian/ladder/internal/app"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/domain/standings"
)

var (
	standingsHeader   = []string{"rank", "name", "rating", "rd", "volatility", "games", "wins", "draws", "losses", "points", "win_percent", "points_per_game"}
	matchesHeader     = []string{"id", "played_at", "competitor1", "competitor2", "outcome"}
	competitorsHeader = []string{"name", "rating", "rd", "volatility"}
)

// WriteStandings renders the classification table as CSV. Ratings and
// derived percentages are rounded to two decimals for display; the JSON API
// remains the full-precision surface.
func WriteStandings(w io.Writer, rows []standings.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(standingsHeader); err != nil {
		return fmt.Errorf("write standings header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Rank),
			row.Name,
			strconv.FormatFloat(row.Rating, 'f', 2, 64),
			strconv.FormatFloat(row.RD, 'f', 2, 64),
			strconv.FormatFloat(row.Volatility, 'f', 4, 64),
			strconv.Itoa(row.Games),
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Draws),
			strconv.Itoa(row.Losses),
			strconv.FormatFloat(row.Points, 'f', 1, 64),
			strconv.FormatFloat(row.WinPercent, 'f', 2, 64),
			strconv.FormatFloat(row.PointsPerGame, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write standings row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMatches renders the ledger as CSV. The id column round-trips, so an
// exported ledger can be re-imported without duplicating records.
func WriteMatches(w io.Writer, matches []model.MatchState) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(matchesHeader); err != nil {
		return fmt.Errorf("write matches header: %w", err)
	}
	for _, m := range matches {
		record := []string{
			m.ID,
			m.PlayedAt.UTC().Format(time.RFC3339),
			m.Competitor1,
			m.Competitor2,
			string(m.Outcome),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write match row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCompetitors renders the registry as a seed CSV that ReadCompetitors
// accepts back.
func WriteCompetitors(w io.Writer, competitors []app.CompetitorInfo) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(competitorsHeader); err != nil {
		return fmt.Errorf("write competitors header: %w", err)
	}
	for _, c := range competitors {
		record := []string{
			c.Name,
			strconv.FormatFloat(c.Rating, 'f', 2, 64),
			strconv.FormatFloat(c.RD, 'f', 2, 64),
			strconv.FormatFloat(c.Volatility, 'f', 4, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write competitor row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMatches parses a match CSV. Rows that fail to parse are skipped and
// counted; semantic validation (membership, duplicates) happens downstream
// at import time. The header row is required; the id column is optional.
func ReadMatches(r io.Reader) ([]model.Match, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read matches header: %w", err)
	}
	idx := columnIndex(header)

	var (
		matches []model.Match
		skipped int
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		playedAt, tErr := time.Parse(time.RFC3339, cell(record, idx, "played_at"))
		outcome, oErr := model.ParseOutcome(cell(record, idx, "outcome"))
		c1 := cell(record, idx, "competitor1")
		c2 := cell(record, idx, "competitor2")
		if tErr != nil || oErr != nil || c1 == "" || c2 == "" {
			skipped++
			continue
		}

		matches = append(matches, model.Match{
			ID:          cell(record, idx, "id"),
			PlayedAt:    playedAt,
			Competitor1: c1,
			Competitor2: c2,
			Outcome:     outcome,
		})
	}
	return matches, skipped, nil
}

// ReadCompetitors parses a competitor seed CSV. Blank numeric cells leave
// the default rating state in place; unparseable rows are skipped and
// counted.
func ReadCompetitors(r io.Reader) ([]app.CompetitorSeed, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read competitors header: %w", err)
	}
	idx := columnIndex(header)

	var (
		seeds   []app.CompetitorSeed
		skipped int
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		name := cell(record, idx, "name")
		rating, rErr := floatCell(record, idx, "rating")
		rd, dErr := floatCell(record, idx, "rd")
		vol, vErr := floatCell(record, idx, "volatility")
		if name == "" || rErr != nil || dErr != nil || vErr != nil {
			skipped++
			continue
		}

		seeds = append(seeds, app.CompetitorSeed{
			Name:       name,
			Rating:     rating,
			RD:         rd,
			Volatility: vol,
		})
	}
	return seeds, skipped, nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

func cell(record []string, idx map[string]int, column string) string {
	i, ok := idx[column]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func floatCell(record []string, idx map[string]int, column string) (float64, error) {
	raw := cell(record, idx, column)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
