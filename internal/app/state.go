package app

import (
	"context"
	"sort"

	"github.com/okian/ladder/internal/domain/ledger"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/domain/roster"
	"github.com/okian/ladder/pkg/logger"
	"github.com/okian/ladder/pkg/metrics"
)

// ExportState snapshots the full session: every competitor's rating state,
// counters and history, plus the complete ledger in insertion order.
func (s *Session) ExportState(ctx context.Context) model.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := model.State{
		Competitors: make(map[string]model.CompetitorState, s.roster.Len()),
	}
	for _, c := range s.roster.All() {
		state.Competitors[c.Name()] = model.CompetitorState{
			Rating:        c.Rating,
			RD:            c.RD,
			Volatility:    c.Volatility,
			Wins:          c.Wins,
			Losses:        c.Losses,
			Draws:         c.Draws,
			RatingHistory: c.History(),
		}
	}
	for _, m := range s.ledger.Export() {
		state.Matches = append(state.Matches, matchState(m))
	}
	return state
}

// ImportState replaces the session contents with a previously exported
// snapshot and replays the ledger from the baseline. The replay makes the
// snapshot's derived fields advisory: ratings, counters and histories come
// out of the re-applied match records, so a hand-edited snapshot cannot put
// the session in a state the ledger does not support.
func (s *Session) ImportState(ctx context.Context, state model.State) (ReplayReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The snapshot stores competitors keyed by name; registering them in
	// sorted name order keeps the tie-break fallback order reproducible
	// across export/import round trips.
	names := make([]string, 0, len(state.Competitors))
	for name := range state.Competitors {
		names = append(names, name)
	}
	sort.Strings(names)

	fresh := roster.New()
	for _, name := range names {
		cs := state.Competitors[name]
		c, err := fresh.Register(name,
			roster.WithRating(cs.Rating),
			roster.WithRD(cs.RD),
			roster.WithVolatility(cs.Volatility),
		)
		if err != nil {
			return ReplayReport{}, err
		}
		c.Wins, c.Losses, c.Draws = cs.Wins, cs.Losses, cs.Draws
		c.RestoreHistory(cs.RatingHistory)
	}

	book := ledger.New()
	for _, ms := range state.Matches {
		if _, err := book.Append(model.Match{
			ID:          ms.ID,
			PlayedAt:    ms.PlayedAt,
			Competitor1: ms.Competitor1,
			Competitor2: ms.Competitor2,
			Outcome:     ms.Outcome,
		}); err != nil {
			return ReplayReport{}, err
		}
	}

	s.roster = fresh
	s.ledger = book

	metrics.UpdateCompetitorsTotal(s.roster.Len())
	metrics.UpdateLedgerSize(s.ledger.Len())
	s.logger.Info(ctx, "state imported",
		logger.Int("competitors", s.roster.Len()),
		logger.Int("matches", s.ledger.Len()),
	)

	return s.replayLocked(ctx), nil
}
