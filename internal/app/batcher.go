package app

import (
	"time"

	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/domain/rating"
	"github.com/okian/ladder/pkg/metrics"
)

// applyMatch runs the full per-match pipeline: win/loss/draw counters, one
// pending result for each participant, then an immediate settlement. Both
// live recording and replay go through here, which is what makes the two
// paths converge. Callers hold the session lock and have verified that both
// participants are registered.
func (s *Session) applyMatch(m model.Match) {
	s.applyCounters(m)
	s.enqueueMatch(m)
	s.settleAll()
}

// applyCounters increments the participants' win/loss/draw counters.
func (s *Session) applyCounters(m model.Match) {
	c1, _ := s.roster.Get(m.Competitor1)
	c2, _ := s.roster.Get(m.Competitor2)
	switch m.Outcome {
	case model.OutcomeP1:
		c1.Wins++
		c2.Losses++
	case model.OutcomeDraw:
		c1.Draws++
		c2.Draws++
	case model.OutcomeP2:
		c1.Losses++
		c2.Wins++
	}
}

// enqueueMatch records one pending result per participant. The opponent's
// rating and RD are copied at enqueue time: every game in a rating period
// references the opponent's state from the start of that period, so
// settlement order between competitors cannot change the result.
func (s *Session) enqueueMatch(m model.Match) {
	c1, _ := s.roster.Get(m.Competitor1)
	c2, _ := s.roster.Get(m.Competitor2)
	score := m.Outcome.Score()

	_ = s.roster.RecordPending(m.Competitor1, rating.Game{
		OpponentRating: c2.Rating,
		OpponentRD:     c2.RD,
		Score:          score,
	})
	_ = s.roster.RecordPending(m.Competitor2, rating.Game{
		OpponentRating: c1.Rating,
		OpponentRD:     c1.RD,
		Score:          1 - score,
	})
}

// settleAll closes the current rating period: every competitor with pending
// results gets exactly one engine update, an extended rating history and an
// empty queue.
func (s *Session) settleAll() {
	start := time.Now()
	for _, c := range s.roster.All() {
		if !c.HasPending() {
			continue
		}
		games := c.TakePending()
		r, rd, vol := s.engine.Update(c.Rating, c.RD, c.Volatility, games)
		c.ApplyRating(r, rd, vol)
		metrics.RecordSettlement()
	}
	metrics.RecordSettleDuration(float64(time.Since(start).Milliseconds()))
}
