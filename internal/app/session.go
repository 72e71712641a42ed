// Package app provides the ranking session that owns the competitor
// registry and the match ledger and implements the operations exposed by
// the HTTP API.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/okian/ladder/internal/domain/ledger"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/domain/rating"
	"github.com/okian/ladder/internal/domain/roster"
	"github.com/okian/ladder/internal/domain/standings"
	"github.com/okian/ladder/pkg/logger"
	"github.com/okian/ladder/pkg/metrics"
)

// Session owns the registry and ledger for one ranking ladder. Every
// operation runs to completion under one lock: the core is synchronous and
// event-driven, and the single-writer rule keeps incremental updates and
// full replays on the same deterministic path.
type Session struct {
	mu sync.Mutex

	roster *roster.Roster
	ledger *ledger.Ledger
	engine rating.Engine

	clock func() time.Time

	lastReplay *ReplayReport

	logger logger.Logger
}

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithEngine sets the rating engine. The default is Glicko-2 with tau 0.5;
// tests substitute a deterministic double.
func WithEngine(e rating.Engine) Option {
	return func(s *Session) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithLogger sets a custom logger for the session.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the timestamp source for live matches.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs a Session with default configuration.
func New(opts ...Option) *Session {
	s := &Session{
		roster: roster.New(),
		ledger: ledger.New(),
		engine: rating.NewGlicko2(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("session")
	}
	return s
}

// CompetitorInfo is the read shape for one competitor.
type CompetitorInfo struct {
	Name          string    `json:"name"`
	Rating        float64   `json:"rating"`
	RD            float64   `json:"rd"`
	Volatility    float64   `json:"volatility"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	Draws         int       `json:"draws"`
	Games         int       `json:"games"`
	RatingHistory []float64 `json:"rating_history"`
}

func infoOf(c *roster.Competitor) CompetitorInfo {
	return CompetitorInfo{
		Name:          c.Name(),
		Rating:        c.Rating,
		RD:            c.RD,
		Volatility:    c.Volatility,
		Wins:          c.Wins,
		Losses:        c.Losses,
		Draws:         c.Draws,
		Games:         c.Games(),
		RatingHistory: c.History(),
	}
}

// RegisterCompetitor adds a new competitor at the default rating state.
func (s *Session) RegisterCompetitor(ctx context.Context, name string) (CompetitorInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.roster.Register(name)
	if err != nil {
		return CompetitorInfo{}, err
	}
	metrics.UpdateCompetitorsTotal(s.roster.Len())
	s.logger.Info(ctx, "competitor registered", logger.String("name", name))
	return infoOf(c), nil
}

// RemoveCompetitor deletes a competitor. Historical ledger records naming
// the competitor stay in place and are skipped as orphaned on replay.
func (s *Session) RemoveCompetitor(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.Remove(name); err != nil {
		return err
	}
	metrics.UpdateCompetitorsTotal(s.roster.Len())
	s.logger.Info(ctx, "competitor removed", logger.String("name", name))
	return nil
}

// RenameCompetitor relabels a competitor in place. Ledger records naming the
// competitor are relabeled too, so history follows the new name and a later
// replay reproduces the same state. Orphaning is reserved for removals.
func (s *Session) RenameCompetitor(ctx context.Context, oldName, newName string) (CompetitorInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.Rename(oldName, newName); err != nil {
		return CompetitorInfo{}, err
	}
	relabeled := s.ledger.RenameCompetitor(oldName, newName)
	c, err := s.roster.Get(newName)
	if err != nil {
		return CompetitorInfo{}, err
	}
	s.logger.Info(ctx, "competitor renamed",
		logger.String("from", oldName),
		logger.String("to", newName),
		logger.Int("relabeled_records", relabeled),
	)
	return infoOf(c), nil
}

// GetCompetitor returns one competitor's current state and rating history.
func (s *Session) GetCompetitor(ctx context.Context, name string) (CompetitorInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.roster.Get(name)
	if err != nil {
		return CompetitorInfo{}, err
	}
	return infoOf(c), nil
}

// ListCompetitors returns every competitor's current state in registration
// order.
func (s *Session) ListCompetitors(ctx context.Context) []CompetitorInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.roster.All()
	out := make([]CompetitorInfo, 0, len(all))
	for _, c := range all {
		out = append(out, infoOf(c))
	}
	return out
}

// MatchResult reports a recorded match and both participants' post-settlement
// state.
type MatchResult struct {
	Match       model.MatchState `json:"match"`
	Competitor1 CompetitorInfo   `json:"competitor1"`
	Competitor2 CompetitorInfo   `json:"competitor2"`
}

// RecordMatch appends a live match to the ledger, accumulates one pending
// result for each participant and settles the rating period immediately.
func (s *Session) RecordMatch(ctx context.Context, c1, c2 string, outcome model.Outcome, playedAt time.Time) (MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Live recording requires both participants to be registered.
	if !s.roster.Has(c1) || !s.roster.Has(c2) {
		return MatchResult{}, roster.ErrNotFound
	}
	if playedAt.IsZero() {
		playedAt = s.clock()
	}
	last := s.ledger.LastPlayedAt()

	m, err := s.ledger.Append(model.Match{
		PlayedAt:    playedAt,
		Competitor1: c1,
		Competitor2: c2,
		Outcome:     outcome,
	})
	if err != nil {
		return MatchResult{}, err
	}

	if m.PlayedAt.Before(last) {
		// A backdated record changes chronological order, so the incremental
		// path would diverge from a later full replay. Replay now to keep
		// both paths on the same state.
		s.replayLocked(ctx)
	} else {
		s.applyMatch(m)
	}

	metrics.RecordMatchRecorded()
	metrics.UpdateLedgerSize(s.ledger.Len())
	s.logger.Info(ctx, "match recorded",
		logger.String("competitor1", c1),
		logger.String("competitor2", c2),
		logger.String("outcome", string(m.Outcome)),
	)

	p1, _ := s.roster.Get(c1)
	p2, _ := s.roster.Get(c2)
	return MatchResult{
		Match:       matchState(m),
		Competitor1: infoOf(p1),
		Competitor2: infoOf(p2),
	}, nil
}

// Matches returns the full ledger in insertion order.
func (s *Session) Matches(ctx context.Context) []model.MatchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.ledger.Export()
	out := make([]model.MatchState, len(records))
	for i, m := range records {
		out[i] = matchState(m)
	}
	return out
}

// Standings builds the current classification table.
func (s *Session) Standings(ctx context.Context) []standings.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	return standings.Build(s.roster.All())
}

// CompetitorCount returns the number of registered competitors.
func (s *Session) CompetitorCount(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Len()
}

// Stats reports session-level counters for monitoring.
type Stats struct {
	Competitors   int           `json:"competitors"`
	LedgerRecords int           `json:"ledger_records"`
	LastReplay    *ReplayReport `json:"last_replay,omitempty"`
}

// GetStats returns session statistics for monitoring. LastReplay is nil
// until the first replay of the session.
func (s *Session) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.UpdateCompetitorsTotal(s.roster.Len())
	metrics.UpdateLedgerSize(s.ledger.Len())

	return Stats{
		Competitors:   s.roster.Len(),
		LedgerRecords: s.ledger.Len(),
		LastReplay:    s.lastReplay,
	}
}

func matchState(m model.Match) model.MatchState {
	return model.MatchState{
		ID:          m.ID,
		PlayedAt:    m.PlayedAt,
		Competitor1: m.Competitor1,
		Competitor2: m.Competitor2,
		Outcome:     m.Outcome,
	}
}
