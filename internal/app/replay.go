package app

import (
	"context"
	"time"

	"github.com/okian/ladder/internal/domain/ledger"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/domain/roster"
	"github.com/okian/ladder/pkg/logger"
	"github.com/okian/ladder/pkg/metrics"
)

// ReplayReport summarizes one full-history replay.
type ReplayReport struct {
	Applied  int `json:"applied"`
	Orphaned int `json:"orphaned"` // records skipped because a participant was removed
}

// Replay rebuilds all registry state from the ledger: reset to baseline,
// stable-sort by timestamp, then re-apply every record through the same
// batch-and-settle pipeline as live recording. Given the same ledger and
// registry membership the result is bit-for-bit reproducible.
func (s *Session) Replay(ctx context.Context) ReplayReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replayLocked(ctx)
}

func (s *Session) replayLocked(ctx context.Context) ReplayReport {
	start := time.Now()

	s.roster.ResetAll()

	var report ReplayReport
	for _, m := range s.ledger.SortedByTime() {
		// Tolerate deletions: a record naming a removed competitor is an
		// orphaned reference, skipped and counted, never fatal.
		if !s.roster.Has(m.Competitor1) || !s.roster.Has(m.Competitor2) {
			report.Orphaned++
			continue
		}
		s.applyMatch(m)
		report.Applied++
	}

	s.lastReplay = &report

	metrics.RecordReplay()
	metrics.RecordReplayDuration(float64(time.Since(start).Milliseconds()))
	metrics.RecordOrphanedSkipped(report.Orphaned)
	s.logger.Info(ctx, "replay finished",
		logger.Int("applied", report.Applied),
		logger.Int("orphaned", report.Orphaned),
	)
	return report
}

// ImportMatches bulk-appends match records and replays the full history so
// out-of-order timestamps settle in chronological order.
func (s *Session) ImportMatches(ctx context.Context, records []model.Match) (ledger.ImportReport, ReplayReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := s.ledger.ImportBatch(records, s.roster.Has)
	metrics.RecordImportSkipped(report.Skipped())
	metrics.UpdateLedgerSize(s.ledger.Len())
	s.logger.Info(ctx, "match import finished",
		logger.Int("imported", report.Imported),
		logger.Int("skipped", report.Skipped()),
	)

	replay := s.replayLocked(ctx)
	return report, replay
}

// CompetitorSeed is one bulk-registration row. Zero rating values fall back
// to the defaults.
type CompetitorSeed struct {
	Name       string
	Rating     float64
	RD         float64
	Volatility float64
}

// SeedReport summarizes a bulk competitor import.
type SeedReport struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportCompetitors bulk-registers competitors, skipping rows with invalid
// or already-taken names.
func (s *Session) ImportCompetitors(ctx context.Context, seeds []CompetitorSeed) SeedReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report SeedReport
	for _, seed := range seeds {
		var opts []roster.Option
		if seed.Rating != 0 {
			opts = append(opts, roster.WithRating(seed.Rating))
		}
		if seed.RD != 0 {
			opts = append(opts, roster.WithRD(seed.RD))
		}
		if seed.Volatility != 0 {
			opts = append(opts, roster.WithVolatility(seed.Volatility))
		}
		if _, err := s.roster.Register(seed.Name, opts...); err != nil {
			report.Skipped++
			continue
		}
		report.Imported++
	}

	metrics.RecordImportSkipped(report.Skipped)
	metrics.UpdateCompetitorsTotal(s.roster.Len())
	s.logger.Info(ctx, "competitor import finished",
		logger.Int("imported", report.Imported),
		logger.Int("skipped", report.Skipped),
	)
	return report
}
