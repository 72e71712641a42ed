// Package ledger holds the chronological match ledger, the source of
// truth for full-history replay.
package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/okian/ladder/internal/domain/model"
)

// Ledger is an append-only collection of match records in insertion order.
// Records are never deleted; outcomes and timestamps are immutable once
// appended, and corrections happen by appending compensating matches. The
// one exception is participant names, which are relabeled when the registry
// renames a competitor so history follows the new name. Not safe for
// concurrent use; the session serializes access.
type Ledger struct {
	records []model.Match
	byID    map[string]struct{}
	latest  time.Time // max PlayedAt seen; monotone because records are never deleted
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{byID: make(map[string]struct{})}
}

// Append validates and appends one match record. A missing ID is assigned.
// The participants must be distinct; registry membership is checked by the
// caller before appending a live match.
func (l *Ledger) Append(m model.Match) (model.Match, error) {
	if m.Competitor1 == m.Competitor2 {
		return model.Match{}, ErrSameCompetitor
	}
	if !m.Outcome.Valid() {
		return model.Match{}, ErrInvalidOutcome
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if _, seen := l.byID[m.ID]; seen {
		return model.Match{}, ErrDuplicateMatch
	}

	l.records = append(l.records, m)
	l.byID[m.ID] = struct{}{}
	if m.PlayedAt.After(l.latest) {
		l.latest = m.PlayedAt
	}
	return m, nil
}

// LastPlayedAt returns the latest timestamp among all records, or the zero
// time for an empty ledger.
func (l *Ledger) LastPlayedAt() time.Time { return l.latest }

// RenameCompetitor relabels the participant name on every record that
// references it, returning the number of relabeled records. Outcomes and
// timestamps are untouched; the relabel accompanies a registry rename so a
// renamed competitor keeps their history on replay.
func (l *Ledger) RenameCompetitor(oldName, newName string) int {
	relabeled := 0
	for i := range l.records {
		switch oldName {
		case l.records[i].Competitor1:
			l.records[i].Competitor1 = newName
			relabeled++
		case l.records[i].Competitor2:
			l.records[i].Competitor2 = newName
			relabeled++
		}
	}
	return relabeled
}

// ImportReport summarizes a bulk import: malformed or unknown-competitor
// rows are skipped and counted, never fatal to the batch.
type ImportReport struct {
	Imported         int `json:"imported"`
	SkippedInvalid   int `json:"skipped_invalid"`
	SkippedUnknown   int `json:"skipped_unknown"`
	SkippedDuplicate int `json:"skipped_duplicate"`
}

// Skipped returns the total number of rows not imported.
func (r ImportReport) Skipped() int {
	return r.SkippedInvalid + r.SkippedUnknown + r.SkippedDuplicate
}

// ImportBatch appends a batch of records, skipping rows that are malformed,
// reference an unregistered competitor, or duplicate an already-ledgered
// match ID. registered reports current registry membership.
func (l *Ledger) ImportBatch(records []model.Match, registered func(name string) bool) ImportReport {
	var report ImportReport
	for _, m := range records {
		if m.Competitor1 == m.Competitor2 || !m.Outcome.Valid() {
			report.SkippedInvalid++
			continue
		}
		if !registered(m.Competitor1) || !registered(m.Competitor2) {
			report.SkippedUnknown++
			continue
		}
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		if _, seen := l.byID[m.ID]; seen {
			report.SkippedDuplicate++
			continue
		}
		l.records = append(l.records, m)
		l.byID[m.ID] = struct{}{}
		if m.PlayedAt.After(l.latest) {
			l.latest = m.PlayedAt
		}
		report.Imported++
	}
	return report
}

// Export returns a copy of all records in ledger (insertion) order.
// Chronological order is not guaranteed for imported data until a replay
// re-sorts it.
func (l *Ledger) Export() []model.Match {
	out := make([]model.Match, len(l.records))
	copy(out, l.records)
	return out
}

// SortedByTime returns a copy of all records in chronological order.
// The sort is stable: records with equal timestamps keep insertion order.
func (l *Ledger) SortedByTime() []model.Match {
	out := l.Export()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlayedAt.Before(out[j].PlayedAt)
	})
	return out
}

// Len returns the number of ledger records.
func (l *Ledger) Len() int { return len(l.records) }
