// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"
)

// Outcome encodes a match result from competitor 1's perspective.
type Outcome string

// Outcome labels as used on the wire and in tabular import/export.
const (
	OutcomeP1   Outcome = "P1"   // competitor 1 won
	OutcomeDraw Outcome = "Draw" // drawn game
	OutcomeP2   Outcome = "P2"   // competitor 2 won
)

// Score returns competitor 1's score for this outcome: 1, 0.5 or 0.
// Competitor 2 always receives the complement 1-s.
func (o Outcome) Score() float64 {
	switch o {
	case OutcomeP1:
		return 1
	case OutcomeDraw:
		return 0.5
	default:
		return 0
	}
}

// Valid reports whether o is one of the three known labels.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeP1, OutcomeDraw, OutcomeP2:
		return true
	}
	return false
}

// ParseOutcome maps a label to an Outcome, accepting only the canonical set.
func ParseOutcome(label string) (Outcome, error) {
	o := Outcome(label)
	if !o.Valid() {
		return "", fmt.Errorf("unknown outcome label %q", label)
	}
	return o, nil
}

// Match is one immutable ledger record.
type Match struct {
	ID          string    // unique id for import idempotency
	PlayedAt    time.Time // match timestamp; replay order key
	Competitor1 string
	Competitor2 string
	Outcome     Outcome
}

// CompetitorState is the persisted shape of one competitor.
// Counters and history are restored on load but never trusted as
// authoritative: a full replay follows every import.
type CompetitorState struct {
	Rating        float64   `json:"rating"`
	RD            float64   `json:"rd"`
	Volatility    float64   `json:"volatility"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	Draws         int       `json:"draws"`
	RatingHistory []float64 `json:"rating_history"`
}

// MatchState is the persisted shape of one ledger record.
type MatchState struct {
	ID          string    `json:"id"`
	PlayedAt    time.Time `json:"played_at"`
	Competitor1 string    `json:"competitor1"`
	Competitor2 string    `json:"competitor2"`
	Outcome     Outcome   `json:"outcome"`
}

// State is the full persisted session snapshot.
type State struct {
	Competitors map[string]CompetitorState `json:"competitors"`
	Matches     []MatchState               `json:"matches"`
}
