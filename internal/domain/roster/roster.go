// Package roster owns the set of registered competitors and their
// current rating state.
package roster

import (
	"regexp"

	"github.com/okian/ladder/internal/domain/rating"
)

// Default rating state for a freshly registered competitor.
const (
	DefaultRating     = 1500.0
	DefaultRD         = 350.0
	DefaultVolatility = 0.06
)

// namePolicy is the allowed-character/length rule for competitor names.
var namePolicy = regexp.MustCompile(`^[A-Za-z0-9_ ]{1,20}$`)

// Competitor holds one competitor's identity, rating state and counters.
//
// The name is mutable only through Roster.Rename so the uniqueness
// invariant cannot be broken from outside the package. The rating history
// is append-only: one snapshot at creation and one after every settled
// rating period.
type Competitor struct {
	name string

	Rating     float64
	RD         float64
	Volatility float64

	Wins   int
	Losses int
	Draws  int

	history []float64
	pending []rating.Game
}

// Name returns the competitor's unique display name.
func (c *Competitor) Name() string { return c.name }

// Games returns the total number of recorded matches.
func (c *Competitor) Games() int { return c.Wins + c.Losses + c.Draws }

// History returns a copy of the rating history, oldest first.
func (c *Competitor) History() []float64 {
	out := make([]float64, len(c.history))
	copy(out, c.history)
	return out
}

// HasPending reports whether results are waiting for settlement.
func (c *Competitor) HasPending() bool { return len(c.pending) > 0 }

// TakePending returns the accumulated pending results and clears the queue.
func (c *Competitor) TakePending() []rating.Game {
	out := c.pending
	c.pending = nil
	return out
}

// ApplyRating writes back a settled rating period and extends the history.
func (c *Competitor) ApplyRating(r, rd, vol float64) {
	c.Rating = r
	c.RD = rd
	c.Volatility = vol
	c.history = append(c.history, r)
}

// RestoreHistory replaces the rating history wholesale. Only state
// restoration may use it; a replay pass follows and rebuilds it anyway.
func (c *Competitor) RestoreHistory(history []float64) {
	if len(history) == 0 {
		history = []float64{c.Rating}
	}
	c.history = append([]float64(nil), history...)
}

// Option applies a registration override to a new Competitor.
// Overrides are used only during state restoration and bulk import.
type Option func(*Competitor)

// WithRating seeds a non-default initial rating.
func WithRating(r float64) Option {
	return func(c *Competitor) { c.Rating = r }
}

// WithRD seeds a non-default initial rating deviation.
func WithRD(rd float64) Option {
	return func(c *Competitor) { c.RD = rd }
}

// WithVolatility seeds a non-default initial volatility.
func WithVolatility(vol float64) Option {
	return func(c *Competitor) { c.Volatility = vol }
}

// Roster is the competitor registry. It is not safe for concurrent use;
// callers serialize access (the session holds the single-writer lock).
type Roster struct {
	byName map[string]*Competitor
	order  []string // registration order; standings fall back to it on full ties
}

// New creates an empty roster.
func New() *Roster {
	return &Roster{byName: make(map[string]*Competitor)}
}

// Register adds a new competitor. The zero state is 1500/350/0.06 with an
// empty record and a single-entry rating history.
func (r *Roster) Register(name string, opts ...Option) (*Competitor, error) {
	if !namePolicy.MatchString(name) {
		return nil, ErrInvalidName
	}
	if _, ok := r.byName[name]; ok {
		return nil, ErrDuplicateName
	}

	c := &Competitor{
		name:       name,
		Rating:     DefaultRating,
		RD:         DefaultRD,
		Volatility: DefaultVolatility,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.history = []float64{c.Rating}

	r.byName[name] = c
	r.order = append(r.order, name)
	return c, nil
}

// Get returns the named competitor.
func (r *Roster) Get(name string) (*Competitor, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// Has reports whether the name is registered.
func (r *Roster) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Remove deletes a competitor. Ledger records naming the competitor are
// untouched; replay skips them as orphaned references.
func (r *Roster) Remove(name string) error {
	if _, ok := r.byName[name]; !ok {
		return ErrNotFound
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Rename relabels a competitor in place. Identity for pending results and
// history is preserved: the record itself is not recreated.
func (r *Roster) Rename(oldName, newName string) error {
	c, ok := r.byName[oldName]
	if !ok {
		return ErrNotFound
	}
	if newName == oldName {
		return nil
	}
	if !namePolicy.MatchString(newName) {
		return ErrInvalidName
	}
	if _, taken := r.byName[newName]; taken {
		return ErrDuplicateName
	}

	delete(r.byName, oldName)
	c.name = newName
	r.byName[newName] = c
	for i, n := range r.order {
		if n == oldName {
			r.order[i] = newName
			break
		}
	}
	return nil
}

// RecordPending appends an opponent snapshot and score to the named
// competitor's pending-results queue.
func (r *Roster) RecordPending(name string, game rating.Game) error {
	c, ok := r.byName[name]
	if !ok {
		return ErrNotFound
	}
	c.pending = append(c.pending, game)
	return nil
}

// ResetAll returns every competitor to the default rating state, zeroes the
// counters, truncates the history to a single snapshot and drops pending
// results. It is the first step of a full replay.
func (r *Roster) ResetAll() {
	for _, c := range r.byName {
		c.Rating = DefaultRating
		c.RD = DefaultRD
		c.Volatility = DefaultVolatility
		c.Wins, c.Losses, c.Draws = 0, 0, 0
		c.history = []float64{DefaultRating}
		c.pending = nil
	}
}

// All returns the competitors in registration order.
func (r *Roster) All() []*Competitor {
	out := make([]*Competitor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Len returns the number of registered competitors.
func (r *Roster) Len() int { return len(r.byName) }
