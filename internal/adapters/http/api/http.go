// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/ladder/internal/app"
	"github.com/okian/ladder/internal/domain/ledger"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/domain/roster"
	"github.com/okian/ladder/internal/domain/standings"
)

// Service bundles the session operations the HTTP layer exposes. Using an
// interface keeps the handler layer loosely coupled to the app package.
type Service interface {
	RegisterCompetitor(ctx context.Context, name string) (app.CompetitorInfo, error)
	RemoveCompetitor(ctx context.Context, name string) error
	RenameCompetitor(ctx context.Context, oldName, newName string) (app.CompetitorInfo, error)
	GetCompetitor(ctx context.Context, name string) (app.CompetitorInfo, error)
	ListCompetitors(ctx context.Context) []app.CompetitorInfo

	RecordMatch(ctx context.Context, c1, c2 string, outcome model.Outcome, playedAt time.Time) (app.MatchResult, error)
	Matches(ctx context.Context) []model.MatchState

	Standings(ctx context.Context) []standings.Row
	Replay(ctx context.Context) app.ReplayReport

	ImportMatches(ctx context.Context, records []model.Match) (ledger.ImportReport, app.ReplayReport)
	ImportCompetitors(ctx context.Context, seeds []app.CompetitorSeed) app.SeedReport

	ExportState(ctx context.Context) model.State
	ImportState(ctx context.Context, state model.State) (app.ReplayReport, error)

	GetStats() app.Stats
}

// Server wires HTTP routes for the ladder API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	competitorsHandler *CompetitorsHandler
	matchesHandler     *MatchesHandler
	standingsHandler   *StandingsHandler
	replayHandler      *ReplayHandler
	stateHandler       *StateHandler
	csvHandler         *CSVHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(svc Service, store StateStore, maxStandingsLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(svc),
		competitorsHandler: NewCompetitorsHandler(svc),
		matchesHandler:     NewMatchesHandler(svc),
		standingsHandler:   NewStandingsHandler(svc, maxStandingsLimit),
		replayHandler:      NewReplayHandler(svc),
		stateHandler:       NewStateHandler(svc, store),
		csvHandler:         NewCSVHandler(svc),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/competitors", MetricsMiddleware(s.competitorsHandler.HandleCollection, "competitors"))
	mux.HandleFunc("/competitors/", MetricsMiddleware(s.competitorsHandler.HandleItem, "competitor"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandleMatches, "matches"))
	mux.HandleFunc("/standings", MetricsMiddleware(s.standingsHandler.HandleGetStandings, "standings"))
	mux.HandleFunc("/replay", MetricsMiddleware(s.replayHandler.HandleReplay, "replay"))
	mux.HandleFunc("/state", MetricsMiddleware(s.stateHandler.HandleState, "state"))
	mux.HandleFunc("/state/save", MetricsMiddleware(s.stateHandler.HandleSave, "state_save"))
	mux.HandleFunc("/state/load", MetricsMiddleware(s.stateHandler.HandleLoad, "state_load"))
	mux.HandleFunc("/csv/standings", MetricsMiddleware(s.csvHandler.HandleStandings, "csv_standings"))
	mux.HandleFunc("/csv/matches", MetricsMiddleware(s.csvHandler.HandleMatches, "csv_matches"))
	mux.HandleFunc("/csv/competitors", MetricsMiddleware(s.csvHandler.HandleCompetitors, "csv_competitors"))
}

// competitorRequest mirrors the body of POST /competitors and
// PUT /competitors/{name}.
type competitorRequest struct {
	Name string `json:"name"`
}

func (c competitorRequest) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("missing name")
	}
	return nil
}

// matchRequest mirrors the body of POST /matches. PlayedAt is optional; a
// missing timestamp means "now".
type matchRequest struct {
	Competitor1 string `json:"competitor1"`
	Competitor2 string `json:"competitor2"`
	Outcome     string `json:"outcome"`
	PlayedAt    string `json:"played_at,omitempty"`
}

func (m matchRequest) validate() error {
	switch {
	case strings.TrimSpace(m.Competitor1) == "":
		return errors.New("missing competitor1")
	case strings.TrimSpace(m.Competitor2) == "":
		return errors.New("missing competitor2")
	case strings.TrimSpace(m.Outcome) == "":
		return errors.New("missing outcome")
	}
	if _, err := model.ParseOutcome(m.Outcome); err != nil {
		return errors.New("invalid outcome; must be P1, Draw or P2")
	}
	if m.PlayedAt != "" {
		if _, err := time.Parse(time.RFC3339, m.PlayedAt); err != nil {
			return errors.New("invalid played_at; must be RFC3339")
		}
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates domain sentinels to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, roster.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, roster.ErrDuplicateName),
		errors.Is(err, ledger.ErrDuplicateMatch):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, roster.ErrInvalidName),
		errors.Is(err, ledger.ErrSameCompetitor),
		errors.Is(err, ledger.ErrInvalidOutcome):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
