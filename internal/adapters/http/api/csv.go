// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/ladder/internal/adapters/tabular"
)

const csvContentType = "text/csv; charset=utf-8"

// CSVHandler serves CSV renditions of standings, matches and competitors,
// and accepts CSV uploads for bulk import.
type CSVHandler struct {
	svc Service
}

// NewCSVHandler creates a new CSV handler.
func NewCSVHandler(svc Service) *CSVHandler {
	return &CSVHandler{svc: svc}
}

// HandleStandings handles GET /csv/standings requests.
func (h *CSVHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", csvContentType)
	if err := tabular.WriteStandings(w, h.svc.Standings(r.Context())); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// HandleMatches handles GET and POST /csv/matches requests. GET exports the
// ledger; POST bulk-imports match rows and replays the history.
func (h *CSVHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", csvContentType)
		if err := tabular.WriteMatches(w, h.svc.Matches(r.Context())); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}

	case http.MethodPost:
		records, unparsed, err := tabular.ReadMatches(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		report, replay := h.svc.ImportMatches(r.Context(), records)
		writeJSON(w, http.StatusOK, map[string]any{
			"imported": report.Imported,
			"skipped":  report.Skipped() + unparsed,
			"replay":   replay,
		})

	default:
		http.NotFound(w, r)
	}
}

// HandleCompetitors handles GET and POST /csv/competitors requests.
func (h *CSVHandler) HandleCompetitors(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", csvContentType)
		if err := tabular.WriteCompetitors(w, h.svc.ListCompetitors(r.Context())); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}

	case http.MethodPost:
		seeds, unparsed, err := tabular.ReadCompetitors(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		report := h.svc.ImportCompetitors(r.Context(), seeds)
		writeJSON(w, http.StatusOK, map[string]any{
			"imported": report.Imported,
			"skipped":  report.Skipped + unparsed,
		})

	default:
		http.NotFound(w, r)
	}
}
