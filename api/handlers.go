/*
handlers.go - HTTP API handlers for the agent metrics engine

PURPOSE:
  Exposes the metrics engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the report computation.

ENDPOINTS:
  GET /api/agents                 Agent directory + presence date bounds
  GET /api/agents/{name}/report   Full metrics report
      ?start=YYYY-MM-DD&end=YYYY-MM-DD
      Defaults to the last seven days of loaded presence data; reversed
      bounds are swapped, a single bound collapses the range to one day.
  GET /health                     Liveness probe

ARCHITECTURE:
  Handler holds the immutable snapshot and the logger. Each report request
  is one synchronous computation pass; concurrent requests share the
  snapshot read-only.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed date parameters
  - 404: Unknown agent
  - 500: Internal errors

SEE ALSO:
  - dto.go: Response data structures and display formatting
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/goatcx/agent-insight/dataset"
	"github.com/goatcx/agent-insight/interval"
	"github.com/goatcx/agent-insight/report"
)

// DefaultRangeDays is the width of the default report range.
const DefaultRangeDays = 7

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Snap *dataset.Snapshot
	Log  zerolog.Logger
}

// NewHandler creates a new handler over the loaded snapshot.
func NewHandler(snap *dataset.Snapshot, log zerolog.Logger) *Handler {
	return &Handler{Snap: snap, Log: log}
}

// =============================================================================
// AGENT DIRECTORY
// =============================================================================

// ListAgents returns the agent directory and the presence date bounds.
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	min, max, ok := h.Snap.DateBounds()
	dto := AgentsDTO{Agents: h.Snap.Agents()}
	if ok {
		dto.MinDate = min.String()
		dto.MaxDate = max.String()
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// REPORT
// =============================================================================

// GetReport computes and returns the full metrics report for one agent.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.Snap.HasAgent(name) {
		writeError(w, http.StatusNotFound, "Unknown agent", nil)
		return
	}

	dateRange, err := h.rangeFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range (use YYYY-MM-DD)", err)
		return
	}

	rep := report.Build(h.Snap, name, dateRange)
	writeJSON(w, http.StatusOK, toReportDTO(rep))
}

// rangeFromQuery resolves the start/end query parameters. With neither set
// the range defaults to the trailing week of loaded data; with one set the
// range collapses to that single day.
func (h *Handler) rangeFromQuery(r *http.Request) (interval.DateRange, error) {
	startRaw := r.URL.Query().Get("start")
	endRaw := r.URL.Query().Get("end")

	if startRaw == "" && endRaw == "" {
		_, max, _ := h.Snap.DateBounds()
		return interval.NewDateRange(max.AddDays(-(DefaultRangeDays - 1)), max), nil
	}
	if startRaw == "" {
		startRaw = endRaw
	}
	if endRaw == "" {
		endRaw = startRaw
	}

	start, err := interval.ParseDate(startRaw)
	if err != nil {
		return interval.DateRange{}, err
	}
	end, err := interval.ParseDate(endRaw)
	if err != nil {
		return interval.DateRange{}, err
	}
	return interval.NewDateRange(start, end), nil
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports liveness and snapshot shape.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"agents":      len(h.Snap.Agents()),
		"presence":    len(h.Snap.Presence),
		"items":       len(h.Snap.Items),
		"transcripts": len(h.Snap.Transcripts),
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
