package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/analysis"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/service"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/store"
)

// SnapshotSource provides the latest completed analysis snapshot.
type SnapshotSource interface {
	Latest() *analysis.Snapshot
}

// Refresher triggers an immediate refresh cycle and reports status.
type Refresher interface {
	TriggerRefresh(ctx context.Context) (*analysis.Snapshot, error)
	GetStatus() map[string]interface{}
}

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	db          *store.Database
	edgeService *service.EdgeService
	snapshots   SnapshotSource
	refresher   Refresher
}

// NewHandler creates a new handler. The edge service is only wired when a
// database is available.
func NewHandler(db *store.Database, snapshots SnapshotSource, refresher Refresher) *Handler {
	h := &Handler{
		db:        db,
		snapshots: snapshots,
		refresher: refresher,
	}
	if db != nil {
		h.edgeService = service.NewEdgeService(db)
	}
	return h
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "valuefinder",
		"version": "1.0.0",
	})
}

// GetLatestEdges returns the most recent analysis snapshot.
func (h *Handler) GetLatestEdges(w http.ResponseWriter, r *http.Request) {
	snapshot := h.snapshots.Latest()
	if snapshot == nil {
		respondError(w, http.StatusServiceUnavailable, "No analysis completed yet", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"generated_at":   snapshot.GeneratedAt,
		"results":        snapshot.Results,
		"count":          len(snapshot.Results),
		"quotes_dropped": snapshot.QuotesDropped,
		"unresolved":     snapshot.Unresolved,
	})
}

// GetTeamHistory returns past results involving a team.
func (h *Handler) GetTeamHistory(w http.ResponseWriter, r *http.Request) {
	if h.edgeService == nil {
		respondError(w, http.StatusServiceUnavailable, "History requires persistence", nil)
		return
	}

	team := r.URL.Query().Get("team")
	if team == "" {
		respondError(w, http.StatusBadRequest, "Missing required 'team' parameter", nil)
		return
	}

	limit := parseLimit(r, 50)
	results, err := h.edgeService.GetTeamHistory(r.Context(), team, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team history", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team":    team,
		"results": results,
		"count":   len(results),
	})
}

// GetRecentRuns returns the most recent analysis runs.
func (h *Handler) GetRecentRuns(w http.ResponseWriter, r *http.Request) {
	if h.edgeService == nil {
		respondError(w, http.StatusServiceUnavailable, "History requires persistence", nil)
		return
	}

	limit := parseLimit(r, 20)
	runs, err := h.edgeService.GetRecentRuns(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch runs", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetRun returns one run with its edge results.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	if h.edgeService == nil {
		respondError(w, http.StatusServiceUnavailable, "History requires persistence", nil)
		return
	}

	vars := mux.Vars(r)
	runID, err := strconv.ParseInt(vars["runID"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid run ID", err)
		return
	}

	summary, err := h.edgeService.GetRun(r.Context(), runID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Run not found", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// TriggerRefresh runs one refresh cycle immediately.
func (h *Handler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.refresher.TriggerRefresh(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "Refresh failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Refresh complete",
		"generated_at": snapshot.GeneratedAt,
		"count":        len(snapshot.Results),
	})
}

// GetStatus returns scheduler status.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.refresher.GetStatus())
}

func parseLimit(r *http.Request, fallback int) int {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return fallback
	}
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 500 {
		return l
	}
	return fallback
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
