package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/screening"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/errors"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/metrics"
)

const defaultListLimit = 100

// SessionStore covers the session operations the admin surface needs.
type SessionStore interface {
	List(ctx context.Context, limit int) ([]screening.Session, error)
	DeleteAll(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*screening.Stats, error)
}

// Handler provides HTTP handlers for the admin module
type Handler struct {
	store SessionStore
}

// NewHandler creates a new admin handler
func NewHandler(store SessionStore) *Handler {
	return &Handler{store: store}
}

// Routes registers the admin routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/sessions", h.ListSessions)
	r.Delete("/sessions", h.ClearSessions)
	r.Get("/stats", h.GetStats)

	return r
}

// ListSessions returns the most recent sessions
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, errors.BadRequest("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	sessions, err := h.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// ClearSessions deletes all stored sessions. Requires confirm=true.
func (h *Handler) ClearSessions(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, errors.BadRequest("must confirm deletion with confirm=true"))
		return
	}

	cleared, err := h.store.DeleteAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.RecordSessionsCleared(cleared)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Cleared %d sessions", cleared),
	})
}

// GetStats returns aggregate session statistics
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if appErr, ok := err.(*errors.AppError); ok {
		w.WriteHeader(appErr.HTTPStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"details": appErr.Details,
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
}
