package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"violation-tracker/internal/model"
)

type pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db pinger
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, model.APIResponse{
			Status:  model.StatusError,
			Message: "Database unavailable",
		})
		return
	}

	writeSuccess(w, http.StatusOK, "OK", map[string]string{"database": "up"})
}
