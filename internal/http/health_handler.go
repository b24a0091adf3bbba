package http

import (
	"log/slog"
	"net/http"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

type healthHandler struct {
	logger *slog.Logger
	db     db.HealthChecker
}

func newHealthHandler(logger *slog.Logger, db db.HealthChecker) *healthHandler {
	return &healthHandler{
		logger: logger,
		db:     db,
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request) error {
	if ok, err := h.db.IsHealthy(r.Context()); !ok {
		h.logger.WarnContext(r.Context(), "database is unhealthy", slog.Any("error", err))
		return writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
	}

	return writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
