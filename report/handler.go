package report

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sr-consultoria/farmreport/internal/platform/httpx"
)

// Handler exposes rasterizer health.
type Handler struct {
	backend string
	pinger  Pinger
	logger  *slog.Logger
}

// NewHandler creates a rasterizer handler. backend names the configured
// rasterizer in responses.
func NewHandler(backend string, pinger Pinger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{backend: backend, pinger: pinger, logger: logger}
}

// MountRoutes registers rasterizer routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ping", h.ping)
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if h.pinger == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Rasterizer unavailable", "no rasterizer configured")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn("rasterizer ping failed", slog.String("backend", h.backend), slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Rasterizer unavailable", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok", "backend": h.backend})
}
