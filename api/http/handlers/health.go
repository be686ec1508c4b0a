package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rozgaar/backend/api/http/presenter"
	"github.com/rozgaar/backend/pkg/health"
)

const readyTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	svc     health.ReadinessUseCase
	started time.Time
}

func NewHealthHandler(svc health.ReadinessUseCase) *HealthHandler {
	return &HealthHandler{svc: svc, started: time.Now()}
}

// Health reports that the process is serving and for how long.
// @Summary Liveness check
// @Tags    health
// @Produce json
// @Success 200 {object} presenter.StatusResponse
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, presenter.StatusResponse{
		Status: "ok",
		Uptime: time.Since(h.started).Truncate(time.Second).String(),
	})
}

// Ready checks Postgres and, when configured, Redis.
// @Summary Readiness check
// @Tags    health
// @Produce json
// @Success 200 {object} presenter.StatusResponse
// @Failure 503 {object} presenter.StatusResponse
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readyTimeout)
	defer cancel()
	report := h.svc.Ready(ctx)
	if !report.Ready {
		slog.Warn("readiness check failed", slog.String("failed", strings.Join(report.Failed(), ",")))
		return presenter.JSON(c, http.StatusServiceUnavailable, presenter.StatusResponse{Status: "not_ready", Checks: report.Checks})
	}
	return presenter.JSON(c, http.StatusOK, presenter.StatusResponse{Status: "ready", Checks: report.Checks})
}
