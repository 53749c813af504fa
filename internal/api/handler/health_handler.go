package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is anything whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	backend Pinger
	guard   Pinger
}

// NewHealthHandler builds the probe handler. guard may be nil when the
// submission guard is disabled.
func NewHealthHandler(backend Pinger, guard Pinger) *HealthHandler {
	return &HealthHandler{backend: backend, guard: guard}
}

// Live handles GET /healthz.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /health/ready. It fails when the salon backend or the
// submission guard is unreachable.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{"backend": "ok"}
	status := http.StatusOK

	if err := h.backend.Ping(ctx); err != nil {
		checks["backend"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if h.guard != nil {
		checks["guard"] = "ok"
		if err := h.guard.Ping(ctx); err != nil {
			checks["guard"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}
	return c.JSON(status, checks)
}
