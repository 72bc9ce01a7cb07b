package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger verifies a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	version string
	cache   Pinger
}

// NewHealthHandler constructs handler. cache may be nil.
func NewHealthHandler(version string, cache Pinger) *HealthHandler {
	return &HealthHandler{version: version, cache: cache}
}

// Live GET /healthz/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": h.version})
}

// Ready GET /healthz/ready. Degrades rather than fails when the cache is
// down: the dashboard still works, just without option caching.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{}
	status := http.StatusOK
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = "unavailable"
		} else {
			checks["cache"] = "ok"
		}
	}
	return c.Status(status).JSON(fiber.Map{"status": "ok", "checks": checks})
}
