package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-console/internal/observability"
	"github.com/spec-kit/helpdesk-console/internal/session"
)

// HealthHandler exposes the liveness and counter endpoints.
type HealthHandler struct {
	redis   *session.Redis
	metrics *observability.Metrics
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(redis *session.Redis, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{redis: redis, metrics: metrics}
}

// Health GET /healthz reports process liveness plus session-store
// reachability.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	sessionStore := "up"
	if err := h.redis.Ping(c.Context()); err != nil {
		sessionStore = "down"
	}
	return c.JSON(fiber.Map{
		"status":        "ok",
		"session_store": sessionStore,
	})
}

// Metrics GET /metrics dumps the in-memory request and error counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	requests, errors := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests": requests,
		"errors":   errors,
	})
}
