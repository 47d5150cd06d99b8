package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports datastore connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to the root liveness probe.
type HealthHandler struct {
	postgres Pinger
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(postgres Pinger) *HealthHandler {
	return &HealthHandler{postgres: postgres}
}

// Status handles GET /. It reports liveness plus datastore connectivity,
// failing with 500 when the persistence collaborator is unreachable.
func (h *HealthHandler) Status(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.postgres.Ping(ctx); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"status":   "alive",
			"database": "error",
			"error":    err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":   "alive",
		"database": "connected",
	})
}
