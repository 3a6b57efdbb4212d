package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports whether the API and its database are reachable.
type HealthHandler struct {
	ping func() error
}

// NewHealthHandler creates a new HealthHandler checking the database with ping.
func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// RegisterRoutes registers the health route with the Fiber app.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth answers 503 when the database does not respond.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	status, database, code := "healthy", "connected", fiber.StatusOK
	if err := h.ping(); err != nil {
		status, database, code = "unhealthy", "disconnected", fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
	})
}
