package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
)

// Pinger checks a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	db      Pinger
	entries int
}

// NewHealthHandler creates a new health handler. db may be nil.
func NewHealthHandler(db Pinger, entries int) *HealthHandler {
	return &HealthHandler{db: db, entries: entries}
}

// Check reports whether the service and its optional database are up.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	database := "disabled"
	if h.db != nil {
		database = "ok"
		if err := h.db.Ping(c.Context()); err != nil {
			slog.Error("health check: database ping failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "error",
				"database": "unreachable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"entries":  h.entries,
		"database": database,
	})
}
