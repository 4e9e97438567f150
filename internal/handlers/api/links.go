package api

import (
	"github.com/gofiber/fiber/v3"

	"fedspeak/internal/models"
)

// HealthSource reports the latest URL health checks.
type HealthSource interface {
	Snapshot() []models.URLHealth
}

// LinkHandler serves the entry URL health results.
type LinkHandler struct {
	source HealthSource
}

// NewLinkHandler creates a new link handler. A nil source disables the endpoint.
func NewLinkHandler(source HealthSource) *LinkHandler {
	return &LinkHandler{source: source}
}

// Health returns the last check result for every entry url.
func (h *LinkHandler) Health(c fiber.Ctx) error {
	if h.source == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "link checking is not enabled")
	}

	results := h.source.Snapshot()
	var unhealthy int
	for _, r := range results {
		if !r.IsHealthy() {
			unhealthy++
		}
	}

	return c.JSON(fiber.Map{
		"count":     len(results),
		"unhealthy": unhealthy,
		"results":   results,
	})
}
