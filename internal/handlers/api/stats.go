package api

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"fedspeak/internal/models"
)

const (
	defaultStatsLimit = 20
	maxStatsLimit     = 100
)

// LookupStats reads persisted lookup counts.
type LookupStats interface {
	GetTopAcronymLookups(ctx context.Context, outcome string, limit int) ([]models.AcronymLookup, error)
}

// StatsHandler serves lookup analytics.
type StatsHandler struct {
	stats LookupStats
}

// NewStatsHandler creates a new stats handler. A nil stats source disables
// the endpoint.
func NewStatsHandler(stats LookupStats) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// TopLookups returns the most frequent lookups, optionally filtered by
// ?outcome= and bounded by ?limit=.
func (h *StatsHandler) TopLookups(c fiber.Ctx) error {
	if h.stats == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "lookup statistics are not enabled")
	}

	outcome := c.Query("outcome")
	switch outcome {
	case "", models.OutcomeResolved, models.OutcomeScanned, models.OutcomeNotFound:
	default:
		return jsonError(c, fiber.StatusBadRequest, "outcome must be resolved, scanned or not_found")
	}

	limit := defaultStatsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return jsonError(c, fiber.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(n, maxStatsLimit)
	}

	lookups, err := h.stats.GetTopAcronymLookups(c.Context(), outcome, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count":   len(lookups),
		"lookups": lookups,
	})
}
