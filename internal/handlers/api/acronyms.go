package api

import (
	"github.com/gofiber/fiber/v3"

	"fedspeak/internal/dictionary"
	"fedspeak/internal/models"
	"fedspeak/internal/resolver"
)

// AcronymHandler serves the dictionary listing endpoints.
type AcronymHandler struct {
	dict    *dictionary.Dictionary
	decoder *resolver.Decoder
}

// NewAcronymHandler creates a new acronym handler.
func NewAcronymHandler(dict *dictionary.Dictionary, decoder *resolver.Decoder) *AcronymHandler {
	return &AcronymHandler{dict: dict, decoder: decoder}
}

// List returns every canonical acronym, sorted.
func (h *AcronymHandler) List(c fiber.Ctx) error {
	return c.JSON(models.AcronymListResponse{
		Count:    h.dict.Count(),
		Acronyms: h.dict.Keys(),
	})
}

// Get returns a single entry by acronym or alias.
func (h *AcronymHandler) Get(c fiber.Ctx) error {
	result, ok := h.decoder.LookupAcronym(c.Params("acronym"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "acronym not found")
	}
	return c.JSON(result)
}
