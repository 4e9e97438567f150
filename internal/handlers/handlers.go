// Package handlers serves the HTML pages. JSON endpoints live in handlers/api.
package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"fedspeak/internal/config"
	"fedspeak/internal/envelope"
	"fedspeak/internal/models"
	"fedspeak/internal/resolver"
	"fedspeak/internal/truncate"
	"fedspeak/internal/validation"
)

// defaultFeatured is shown on the home page when config.yaml lists none.
var defaultFeatured = []string{"GSA", "OMB", "DOD", "FAR", "RFP", "COR"}

// PageHandler renders the search page.
type PageHandler struct {
	cfg      *config.Config
	builder  *envelope.Builder
	decoder  *resolver.Decoder
	trunc    *truncate.Truncator
	featured []string
}

// NewPageHandler creates a new page handler. yamlCfg may be nil.
func NewPageHandler(cfg *config.Config, yamlCfg *config.YAMLConfig, builder *envelope.Builder, decoder *resolver.Decoder) *PageHandler {
	return &PageHandler{
		cfg:      cfg,
		builder:  builder,
		decoder:  decoder,
		trunc:    truncate.New(cfg.ResponseBudget),
		featured: yamlCfg.FeaturedAcronyms(defaultFeatured),
	}
}

// Index renders the home page. With ?q= it also shows results: decode by
// default, encode when ?dir=encode. A query containing whitespace is scanned.
func (h *PageHandler) Index(c fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if validation.TooLong(query, h.cfg.MaxTextLength) {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Text is too long to scan")
	}
	direction := c.Query("dir", models.DirectionDecode)
	if direction != models.DirectionEncode {
		direction = models.DirectionDecode
	}

	data := MergeBranding(fiber.Map{
		"Query":     query,
		"Direction": direction,
		"Featured":  h.featuredResults(),
	}, h.cfg)

	if query != "" {
		resp, _, err := h.trunc.Truncate(h.lookup(direction, query))
		if err != nil {
			return err
		}
		data["Response"] = resp
	}

	return c.Render("index", data)
}

func (h *PageHandler) lookup(direction, query string) models.Response {
	scan := strings.ContainsAny(query, " \t\n")
	if direction == models.DirectionEncode {
		// Full names contain spaces, so try an exact match before scanning.
		if resp := h.builder.Encode(models.EncodeRequest{Name: query}); resp.Success || !scan {
			return resp
		}
		return h.builder.Encode(models.EncodeRequest{Text: query})
	}
	if scan {
		return h.builder.Decode(models.DecodeRequest{Text: query})
	}
	return h.builder.Decode(models.DecodeRequest{Acronym: query})
}

func (h *PageHandler) featuredResults() []models.Result {
	results := make([]models.Result, 0, len(h.featured))
	for _, acronym := range h.featured {
		if res, ok := h.decoder.LookupAcronym(acronym); ok {
			results = append(results, res)
		}
	}
	return results
}
