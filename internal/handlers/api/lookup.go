package api

import (
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"fedspeak/internal/config"
	"fedspeak/internal/envelope"
	"fedspeak/internal/metrics"
	"fedspeak/internal/models"
	"fedspeak/internal/truncate"
	"fedspeak/internal/validation"
)

const (
	missingDecodeParams = `Missing required parameter. Provide "acronym" for single lookup or "text" for scanning.`
	missingEncodeParams = `Missing required parameter. Provide "name" for single lookup or "text" for scanning.`
)

// LookupHandler serves the decode and encode endpoints.
type LookupHandler struct {
	builder     *envelope.Builder
	decodeTrunc *truncate.Truncator
	encodeTrunc *truncate.Truncator
	maxText     int
	decodeUsage models.Usage
	encodeUsage models.Usage
}

// NewLookupHandler creates a new lookup handler. yamlCfg may be nil.
func NewLookupHandler(builder *envelope.Builder, cfg *config.Config, yamlCfg *config.YAMLConfig) *LookupHandler {
	ex := yamlCfg.UsageExamples()
	return &LookupHandler{
		builder:     builder,
		decodeTrunc: truncate.New(yamlCfg.DecodeBudget(cfg.ResponseBudget)),
		encodeTrunc: truncate.New(yamlCfg.EncodeBudget(cfg.ResponseBudget)),
		maxText:     cfg.MaxTextLength,
		decodeUsage: models.Usage{
			Single: map[string]string{"acronym": ex.Acronym},
			Scan:   map[string]string{"text": ex.DecodeText},
		},
		encodeUsage: models.Usage{
			Single: map[string]string{"name": ex.Name},
			Scan:   map[string]string{"text": ex.EncodeText},
		},
	}
}

// Decode resolves an acronym (?acronym=) or scans text (?text=) for acronyms.
// POST accepts the same fields as a JSON body.
func (h *LookupHandler) Decode(c fiber.Ctx) error {
	var req models.DecodeRequest
	if c.Method() == fiber.MethodGet {
		req = models.DecodeRequest{Acronym: c.Query("acronym"), Text: c.Query("text")}
	} else if err := parseBody(c, &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	q := req.Query()
	if q.Kind == models.QueryEmpty {
		return jsonUsage(c, missingDecodeParams, h.decodeUsage)
	}
	if valid, msg := validation.ValidateLookup(q, h.maxText); !valid {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, msg)
	}

	return h.respond(c, models.DirectionDecode, h.builder.Decode(req), h.decodeTrunc)
}

// Encode resolves a full name (?name=) or scans text (?text=) for full names.
// POST accepts the same fields as a JSON body.
func (h *LookupHandler) Encode(c fiber.Ctx) error {
	var req models.EncodeRequest
	if c.Method() == fiber.MethodGet {
		req = models.EncodeRequest{Name: c.Query("name"), Text: c.Query("text")}
	} else if err := parseBody(c, &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	q := req.Query()
	if q.Kind == models.QueryEmpty {
		return jsonUsage(c, missingEncodeParams, h.encodeUsage)
	}
	if valid, msg := validation.ValidateLookup(q, h.maxText); !valid {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, msg)
	}

	return h.respond(c, models.DirectionEncode, h.builder.Encode(req), h.encodeTrunc)
}

func (h *LookupHandler) respond(c fiber.Ctx, direction string, resp models.Response, trunc *truncate.Truncator) error {
	metrics.RecordLookup(direction, resp)

	out, step, err := trunc.Truncate(resp)
	if err != nil {
		return err
	}
	metrics.RecordTruncation(direction, step)
	if step == truncate.StepOverBudget {
		slog.Warn("response exceeds budget with no results",
			"direction", direction,
			"budget", trunc.Budget(),
			"query_length", len(resp.Query),
		)
	}

	return c.JSON(out)
}

// parseBody decodes a JSON body. An empty body is an empty request.
func parseBody(c fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}
