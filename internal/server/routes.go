package server

import (
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"fedspeak/internal/config"
	"fedspeak/internal/db"
	"fedspeak/internal/dictionary"
	"fedspeak/internal/envelope"
	"fedspeak/internal/handlers"
	"fedspeak/internal/handlers/api"
	"fedspeak/internal/jobs"
	"fedspeak/internal/metrics"
	"fedspeak/internal/resolver"
)

// Deps are the components routes are built from. DB and Links are optional.
type Deps struct {
	Dict  *dictionary.Dictionary
	YAML  *config.YAMLConfig
	DB    *db.DB
	Links *jobs.LinkChecker
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	decoder := resolver.NewDecoder(deps.Dict)
	builder := envelope.NewBuilder(decoder, resolver.NewEncoder(deps.Dict))

	// Optional backends stay nil interfaces when disabled.
	var (
		stats  api.LookupStats
		pinger api.Pinger
		health api.HealthSource
	)
	if deps.DB != nil {
		stats = deps.DB
		pinger = deps.DB
	} else {
		log.Println("DATABASE_URL not set, lookup statistics are disabled")
	}
	if deps.Links != nil {
		health = deps.Links
	}

	// Initialize handlers
	lookupHandler := api.NewLookupHandler(builder, s.Cfg, deps.YAML)
	acronymHandler := api.NewAcronymHandler(deps.Dict, decoder)
	statsHandler := api.NewStatsHandler(stats)
	linkHandler := api.NewLinkHandler(health)
	healthHandler := api.NewHealthHandler(pinger, deps.Dict.Count())
	pageHandler := handlers.NewPageHandler(s.Cfg, deps.YAML, builder, decoder)

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Get("/decode", lookupHandler.Decode)
	apiGroup.Post("/decode", lookupHandler.Decode)
	apiGroup.Get("/encode", lookupHandler.Encode)
	apiGroup.Post("/encode", lookupHandler.Encode)
	apiGroup.Get("/acronyms", acronymHandler.List)
	apiGroup.Get("/acronyms/:acronym", acronymHandler.Get)
	apiGroup.Get("/stats/lookups", statsHandler.TopLookups)
	apiGroup.Get("/links/health", linkHandler.Health)

	// Operations
	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Frontend
	s.App.Get("/", pageHandler.Index)
}
