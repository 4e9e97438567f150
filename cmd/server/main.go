package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fedspeak/internal/config"
	"fedspeak/internal/db"
	"fedspeak/internal/dictionary"
	"fedspeak/internal/email"
	"fedspeak/internal/jobs"
	"fedspeak/internal/metrics"
	"fedspeak/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	// Load dictionary
	dict, records, err := dictionary.Open(cfg.DictionaryFile)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Printf("Loaded %d acronyms", dict.Count())

	for _, issue := range dictionary.Audit(records) {
		slog.Warn("dictionary issue", "kind", issue.Kind, "key", issue.Key, "detail", issue.Detail)
	}

	deps := server.Deps{Dict: dict, YAML: yamlCfg}

	// Initialize database (optional)
	var store metrics.LookupStore
	if cfg.HasDatabase() {
		database, err := db.Open(ctx, cfg.DatabaseURL, db.Options{
			MaxConns:       cfg.DBMaxConns,
			ConnectTimeout: cfg.DBConnectTimeout,
		})
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()
		log.Println("Database ready, migrations applied")

		deps.DB = database
		store = database
	}

	// Start link checker (optional)
	var health metrics.HealthSource
	if cfg.LinkCheckEnabled {
		checker := jobs.NewLinkChecker(dict, cfg.LinkCheckInterval, cfg.LinkCheckDelay)
		if notifier := email.NewNotifier(cfg); notifier.IsEnabled() {
			checker.SetNotifier(notifier)
		}
		go checker.Start(ctx)

		deps.Links = checker
		health = checker
	}

	metrics.Init(store, health)

	srv := server.New(cfg)
	srv.RegisterRoutes(deps)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
