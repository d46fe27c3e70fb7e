package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/invisible-wallet/internal/cache"
	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/handler"
	"github.com/MKhiriev/invisible-wallet/internal/ledger"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/metrics"
	"github.com/MKhiriev/invisible-wallet/internal/server"
	"github.com/MKhiriev/invisible-wallet/internal/service"
	"github.com/MKhiriev/invisible-wallet/internal/store"
	"github.com/MKhiriev/invisible-wallet/internal/workers"
	"github.com/MKhiriev/invisible-wallet/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("invisible-wallet", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("invisible-wallet", cfg.App.LogLevel)
	ctx := log.WithContext(context.Background())

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	ledgers, err := ledger.NewHorizonRegistry(cfg.Ledger, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ledger clients")
	}

	limiter, closeLimiter := cache.NewAttemptLimiter(ctx, cfg.Cache, log)
	defer closeLimiter()

	collectors := metrics.New()
	runner := workers.NewRunner(cfg.Workers.TaskTimeout)

	services, err := service.NewServices(
		store.NewStorages(db, log),
		ledgers,
		limiter,
		runner,
		collectors,
		models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		*cfg,
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, collectors, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, runner, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo() {
	fmt.Printf("Build version: %s\n", orNA(buildVersion))
	fmt.Printf("Build date: %s\n", orNA(buildDate))
	fmt.Printf("Build commit: %s\n", orNA(buildCommit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
