// Package main is the entry point for the Q&A board API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"qaboard/src/app/server"
	"qaboard/src/infra/config"
	"qaboard/src/infra/db"
	"qaboard/src/infra/logger"
	"qaboard/src/infra/moderation"
	"qaboard/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	log.Info("starting application",
		"addr", cfg.Server.Addr(),
		"log_level", cfg.Log.Level,
	)

	ctx := context.Background()

	pg, err := db.New(ctx, cfg.Database, logger.WithComponent(log, "db"))
	if err != nil {
		return err
	}
	defer pg.Close()

	if cfg.Database.Migrate {
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
	}

	questionRepo := repo.NewPostgresRepository(pg, logger.WithComponent(log, "store"))

	if cfg.Moderation.APIKey == "" {
		log.Warn("APP_MODERATION_API_KEY is not set, moderation calls will be rejected upstream")
	}
	retry := moderation.DefaultRetryPolicy()
	retry.MaxRetries = cfg.Moderation.MaxRetries
	retry.InitialInterval = cfg.Moderation.InitialInterval
	retry.MaxInterval = cfg.Moderation.MaxInterval

	moderator, err := moderation.New(
		&http.Client{Timeout: cfg.Moderation.Timeout},
		moderation.Options{
			URL:             cfg.Moderation.URL,
			APIKey:          cfg.Moderation.APIKey,
			CensorCharacter: cfg.Moderation.CensorCharacter,
			Retry:           retry,
		},
		logger.WithComponent(log, "moderation"),
	)
	if err != nil {
		return err
	}

	srv := server.New(cfg, log, questionRepo, moderator)

	// Run blocks until shutdown signal is received
	return srv.Run()
}
