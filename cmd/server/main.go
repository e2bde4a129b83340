// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

// Command server runs the LoreAtlas HTTP server: location-based
// historical discovery backed by Wikipedia and DuckDB.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwhitcomb/loreatlas/internal/api"
	"github.com/mwhitcomb/loreatlas/internal/config"
	"github.com/mwhitcomb/loreatlas/internal/database"
	"github.com/mwhitcomb/loreatlas/internal/explore"
	"github.com/mwhitcomb/loreatlas/internal/logging"
	"github.com/mwhitcomb/loreatlas/internal/metrics"
	"github.com/mwhitcomb/loreatlas/internal/ratelimit"
	"github.com/mwhitcomb/loreatlas/internal/supervisor"
	"github.com/mwhitcomb/loreatlas/internal/supervisor/services"
	"github.com/mwhitcomb/loreatlas/internal/wikipedia"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Starting LoreAtlas server")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	// Discovery pipeline: Wikipedia client behind a circuit breaker,
	// the fixed-window limiter, and the orchestrator over all three.
	wikiClient := wikipedia.NewClient(&cfg.Wikipedia)
	resolver := wikipedia.NewResolver(wikipedia.NewBreakerClient(wikiClient))
	limiter := ratelimit.NewFixedWindowLimiter(cfg.RateLimit.Discoveries, cfg.RateLimit.Window)
	exploreSvc := explore.NewService(db, limiter, resolver)

	handler := api.NewHandler(exploreSvc, db)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(cfg, handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeConfig)

	tree.AddAPIService(services.NewHTTPServerService(httpServer, cfg.Server.ShutdownTimeout))

	tree.AddJobService(services.NewJanitorService("ratelimit-sweep", cfg.RateLimit.Window,
		func(context.Context) error {
			removed := limiter.Sweep()
			if removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Swept expired rate-limit windows")
			}
			return nil
		}))

	maxAge := time.Duration(cfg.Retention.MaxAgeDays) * 24 * time.Hour
	tree.AddJobService(services.NewJanitorService("retention-sweep", cfg.Retention.SweepInterval,
		func(ctx context.Context) error {
			deleted, err := db.CleanupOldHistory(ctx, maxAge)
			if err != nil {
				return err
			}
			if deleted > 0 {
				metrics.HistorySweepDeletions.Add(float64(deleted))
				logging.Info().Int64("deleted", deleted).Msg("Cleaned up old history entries")
			}
			return nil
		}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		logging.Fatal().Err(err).Msg("Supervisor tree failed")
	}
	logging.Info().Msg("Server stopped")
}
