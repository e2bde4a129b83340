// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

// Package api provides HTTP routing and request handlers using the Chi
// router.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mwhitcomb/loreatlas/internal/config"
	"github.com/mwhitcomb/loreatlas/internal/database"
	"github.com/mwhitcomb/loreatlas/internal/explore"
	"github.com/mwhitcomb/loreatlas/internal/middleware"
)

// Handler bundles the collaborators the request handlers need.
type Handler struct {
	explore *explore.Service
	db      *database.DB
}

// NewHandler creates the handler set.
func NewHandler(exploreSvc *explore.Service, db *database.DB) *Handler {
	return &Handler{explore: exploreSvc, db: db}
}

// NewRouter assembles the full middleware stack and route table.
func NewRouter(cfg *config.Config, handler *Handler) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", handler.Health)
	r.Get("/health/ready", handler.HealthReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Coarse per-IP limit on all API traffic. The discovery
		// limiter inside the explore service separately meters
		// upstream encyclopedia calls.
		if !cfg.RateLimit.Disabled {
			requests := cfg.RateLimit.HTTPRequests
			if requests <= 0 {
				requests = 100
			}
			window := cfg.RateLimit.HTTPWindow
			if window <= 0 {
				window = time.Minute
			}
			r.Use(httprate.LimitByIP(requests, window))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Post("/explore", handler.Explore)
		r.Post("/explore/preload", handler.Preload)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", handler.ListHistory)
			r.Post("/", handler.CreateHistory)
			r.Delete("/{id}", handler.DeleteHistory)
			r.Patch("/{id}/audio", handler.UpdateHistoryAudio)
		})

		r.Route("/routes", func(r chi.Router) {
			r.Get("/", handler.ListRoutes)
			r.Post("/", handler.CreateRoute)
			r.Get("/{id}", handler.GetRoute)
			r.Delete("/{id}", handler.DeleteRoute)
		})
	})

	return r
}
