// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

// Package explore composes the proximity cache, the discovery rate
// limiter, and the Wikipedia resolver into the two client-facing
// operations: single-point explore and multi-point preload.
package explore

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwhitcomb/loreatlas/internal/logging"
	"github.com/mwhitcomb/loreatlas/internal/metrics"
	"github.com/mwhitcomb/loreatlas/internal/models"
	"github.com/mwhitcomb/loreatlas/internal/wikipedia"
)

// ProximityRadiusMeters is the cache-hit threshold: a stored discovery
// within this distance of the requested coordinate is reused.
const ProximityRadiusMeters = 100

// DefaultLanguage is served from the proximity cache. Other languages
// always resolve upstream so cached English text is never returned for
// a Spanish request.
const DefaultLanguage = "en"

// ErrRateLimited is returned when the client has spent its discovery
// allowance for the current window.
var ErrRateLimited = errors.New("discovery rate limit exceeded")

// Store is the persistence surface the orchestrator needs.
type Store interface {
	FindNearbyHistory(ctx context.Context, lat, lng, radiusMeters float64) (*models.HistoryItem, error)
	CreateHistory(ctx context.Context, input models.InsertHistory) (*models.HistoryItem, error)
}

// Limiter gates calls that would reach the upstream resolver. Cache
// hits never consume quota.
type Limiter interface {
	Allow(key string) bool
}

// ContentResolver turns a coordinate into article content, returning
// (nil, nil) when the area has no coverage.
type ContentResolver interface {
	Resolve(ctx context.Context, lat, lon float64, language string) (*wikipedia.Discovery, error)
}

// Service orchestrates discovery requests.
type Service struct {
	store    Store
	limiter  Limiter
	resolver ContentResolver
}

// NewService wires the orchestrator's collaborators.
func NewService(store Store, limiter Limiter, resolver ContentResolver) *Service {
	return &Service{store: store, limiter: limiter, resolver: resolver}
}

// Explore resolves one coordinate for a client. The proximity cache is
// consulted first for the default language; only a miss consumes the
// client's rate-limit quota and reaches the upstream resolver. Areas
// with no coverage persist a localized placeholder so repeat visits
// stay fast and consistent.
func (s *Service) Explore(ctx context.Context, clientKey string, req models.ExploreRequest) (*models.ExploreResponse, error) {
	// Coordinates are non-nil after request validation.
	lat, lng := *req.Latitude, *req.Longitude
	language := req.Language
	if language == "" {
		language = DefaultLanguage
	}

	if language == DefaultLanguage {
		cached, err := s.store.FindNearbyHistory(ctx, lat, lng, ProximityRadiusMeters)
		if err != nil {
			return nil, fmt.Errorf("proximity lookup: %w", err)
		}
		if cached != nil {
			metrics.DiscoveryCacheHits.Inc()
			return &models.ExploreResponse{
				LocationName: cached.LocationName,
				Content:      cached.Content,
				Cached:       true,
				HistoryID:    cached.ID,
			}, nil
		}
	}
	metrics.DiscoveryCacheMisses.Inc()

	if !s.limiter.Allow(clientKey) {
		return nil, ErrRateLimited
	}

	discovery, err := s.resolver.Resolve(ctx, lat, lng, language)
	if err != nil {
		return nil, fmt.Errorf("resolve location: %w", err)
	}

	locationName, content := discoveryOrPlaceholder(discovery, language)

	item, err := s.store.CreateHistory(ctx, models.InsertHistory{
		LocationName: locationName,
		Latitude:     &lat,
		Longitude:    &lng,
		Content:      content,
	})
	if err != nil {
		return nil, fmt.Errorf("persist discovery: %w", err)
	}

	logging.Ctx(ctx).Info().
		Str("location", locationName).
		Float64("lat", lat).
		Float64("lng", lng).
		Str("language", language).
		Int64("history_id", item.ID).
		Msg("Discovery resolved")

	return &models.ExploreResponse{
		LocationName: locationName,
		Content:      content,
		Cached:       false,
		HistoryID:    item.ID,
	}, nil
}

// discoveryOrPlaceholder returns the resolved article, or the localized
// "unexplored area" placeholder when the resolver found no coverage.
func discoveryOrPlaceholder(discovery *wikipedia.Discovery, language string) (locationName, content string) {
	if discovery != nil {
		return discovery.LocationName, discovery.Content
	}

	metrics.DiscoveryPlaceholders.Inc()
	if language == "es" {
		return "Área sin explorar",
			"No se encontraron artículos de Wikipedia cerca de esta ubicación. Intenta explorar un área con más lugares de interés histórico o cultural."
	}
	return "Unexplored Area",
		"No Wikipedia articles found near this location. Try exploring an area with more historical or cultural landmarks."
}
