// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package explore

import (
	"context"
	"sync"

	"github.com/mwhitcomb/loreatlas/internal/logging"
	"github.com/mwhitcomb/loreatlas/internal/metrics"
	"github.com/mwhitcomb/loreatlas/internal/models"
)

// waypointStatus classifies the outcome of one preload task.
type waypointStatus int

const (
	waypointResolved waypointStatus = iota
	waypointCacheHit
	waypointRateLimited
	waypointNoCoverage
	waypointFailed
)

// waypointOutcome is the per-task result of a preload fan-out. Keeping
// the status explicit (instead of nil-filtering) makes the lossy batch
// observable in logs.
type waypointOutcome struct {
	status    waypointStatus
	discovery *models.PreloadedDiscovery
	err       error
}

// Preload resolves up to five waypoints concurrently. Each waypoint
// runs the explore pipeline independently; a rate-limit denial, an
// uncovered area, or a failure drops that single waypoint from the
// output rather than failing the batch. Output order follows input
// order for the waypoints that survive.
func (s *Service) Preload(ctx context.Context, clientKey string, req models.PreloadRequest) ([]models.PreloadedDiscovery, error) {
	language := req.Language
	if language == "" {
		language = DefaultLanguage
	}

	outcomes := make([]waypointOutcome, len(req.Waypoints))

	var wg sync.WaitGroup
	for i, wp := range req.Waypoints {
		wg.Add(1)
		go func(i int, wp models.Waypoint) {
			defer wg.Done()
			outcomes[i] = s.preloadOne(ctx, clientKey, wp, language)
		}(i, wp)
	}
	wg.Wait()

	discoveries := make([]models.PreloadedDiscovery, 0, len(outcomes))
	dropped := 0
	for i, outcome := range outcomes {
		switch outcome.status {
		case waypointResolved, waypointCacheHit:
			discoveries = append(discoveries, *outcome.discovery)
		case waypointFailed:
			dropped++
			logging.Ctx(ctx).Warn().Err(outcome.err).
				Float64("lat", *req.Waypoints[i].Latitude).
				Float64("lng", *req.Waypoints[i].Longitude).
				Msg("Preload waypoint failed")
		default:
			dropped++
		}
	}

	if dropped > 0 {
		logging.Ctx(ctx).Debug().
			Int("resolved", len(discoveries)).
			Int("dropped", dropped).
			Msg("Preload batch completed lossy")
	}
	return discoveries, nil
}

// preloadOne runs the explore pipeline for a single waypoint.
func (s *Service) preloadOne(ctx context.Context, clientKey string, wp models.Waypoint, language string) waypointOutcome {
	lat, lng := *wp.Latitude, *wp.Longitude
	if language == DefaultLanguage {
		cached, err := s.store.FindNearbyHistory(ctx, lat, lng, ProximityRadiusMeters)
		if err != nil {
			return waypointOutcome{status: waypointFailed, err: err}
		}
		if cached != nil {
			metrics.DiscoveryCacheHits.Inc()
			return waypointOutcome{status: waypointCacheHit, discovery: &models.PreloadedDiscovery{
				Latitude:     lat,
				Longitude:    lng,
				LocationName: cached.LocationName,
				Content:      cached.Content,
				Cached:       true,
				HistoryID:    cached.ID,
			}}
		}
	}
	metrics.DiscoveryCacheMisses.Inc()

	if !s.limiter.Allow(clientKey) {
		return waypointOutcome{status: waypointRateLimited}
	}

	discovery, err := s.resolver.Resolve(ctx, lat, lng, language)
	if err != nil {
		return waypointOutcome{status: waypointFailed, err: err}
	}
	if discovery == nil {
		return waypointOutcome{status: waypointNoCoverage}
	}

	item, err := s.store.CreateHistory(ctx, models.InsertHistory{
		LocationName: discovery.LocationName,
		Latitude:     &lat,
		Longitude:    &lng,
		Content:      discovery.Content,
	})
	if err != nil {
		return waypointOutcome{status: waypointFailed, err: err}
	}

	return waypointOutcome{status: waypointResolved, discovery: &models.PreloadedDiscovery{
		Latitude:     lat,
		Longitude:    lng,
		LocationName: discovery.LocationName,
		Content:      discovery.Content,
		Cached:       false,
		HistoryID:    item.ID,
	}}
}
