// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package wikipedia

import (
	"context"
	"strings"

	"github.com/mwhitcomb/loreatlas/internal/logging"
)

const (
	// initialRadiusMeters is the first geosearch radius tried.
	initialRadiusMeters = 1000
	// expandedRadiusMeters is the fallback radius when the initial
	// search finds nothing.
	expandedRadiusMeters = 5000
	// candidateLimit is how many article candidates to request per
	// search; alternates cover articles with empty extracts.
	candidateLimit = 3
)

// Discovery is a resolved article for a coordinate: the nearest
// Wikipedia article with usable summary content.
type Discovery struct {
	LocationName   string
	Content        string
	Latitude       float64
	Longitude      float64
	DistanceMeters float64
}

// Resolver turns a coordinate into article content with a two-stage
// radius search and per-candidate content fallback.
type Resolver struct {
	source Source
}

// NewResolver creates a resolver over the given article source.
func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

// Resolve finds the nearest article with content for the coordinate.
// It searches within 1 km first, widening to 5 km when nothing is
// found. Returns (nil, nil) when the area has no usable coverage;
// upstream failures are logged and degrade to that same empty result
// so a Wikimedia outage never fails a discovery request outright.
// The only returned error is context cancellation.
func (r *Resolver) Resolve(ctx context.Context, lat, lon float64, language string) (*Discovery, error) {
	candidates := r.search(ctx, lat, lon, initialRadiusMeters, language)
	if len(candidates) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates = r.search(ctx, lat, lon, expandedRadiusMeters, language)
	}
	if len(candidates) == 0 {
		return nil, ctx.Err()
	}

	best := candidates[0]
	summary := r.summary(ctx, best.Title, language)

	if summary == nil || summary.Extract == "" {
		// The nearest article has nothing to show; try the alternates
		// in distance order.
		for _, alt := range candidates[1:] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			altSummary := r.summary(ctx, alt.Title, language)
			if altSummary != nil && altSummary.Extract != "" {
				return &Discovery{
					LocationName:   altSummary.Title,
					Content:        formatContent(altSummary),
					Latitude:       alt.Lat,
					Longitude:      alt.Lon,
					DistanceMeters: alt.Dist,
				}, nil
			}
		}
		return nil, ctx.Err()
	}

	return &Discovery{
		LocationName:   summary.Title,
		Content:        formatContent(summary),
		Latitude:       best.Lat,
		Longitude:      best.Lon,
		DistanceMeters: best.Dist,
	}, nil
}

// search runs a geosearch, degrading errors to an empty candidate set.
func (r *Resolver) search(ctx context.Context, lat, lon float64, radiusMeters int, language string) []GeoSearchResult {
	results, err := r.source.GeoSearch(ctx, lat, lon, radiusMeters, candidateLimit, language)
	if err != nil {
		logging.Warn().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Int("radius_m", radiusMeters).
			Msg("Geosearch failed, treating as no coverage")
		return nil
	}
	return results
}

// summary fetches one article summary, degrading errors to nil.
func (r *Resolver) summary(ctx context.Context, title, language string) *Summary {
	summary, err := r.source.GetSummary(ctx, title, language)
	if err != nil {
		logging.Warn().Err(err).Str("title", title).Msg("Summary fetch failed, trying alternates")
		return nil
	}
	return summary
}

// formatContent prepends the short description to the extract unless
// the extract already mentions it, matching how article pages lead
// with their description line.
func formatContent(summary *Summary) string {
	content := summary.Extract
	if summary.Description != "" && !strings.Contains(strings.ToLower(content), strings.ToLower(summary.Description)) {
		content = summary.Description + "\n\n" + content
	}
	return content
}
