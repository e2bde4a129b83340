// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

// Package wikipedia talks to the Wikimedia APIs: the MediaWiki action
// API for geosearch and the REST v1 API for page summaries. Outbound
// calls are paced with a token-bucket limiter and protected by a
// circuit breaker to honor Wikimedia API etiquette.
package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/mwhitcomb/loreatlas/internal/config"
	"github.com/mwhitcomb/loreatlas/internal/logging"
	"github.com/mwhitcomb/loreatlas/internal/metrics"
)

// maxGeoSearchRadius is the largest radius the MediaWiki geosearch
// endpoint accepts, in meters.
const maxGeoSearchRadius = 10000

// maxResponseBytes bounds upstream response bodies.
const maxResponseBytes = 4 << 20

// errNotFound marks a 404 from the upstream API.
var errNotFound = errors.New("not found")

// GeoSearchResult is one article candidate returned by geosearch,
// ordered nearest first by the upstream API.
type GeoSearchResult struct {
	PageID int64   `json:"pageid"`
	Title  string  `json:"title"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Dist   float64 `json:"dist"`
}

// Summary is the REST v1 page summary for a single article.
type Summary struct {
	Title       string       `json:"title"`
	Extract     string       `json:"extract"`
	Description string       `json:"description"`
	Coordinates *Coordinates `json:"coordinates"`
}

// Coordinates is the article's own geographic position, when known.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Source is the upstream article lookup surface the resolver depends
// on. Client implements it directly; BreakerClient wraps it with
// failure isolation.
type Source interface {
	// GeoSearch returns articles near the coordinate, nearest first.
	GeoSearch(ctx context.Context, lat, lon float64, radiusMeters, limit int, language string) ([]GeoSearchResult, error)
	// GetSummary returns the page summary for an article title.
	GetSummary(ctx context.Context, title, language string) (*Summary, error)
}

// Client is the concrete Wikimedia API client.
type Client struct {
	httpClient *http.Client
	userAgent  string
	pacer      *rate.Limiter

	// Base URL formats take the language subdomain as their single
	// verb. Overridable in tests.
	actionBase string
	restBase   string
}

// NewClient creates a client from configuration. A zero
// RequestsPerSecond disables pacing.
func NewClient(cfg *config.WikipediaConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	pacer := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		pacer = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  cfg.UserAgent,
		pacer:      pacer,
		actionBase: "https://%s.wikipedia.org/w/api.php",
		restBase:   "https://%s.wikipedia.org/api/rest_v1",
	}
}

// geoSearchEnvelope mirrors the action API response shape.
type geoSearchEnvelope struct {
	Query struct {
		GeoSearch []GeoSearchResult `json:"geosearch"`
	} `json:"query"`
}

// GeoSearch queries the action API for articles within radiusMeters of
// the coordinate. The radius is clamped to the API's 10 km maximum.
func (c *Client) GeoSearch(ctx context.Context, lat, lon float64, radiusMeters, limit int, language string) ([]GeoSearchResult, error) {
	if radiusMeters > maxGeoSearchRadius {
		radiusMeters = maxGeoSearchRadius
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "geosearch")
	params.Set("gscoord", fmt.Sprintf("%v|%v", lat, lon))
	params.Set("gsradius", strconv.Itoa(radiusMeters))
	params.Set("gslimit", strconv.Itoa(limit))
	params.Set("format", "json")

	endpoint := fmt.Sprintf(c.actionBase, language) + "?" + params.Encode()

	start := time.Now()
	body, err := c.get(ctx, endpoint)
	if err != nil {
		metrics.RecordWikipediaRequest("geosearch", language, "error", time.Since(start))
		return nil, fmt.Errorf("geosearch: %w", err)
	}
	metrics.RecordWikipediaRequest("geosearch", language, "success", time.Since(start))

	var envelope geoSearchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("geosearch: decode response: %w", err)
	}
	return envelope.Query.GeoSearch, nil
}

// GetSummary fetches the REST v1 summary for a title. Spaces in the
// title become underscores before URL escaping, matching Wikipedia's
// canonical page paths. A title with no summary returns (nil, nil): a
// missing page is a normal outcome, not an upstream failure, and must
// not count against the circuit breaker.
func (c *Client) GetSummary(ctx context.Context, title, language string) (*Summary, error) {
	escaped := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	endpoint := fmt.Sprintf(c.restBase, language) + "/page/summary/" + escaped

	start := time.Now()
	body, err := c.get(ctx, endpoint)
	if errors.Is(err, errNotFound) {
		metrics.RecordWikipediaRequest("summary", language, "missing", time.Since(start))
		return nil, nil
	}
	if err != nil {
		metrics.RecordWikipediaRequest("summary", language, "error", time.Since(start))
		return nil, fmt.Errorf("summary %q: %w", title, err)
	}
	metrics.RecordWikipediaRequest("summary", language, "success", time.Since(start))

	var summary Summary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("summary %q: decode response: %w", title, err)
	}
	return &summary, nil
}

// get performs a paced GET and returns the response body, treating any
// non-200 status as an error.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		if resp.StatusCode == http.StatusNotFound {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
