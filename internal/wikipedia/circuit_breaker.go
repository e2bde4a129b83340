// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package wikipedia

import (
	"context"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/mwhitcomb/loreatlas/internal/logging"
	"github.com/mwhitcomb/loreatlas/internal/metrics"
)

// BreakerClient wraps a Source with a circuit breaker so a Wikimedia
// outage degrades discoveries quickly instead of tying up request
// handlers in timeouts.
//
// Configuration:
//   - Max 3 concurrent probes in half-open state
//   - 1 minute measurement window while closed
//   - 2 minute timeout before attempting recovery
//   - Opens at a 60% failure rate with at least 10 requests observed
type BreakerClient struct {
	source Source
	cb     *gobreaker.CircuitBreaker[any]
}

// NewBreakerClient wraps source with circuit breaker protection.
func NewBreakerClient(source Source) *BreakerClient {
	metrics.CircuitBreakerState.Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "wikipedia-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening wikipedia circuit")
				return true
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.Set(stateToFloat(to))
		},
	})

	return &BreakerClient{source: source, cb: cb}
}

// GeoSearch delegates to the wrapped source under breaker protection.
func (b *BreakerClient) GeoSearch(ctx context.Context, lat, lon float64, radiusMeters, limit int, language string) ([]GeoSearchResult, error) {
	return execute[[]GeoSearchResult](b, func() (any, error) {
		return b.source.GeoSearch(ctx, lat, lon, radiusMeters, limit, language)
	})
}

// GetSummary delegates to the wrapped source under breaker protection.
func (b *BreakerClient) GetSummary(ctx context.Context, title, language string) (*Summary, error) {
	return execute[*Summary](b, func() (any, error) {
		return b.source.GetSummary(ctx, title, language)
	})
}

// execute runs fn through the breaker and type-asserts the result.
func execute[T any](b *BreakerClient, fn func() (any, error)) (T, error) {
	var zero T

	result, err := b.cb.Execute(fn)
	if err != nil {
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
