// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package services

import (
	"context"
	"time"

	"github.com/mwhitcomb/loreatlas/internal/logging"
)

// JanitorService runs a sweep function on a fixed interval. Sweep
// errors are logged and the ticker keeps running; a transient database
// failure must not crash the jobs layer. Both the rate-limit window
// sweep and the history retention sweep run under this wrapper.
type JanitorService struct {
	name     string
	interval time.Duration
	sweep    func(ctx context.Context) error
}

// NewJanitorService creates a periodic sweep service.
func NewJanitorService(name string, interval time.Duration, sweep func(ctx context.Context) error) *JanitorService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &JanitorService{name: name, interval: interval, sweep: sweep}
}

// Serve implements suture.Service. The first sweep runs after one full
// interval, not at startup.
func (j *JanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := j.sweep(ctx); err != nil {
				logging.Error().Err(err).Str("janitor", j.name).Msg("Sweep failed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (j *JanitorService) String() string {
	return j.name
}
