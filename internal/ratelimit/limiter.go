// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

// Package ratelimit implements the per-client discovery quota.
//
// Discovery lookups that miss the proximity cache trigger upstream
// Wikipedia requests, so they are metered with a fixed window: each
// client gets a fresh allowance when its window starts and is denied
// once the allowance is spent, until the window expires.
//
// Complexity:
//   - Allow: O(1)
//   - Sweep: O(n) where n = number of tracked clients
//   - Memory: O(n)
package ratelimit

import (
	"sync"
	"time"

	"github.com/mwhitcomb/loreatlas/internal/metrics"
)

// window tracks one client's usage within the current fixed window.
type window struct {
	count   int
	startAt time.Time
}

// FixedWindowLimiter counts calls per key within fixed, non-sliding
// windows. A denied call does not consume quota, so a client that keeps
// retrying while throttled is admitted as soon as its window rolls over.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	size    time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewFixedWindowLimiter creates a limiter admitting up to limit calls
// per key within each window of the given size.
func NewFixedWindowLimiter(limit int, size time.Duration) *FixedWindowLimiter {
	if limit <= 0 {
		limit = 30
	}
	if size <= 0 {
		size = time.Hour
	}

	return &FixedWindowLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		size:    size,
		now:     time.Now,
	}
}

// Allow reports whether the call identified by key may proceed, and
// records it when admitted. The first call for a key, or the first call
// after its window expired, starts a new window with a count of one.
func (l *FixedWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.startAt) >= l.size {
		l.windows[key] = &window{count: 1, startAt: now}
		return true
	}

	if w.count >= l.limit {
		metrics.RateLimitDenials.Inc()
		return false
	}

	w.count++
	return true
}

// Remaining returns how many calls the key has left in its current
// window, or the full limit when no window is active.
func (l *FixedWindowLimiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.now().Sub(w.startAt) >= l.size {
		return l.limit
	}

	remaining := l.limit - w.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Sweep removes expired windows and returns how many were dropped.
// Intended to run periodically so idle clients do not accumulate.
func (l *FixedWindowLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, w := range l.windows {
		if now.Sub(w.startAt) >= l.size {
			delete(l.windows, key)
			removed++
		}
	}

	if removed > 0 {
		metrics.RateLimitSweepRemovals.Add(float64(removed))
	}
	return removed
}

// Len returns the number of tracked clients, expired or not.
func (l *FixedWindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
