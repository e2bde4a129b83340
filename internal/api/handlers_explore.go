// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package api

import (
	"errors"
	"net/http"

	"github.com/mwhitcomb/loreatlas/internal/explore"
	"github.com/mwhitcomb/loreatlas/internal/models"
)

// Explore handles POST /api/explore: resolve historical content for a
// single coordinate.
func (h *Handler) Explore(w http.ResponseWriter, r *http.Request) {
	var req models.ExploreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.explore.Explore(r.Context(), clientIP(r), req)
	if errors.Is(err, explore.ErrRateLimited) {
		respondError(w, http.StatusTooManyRequests, models.CodeRateLimit,
			"Rate limit exceeded. Please try again later.", "", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeInternal,
			"Failed to generate exploration content", "", err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Preload handles POST /api/explore/preload: resolve up to five route
// waypoints concurrently. Waypoints that are rate limited or uncovered
// are dropped from the response, never an error for the batch.
func (h *Handler) Preload(w http.ResponseWriter, r *http.Request) {
	var req models.PreloadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	discoveries, err := h.explore.Preload(r.Context(), clientIP(r), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeInternal,
			"Failed to preload discoveries", "", err)
		return
	}

	respondJSON(w, http.StatusOK, discoveries)
}
