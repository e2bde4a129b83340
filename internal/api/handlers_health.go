// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package api

import (
	"net/http"
)

// Health handles GET /health. It returns a static liveness response;
// readiness (database reachability) is reported separately so
// orchestrators can distinguish a hung process from a degraded one.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthReady handles GET /health/ready: liveness plus a database
// ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"reason": "database unreachable",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
