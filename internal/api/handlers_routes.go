// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package api

import (
	"errors"
	"net/http"

	"github.com/mwhitcomb/loreatlas/internal/database"
	"github.com/mwhitcomb/loreatlas/internal/models"
)

// ListRoutes handles GET /api/routes: all saved routes, newest first.
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.db.GetRoutes(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeInternal,
			"Failed to load routes", "", err)
		return
	}
	respondJSON(w, http.StatusOK, routes)
}

// GetRoute handles GET /api/routes/{id}: one route with its waypoints
// in travel order.
func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidation, "Invalid ID", "id", nil)
		return
	}

	result, err := h.db.GetRouteWithWaypoints(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "Route not found", "", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeInternal,
			"Failed to load route", "", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// CreateRoute handles POST /api/routes: save a route with its
// waypoints. Waypoint order follows array position.
func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var input models.CreateRouteInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	route, err := h.db.CreateRoute(r.Context(), input)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeInternal,
			"Failed to create route", "", err)
		return
	}
	respondJSON(w, http.StatusCreated, route)
}

// DeleteRoute handles DELETE /api/routes/{id}: remove a route and its
// waypoints.
func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidation, "Invalid ID", "id", nil)
		return
	}

	err = h.db.DeleteRoute(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeInternal,
			"Failed to delete route", "", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
