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

// ListHistory handles GET /api/history: the 50 most recent
// discoveries, newest first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.db.GetHistory(r.Context(), 0)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeInternal,
			"Failed to load history", "", err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// CreateHistory handles POST /api/history: manually record a
// discovery.
func (h *Handler) CreateHistory(w http.ResponseWriter, r *http.Request) {
	var input models.InsertHistory
	if !decodeAndValidate(w, r, &input) {
		return
	}

	item, err := h.db.CreateHistory(r.Context(), input)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeInternal,
			"Failed to create history entry", "", err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// DeleteHistory handles DELETE /api/history/{id}.
func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidation, "Invalid ID", "id", nil)
		return
	}

	err = h.db.DeleteHistory(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		// Deleting an absent row is treated as success; the desired
		// state already holds.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeInternal,
			"Failed to delete history entry", "", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// updateAudioRequest is the body for PATCH /api/history/{id}/audio.
type updateAudioRequest struct {
	Audio string `json:"audio" validate:"required"`
}

// UpdateHistoryAudio handles PATCH /api/history/{id}/audio: attach a
// narration clip to an existing discovery.
func (h *Handler) UpdateHistoryAudio(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidation, "Invalid ID", "id", nil)
		return
	}

	var req updateAudioRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err = h.db.UpdateHistoryAudio(r.Context(), id, req.Audio)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "History entry not found", "", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeInternal,
			"Failed to update audio", "", err)
		return
	}

	item, err := h.db.GetHistoryItem(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeInternal,
			"Failed to load updated entry", "", err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}
