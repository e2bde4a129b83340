// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package api

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/mwhitcomb/loreatlas/internal/logging"
	"github.com/mwhitcomb/loreatlas/internal/models"
	"github.com/mwhitcomb/loreatlas/internal/validation"
)

// maxRequestBodyBytes bounds request bodies; audio payloads are data
// URIs and can run to a few megabytes.
const maxRequestBodyBytes = 8 << 20

// respondJSON writes a JSON response body.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes the standard error body. field names the
// offending request field for validation errors; err is logged, never
// sent to the client.
func respondError(w http.ResponseWriter, status int, code, message, field string, err error) {
	if err != nil {
		logging.Error().Str("code", code).Err(err).Msg("API error")
	}
	respondJSON(w, status, models.APIError{Code: code, Message: message, Field: field})
}

// decodeAndValidate parses the request body into dst and runs struct
// validation. On failure it writes the error response and returns
// false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer func() {
		_, _ = io.Copy(io.Discard, body)
	}()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidation, "Invalid JSON body", "", err)
		return false
	}

	if reqErr := validation.ValidateStruct(dst); reqErr != nil {
		first := reqErr.First()
		respondError(w, http.StatusBadRequest, models.CodeValidation, first.Message, first.Field, nil)
		return false
	}
	return true
}

// idParam parses the {id} path parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// clientIP returns the caller's IP without the port. RealIP middleware
// has already rewritten RemoteAddr from forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
