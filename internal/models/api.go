// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package models

// ExploreRequest is the body for POST /api/explore. Language is optional
// and defaults to "en"; only the English edition is served from cache.
// Coordinates are pointers so an absent field fails required instead of
// decoding to a valid 0.
type ExploreRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Language  string   `json:"language" validate:"omitempty,oneof=en es"`
}

// ExploreResponse is returned by POST /api/explore. Every successful path
// carries the persisted history row id so clients can link back to it.
type ExploreResponse struct {
	LocationName string `json:"locationName"`
	Content      string `json:"content"`
	Cached       bool   `json:"cached"`
	HistoryID    int64  `json:"historyId"`
}

// Waypoint is a bare coordinate submitted for preloading.
type Waypoint struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// PreloadRequest is the body for POST /api/explore/preload. At most five
// waypoints are accepted per request.
type PreloadRequest struct {
	Waypoints []Waypoint `json:"waypoints" validate:"required,max=5,dive"`
	Language  string     `json:"language" validate:"omitempty,oneof=en es"`
}

// PreloadedDiscovery is one successfully resolved waypoint in the preload
// response. Callers re-key results by coordinate, so the array carries the
// input coordinates alongside the resolved content.
type PreloadedDiscovery struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName string  `json:"locationName"`
	Content      string  `json:"content"`
	Cached       bool    `json:"cached"`
	HistoryID    int64   `json:"historyId"`
}

// APIError is the error body for all failure responses. Field names the
// offending request field for validation errors.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error codes used across the API.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeRateLimit  = "RATE_LIMIT_EXCEEDED"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL_ERROR"
)
