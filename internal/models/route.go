// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package models

import "time"

// Route is a saved journey between two coordinates. A route strictly owns
// its waypoints: deleting the route removes them.
type Route struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	StartLat      float64   `json:"startLat"`
	StartLng      float64   `json:"startLng"`
	EndLat        float64   `json:"endLat"`
	EndLng        float64   `json:"endLng"`
	TransportMode string    `json:"transportMode"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RouteWaypoint is a discovered stop along a route. OrderIndex is assigned
// at creation from array position and defines travel order; waypoints are
// always read back ordered by it.
type RouteWaypoint struct {
	ID           int64   `json:"id"`
	RouteID      int64   `json:"routeId"`
	LocationName string  `json:"locationName"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Content      string  `json:"content"`
	Audio        *string `json:"audio"`
	OrderIndex   int     `json:"orderIndex"`
}

// RouteWithWaypoints pairs a route with its ordered waypoints for the
// GET /api/routes/{id} response.
type RouteWithWaypoints struct {
	Route     Route           `json:"route"`
	Waypoints []RouteWaypoint `json:"waypoints"`
}

// InsertWaypoint is a waypoint as submitted by the client when saving a
// route. Order is implied by array position.
type InsertWaypoint struct {
	LocationName string   `json:"locationName" validate:"required"`
	Latitude     *float64 `json:"latitude" validate:"required,latitude"`
	Longitude    *float64 `json:"longitude" validate:"required,longitude"`
	Content      string   `json:"content" validate:"required"`
	Audio        *string  `json:"audio"`
}

// CreateRouteInput is the request body for POST /api/routes.
// TransportMode is stored as free text.
type CreateRouteInput struct {
	Name          string           `json:"name" validate:"required"`
	StartLat      *float64         `json:"startLat" validate:"required,latitude"`
	StartLng      *float64         `json:"startLng" validate:"required,longitude"`
	EndLat        *float64         `json:"endLat" validate:"required,latitude"`
	EndLng        *float64         `json:"endLng" validate:"required,longitude"`
	TransportMode string           `json:"transportMode" validate:"required"`
	Waypoints     []InsertWaypoint `json:"waypoints" validate:"dive"`
}
