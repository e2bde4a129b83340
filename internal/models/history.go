// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

// Package models defines the persisted entities and API request/response
// shapes shared across the LoreAtlas server.
package models

import "time"

// HistoryItem is a persisted discovery: a coordinate paired with the
// encyclopedia content that was resolved for it. History rows are flat,
// independent records with no owner.
type HistoryItem struct {
	ID           int64     `json:"id"`
	LocationName string    `json:"locationName"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Content      string    `json:"content"`
	Audio        *string   `json:"audio"`
	CreatedAt    time.Time `json:"createdAt"`
}

// InsertHistory is the insertable subset of HistoryItem. ID and CreatedAt
// are assigned by the store. Coordinates are pointers so an absent field
// fails required instead of decoding to a valid 0.
type InsertHistory struct {
	LocationName string   `json:"locationName" validate:"required"`
	Latitude     *float64 `json:"latitude" validate:"required,latitude"`
	Longitude    *float64 `json:"longitude" validate:"required,longitude"`
	Content      string   `json:"content" validate:"required"`
	Audio        *string  `json:"audio"`
}
