// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaStatements define the tables in dependency order. DuckDB has no
// SERIAL type, so each table draws its primary key from a sequence.
// route_waypoints carries no foreign key constraint; the route delete
// path removes waypoints explicitly inside a transaction.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS history_id_seq`,
	`CREATE TABLE IF NOT EXISTS history (
		id BIGINT PRIMARY KEY DEFAULT nextval('history_id_seq'),
		location_name VARCHAR NOT NULL,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		content VARCHAR NOT NULL,
		audio VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,

	`CREATE SEQUENCE IF NOT EXISTS routes_id_seq`,
	`CREATE TABLE IF NOT EXISTS routes (
		id BIGINT PRIMARY KEY DEFAULT nextval('routes_id_seq'),
		name VARCHAR NOT NULL,
		start_lat DOUBLE NOT NULL,
		start_lng DOUBLE NOT NULL,
		end_lat DOUBLE NOT NULL,
		end_lng DOUBLE NOT NULL,
		transport_mode VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,

	`CREATE SEQUENCE IF NOT EXISTS route_waypoints_id_seq`,
	`CREATE TABLE IF NOT EXISTS route_waypoints (
		id BIGINT PRIMARY KEY DEFAULT nextval('route_waypoints_id_seq'),
		route_id BIGINT NOT NULL,
		location_name VARCHAR NOT NULL,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		content VARCHAR NOT NULL,
		audio VARCHAR,
		order_index INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_history_created_at ON history (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_route_waypoints_route_id ON route_waypoints (route_id)`,
}

// createSchema creates sequences, tables, and indexes.
func (db *DB) createSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
