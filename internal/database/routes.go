// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mwhitcomb/loreatlas/internal/logging"
	"github.com/mwhitcomb/loreatlas/internal/models"
)

// GetRoutes returns all saved routes, newest first.
func (db *DB) GetRoutes(ctx context.Context) ([]models.Route, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, start_lat, start_lng, end_lat, end_lng, transport_mode, created_at
		FROM routes
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	routes := make([]models.Route, 0)
	for rows.Next() {
		var route models.Route
		if err := rows.Scan(&route.ID, &route.Name, &route.StartLat, &route.StartLng,
			&route.EndLat, &route.EndLng, &route.TransportMode, &route.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan route row: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("routes iteration failed: %w", err)
	}
	return routes, nil
}

// GetRouteWithWaypoints returns one route and its waypoints in travel
// order. Returns ErrNotFound when the route does not exist.
func (db *DB) GetRouteWithWaypoints(ctx context.Context, id int64) (*models.RouteWithWaypoints, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var route models.Route
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, name, start_lat, start_lng, end_lat, end_lng, transport_mode, created_at
		FROM routes WHERE id = ?`, id,
	).Scan(&route.ID, &route.Name, &route.StartLat, &route.StartLng,
		&route.EndLat, &route.EndLng, &route.TransportMode, &route.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query route %d: %w", id, err)
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, route_id, location_name, latitude, longitude, content, audio, order_index
		FROM route_waypoints
		WHERE route_id = ?
		ORDER BY order_index`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query waypoints for route %d: %w", id, err)
	}
	defer rows.Close()

	waypoints := make([]models.RouteWaypoint, 0)
	for rows.Next() {
		var wp models.RouteWaypoint
		if err := rows.Scan(&wp.ID, &wp.RouteID, &wp.LocationName, &wp.Latitude,
			&wp.Longitude, &wp.Content, &wp.Audio, &wp.OrderIndex); err != nil {
			return nil, fmt.Errorf("failed to scan waypoint row: %w", err)
		}
		waypoints = append(waypoints, wp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("waypoints iteration failed: %w", err)
	}

	return &models.RouteWithWaypoints{Route: route, Waypoints: waypoints}, nil
}

// CreateRoute persists a route and its waypoints in a single
// transaction. Waypoint order indexes are assigned from array position.
func (db *DB) CreateRoute(ctx context.Context, input models.CreateRouteInput) (*models.Route, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	var route models.Route
	err = tx.QueryRowContext(ctx, `
		INSERT INTO routes (name, start_lat, start_lng, end_lat, end_lng, transport_mode)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, name, start_lat, start_lng, end_lat, end_lng, transport_mode, created_at`,
		input.Name, *input.StartLat, *input.StartLng, *input.EndLat, *input.EndLng, input.TransportMode,
	).Scan(&route.ID, &route.Name, &route.StartLat, &route.StartLng,
		&route.EndLat, &route.EndLng, &route.TransportMode, &route.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert route: %w", err)
	}

	for i, wp := range input.Waypoints {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO route_waypoints (route_id, location_name, latitude, longitude, content, audio, order_index)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			route.ID, wp.LocationName, *wp.Latitude, *wp.Longitude, wp.Content, wp.Audio, i)
		if err != nil {
			return nil, fmt.Errorf("failed to insert waypoint %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit route: %w", err)
	}
	return &route, nil
}

// DeleteRoute removes a route and its waypoints atomically. The
// waypoint delete is explicit because the schema carries no cascading
// foreign key. Returns ErrNotFound when the route does not exist.
func (db *DB) DeleteRoute(ctx context.Context, id int64) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM route_waypoints WHERE route_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete waypoints for route %d: %w", id, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete route %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit route delete: %w", err)
	}
	return nil
}

// rollbackQuietly rolls back a transaction, tolerating the no-op error
// after a successful commit.
func rollbackQuietly(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logging.Warn().Err(err).Msg("Transaction rollback failed")
	}
}
