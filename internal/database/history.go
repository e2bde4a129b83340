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
	"time"

	"github.com/mwhitcomb/loreatlas/internal/geo"
	"github.com/mwhitcomb/loreatlas/internal/models"
)

// defaultHistoryLimit caps GetHistory when the caller passes no limit.
const defaultHistoryLimit = 50

// GetHistory returns the most recent discoveries, newest first. A
// limit <= 0 falls back to the default of 50.
func (db *DB) GetHistory(ctx context.Context, limit int) ([]models.HistoryItem, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, location_name, latitude, longitude, content, audio, created_at
		FROM history
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	items := make([]models.HistoryItem, 0, limit)
	for rows.Next() {
		var item models.HistoryItem
		if err := rows.Scan(&item.ID, &item.LocationName, &item.Latitude, &item.Longitude,
			&item.Content, &item.Audio, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history iteration failed: %w", err)
	}
	return items, nil
}

// CreateHistory persists a discovery and returns the stored row with
// its assigned ID and timestamp.
func (db *DB) CreateHistory(ctx context.Context, input models.InsertHistory) (*models.HistoryItem, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var item models.HistoryItem
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO history (location_name, latitude, longitude, content, audio)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, location_name, latitude, longitude, content, audio, created_at`,
		input.LocationName, *input.Latitude, *input.Longitude, input.Content, input.Audio,
	).Scan(&item.ID, &item.LocationName, &item.Latitude, &item.Longitude,
		&item.Content, &item.Audio, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert history: %w", err)
	}
	return &item, nil
}

// DeleteHistory removes one discovery. Returns ErrNotFound when the ID
// does not exist.
func (db *DB) DeleteHistory(ctx context.Context, id int64) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	result, err := db.conn.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete history %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateHistoryAudio attaches a narration audio reference to a
// discovery. Returns ErrNotFound when the ID does not exist.
func (db *DB) UpdateHistoryAudio(ctx context.Context, id int64, audio string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	result, err := db.conn.ExecContext(ctx, `UPDATE history SET audio = ? WHERE id = ?`, audio, id)
	if err != nil {
		return fmt.Errorf("failed to update history %d audio: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetHistoryItem returns one discovery by ID, or ErrNotFound.
func (db *DB) GetHistoryItem(ctx context.Context, id int64) (*models.HistoryItem, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var item models.HistoryItem
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, location_name, latitude, longitude, content, audio, created_at
		FROM history WHERE id = ?`, id,
	).Scan(&item.ID, &item.LocationName, &item.Latitude, &item.Longitude,
		&item.Content, &item.Audio, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query history %d: %w", id, err)
	}
	return &item, nil
}

// FindNearbyHistory returns the first stored discovery within
// radiusMeters of the coordinate, or nil when none qualifies. The scan
// is linear over all rows: precise distance needs the haversine
// formula, and the table is bounded by the retention sweep.
func (db *DB) FindNearbyHistory(ctx context.Context, lat, lng, radiusMeters float64) (*models.HistoryItem, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, location_name, latitude, longitude, content, audio, created_at
		FROM history`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for proximity: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.HistoryItem
		if err := rows.Scan(&item.ID, &item.LocationName, &item.Latitude, &item.Longitude,
			&item.Content, &item.Audio, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if geo.DistanceMeters(lat, lng, item.Latitude, item.Longitude) <= radiusMeters {
			return &item, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("proximity scan failed: %w", err)
	}
	return nil, nil
}

// CleanupOldHistory deletes discoveries older than maxAge and returns
// how many were removed.
func (db *DB) CleanupOldHistory(ctx context.Context, maxAge time.Duration) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	cutoff := time.Now().Add(-maxAge)
	result, err := db.conn.ExecContext(ctx, `DELETE FROM history WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up old history: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return removed, nil
}
