// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mwhitcomb/loreatlas/internal/config"
	"github.com/mwhitcomb/loreatlas/internal/models"
)

// newTestDB opens an in-memory database for the test and closes it on
// cleanup.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(&config.DatabaseConfig{Path: "", MaxMemory: "256MB", Threads: 2})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return db
}

func strPtr(s string) *string { return &s }

func f64(v float64) *float64 { return &v }

func TestHistoryCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.CreateHistory(ctx, models.InsertHistory{
		LocationName: "Old Lighthouse",
		Latitude:     f64(43.071),
		Longitude:    f64(-70.711),
		Content:      "A lighthouse built in 1771.",
	})
	if err != nil {
		t.Fatalf("CreateHistory: %v", err)
	}
	if created.ID == 0 {
		t.Error("created item should have an assigned ID")
	}
	if created.CreatedAt.IsZero() {
		t.Error("created item should have a timestamp")
	}
	if created.Audio != nil {
		t.Errorf("audio = %v, want nil", *created.Audio)
	}

	items, err := db.GetHistory(ctx, 0)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(items) != 1 || items[0].LocationName != "Old Lighthouse" {
		t.Fatalf("items = %+v", items)
	}

	if err := db.UpdateHistoryAudio(ctx, created.ID, "data:audio/mp3;base64,AAAA"); err != nil {
		t.Fatalf("UpdateHistoryAudio: %v", err)
	}
	got, err := db.GetHistoryItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetHistoryItem: %v", err)
	}
	if got.Audio == nil || *got.Audio != "data:audio/mp3;base64,AAAA" {
		t.Errorf("audio not persisted: %v", got.Audio)
	}

	if err := db.DeleteHistory(ctx, created.ID); err != nil {
		t.Fatalf("DeleteHistory: %v", err)
	}
	if err := db.DeleteHistory(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestGetHistory_NewestFirstAndLimited(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	names := []string{"First", "Second", "Third"}
	for _, name := range names {
		if _, err := db.CreateHistory(ctx, models.InsertHistory{
			LocationName: name, Latitude: f64(1), Longitude: f64(1), Content: "c",
		}); err != nil {
			t.Fatalf("CreateHistory(%s): %v", name, err)
		}
	}

	items, err := db.GetHistory(ctx, 2)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].LocationName != "Third" || items[1].LocationName != "Second" {
		t.Errorf("order = [%s, %s], want newest first", items[0].LocationName, items[1].LocationName)
	}
}

func TestFindNearbyHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	stored, err := db.CreateHistory(ctx, models.InsertHistory{
		LocationName: "Town Hall",
		Latitude:     f64(40.7128),
		Longitude:    f64(-74.0060),
		Content:      "Seat of local government.",
	})
	if err != nil {
		t.Fatalf("CreateHistory: %v", err)
	}

	// ~50 m north of the stored point.
	hit, err := db.FindNearbyHistory(ctx, 40.71325, -74.0060, 100)
	if err != nil {
		t.Fatalf("FindNearbyHistory: %v", err)
	}
	if hit == nil || hit.ID != stored.ID {
		t.Errorf("hit = %+v, want stored item", hit)
	}

	// ~550 m north is outside the 100 m radius.
	miss, err := db.FindNearbyHistory(ctx, 40.7178, -74.0060, 100)
	if err != nil {
		t.Fatalf("FindNearbyHistory: %v", err)
	}
	if miss != nil {
		t.Errorf("miss = %+v, want nil outside radius", miss)
	}
}

func TestCleanupOldHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.CreateHistory(ctx, models.InsertHistory{
		LocationName: "Recent", Latitude: f64(1), Longitude: f64(1), Content: "c",
	}); err != nil {
		t.Fatalf("CreateHistory: %v", err)
	}
	// Backdate one row past the cutoff.
	if _, err := db.Conn().ExecContext(ctx, `
		INSERT INTO history (location_name, latitude, longitude, content, created_at)
		VALUES ('Ancient', 2, 2, 'c', ?)`, time.Now().Add(-91*24*time.Hour)); err != nil {
		t.Fatalf("backdated insert: %v", err)
	}

	removed, err := db.CleanupOldHistory(ctx, 90*24*time.Hour)
	if err != nil {
		t.Fatalf("CleanupOldHistory: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	items, err := db.GetHistory(ctx, 0)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(items) != 1 || items[0].LocationName != "Recent" {
		t.Errorf("surviving items = %+v", items)
	}
}

func TestRouteCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	route, err := db.CreateRoute(ctx, models.CreateRouteInput{
		Name:          "Harbor Walk",
		StartLat:      f64(43.07),
		StartLng:      f64(-70.71),
		EndLat:        f64(43.08),
		EndLng:        f64(-70.72),
		TransportMode: "walk",
		Waypoints: []models.InsertWaypoint{
			{LocationName: "Harbor Fort", Latitude: f64(43.072), Longitude: f64(-70.712), Content: "A fort."},
			{LocationName: "Old Pier", Latitude: f64(43.075), Longitude: f64(-70.715), Content: "A pier.", Audio: strPtr("clip")},
		},
	})
	if err != nil {
		t.Fatalf("CreateRoute: %v", err)
	}
	if route.ID == 0 || route.TransportMode != "walk" {
		t.Errorf("route = %+v", route)
	}

	full, err := db.GetRouteWithWaypoints(ctx, route.ID)
	if err != nil {
		t.Fatalf("GetRouteWithWaypoints: %v", err)
	}
	if full.Route.Name != "Harbor Walk" {
		t.Errorf("route name = %q", full.Route.Name)
	}
	if len(full.Waypoints) != 2 {
		t.Fatalf("got %d waypoints, want 2", len(full.Waypoints))
	}
	if full.Waypoints[0].OrderIndex != 0 || full.Waypoints[1].OrderIndex != 1 {
		t.Errorf("order indexes = %d, %d", full.Waypoints[0].OrderIndex, full.Waypoints[1].OrderIndex)
	}
	if full.Waypoints[0].LocationName != "Harbor Fort" {
		t.Errorf("waypoints out of order: %+v", full.Waypoints)
	}
	if full.Waypoints[1].Audio == nil || *full.Waypoints[1].Audio != "clip" {
		t.Errorf("waypoint audio = %v", full.Waypoints[1].Audio)
	}

	routes, err := db.GetRoutes(ctx)
	if err != nil {
		t.Fatalf("GetRoutes: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(routes))
	}
}

func TestDeleteRoute_CascadesWaypoints(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	route, err := db.CreateRoute(ctx, models.CreateRouteInput{
		Name: "Loop", StartLat: f64(1), StartLng: f64(1), EndLat: f64(2), EndLng: f64(2), TransportMode: "bike",
		Waypoints: []models.InsertWaypoint{
			{LocationName: "Stop", Latitude: f64(1.5), Longitude: f64(1.5), Content: "c"},
		},
	})
	if err != nil {
		t.Fatalf("CreateRoute: %v", err)
	}

	if err := db.DeleteRoute(ctx, route.ID); err != nil {
		t.Fatalf("DeleteRoute: %v", err)
	}

	if _, err := db.GetRouteWithWaypoints(ctx, route.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("lookup after delete err = %v, want ErrNotFound", err)
	}

	var orphans int
	if err := db.Conn().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM route_waypoints WHERE route_id = ?`, route.ID).Scan(&orphans); err != nil {
		t.Fatalf("orphan count: %v", err)
	}
	if orphans != 0 {
		t.Errorf("orphaned waypoints = %d, want 0", orphans)
	}
}

func TestDeleteRoute_NotFound(t *testing.T) {
	db := newTestDB(t)

	if err := db.DeleteRoute(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
