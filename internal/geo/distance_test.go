// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package geo

import (
	"math"
	"testing"
)

func TestDistanceMeters_Zero(t *testing.T) {
	if d := DistanceMeters(51.5074, -0.1278, 51.5074, -0.1278); d != 0 {
		t.Errorf("distance from a point to itself = %f, want 0", d)
	}
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"london-paris", 51.5074, -0.1278, 48.8566, 2.3522},
		{"across dateline", 64.8, 179.9, 64.8, -179.9},
		{"poles", 90, 0, -90, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := DistanceMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			ba := DistanceMeters(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			if math.Abs(ab-ba) > 1e-6 {
				t.Errorf("asymmetric distance: %f vs %f", ab, ba)
			}
		})
	}
}

func TestDistanceMeters_KnownSeparations(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantMeters             float64
		tolerance              float64
	}{
		// One degree of longitude on the equator.
		{"equator degree", 0, 0, 0, 1, 111195, 100},
		// One degree of latitude.
		{"meridian degree", 0, 0, 1, 0, 111195, 100},
		{"london-paris", 51.5074, -0.1278, 48.8566, 2.3522, 343500, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantMeters) > tt.tolerance {
				t.Errorf("DistanceMeters = %.0f m, want ~%.0f m", got, tt.wantMeters)
			}
		})
	}
}

func TestInterpolate(t *testing.T) {
	start := Point{Latitude: 0, Longitude: 0}
	end := Point{Latitude: 4, Longitude: 8}

	points := Interpolate(start, end, 3)
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}

	want := []Point{
		{Latitude: 1, Longitude: 2},
		{Latitude: 2, Longitude: 4},
		{Latitude: 3, Longitude: 6},
	}
	for i, p := range points {
		if math.Abs(p.Latitude-want[i].Latitude) > 1e-9 || math.Abs(p.Longitude-want[i].Longitude) > 1e-9 {
			t.Errorf("point %d = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestInterpolate_ZeroCount(t *testing.T) {
	if points := Interpolate(Point{}, Point{Latitude: 1}, 0); len(points) != 0 {
		t.Errorf("expected no points for count 0, got %d", len(points))
	}
}
