// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package geo

// Point is a coordinate in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Interpolate returns count intermediate points spaced linearly between
// start and end at ratios i/(count+1) for i in 1..count. Endpoints are not
// included. A count of zero or less yields an empty slice.
func Interpolate(start, end Point, count int) []Point {
	if count <= 0 {
		return nil
	}

	points := make([]Point, 0, count)
	for i := 1; i <= count; i++ {
		ratio := float64(i) / float64(count+1)
		points = append(points, Point{
			Latitude:  start.Latitude + (end.Latitude-start.Latitude)*ratio,
			Longitude: start.Longitude + (end.Longitude-start.Longitude)*ratio,
		})
	}
	return points
}
