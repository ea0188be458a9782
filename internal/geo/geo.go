// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

// Package geo provides great-circle distance math over plain
// (latitude, longitude) pairs.
//
// The package deliberately avoids any spatial-index or database extension
// coupling: radius checks are pure functions over two points and a threshold,
// usable both in-memory and as the reference semantics for SQL pushdown in
// the database layer.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the great-circle distance between a and b in kilometers,
// computed with the Haversine formula.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// WithinRadius reports whether point lies within radiusKm of ref.
//
// A nil point or nil reference means location data is absent, and absence
// never excludes a record: the check is unconditionally true.
func WithinRadius(point, ref *Point, radiusKm float64) bool {
	if point == nil || ref == nil {
		return true
	}
	return Distance(*point, *ref) <= radiusKm
}

// DistanceOrZero returns the distance between point and ref in kilometers,
// or 0 when either is absent. Callers that need "unknown" semantics must
// check for nil themselves; discovery defines missing data as distance 0.
func DistanceOrZero(point, ref *Point) float64 {
	if point == nil || ref == nil {
		return 0
	}
	return Distance(*point, *ref)
}
