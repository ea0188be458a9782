// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package database

import (
	"fmt"

	"github.com/Akbarizadeh/nexta-api/internal/geo"
)

// haversineKmSQL renders the great-circle distance between the row's
// coordinate columns and a bound reference point, in kilometers. It mirrors
// geo.Distance exactly. Bound parameters, in order: refLat, refLat, refLon.
func haversineKmSQL(latCol, lonCol string) string {
	return fmt.Sprintf(
		`2 * 6371.0 * asin(sqrt(`+
			`pow(sin(radians(%s - ?) / 2), 2) + `+
			`cos(radians(?)) * cos(radians(%s)) * `+
			`pow(sin(radians(%s - ?) / 2), 2)))`,
		latCol, latCol, lonCol,
	)
}

// radiusClause builds the radius eligibility predicate for an aliased table.
// Records without a coordinate are never excluded, matching
// geo.WithinRadius's treatment of absent points.
// Bound parameters, in order: refLat, refLat, refLon, radiusKm.
func radiusClause(alias string, ref *geo.Point, radiusKm float64) (string, []interface{}) {
	if ref == nil {
		return "", nil
	}
	clause := fmt.Sprintf("(%s.latitude IS NULL OR %s.longitude IS NULL OR %s <= ?)",
		alias, alias, haversineKmSQL(alias+".latitude", alias+".longitude"))
	return clause, []interface{}{ref.Lat, ref.Lat, ref.Lon, radiusKm}
}

// distanceOrder builds an ORDER BY distance expression for geo searches.
// Rows without a coordinate sort last. Bound parameters: refLat, refLat, refLon.
func distanceOrder(alias string, ref *geo.Point) (string, []interface{}) {
	expr := fmt.Sprintf("CASE WHEN %s.latitude IS NULL OR %s.longitude IS NULL THEN 1 ELSE 0 END, %s ASC",
		alias, alias, haversineKmSQL(alias+".latitude", alias+".longitude"))
	return expr, []interface{}{ref.Lat, ref.Lat, ref.Lon}
}
