// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package models

import (
	"time"

	"github.com/Akbarizadeh/nexta-api/internal/geo"
)

// CandidateQuery is the per-source eligibility query issued by the discovery
// engine. Each content source combines it with its own status/time-window
// predicate; Ref and RadiusKm are pushed down to the store when a reference
// point is present.
type CandidateQuery struct {
	// Category filters by exact match when non-empty.
	Category string

	// Ref is the caller's reference point; nil disables radius filtering.
	Ref *geo.Point

	// RadiusKm is the filter radius around Ref, in kilometers.
	RadiusKm float64

	// Limit caps the number of candidates returned, applied after all
	// eligibility predicates.
	Limit int

	// Now anchors the time-window predicates (event/offer expiry) so all
	// three sources of one call evaluate against the same instant.
	Now time.Time
}

// ListingSearch holds the browse-endpoint filters for listings.
type ListingSearch struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Ref      *geo.Point
	RadiusKm float64
	Page     int
	PageSize int
}

// EventSearch holds the browse-endpoint filters for events.
type EventSearch struct {
	Category string
	Ref      *geo.Point
	RadiusKm float64
	Now      time.Time
	Page     int
	PageSize int
}

// OfferSearch holds the browse-endpoint filters for offers.
type OfferSearch struct {
	Category string
	Ref      *geo.Point
	RadiusKm float64
	Now      time.Time
	Page     int
	PageSize int
}

// BusinessSearch holds the browse-endpoint filters for businesses.
type BusinessSearch struct {
	Category string
	Ref      *geo.Point
	RadiusKm float64
	Page     int
	PageSize int
}
