// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Akbarizadeh/nexta-api/internal/geo"
)

// ContentKind tags the source a discovered item came from. The tag is set
// once at normalization and is immutable afterwards.
type ContentKind string

const (
	KindListing ContentKind = "Listing"
	KindEvent   ContentKind = "Event"
	KindOffer   ContentKind = "Offer"
)

// Sort strategy names accepted by the discovery engine. Anything else falls
// back to recency, matching the engine's switch default.
const (
	SortDistance = "distance"
	SortPopular  = "popular"
	SortRecent   = "recent"
)

// DiscoveredItem is the uniform shape every content kind is normalized into
// for one discovery call. It is request-scoped and never persisted.
//
// DistanceKm is 0 both when the caller supplied no reference point and when
// the record has no coordinate; discovery defines missing location data as
// distance zero rather than unknown.
type DiscoveredItem struct {
	Kind         ContentKind `json:"kind"`
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	ImageURL     string      `json:"image_url,omitempty"`
	Category     string      `json:"category"`
	Latitude     *float64    `json:"latitude,omitempty"`
	Longitude    *float64    `json:"longitude,omitempty"`
	DistanceKm   float64     `json:"distance_km"`
	Price        *float64    `json:"price,omitempty"`
	LikeCount    int         `json:"like_count"`
	SaveCount    int         `json:"save_count"`
	CreatedAt    time.Time   `json:"created_at"`
	BusinessName string      `json:"business_name,omitempty"`
}

// Popularity is the ranking key for the popular sort strategy.
func (i *DiscoveredItem) Popularity() int { return i.LikeCount + i.SaveCount }

// DiscoveryRequest carries the parameters of one discovery call.
//
// A (0, 0) coordinate pair means no reference point was supplied: no radius
// filtering applies and every item's distance is 0.
type DiscoveryRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	RadiusKm  float64 `json:"radius_km" validate:"gte=0,lte=20000"`
	Category  string  `json:"category" validate:"omitempty,max=100"`
	SortBy    string  `json:"sort_by" validate:"omitempty,max=50"`
	Page      int     `json:"page" validate:"min=1"`
	PageSize  int     `json:"page_size" validate:"min=1,max=100"`
}

// DefaultPage is the page implied by an unset page parameter. The radius
// and page-size defaults are deployment-tunable and live in the discovery
// configuration, not here.
const DefaultPage = 1

// ReferencePoint returns the caller's coordinate, or nil when both latitude
// and longitude are zero (the "no reference point" convention).
func (r *DiscoveryRequest) ReferencePoint() *geo.Point {
	if r.Latitude == 0 && r.Longitude == 0 {
		return nil
	}
	return &geo.Point{Lat: r.Latitude, Lon: r.Longitude}
}

// DiscoveryResponse is the paginated result of one discovery call.
// TotalCount is the size of the full ranked merged set, not the page.
type DiscoveryResponse struct {
	Items      []DiscoveredItem `json:"items"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
}
