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

// ListingStatus is the lifecycle state of a marketplace listing.
// Only active listings are eligible for discovery.
type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingReserved ListingStatus = "reserved"
	ListingSold     ListingStatus = "sold"
	ListingArchived ListingStatus = "archived"
)

// Business is a registered local business that owns events and offers and
// may own listings. Its name is denormalized onto discovery items.
type Business struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BusinessSummary is a business with its content counts, as returned by
// the business browse endpoint. ListingCount covers active listings only;
// event and offer counts cover every record the business owns.
type BusinessSummary struct {
	Business
	ListingCount int `json:"listing_count"`
	EventCount   int `json:"event_count"`
	OfferCount   int `json:"offer_count"`
}

// BusinessAnalytics aggregates the engagement counters across everything a
// business owns, regardless of status or expiry.
type BusinessAnalytics struct {
	BusinessID   uuid.UUID `json:"business_id"`
	ListingCount int       `json:"listing_count"`
	EventCount   int       `json:"event_count"`
	OfferCount   int       `json:"offer_count"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	SaveCount    int64     `json:"save_count"`
}

// Listing is a for-sale item. Price is either a single price or a
// [PriceMin, PriceMax] range; discovery normalizes to Price ?? PriceMin.
type Listing struct {
	ID           uuid.UUID     `json:"id"`
	BusinessID   *uuid.UUID    `json:"business_id,omitempty"`
	BusinessName string        `json:"business_name,omitempty"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Category     string        `json:"category"`
	ImageURL     string        `json:"image_url,omitempty"`
	Price        *float64      `json:"price,omitempty"`
	PriceMin     *float64      `json:"price_min,omitempty"`
	PriceMax     *float64      `json:"price_max,omitempty"`
	Status       ListingStatus `json:"status"`
	Latitude     *float64      `json:"latitude,omitempty"`
	Longitude    *float64      `json:"longitude,omitempty"`
	ViewCount    int           `json:"view_count"`
	LikeCount    int           `json:"like_count"`
	SaveCount    int           `json:"save_count"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Event is a time-boxed happening hosted by a business. EndDate may be nil
// for open-ended events; such events never expire out of discovery.
type Event struct {
	ID           uuid.UUID  `json:"id"`
	BusinessID   uuid.UUID  `json:"business_id"`
	BusinessName string     `json:"business_name,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Category     string     `json:"category"`
	ImageURL     string     `json:"image_url,omitempty"`
	Price        *float64   `json:"price,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	ViewCount    int        `json:"view_count"`
	LikeCount    int        `json:"like_count"`
	SaveCount    int        `json:"save_count"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Offer is a time-boxed discount published by a business. EndDate is
// mandatory; expired offers are never discoverable.
type Offer struct {
	ID              uuid.UUID `json:"id"`
	BusinessID      uuid.UUID `json:"business_id"`
	BusinessName    string    `json:"business_name,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category"`
	ImageURL        string    `json:"image_url,omitempty"`
	OriginalPrice   *float64  `json:"original_price,omitempty"`
	DiscountedPrice *float64  `json:"discounted_price,omitempty"`
	DiscountPercent *float64  `json:"discount_percent,omitempty"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	ViewCount       int       `json:"view_count"`
	LikeCount       int       `json:"like_count"`
	SaveCount       int       `json:"save_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// InteractionType classifies a user interaction with a content item.
type InteractionType string

const (
	InteractionView InteractionType = "view"
	InteractionLike InteractionType = "like"
	InteractionSave InteractionType = "save"
)

// Interaction records a single user interaction with a listing, event or
// offer. Writes happen in the CRUD layer; discovery only reads the
// denormalized counters.
type Interaction struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	ContentType ContentKind     `json:"content_type"`
	ContentID   uuid.UUID       `json:"content_id"`
	Type        InteractionType `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
}

// location builds a geo.Point from a nullable coordinate pair.
func location(lat, lon *float64) *geo.Point {
	if lat == nil || lon == nil {
		return nil
	}
	return &geo.Point{Lat: *lat, Lon: *lon}
}

// Location returns the listing's coordinate, or nil when it has none.
func (l *Listing) Location() *geo.Point { return location(l.Latitude, l.Longitude) }

// Location returns the event's coordinate, or nil when it has none.
func (e *Event) Location() *geo.Point { return location(e.Latitude, e.Longitude) }

// Location returns the offer's coordinate, or nil when it has none.
func (o *Offer) Location() *geo.Point { return location(o.Latitude, o.Longitude) }
