// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package discovery

import (
	"context"

	"github.com/Akbarizadeh/nexta-api/internal/geo"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// ListingStore fetches eligible listings: active, category-matched, within
// radius, newest first, capped at the query limit.
type ListingStore interface {
	EligibleListings(ctx context.Context, q models.CandidateQuery) ([]models.Listing, error)
}

// EventStore fetches eligible events: not yet ended (or open-ended),
// category-matched, within radius, earliest start first, capped.
type EventStore interface {
	EligibleEvents(ctx context.Context, q models.CandidateQuery) ([]models.Event, error)
}

// OfferStore fetches eligible offers: unexpired, category-matched, within
// radius, soonest-expiring first, capped.
type OfferStore interface {
	EligibleOffers(ctx context.Context, q models.CandidateQuery) ([]models.Offer, error)
}

// Stores bundles the three content stores an Engine fans out to.
type Stores struct {
	Listings ListingStore
	Events   EventStore
	Offers   OfferStore
}

// normalizeListing maps a listing into the uniform item shape. Price is the
// single price when present, else the minimum of the price range.
func normalizeListing(l models.Listing, ref *geo.Point) models.DiscoveredItem {
	price := l.Price
	if price == nil {
		price = l.PriceMin
	}
	return models.DiscoveredItem{
		Kind:         models.KindListing,
		ID:           l.ID,
		Title:        l.Title,
		Description:  l.Description,
		ImageURL:     l.ImageURL,
		Category:     l.Category,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		DistanceKm:   geo.DistanceOrZero(l.Location(), ref),
		Price:        price,
		LikeCount:    l.LikeCount,
		SaveCount:    l.SaveCount,
		CreatedAt:    l.CreatedAt,
		BusinessName: l.BusinessName,
	}
}

// normalizeEvent maps an event into the uniform item shape. Price is the
// event's fixed price; nil means free or unpriced.
func normalizeEvent(ev models.Event, ref *geo.Point) models.DiscoveredItem {
	return models.DiscoveredItem{
		Kind:         models.KindEvent,
		ID:           ev.ID,
		Title:        ev.Title,
		Description:  ev.Description,
		ImageURL:     ev.ImageURL,
		Category:     ev.Category,
		Latitude:     ev.Latitude,
		Longitude:    ev.Longitude,
		DistanceKm:   geo.DistanceOrZero(ev.Location(), ref),
		Price:        ev.Price,
		LikeCount:    ev.LikeCount,
		SaveCount:    ev.SaveCount,
		CreatedAt:    ev.CreatedAt,
		BusinessName: ev.BusinessName,
	}
}

// normalizeOffer maps an offer into the uniform item shape. Price is the
// discounted price.
func normalizeOffer(of models.Offer, ref *geo.Point) models.DiscoveredItem {
	return models.DiscoveredItem{
		Kind:         models.KindOffer,
		ID:           of.ID,
		Title:        of.Title,
		Description:  of.Description,
		ImageURL:     of.ImageURL,
		Category:     of.Category,
		Latitude:     of.Latitude,
		Longitude:    of.Longitude,
		DistanceKm:   geo.DistanceOrZero(of.Location(), ref),
		Price:        of.DiscountedPrice,
		LikeCount:    of.LikeCount,
		SaveCount:    of.SaveCount,
		CreatedAt:    of.CreatedAt,
		BusinessName: of.BusinessName,
	}
}
