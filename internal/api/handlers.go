// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/Akbarizadeh/nexta-api/internal/cache"
	"github.com/Akbarizadeh/nexta-api/internal/config"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// Discoverer executes one discovery call. Implemented by discovery.Engine.
type Discoverer interface {
	Discover(ctx context.Context, req models.DiscoveryRequest) (*models.DiscoveryResponse, error)
}

// Store is the persistence surface the handlers need. Implemented by
// database.DB; tests substitute an in-memory fake.
type Store interface {
	SearchListings(ctx context.Context, q models.ListingSearch) ([]models.Listing, error)
	GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	CreateListing(ctx context.Context, l *models.Listing) error

	SearchEvents(ctx context.Context, q models.EventSearch) ([]models.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	CreateEvent(ctx context.Context, ev *models.Event) error

	SearchOffers(ctx context.Context, q models.OfferSearch) ([]models.Offer, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	CreateOffer(ctx context.Context, of *models.Offer) error

	GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, error)
	CreateBusiness(ctx context.Context, biz *models.Business) error
	SearchBusinesses(ctx context.Context, q models.BusinessSearch) ([]models.BusinessSummary, error)
	BusinessAnalytics(ctx context.Context, id uuid.UUID) (*models.BusinessAnalytics, error)

	Categories(ctx context.Context) ([]string, error)
	RecordInteraction(ctx context.Context, in *models.Interaction) error
	IncrementViewCount(ctx context.Context, kind models.ContentKind, id uuid.UUID) error

	Ping(ctx context.Context) error
}

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	engine     Discoverer
	store      Store
	categories *cache.Cache
	cfg        *config.Config
}

// NewHandler creates a Handler. The category cache uses the configured TTL;
// nothing else is cached.
func NewHandler(engine Discoverer, store Store, cfg *config.Config) *Handler {
	return &Handler{
		engine:     engine,
		store:      store,
		categories: cache.New(cfg.API.CategoryCacheTTL),
		cfg:        cfg,
	}
}
