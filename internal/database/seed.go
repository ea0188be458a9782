// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Akbarizadeh/nexta-api/internal/logging"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

// SeedDemoData inserts a small set of businesses, listings, events and
// offers around central Istanbul. For local development only; enabled with
// DATABASE_SEED_DEMO_DATA=true.
func (db *DB) SeedDemoData(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, "SELECT count(*) FROM listings").Scan(&count); err != nil {
		return fmt.Errorf("seed precheck: %w", err)
	}
	if count > 0 {
		logging.Info().Msg("Demo data already present, skipping seed")
		return nil
	}

	now := time.Now().UTC()

	cafeID := uuid.New()
	techID := uuid.New()
	galleryID := uuid.New()

	businesses := []models.Business{
		{ID: cafeID, Name: "Galata Roasters", Description: "Specialty coffee near the tower", Category: "Food", Latitude: ptr(41.0256), Longitude: ptr(28.9744), CreatedAt: now},
		{ID: techID, Name: "Karakoy Tech", Description: "Refurbished electronics", Category: "Electronics", Latitude: ptr(41.0223), Longitude: ptr(28.9770), CreatedAt: now},
		{ID: galleryID, Name: "Bosphorus Art House", Description: "Independent gallery and workshop space", Category: "Art", Latitude: ptr(41.0330), Longitude: ptr(28.9830), CreatedAt: now},
	}
	for i := range businesses {
		if err := db.CreateBusiness(ctx, &businesses[i]); err != nil {
			return err
		}
	}

	listings := []models.Listing{
		{BusinessID: &techID, Title: "Refurbished ThinkPad X1", Description: "Gen 9, one year warranty", Category: "Electronics", Price: ptr(650.0), Latitude: ptr(41.0223), Longitude: ptr(28.9770), LikeCount: 12, SaveCount: 4, CreatedAt: now.Add(-48 * time.Hour)},
		{BusinessID: &techID, Title: "Mechanical keyboard bundle", Category: "Electronics", PriceMin: ptr(40.0), PriceMax: ptr(120.0), Latitude: ptr(41.0225), Longitude: ptr(28.9768), LikeCount: 3, SaveCount: 1, CreatedAt: now.Add(-24 * time.Hour)},
		{Title: "Vintage film camera", Description: "Privately sold, no business", Category: "Photography", Price: ptr(220.0), LikeCount: 7, SaveCount: 9, CreatedAt: now.Add(-6 * time.Hour)},
	}
	for i := range listings {
		if err := db.CreateListing(ctx, &listings[i]); err != nil {
			return err
		}
	}

	events := []models.Event{
		{BusinessID: galleryID, Title: "Watercolor weekend workshop", Category: "Art", Price: ptr(35.0), Latitude: ptr(41.0330), Longitude: ptr(28.9830), StartDate: now.Add(72 * time.Hour), EndDate: ptr(now.Add(96 * time.Hour)), LikeCount: 20, SaveCount: 11, CreatedAt: now.Add(-72 * time.Hour)},
		{BusinessID: cafeID, Title: "Latte art throwdown", Category: "Food", Latitude: ptr(41.0256), Longitude: ptr(28.9744), StartDate: now.Add(24 * time.Hour), LikeCount: 8, SaveCount: 2, CreatedAt: now.Add(-12 * time.Hour)},
	}
	for i := range events {
		if err := db.CreateEvent(ctx, &events[i]); err != nil {
			return err
		}
	}

	offers := []models.Offer{
		{BusinessID: cafeID, Title: "2-for-1 flat whites", Category: "Food", OriginalPrice: ptr(8.0), DiscountedPrice: ptr(4.0), DiscountPercent: ptr(50.0), Latitude: ptr(41.0256), Longitude: ptr(28.9744), StartDate: now.Add(-24 * time.Hour), EndDate: now.Add(48 * time.Hour), LikeCount: 15, SaveCount: 6, CreatedAt: now.Add(-24 * time.Hour)},
		{BusinessID: techID, Title: "10% off all SSDs", Category: "Electronics", DiscountedPrice: ptr(90.0), DiscountPercent: ptr(10.0), Latitude: ptr(41.0223), Longitude: ptr(28.9770), StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(7 * 24 * time.Hour), LikeCount: 5, SaveCount: 3, CreatedAt: now.Add(-48 * time.Hour)},
	}
	for i := range offers {
		if err := db.CreateOffer(ctx, &offers[i]); err != nil {
			return err
		}
	}

	logging.Info().
		Int("businesses", len(businesses)).
		Int("listings", len(listings)).
		Int("events", len(events)).
		Int("offers", len(offers)).
		Msg("Demo data seeded")
	return nil
}
