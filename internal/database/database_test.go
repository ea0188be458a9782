// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Akbarizadeh/nexta-api/internal/config"
	"github.com/Akbarizadeh/nexta-api/internal/geo"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// taksim is the reference point used across the geo fixtures.
var taksim = &geo.Point{Lat: 41.0370, Lon: 28.9850}

func seedListing(t *testing.T, db *DB, l models.Listing) models.Listing {
	t.Helper()
	if l.Title == "" {
		l.Title = "fixture"
	}
	if l.Category == "" {
		l.Category = "Misc"
	}
	if err := db.CreateListing(context.Background(), &l); err != nil {
		t.Fatalf("CreateListing() error = %v", err)
	}
	return l
}

func TestEligibleListingsPredicates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	near := seedListing(t, db, models.Listing{
		Title: "near", Category: "Electronics",
		Latitude: ptr(41.0400), Longitude: ptr(28.9900), // ~1 km from taksim
	})
	seedListing(t, db, models.Listing{
		Title: "far", Category: "Electronics",
		Latitude: ptr(41.5000), Longitude: ptr(29.5000), // ~67 km
	})
	noLoc := seedListing(t, db, models.Listing{
		Title: "no location", Category: "Electronics",
	})
	seedListing(t, db, models.Listing{
		Title: "wrong category", Category: "Food",
		Latitude: ptr(41.0400), Longitude: ptr(28.9900),
	})
	seedListing(t, db, models.Listing{
		Title: "sold", Category: "Electronics", Status: models.ListingSold,
		Latitude: ptr(41.0400), Longitude: ptr(28.9900),
	})

	got, err := db.EligibleListings(ctx, models.CandidateQuery{
		Category: "Electronics",
		Ref:      taksim,
		RadiusKm: 10,
		Limit:    20,
		Now:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("EligibleListings() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("EligibleListings() returned %d listings, want 2 (near + no-location)", len(got))
	}
	ids := map[uuid.UUID]bool{}
	for _, l := range got {
		ids[l.ID] = true
	}
	if !ids[near.ID] {
		t.Error("near listing missing from eligible set")
	}
	if !ids[noLoc.ID] {
		t.Error("listing without coordinate was filtered by radius")
	}
}

func TestEligibleListingsOrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		seedListing(t, db, models.Listing{
			Title:     "l",
			Category:  "Books",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	got, err := db.EligibleListings(ctx, models.CandidateQuery{Category: "Books", Limit: 3})
	if err != nil {
		t.Fatalf("EligibleListings() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("limit not applied: got %d listings", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Error("listings not ordered by created_at descending")
		}
	}
}

func TestEligibleEventsTimeWindow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()
	biz := models.Business{Name: "host"}
	if err := db.CreateBusiness(ctx, &biz); err != nil {
		t.Fatalf("CreateBusiness() error = %v", err)
	}

	openEnded := models.Event{BusinessID: biz.ID, Title: "open ended", Category: "Music", StartDate: now.Add(time.Hour)}
	upcoming := models.Event{BusinessID: biz.ID, Title: "upcoming", Category: "Music", StartDate: now.Add(2 * time.Hour), EndDate: ptr(now.Add(3 * time.Hour))}
	ended := models.Event{BusinessID: biz.ID, Title: "ended", Category: "Music", StartDate: now.Add(-3 * time.Hour), EndDate: ptr(now.Add(-time.Hour))}
	for _, ev := range []*models.Event{&openEnded, &upcoming, &ended} {
		if err := db.CreateEvent(ctx, ev); err != nil {
			t.Fatalf("CreateEvent() error = %v", err)
		}
	}

	got, err := db.EligibleEvents(ctx, models.CandidateQuery{Limit: 10, Now: now})
	if err != nil {
		t.Fatalf("EligibleEvents() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("EligibleEvents() returned %d events, want 2", len(got))
	}
	// start_date ascending
	if got[0].ID != openEnded.ID {
		t.Errorf("first event = %q, want open-ended (earliest start)", got[0].Title)
	}
	if got[0].BusinessName != "host" {
		t.Errorf("BusinessName = %q, want denormalized host name", got[0].BusinessName)
	}
}

func TestEligibleOffersExpiry(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()
	biz := models.Business{Name: "shop"}
	if err := db.CreateBusiness(ctx, &biz); err != nil {
		t.Fatalf("CreateBusiness() error = %v", err)
	}

	live := models.Offer{BusinessID: biz.ID, Title: "live", Category: "Food", StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour)}
	soon := models.Offer{BusinessID: biz.ID, Title: "soon", Category: "Food", StartDate: now.Add(-time.Hour), EndDate: now.Add(30 * time.Minute)}
	expired := models.Offer{BusinessID: biz.ID, Title: "expired", Category: "Food", StartDate: now.Add(-2 * time.Hour), EndDate: now.Add(-time.Minute)}
	for _, of := range []*models.Offer{&live, &soon, &expired} {
		if err := db.CreateOffer(ctx, of); err != nil {
			t.Fatalf("CreateOffer() error = %v", err)
		}
	}

	got, err := db.EligibleOffers(ctx, models.CandidateQuery{Limit: 10, Now: now})
	if err != nil {
		t.Fatalf("EligibleOffers() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("EligibleOffers() returned %d offers, want 2 (expired excluded)", len(got))
	}
	if got[0].ID != soon.ID {
		t.Errorf("first offer = %q, want soonest-expiring first", got[0].Title)
	}
}

func TestSearchListingsPriceOverlap(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cheap := seedListing(t, db, models.Listing{Title: "cheap", Category: "Books", Price: ptr(10.0)})
	ranged := seedListing(t, db, models.Listing{Title: "ranged", Category: "Books", PriceMin: ptr(50.0), PriceMax: ptr(150.0)})
	expensive := seedListing(t, db, models.Listing{Title: "expensive", Category: "Books", Price: ptr(500.0)})

	got, err := db.SearchListings(ctx, models.ListingSearch{
		Category: "Books",
		MinPrice: ptr(40.0),
		MaxPrice: ptr(200.0),
		Page:     1,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("SearchListings() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != ranged.ID {
		t.Errorf("SearchListings() = %v, want only the ranged listing (cheap=%s expensive=%s)",
			titles(got), cheap.ID, expensive.ID)
	}
}

func titles(ls []models.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Title
	}
	return out
}

func TestSearchListingsDistanceOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	far := seedListing(t, db, models.Listing{Title: "farther", Category: "Misc", Latitude: ptr(41.0800), Longitude: ptr(29.0300)})
	near := seedListing(t, db, models.Listing{Title: "nearer", Category: "Misc", Latitude: ptr(41.0380), Longitude: ptr(28.9860)})

	got, err := db.SearchListings(ctx, models.ListingSearch{
		Ref:      taksim,
		RadiusKm: 20,
		Page:     1,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("SearchListings() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("SearchListings() returned %d listings, want 2", len(got))
	}
	if got[0].ID != near.ID || got[1].ID != far.ID {
		t.Errorf("order = %v, want nearest first", titles(got))
	}
}

func TestGetListingNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetListing(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetListing() error = %v, want ErrNotFound", err)
	}
}

func TestRecordInteraction(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	l := seedListing(t, db, models.Listing{Title: "liked", Category: "Misc"})

	in := models.Interaction{
		UserID:      uuid.New(),
		ContentType: models.KindListing,
		ContentID:   l.ID,
		Type:        models.InteractionLike,
	}
	if err := db.RecordInteraction(ctx, &in); err != nil {
		t.Fatalf("RecordInteraction() error = %v", err)
	}

	got, err := db.GetListing(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}
	if got.LikeCount != 1 {
		t.Errorf("LikeCount = %d after like, want 1", got.LikeCount)
	}

	// Unknown target fails without inserting an interaction row
	missing := models.Interaction{
		UserID:      uuid.New(),
		ContentType: models.KindListing,
		ContentID:   uuid.New(),
		Type:        models.InteractionSave,
	}
	if err := db.RecordInteraction(ctx, &missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("RecordInteraction() error = %v, want ErrNotFound", err)
	}
}

func TestCategories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedListing(t, db, models.Listing{Category: "Electronics"})
	seedListing(t, db, models.Listing{Category: "Books"})
	seedListing(t, db, models.Listing{Category: "Electronics"}) // duplicate

	got, err := db.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories() error = %v", err)
	}
	want := []string{"Books", "Electronics"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSearchBusinessesCounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	cafe := models.Business{Name: "Corner Cafe", Category: "food"}
	if err := db.CreateBusiness(ctx, &cafe); err != nil {
		t.Fatalf("CreateBusiness() error = %v", err)
	}
	gym := models.Business{Name: "Iron Gym", Category: "fitness"}
	if err := db.CreateBusiness(ctx, &gym); err != nil {
		t.Fatalf("CreateBusiness() error = %v", err)
	}

	seedListing(t, db, models.Listing{BusinessID: &cafe.ID, Title: "espresso beans", Category: "food"})
	seedListing(t, db, models.Listing{BusinessID: &cafe.ID, Title: "old grinder", Category: "food", Status: models.ListingSold})
	ev := models.Event{BusinessID: cafe.ID, Title: "tasting", Category: "food", StartDate: now.Add(-time.Hour)}
	if err := db.CreateEvent(ctx, &ev); err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}
	of := models.Offer{BusinessID: cafe.ID, Title: "expired promo", Category: "food",
		StartDate: now.Add(-2 * time.Hour), EndDate: now.Add(-time.Hour)}
	if err := db.CreateOffer(ctx, &of); err != nil {
		t.Fatalf("CreateOffer() error = %v", err)
	}

	got, err := db.SearchBusinesses(ctx, models.BusinessSearch{Category: "food", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("SearchBusinesses() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("SearchBusinesses() returned %d businesses, want only the cafe", len(got))
	}
	s := got[0]
	if s.ID != cafe.ID {
		t.Errorf("ID = %s, want %s", s.ID, cafe.ID)
	}
	// Sold listings are excluded from the count; past events and expired
	// offers still count as owned content.
	if s.ListingCount != 1 {
		t.Errorf("ListingCount = %d, want 1 (active only)", s.ListingCount)
	}
	if s.EventCount != 1 || s.OfferCount != 1 {
		t.Errorf("EventCount = %d, OfferCount = %d, want 1 and 1", s.EventCount, s.OfferCount)
	}
}

func TestSearchBusinessesRadius(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	near := models.Business{Name: "near shop", Latitude: ptr(41.0380), Longitude: ptr(28.9860)}
	far := models.Business{Name: "far shop", Latitude: ptr(41.0800), Longitude: ptr(29.0300)}
	remote := models.Business{Name: "remote shop", Latitude: ptr(41.5000), Longitude: ptr(29.5000)} // ~67 km
	for _, b := range []*models.Business{&near, &far, &remote} {
		if err := db.CreateBusiness(ctx, b); err != nil {
			t.Fatalf("CreateBusiness() error = %v", err)
		}
	}

	got, err := db.SearchBusinesses(ctx, models.BusinessSearch{
		Ref:      taksim,
		RadiusKm: 20,
		Page:     1,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("SearchBusinesses() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("SearchBusinesses() returned %d businesses, want 2 within radius", len(got))
	}
	if got[0].ID != near.ID || got[1].ID != far.ID {
		t.Errorf("order = [%s, %s], want nearest first", got[0].Name, got[1].Name)
	}
}

func TestBusinessAnalyticsAggregates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	biz := models.Business{Name: "Corner Cafe"}
	if err := db.CreateBusiness(ctx, &biz); err != nil {
		t.Fatalf("CreateBusiness() error = %v", err)
	}

	l := seedListing(t, db, models.Listing{BusinessID: &biz.ID, Title: "beans", Category: "food"})
	ev := models.Event{BusinessID: biz.ID, Title: "tasting", Category: "food", StartDate: now}
	if err := db.CreateEvent(ctx, &ev); err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}
	of := models.Offer{BusinessID: biz.ID, Title: "promo", Category: "food",
		StartDate: now, EndDate: now.Add(time.Hour)}
	if err := db.CreateOffer(ctx, &of); err != nil {
		t.Fatalf("CreateOffer() error = %v", err)
	}

	// Engagement spread across the three kinds.
	for i := 0; i < 3; i++ {
		if err := db.IncrementViewCount(ctx, models.KindListing, l.ID); err != nil {
			t.Fatalf("IncrementViewCount() error = %v", err)
		}
	}
	if err := db.IncrementViewCount(ctx, models.KindEvent, ev.ID); err != nil {
		t.Fatalf("IncrementViewCount() error = %v", err)
	}
	like := models.Interaction{UserID: uuid.New(), ContentType: models.KindEvent, ContentID: ev.ID, Type: models.InteractionLike}
	if err := db.RecordInteraction(ctx, &like); err != nil {
		t.Fatalf("RecordInteraction() error = %v", err)
	}
	save := models.Interaction{UserID: uuid.New(), ContentType: models.KindOffer, ContentID: of.ID, Type: models.InteractionSave}
	if err := db.RecordInteraction(ctx, &save); err != nil {
		t.Fatalf("RecordInteraction() error = %v", err)
	}

	got, err := db.BusinessAnalytics(ctx, biz.ID)
	if err != nil {
		t.Fatalf("BusinessAnalytics() error = %v", err)
	}
	if got.BusinessID != biz.ID {
		t.Errorf("BusinessID = %s, want %s", got.BusinessID, biz.ID)
	}
	if got.ListingCount != 1 || got.EventCount != 1 || got.OfferCount != 1 {
		t.Errorf("counts = (%d, %d, %d), want (1, 1, 1)",
			got.ListingCount, got.EventCount, got.OfferCount)
	}
	if got.ViewCount != 4 {
		t.Errorf("ViewCount = %d, want 4", got.ViewCount)
	}
	if got.LikeCount != 1 || got.SaveCount != 1 {
		t.Errorf("LikeCount = %d, SaveCount = %d, want 1 and 1", got.LikeCount, got.SaveCount)
	}
}

func TestBusinessAnalyticsNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.BusinessAnalytics(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("BusinessAnalytics() error = %v, want ErrNotFound", err)
	}
}

func TestSeedDemoDataIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData() error = %v", err)
	}
	first, err := db.EligibleListings(ctx, models.CandidateQuery{Limit: 100})
	if err != nil {
		t.Fatalf("EligibleListings() error = %v", err)
	}
	if len(first) == 0 {
		t.Fatal("seed inserted no listings")
	}

	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("second SeedDemoData() error = %v", err)
	}
	second, err := db.EligibleListings(ctx, models.CandidateQuery{Limit: 100})
	if err != nil {
		t.Fatalf("EligibleListings() error = %v", err)
	}
	if len(second) != len(first) {
		t.Errorf("seed not idempotent: %d then %d listings", len(first), len(second))
	}
}
