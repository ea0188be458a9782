// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Akbarizadeh/nexta-api/internal/config"
	"github.com/Akbarizadeh/nexta-api/internal/database"
	"github.com/Akbarizadeh/nexta-api/internal/discovery"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// fakeEngine returns a canned discovery response or error.
type fakeEngine struct {
	resp *models.DiscoveryResponse
	err  error

	lastReq models.DiscoveryRequest
}

func (f *fakeEngine) Discover(ctx context.Context, req models.DiscoveryRequest) (*models.DiscoveryResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

// fakeStore is an in-memory Store backed by maps.
type fakeStore struct {
	listings   map[uuid.UUID]*models.Listing
	events     map[uuid.UUID]*models.Event
	offers     map[uuid.UUID]*models.Offer
	businesses map[uuid.UUID]*models.Business

	categories     []string
	categoryCalls  int
	interactions   []*models.Interaction
	viewBumps      int
	pingErr        error
	searchListings []models.Listing

	businessSummaries []models.BusinessSummary
	lastBusinessQ     models.BusinessSearch
	analytics         *models.BusinessAnalytics
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		listings:   map[uuid.UUID]*models.Listing{},
		events:     map[uuid.UUID]*models.Event{},
		offers:     map[uuid.UUID]*models.Offer{},
		businesses: map[uuid.UUID]*models.Business{},
	}
}

func (f *fakeStore) SearchListings(ctx context.Context, q models.ListingSearch) ([]models.Listing, error) {
	return f.searchListings, nil
}

func (f *fakeStore) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	if l, ok := f.listings[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) CreateListing(ctx context.Context, l *models.Listing) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	f.listings[l.ID] = l
	return nil
}

func (f *fakeStore) SearchEvents(ctx context.Context, q models.EventSearch) ([]models.Event, error) {
	return nil, nil
}

func (f *fakeStore) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	if e, ok := f.events[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) CreateEvent(ctx context.Context, ev *models.Event) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	f.events[ev.ID] = ev
	return nil
}

func (f *fakeStore) SearchOffers(ctx context.Context, q models.OfferSearch) ([]models.Offer, error) {
	return nil, nil
}

func (f *fakeStore) GetOffer(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	if o, ok := f.offers[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) CreateOffer(ctx context.Context, of *models.Offer) error {
	if of.ID == uuid.Nil {
		of.ID = uuid.New()
	}
	f.offers[of.ID] = of
	return nil
}

func (f *fakeStore) GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	if b, ok := f.businesses[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) CreateBusiness(ctx context.Context, biz *models.Business) error {
	if biz.ID == uuid.Nil {
		biz.ID = uuid.New()
	}
	f.businesses[biz.ID] = biz
	return nil
}

func (f *fakeStore) SearchBusinesses(ctx context.Context, q models.BusinessSearch) ([]models.BusinessSummary, error) {
	f.lastBusinessQ = q
	return f.businessSummaries, nil
}

func (f *fakeStore) BusinessAnalytics(ctx context.Context, id uuid.UUID) (*models.BusinessAnalytics, error) {
	if _, ok := f.businesses[id]; !ok {
		return nil, database.ErrNotFound
	}
	if f.analytics != nil {
		cp := *f.analytics
		cp.BusinessID = id
		return &cp, nil
	}
	return &models.BusinessAnalytics{BusinessID: id}, nil
}

func (f *fakeStore) Categories(ctx context.Context) ([]string, error) {
	f.categoryCalls++
	return f.categories, nil
}

func (f *fakeStore) RecordInteraction(ctx context.Context, in *models.Interaction) error {
	switch in.ContentType {
	case models.KindListing:
		if _, ok := f.listings[in.ContentID]; !ok {
			return database.ErrNotFound
		}
	case models.KindEvent:
		if _, ok := f.events[in.ContentID]; !ok {
			return database.ErrNotFound
		}
	case models.KindOffer:
		if _, ok := f.offers[in.ContentID]; !ok {
			return database.ErrNotFound
		}
	}
	f.interactions = append(f.interactions, in)
	return nil
}

func (f *fakeStore) IncrementViewCount(ctx context.Context, kind models.ContentKind, id uuid.UUID) error {
	f.viewBumps++
	return nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.pingErr }

func testHandlerConfig() *config.Config {
	return &config.Config{
		Discovery: config.DiscoveryConfig{
			DefaultRadiusKm:    10,
			DefaultPageSize:    20,
			MaxPageSize:        100,
			MaxCandidateWindow: 500,
		},
		API: config.APIConfig{
			CategoryCacheTTL: time.Minute,
		},
	}
}

func newTestHandler(engine Discoverer, store Store) *Handler {
	return NewHandler(engine, store, testHandlerConfig())
}

// decodeEnvelope unmarshals the response envelope.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal envelope: %v (body %q)", err, rec.Body.String())
	}
	return resp
}

func TestDiscoveryHandlerSuccess(t *testing.T) {
	engine := &fakeEngine{
		resp: &models.DiscoveryResponse{
			Items:      []models.DiscoveredItem{{Kind: models.KindListing, Title: "bike"}},
			TotalCount: 1,
			Page:       1,
			PageSize:   20,
		},
	}
	h := newTestHandler(engine, newFakeStore())

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/discovery?latitude=41.04&longitude=28.99&radius_km=5&sort_by=popular&page=2&page_size=10", nil)
	rec := httptest.NewRecorder()
	h.Discovery(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	if resp.Status != "success" {
		t.Errorf("Status = %q, want success", resp.Status)
	}

	if engine.lastReq.Latitude != 41.04 || engine.lastReq.Longitude != 28.99 {
		t.Errorf("engine got coords (%v, %v)", engine.lastReq.Latitude, engine.lastReq.Longitude)
	}
	if engine.lastReq.SortBy != "popular" || engine.lastReq.Page != 2 || engine.lastReq.PageSize != 10 {
		t.Errorf("engine got req %+v", engine.lastReq)
	}
}

func TestDiscoveryHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid request", discovery.ErrInvalidRequest, http.StatusBadRequest, codeValidationError},
		{"source unavailable", discovery.ErrSourceUnavailable, http.StatusServiceUnavailable, codeSourceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, codeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeEngine{err: tt.err}, newFakeStore())
			rec := httptest.NewRecorder()
			h.Discovery(rec, httptest.NewRequest(http.MethodGet, "/api/v1/discovery", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			resp := decodeEnvelope(t, rec)
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %q", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestCreateListingValidation(t *testing.T) {
	h := newTestHandler(&fakeEngine{}, newFakeStore())

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"category":"bikes"}`},
		{"missing category", `{"title":"bike"}`},
		{"bad latitude", `{"title":"bike","category":"bikes","latitude":95}`},
		{"inverted price range", `{"title":"bike","category":"bikes","price_min":100,"price_max":50}`},
		{"malformed json", `{"title":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/listings", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.CreateListing(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateListingSuccess(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(&fakeEngine{}, store)

	body := `{"title":"city bike","category":"bikes","price":120.5,"latitude":41.02,"longitude":28.97}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/listings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateListing(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if len(store.listings) != 1 {
		t.Fatalf("stored %d listings, want 1", len(store.listings))
	}
	for _, l := range store.listings {
		if l.Title != "city bike" || l.Price == nil || *l.Price != 120.5 {
			t.Errorf("stored listing = %+v", l)
		}
	}
}

func TestGetListingViewBump(t *testing.T) {
	store := newFakeStore()
	id := uuid.New()
	store.listings[id] = &models.Listing{ID: id, Title: "bike", ViewCount: 7}
	h := newTestHandler(&fakeEngine{}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/"+id.String(), nil)
	req = withChiParam(req, "id", id.String())
	rec := httptest.NewRecorder()
	h.Listing(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if store.viewBumps != 1 {
		t.Errorf("view bumps = %d, want 1", store.viewBumps)
	}

	resp := decodeEnvelope(t, rec)
	data, _ := json.Marshal(resp.Data)
	var got models.Listing
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal listing: %v", err)
	}
	if got.ViewCount != 8 {
		t.Errorf("ViewCount = %d, want 8 (bump reflected)", got.ViewCount)
	}
}

func TestGetListingNotFound(t *testing.T) {
	h := newTestHandler(&fakeEngine{}, newFakeStore())

	id := uuid.New()
	req := withChiParam(httptest.NewRequest(http.MethodGet, "/api/v1/listings/"+id.String(), nil), "id", id.String())
	rec := httptest.NewRecorder()
	h.Listing(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetListingInvalidID(t *testing.T) {
	h := newTestHandler(&fakeEngine{}, newFakeStore())

	req := withChiParam(httptest.NewRequest(http.MethodGet, "/api/v1/listings/nope", nil), "id", "nope")
	rec := httptest.NewRecorder()
	h.Listing(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBusinessesBrowse(t *testing.T) {
	store := newFakeStore()
	store.businessSummaries = []models.BusinessSummary{
		{
			Business:     models.Business{ID: uuid.New(), Name: "Corner Cafe", Category: "food"},
			ListingCount: 3,
			EventCount:   1,
			OfferCount:   2,
		},
	}
	h := newTestHandler(&fakeEngine{}, store)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/businesses?category=food&latitude=41.04&longitude=28.99&radius_km=5&page=2&page_size=10", nil)
	rec := httptest.NewRecorder()
	h.Businesses(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	q := store.lastBusinessQ
	if q.Category != "food" || q.RadiusKm != 5 || q.Page != 2 || q.PageSize != 10 {
		t.Errorf("store got query %+v", q)
	}
	if q.Ref == nil || q.Ref.Lat != 41.04 || q.Ref.Lon != 28.99 {
		t.Errorf("store got ref %+v, want (41.04, 28.99)", q.Ref)
	}

	resp := decodeEnvelope(t, rec)
	data, _ := json.Marshal(resp.Data)
	var got []models.BusinessSummary
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal summaries: %v", err)
	}
	if len(got) != 1 || got[0].ListingCount != 3 || got[0].OfferCount != 2 {
		t.Errorf("summaries = %+v", got)
	}
}

func TestBusinessesBrowseInvalidCoords(t *testing.T) {
	h := newTestHandler(&fakeEngine{}, newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses?latitude=95&longitude=0", nil)
	rec := httptest.NewRecorder()
	h.Businesses(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBusinessAnalyticsHandler(t *testing.T) {
	store := newFakeStore()
	id := uuid.New()
	store.businesses[id] = &models.Business{ID: id, Name: "Corner Cafe"}
	store.analytics = &models.BusinessAnalytics{
		ListingCount: 4,
		ViewCount:    120,
		LikeCount:    15,
		SaveCount:    6,
	}
	h := newTestHandler(&fakeEngine{}, store)

	req := withChiParam(httptest.NewRequest(http.MethodGet,
		"/api/v1/businesses/"+id.String()+"/analytics", nil), "id", id.String())
	rec := httptest.NewRecorder()
	h.BusinessAnalytics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	data, _ := json.Marshal(resp.Data)
	var got models.BusinessAnalytics
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal analytics: %v", err)
	}
	if got.BusinessID != id || got.ViewCount != 120 || got.SaveCount != 6 {
		t.Errorf("analytics = %+v", got)
	}
}

func TestBusinessAnalyticsUnknownBusiness(t *testing.T) {
	h := newTestHandler(&fakeEngine{}, newFakeStore())

	id := uuid.New()
	req := withChiParam(httptest.NewRequest(http.MethodGet,
		"/api/v1/businesses/"+id.String()+"/analytics", nil), "id", id.String())
	rec := httptest.NewRecorder()
	h.BusinessAnalytics(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCreateInteraction(t *testing.T) {
	store := newFakeStore()
	id := uuid.New()
	store.offers[id] = &models.Offer{ID: id}
	h := newTestHandler(&fakeEngine{}, store)

	body := `{"user_id":"` + uuid.NewString() + `","content_type":"Offer","content_id":"` + id.String() + `","type":"like"}`
	rec := httptest.NewRecorder()
	h.CreateInteraction(rec, httptest.NewRequest(http.MethodPost, "/api/v1/interactions", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if len(store.interactions) != 1 {
		t.Fatalf("recorded %d interactions, want 1", len(store.interactions))
	}
	if store.interactions[0].Type != models.InteractionLike {
		t.Errorf("Type = %q, want like", store.interactions[0].Type)
	}
}

func TestCreateInteractionUnknownContent(t *testing.T) {
	h := newTestHandler(&fakeEngine{}, newFakeStore())

	body := `{"user_id":"` + uuid.NewString() + `","content_type":"Listing","content_id":"` + uuid.NewString() + `","type":"view"}`
	rec := httptest.NewRecorder()
	h.CreateInteraction(rec, httptest.NewRequest(http.MethodPost, "/api/v1/interactions", strings.NewReader(body)))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCreateInteractionRejectsUnknownType(t *testing.T) {
	h := newTestHandler(&fakeEngine{}, newFakeStore())

	body := `{"user_id":"` + uuid.NewString() + `","content_type":"Listing","content_id":"` + uuid.NewString() + `","type":"share"}`
	rec := httptest.NewRecorder()
	h.CreateInteraction(rec, httptest.NewRequest(http.MethodPost, "/api/v1/interactions", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCategoriesCaching(t *testing.T) {
	store := newFakeStore()
	store.categories = []string{"bikes", "food", "music"}
	h := newTestHandler(&fakeEngine{}, store)

	rec := httptest.NewRecorder()
	h.Categories(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp.Metadata.Cached {
		t.Error("first call reported Cached = true")
	}

	rec = httptest.NewRecorder()
	h.Categories(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	if resp := decodeEnvelope(t, rec); !resp.Metadata.Cached {
		t.Error("second call reported Cached = false")
	}
	if store.categoryCalls != 1 {
		t.Errorf("store queried %d times, want 1", store.categoryCalls)
	}
}

func TestHealthReady(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(&fakeEngine{}, store)

	rec := httptest.NewRecorder()
	h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	store.pingErr = errors.New("connection refused")
	rec = httptest.NewRecorder()
	h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status with db down = %d, want 503", rec.Code)
	}
}
