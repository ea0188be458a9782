// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Akbarizadeh/nexta-api/internal/config"
	"github.com/Akbarizadeh/nexta-api/internal/logging"
	"github.com/Akbarizadeh/nexta-api/internal/metrics"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// Engine orchestrates one discovery call end to end. It is stateless and
// safe for concurrent use.
type Engine struct {
	stores Stores
	cfg    config.DiscoveryConfig

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewEngine creates a discovery engine over the given content stores.
func NewEngine(stores Stores, cfg config.DiscoveryConfig) *Engine {
	return &Engine{
		stores: stores,
		cfg:    cfg,
		now:    time.Now,
	}
}

// candidateWindow is the per-source fetch cap for one call.
//
// The window is deliberately page-independent. Each source returns its
// candidates in its own fetch order (created_at, start_date, end_date),
// which generally disagrees with the requested rank order; a window that
// grew with the page number would admit new candidates that rank ahead of
// earlier pages' boundaries, so consecutive page calls would repeat and
// drop items. Fetching the same fixed window for every call makes the
// ranked snapshot identical across pages: concatenating pages reproduces
// the full ranked list whenever each source holds at most
// MaxCandidateWindow eligible records.
func (e *Engine) candidateWindow() int {
	return e.cfg.MaxCandidateWindow
}

// sortLabel canonicalizes the requested sort strategy for metric labels.
// The raw request value is user-controlled and must not become a label:
// every distinct value would mint a permanent series in the registry.
func sortLabel(strategy string) string {
	switch strings.ToLower(strategy) {
	case models.SortDistance:
		return models.SortDistance
	case models.SortPopular:
		return models.SortPopular
	case models.SortRecent, "":
		return models.SortRecent
	default:
		return "other"
	}
}

// validate applies defaults and range-checks the request. The sort strategy
// is deliberately not validated: unrecognized values fall back to recency.
func (e *Engine) validate(req *models.DiscoveryRequest) error {
	if req.RadiusKm == 0 {
		req.RadiusKm = e.cfg.DefaultRadiusKm
	}
	if req.Page == 0 {
		req.Page = models.DefaultPage
	}
	if req.PageSize == 0 {
		req.PageSize = e.cfg.DefaultPageSize
	}

	if req.Page < 1 {
		return fmt.Errorf("%w: page must be positive, got %d", ErrInvalidRequest, req.Page)
	}
	if req.PageSize < 1 {
		return fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidRequest, req.PageSize)
	}
	if max := e.cfg.MaxPageSize; max > 0 && req.PageSize > max {
		return fmt.Errorf("%w: page size must be at most %d, got %d", ErrInvalidRequest, max, req.PageSize)
	}
	if req.RadiusKm < 0 {
		return fmt.Errorf("%w: radius must not be negative, got %v", ErrInvalidRequest, req.RadiusKm)
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		return fmt.Errorf("%w: latitude out of range: %v", ErrInvalidRequest, req.Latitude)
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return fmt.Errorf("%w: longitude out of range: %v", ErrInvalidRequest, req.Longitude)
	}
	return nil
}

// Discover executes one discovery call: concurrent fetch from the three
// sources, normalize, merge, rank, paginate.
//
// All three fetches evaluate against the same query (including one shared
// time anchor) so the call behaves as a single logical snapshot intent. Any
// source failure fails the whole call. Cancelling ctx cancels in-flight
// fetches and the call returns the context error.
func (e *Engine) Discover(ctx context.Context, req models.DiscoveryRequest) (*models.DiscoveryResponse, error) {
	if err := e.validate(&req); err != nil {
		metrics.DiscoveryRequestsTotal.WithLabelValues(sortLabel(req.SortBy), "validation_error").Inc()
		return nil, err
	}

	ref := req.ReferencePoint()
	q := models.CandidateQuery{
		Category: req.Category,
		Ref:      ref,
		RadiusKm: req.RadiusKm,
		Limit:    e.candidateWindow(),
		Now:      e.now().UTC(),
	}

	var (
		listings []models.Listing
		events   []models.Event
		offers   []models.Offer

		listingErr, eventErr, offerErr error

		wg sync.WaitGroup
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		start := time.Now()
		listings, listingErr = e.stores.Listings.EligibleListings(ctx, q)
		metrics.RecordSourceFetch("listing", len(listings), time.Since(start))
	}()

	go func() {
		defer wg.Done()
		start := time.Now()
		events, eventErr = e.stores.Events.EligibleEvents(ctx, q)
		metrics.RecordSourceFetch("event", len(events), time.Since(start))
	}()

	go func() {
		defer wg.Done()
		start := time.Now()
		offers, offerErr = e.stores.Offers.EligibleOffers(ctx, q)
		metrics.RecordSourceFetch("offer", len(offers), time.Since(start))
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		metrics.DiscoveryRequestsTotal.WithLabelValues(sortLabel(req.SortBy), "canceled").Inc()
		return nil, err
	}
	if listingErr != nil {
		return nil, e.sourceFailure(sortLabel(req.SortBy), "listing", listingErr)
	}
	if eventErr != nil {
		return nil, e.sourceFailure(sortLabel(req.SortBy), "event", eventErr)
	}
	if offerErr != nil {
		return nil, e.sourceFailure(sortLabel(req.SortBy), "offer", offerErr)
	}

	// Merge order is fixed: listings, then events, then offers, each in its
	// source's default order. Ranking ties preserve this order.
	items := make([]models.DiscoveredItem, 0, len(listings)+len(events)+len(offers))
	for _, l := range listings {
		items = append(items, normalizeListing(l, ref))
	}
	for _, ev := range events {
		items = append(items, normalizeEvent(ev, ref))
	}
	for _, of := range offers {
		items = append(items, normalizeOffer(of, ref))
	}

	rankItems(items, req.SortBy)
	pageItems, total := paginate(items, req.Page, req.PageSize)

	logging.Ctx(ctx).Debug().
		Str("sort", req.SortBy).
		Str("category", req.Category).
		Int("candidates", len(items)).
		Int("page", req.Page).
		Int("returned", len(pageItems)).
		Msg("discovery call completed")

	metrics.DiscoveryRequestsTotal.WithLabelValues(sortLabel(req.SortBy), "success").Inc()
	return &models.DiscoveryResponse{
		Items:      pageItems,
		TotalCount: total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}, nil
}

func (e *Engine) sourceFailure(sort, source string, err error) error {
	metrics.DiscoveryRequestsTotal.WithLabelValues(sort, "source_error").Inc()
	return fmt.Errorf("%w: %s source: %v", ErrSourceUnavailable, source, err)
}
