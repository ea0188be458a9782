// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Akbarizadeh/nexta-api/internal/database"
	"github.com/Akbarizadeh/nexta-api/internal/geo"
	"github.com/Akbarizadeh/nexta-api/internal/logging"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// browseParams are the pagination and geo filters shared by the three
// per-kind browse endpoints.
type browseParams struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
	RadiusKm  float64 `validate:"gte=0,lte=20000"`
	Page      int     `validate:"min=1"`
	PageSize  int     `validate:"min=1,max=100"`
}

// parseBrowseParams extracts the shared browse parameters with defaults.
func (h *Handler) parseBrowseParams(r *http.Request) browseParams {
	p := browseParams{
		Latitude:  getFloatParam(r, "latitude", 0),
		Longitude: getFloatParam(r, "longitude", 0),
		RadiusKm:  getFloatParam(r, "radius_km", h.cfg.Discovery.DefaultRadiusKm),
		Page:      getIntParam(r, "page", 1),
		PageSize:  getIntParam(r, "page_size", h.cfg.Discovery.DefaultPageSize),
	}
	if p.PageSize > h.cfg.Discovery.MaxPageSize {
		p.PageSize = h.cfg.Discovery.MaxPageSize
	}
	return p
}

// ref returns the browse reference point, nil when both coordinates are 0.
func (p browseParams) ref() *geo.Point {
	if p.Latitude == 0 && p.Longitude == 0 {
		return nil
	}
	return &geo.Point{Lat: p.Latitude, Lon: p.Longitude}
}

// Listings handles GET /api/v1/listings: active listings filtered by
// category, price range and radius.
func (h *Handler) Listings(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	p := h.parseBrowseParams(r)
	if apiErr := validateRequest(&p); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	q := models.ListingSearch{
		Category: r.URL.Query().Get("category"),
		MinPrice: getFloatPtrParam(r, "min_price"),
		MaxPrice: getFloatPtrParam(r, "max_price"),
		Ref:      p.ref(),
		RadiusKm: p.RadiusKm,
		Page:     p.Page,
		PageSize: p.PageSize,
	}

	listings, err := h.store.SearchListings(r.Context(), q)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to search listings", err)
		return
	}
	respondSuccess(w, http.StatusOK, listings, started)
}

// Listing handles GET /api/v1/listings/{id}. A successful fetch bumps the
// listing's view counter; counter failures are logged but never block the
// response.
func (h *Handler) Listing(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "invalid listing id", nil)
		return
	}

	listing, err := h.store.GetListing(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "listing not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to fetch listing", err)
		return
	}

	if err := h.store.IncrementViewCount(r.Context(), models.KindListing, id); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("listing_id", id.String()).
			Msg("view counter bump failed")
	} else {
		listing.ViewCount++
	}

	respondSuccess(w, http.StatusOK, listing, started)
}

// createListingRequest is the POST /api/v1/listings payload.
type createListingRequest struct {
	BusinessID  *uuid.UUID `json:"business_id"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Category    string     `json:"category" validate:"required,max=100"`
	ImageURL    string     `json:"image_url" validate:"omitempty,url,max=500"`
	Price       *float64   `json:"price" validate:"omitempty,gte=0"`
	PriceMin    *float64   `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax    *float64   `json:"price_max" validate:"omitempty,gte=0"`
	Latitude    *float64   `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64   `json:"longitude" validate:"omitempty,longitude"`
}

// CreateListing handles POST /api/v1/listings.
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req createListingRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	if req.PriceMin != nil && req.PriceMax != nil && *req.PriceMin > *req.PriceMax {
		respondError(w, http.StatusBadRequest, codeValidationError,
			"price_min must not exceed price_max", nil)
		return
	}

	listing := &models.Listing{
		BusinessID:  req.BusinessID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		PriceMin:    req.PriceMin,
		PriceMax:    req.PriceMax,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := h.store.CreateListing(r.Context(), listing); err != nil {
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to create listing", err)
		return
	}

	respondSuccess(w, http.StatusCreated, listing, started)
}
