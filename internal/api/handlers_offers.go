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
	"github.com/Akbarizadeh/nexta-api/internal/logging"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// Offers handles GET /api/v1/offers: unexpired offers filtered by category
// and radius, soonest-expiring first.
func (h *Handler) Offers(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	p := h.parseBrowseParams(r)
	if apiErr := validateRequest(&p); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	q := models.OfferSearch{
		Category: r.URL.Query().Get("category"),
		Ref:      p.ref(),
		RadiusKm: p.RadiusKm,
		Now:      time.Now().UTC(),
		Page:     p.Page,
		PageSize: p.PageSize,
	}

	offers, err := h.store.SearchOffers(r.Context(), q)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to search offers", err)
		return
	}
	respondSuccess(w, http.StatusOK, offers, started)
}

// Offer handles GET /api/v1/offers/{id} with a best-effort view bump.
func (h *Handler) Offer(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "invalid offer id", nil)
		return
	}

	offer, err := h.store.GetOffer(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "offer not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to fetch offer", err)
		return
	}

	if err := h.store.IncrementViewCount(r.Context(), models.KindOffer, id); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("offer_id", id.String()).
			Msg("view counter bump failed")
	} else {
		offer.ViewCount++
	}

	respondSuccess(w, http.StatusOK, offer, started)
}

// createOfferRequest is the POST /api/v1/offers payload. EndDate is
// mandatory; expired offers are rejected at creation.
type createOfferRequest struct {
	BusinessID      uuid.UUID `json:"business_id" validate:"required"`
	Title           string    `json:"title" validate:"required,max=200"`
	Description     string    `json:"description" validate:"max=2000"`
	Category        string    `json:"category" validate:"required,max=100"`
	ImageURL        string    `json:"image_url" validate:"omitempty,url,max=500"`
	OriginalPrice   *float64  `json:"original_price" validate:"omitempty,gte=0"`
	DiscountedPrice *float64  `json:"discounted_price" validate:"omitempty,gte=0"`
	DiscountPercent *float64  `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	Latitude        *float64  `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64  `json:"longitude" validate:"omitempty,longitude"`
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" validate:"required"`
}

// CreateOffer handles POST /api/v1/offers.
func (h *Handler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req createOfferRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	if !req.EndDate.After(req.StartDate) {
		respondError(w, http.StatusBadRequest, codeValidationError,
			"end_date must be after start_date", nil)
		return
	}
	if !req.EndDate.After(time.Now().UTC()) {
		respondError(w, http.StatusBadRequest, codeValidationError,
			"end_date must be in the future", nil)
		return
	}

	offer := &models.Offer{
		BusinessID:      req.BusinessID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		OriginalPrice:   req.OriginalPrice,
		DiscountedPrice: req.DiscountedPrice,
		DiscountPercent: req.DiscountPercent,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	}
	if err := h.store.CreateOffer(r.Context(), offer); err != nil {
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to create offer", err)
		return
	}

	respondSuccess(w, http.StatusCreated, offer, started)
}
