// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Akbarizadeh/nexta-api/internal/database"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// createInteractionRequest is the POST /api/v1/interactions payload.
type createInteractionRequest struct {
	UserID      uuid.UUID `json:"user_id" validate:"required"`
	ContentType string    `json:"content_type" validate:"required,oneof=Listing Event Offer"`
	ContentID   uuid.UUID `json:"content_id" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=view like save"`
}

// CreateInteraction handles POST /api/v1/interactions. It records the
// interaction row and bumps the matching counter on the content record in
// one transaction; an unknown content id yields 404.
func (h *Handler) CreateInteraction(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req createInteractionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	in := &models.Interaction{
		UserID:      req.UserID,
		ContentType: models.ContentKind(req.ContentType),
		ContentID:   req.ContentID,
		Type:        models.InteractionType(req.Type),
	}
	if err := h.store.RecordInteraction(r.Context(), in); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "content item not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to record interaction", err)
		return
	}

	respondSuccess(w, http.StatusCreated, in, started)
}
