// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// SearchOffers returns unexpired offers matching the browse filters,
// ordered soonest-expiring first.
func (db *DB) SearchOffers(ctx context.Context, q models.OfferSearch) ([]models.Offer, error) {
	start := time.Now()

	var sb strings.Builder
	sb.WriteString("SELECT " + offerColumns + " FROM offers o LEFT JOIN businesses b ON o.business_id = b.id")
	sb.WriteString(" WHERE o.end_date > ?")
	args := []interface{}{q.Now}

	if q.Category != "" {
		sb.WriteString(" AND o.category = ?")
		args = append(args, q.Category)
	}
	if q.Ref != nil {
		clause, clauseArgs := radiusClause("o", q.Ref, q.RadiusKm)
		sb.WriteString(" AND " + clause)
		args = append(args, clauseArgs...)
	}
	sb.WriteString(" ORDER BY o.end_date ASC LIMIT ? OFFSET ?")
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := db.conn.QueryContext(ctx, sb.String(), args...)
	defer observe("search", "offers", start, err)
	if err != nil {
		return nil, fmt.Errorf("search offers query failed: %w", err)
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		of, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, of)
	}
	return offers, rows.Err()
}

// GetOffer returns one offer by ID, or ErrNotFound.
func (db *DB) GetOffer(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	start := time.Now()

	query := "SELECT " + offerColumns + " FROM offers o LEFT JOIN businesses b ON o.business_id = b.id WHERE o.id = ?"
	row := db.conn.QueryRowContext(ctx, query, id.String())

	of, err := scanOffer(row)
	observe("get", "offers", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return &of, nil
}

// CreateOffer inserts an offer, assigning ID and CreatedAt when unset.
func (db *DB) CreateOffer(ctx context.Context, of *models.Offer) error {
	start := time.Now()

	if of.ID == uuid.Nil {
		of.ID = uuid.New()
	}
	if of.CreatedAt.IsZero() {
		of.CreatedAt = time.Now().UTC()
	}

	_, err := db.conn.ExecContext(ctx, `INSERT INTO offers
		(id, business_id, title, description, category, image_url,
		 original_price, discounted_price, discount_percent,
		 latitude, longitude, start_date, end_date,
		 view_count, like_count, save_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		of.ID.String(), of.BusinessID.String(), of.Title, nullStr(of.Description), of.Category,
		nullStr(of.ImageURL), of.OriginalPrice, of.DiscountedPrice, of.DiscountPercent,
		of.Latitude, of.Longitude, of.StartDate, of.EndDate,
		of.ViewCount, of.LikeCount, of.SaveCount, of.CreatedAt)
	observe("insert", "offers", start, err)
	if err != nil {
		return fmt.Errorf("create offer: %w", err)
	}
	return nil
}
