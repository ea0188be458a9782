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

// SearchListings returns active listings matching the browse filters.
// With a reference point the result is ordered by distance ascending and
// radius-filtered; otherwise by creation time descending.
func (db *DB) SearchListings(ctx context.Context, q models.ListingSearch) ([]models.Listing, error) {
	start := time.Now()

	var sb strings.Builder
	sb.WriteString("SELECT " + listingColumns + " FROM listings l LEFT JOIN businesses b ON l.business_id = b.id")
	sb.WriteString(" WHERE l.status = ?")
	args := []interface{}{string(models.ListingActive)}

	if q.Category != "" {
		sb.WriteString(" AND l.category = ?")
		args = append(args, q.Category)
	}
	// Price-range overlap: a listing qualifies when its range reaches the
	// requested bounds. Single-price listings carry the price in all of
	// price/price_min/price_max or just price.
	if q.MinPrice != nil {
		sb.WriteString(" AND (COALESCE(l.price_max, l.price) >= ?)")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		sb.WriteString(" AND (COALESCE(l.price_min, l.price) <= ?)")
		args = append(args, *q.MaxPrice)
	}

	if q.Ref != nil {
		clause, clauseArgs := radiusClause("l", q.Ref, q.RadiusKm)
		sb.WriteString(" AND " + clause)
		args = append(args, clauseArgs...)

		order, orderArgs := distanceOrder("l", q.Ref)
		sb.WriteString(" ORDER BY " + order)
		args = append(args, orderArgs...)
	} else {
		sb.WriteString(" ORDER BY l.created_at DESC")
	}

	sb.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := db.conn.QueryContext(ctx, sb.String(), args...)
	defer observe("search", "listings", start, err)
	if err != nil {
		return nil, fmt.Errorf("search listings query failed: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// GetListing returns one listing by ID, or ErrNotFound.
func (db *DB) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	start := time.Now()

	query := "SELECT " + listingColumns + " FROM listings l LEFT JOIN businesses b ON l.business_id = b.id WHERE l.id = ?"
	row := db.conn.QueryRowContext(ctx, query, id.String())

	l, err := scanListing(row)
	observe("get", "listings", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return &l, nil
}

// CreateListing inserts a listing, assigning ID and CreatedAt when unset.
func (db *DB) CreateListing(ctx context.Context, l *models.Listing) error {
	start := time.Now()

	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	if l.Status == "" {
		l.Status = models.ListingActive
	}

	var businessID interface{}
	if l.BusinessID != nil {
		businessID = l.BusinessID.String()
	}

	_, err := db.conn.ExecContext(ctx, `INSERT INTO listings
		(id, business_id, title, description, category, image_url,
		 price, price_min, price_max, status, latitude, longitude,
		 view_count, like_count, save_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID.String(), businessID, l.Title, nullStr(l.Description), l.Category, nullStr(l.ImageURL),
		l.Price, l.PriceMin, l.PriceMax, string(l.Status), l.Latitude, l.Longitude,
		l.ViewCount, l.LikeCount, l.SaveCount, l.CreatedAt)
	observe("insert", "listings", start, err)
	if err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

// nullStr maps "" to SQL NULL so optional text columns stay nullable.
func nullStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
