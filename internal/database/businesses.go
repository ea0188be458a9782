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

// GetBusiness returns one business by ID, or ErrNotFound.
func (db *DB) GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	start := time.Now()

	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, description, category, latitude, longitude, created_at
		 FROM businesses WHERE id = ?`, id.String())

	var (
		biz         models.Business
		idStr       string
		description sql.NullString
		category    sql.NullString
		lat, lon    sql.NullFloat64
	)
	err := row.Scan(&idStr, &biz.Name, &description, &category, &lat, &lon, &biz.CreatedAt)
	observe("get", "businesses", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get business: %w", err)
	}

	parsed, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid business id %q: %w", idStr, err)
	}
	biz.ID = parsed
	biz.Description = strOr(description)
	biz.Category = strOr(category)
	biz.Latitude = f64Ptr(lat)
	biz.Longitude = f64Ptr(lon)
	return &biz, nil
}

// CreateBusiness inserts a business, assigning ID and CreatedAt when unset.
func (db *DB) CreateBusiness(ctx context.Context, biz *models.Business) error {
	start := time.Now()

	if biz.ID == uuid.Nil {
		biz.ID = uuid.New()
	}
	if biz.CreatedAt.IsZero() {
		biz.CreatedAt = time.Now().UTC()
	}

	_, err := db.conn.ExecContext(ctx, `INSERT INTO businesses
		(id, name, description, category, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		biz.ID.String(), biz.Name, nullStr(biz.Description), nullStr(biz.Category),
		biz.Latitude, biz.Longitude, biz.CreatedAt)
	observe("insert", "businesses", start, err)
	if err != nil {
		return fmt.Errorf("create business: %w", err)
	}
	return nil
}

// businessSummaryColumns selects a business row plus its content counts.
// Listing count covers active listings only; event and offer counts cover
// everything the business owns.
const businessSummaryColumns = `b.id, b.name, b.description, b.category,
	b.latitude, b.longitude, b.created_at,
	(SELECT COUNT(*) FROM listings l WHERE l.business_id = b.id AND l.status = 'active'),
	(SELECT COUNT(*) FROM events e WHERE e.business_id = b.id),
	(SELECT COUNT(*) FROM offers o WHERE o.business_id = b.id)`

// SearchBusinesses returns businesses matching the browse filters, each
// with its content counts. With a reference point the result is ordered by
// distance ascending and radius-filtered; otherwise by creation time
// descending.
func (db *DB) SearchBusinesses(ctx context.Context, q models.BusinessSearch) ([]models.BusinessSummary, error) {
	start := time.Now()

	var sb strings.Builder
	sb.WriteString("SELECT " + businessSummaryColumns + " FROM businesses b WHERE 1 = 1")
	var args []interface{}

	if q.Category != "" {
		sb.WriteString(" AND b.category = ?")
		args = append(args, q.Category)
	}
	if q.Ref != nil {
		clause, clauseArgs := radiusClause("b", q.Ref, q.RadiusKm)
		sb.WriteString(" AND " + clause)
		args = append(args, clauseArgs...)

		order, orderArgs := distanceOrder("b", q.Ref)
		sb.WriteString(" ORDER BY " + order)
		args = append(args, orderArgs...)
	} else {
		sb.WriteString(" ORDER BY b.created_at DESC")
	}

	sb.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := db.conn.QueryContext(ctx, sb.String(), args...)
	defer observe("search", "businesses", start, err)
	if err != nil {
		return nil, fmt.Errorf("search businesses query failed: %w", err)
	}
	defer rows.Close()

	var summaries []models.BusinessSummary
	for rows.Next() {
		var (
			s           models.BusinessSummary
			idStr       string
			description sql.NullString
			category    sql.NullString
			lat, lon    sql.NullFloat64
		)
		if err := rows.Scan(&idStr, &s.Name, &description, &category, &lat, &lon,
			&s.CreatedAt, &s.ListingCount, &s.EventCount, &s.OfferCount); err != nil {
			return nil, fmt.Errorf("scan business summary: %w", err)
		}
		parsed, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid business id %q: %w", idStr, err)
		}
		s.ID = parsed
		s.Description = strOr(description)
		s.Category = strOr(category)
		s.Latitude = f64Ptr(lat)
		s.Longitude = f64Ptr(lon)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// BusinessAnalytics aggregates content counts and engagement counters
// across everything the business owns. Returns ErrNotFound for an unknown
// business.
func (db *DB) BusinessAnalytics(ctx context.Context, id uuid.UUID) (*models.BusinessAnalytics, error) {
	if _, err := db.GetBusiness(ctx, id); err != nil {
		return nil, err
	}

	start := time.Now()
	bid := id.String()

	// Sums over INTEGER widen in DuckDB; cast back so database/sql scans
	// them as int64.
	row := db.conn.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM listings WHERE business_id = ?),
		(SELECT COUNT(*) FROM events WHERE business_id = ?),
		(SELECT COUNT(*) FROM offers WHERE business_id = ?),
		CAST((SELECT COALESCE(SUM(view_count), 0) FROM listings WHERE business_id = ?)
		   + (SELECT COALESCE(SUM(view_count), 0) FROM events WHERE business_id = ?)
		   + (SELECT COALESCE(SUM(view_count), 0) FROM offers WHERE business_id = ?) AS BIGINT),
		CAST((SELECT COALESCE(SUM(like_count), 0) FROM listings WHERE business_id = ?)
		   + (SELECT COALESCE(SUM(like_count), 0) FROM events WHERE business_id = ?)
		   + (SELECT COALESCE(SUM(like_count), 0) FROM offers WHERE business_id = ?) AS BIGINT),
		CAST((SELECT COALESCE(SUM(save_count), 0) FROM listings WHERE business_id = ?)
		   + (SELECT COALESCE(SUM(save_count), 0) FROM events WHERE business_id = ?)
		   + (SELECT COALESCE(SUM(save_count), 0) FROM offers WHERE business_id = ?) AS BIGINT)`,
		bid, bid, bid, bid, bid, bid, bid, bid, bid, bid, bid, bid)

	a := models.BusinessAnalytics{BusinessID: id}
	err := row.Scan(&a.ListingCount, &a.EventCount, &a.OfferCount,
		&a.ViewCount, &a.LikeCount, &a.SaveCount)
	observe("analytics", "businesses", start, err)
	if err != nil {
		return nil, fmt.Errorf("business analytics: %w", err)
	}
	return &a, nil
}

// Categories returns the distinct categories across all three content
// kinds, sorted alphabetically.
func (db *DB) Categories(ctx context.Context) ([]string, error) {
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT DISTINCT category FROM (
			SELECT category FROM listings WHERE status = 'active'
			UNION ALL SELECT category FROM events
			UNION ALL SELECT category FROM offers
		) WHERE category IS NOT NULL AND category <> ''
		ORDER BY category`)
	defer observe("list", "categories", start, err)
	if err != nil {
		return nil, fmt.Errorf("categories query failed: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
