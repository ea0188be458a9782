// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func f64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func strOr(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func uuidPtr(v sql.NullString) (*uuid.UUID, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v.String)
	if err != nil {
		return nil, fmt.Errorf("invalid uuid %q: %w", v.String, err)
	}
	return &id, nil
}

// listingColumns is the select list every listing query must use, in the
// order scanListing expects.
const listingColumns = `l.id, l.business_id, b.name, l.title, l.description, l.category,
	l.image_url, l.price, l.price_min, l.price_max, l.status, l.latitude, l.longitude,
	l.view_count, l.like_count, l.save_count, l.created_at`

func scanListing(row rowScanner) (models.Listing, error) {
	var (
		l           models.Listing
		idStr       string
		businessID  sql.NullString
		bizName     sql.NullString
		description sql.NullString
		imageURL    sql.NullString
		price       sql.NullFloat64
		priceMin    sql.NullFloat64
		priceMax    sql.NullFloat64
		status      string
		lat, lon    sql.NullFloat64
	)

	err := row.Scan(&idStr, &businessID, &bizName, &l.Title, &description, &l.Category,
		&imageURL, &price, &priceMin, &priceMax, &status, &lat, &lon,
		&l.ViewCount, &l.LikeCount, &l.SaveCount, &l.CreatedAt)
	if err != nil {
		return l, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return l, fmt.Errorf("invalid listing id %q: %w", idStr, err)
	}
	l.ID = id
	if l.BusinessID, err = uuidPtr(businessID); err != nil {
		return l, err
	}
	l.BusinessName = strOr(bizName)
	l.Description = strOr(description)
	l.ImageURL = strOr(imageURL)
	l.Price = f64Ptr(price)
	l.PriceMin = f64Ptr(priceMin)
	l.PriceMax = f64Ptr(priceMax)
	l.Status = models.ListingStatus(status)
	l.Latitude = f64Ptr(lat)
	l.Longitude = f64Ptr(lon)
	return l, nil
}

// eventColumns is the select list every event query must use.
const eventColumns = `e.id, e.business_id, b.name, e.title, e.description, e.category,
	e.image_url, e.price, e.latitude, e.longitude, e.start_date, e.end_date,
	e.view_count, e.like_count, e.save_count, e.created_at`

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		ev          models.Event
		idStr       string
		bizIDStr    string
		bizName     sql.NullString
		description sql.NullString
		imageURL    sql.NullString
		price       sql.NullFloat64
		lat, lon    sql.NullFloat64
		endDate     sql.NullTime
	)

	err := row.Scan(&idStr, &bizIDStr, &bizName, &ev.Title, &description, &ev.Category,
		&imageURL, &price, &lat, &lon, &ev.StartDate, &endDate,
		&ev.ViewCount, &ev.LikeCount, &ev.SaveCount, &ev.CreatedAt)
	if err != nil {
		return ev, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return ev, fmt.Errorf("invalid event id %q: %w", idStr, err)
	}
	ev.ID = id
	bizID, err := uuid.Parse(bizIDStr)
	if err != nil {
		return ev, fmt.Errorf("invalid business id %q: %w", bizIDStr, err)
	}
	ev.BusinessID = bizID
	ev.BusinessName = strOr(bizName)
	ev.Description = strOr(description)
	ev.ImageURL = strOr(imageURL)
	ev.Price = f64Ptr(price)
	ev.Latitude = f64Ptr(lat)
	ev.Longitude = f64Ptr(lon)
	ev.EndDate = timePtr(endDate)
	return ev, nil
}

// offerColumns is the select list every offer query must use.
const offerColumns = `o.id, o.business_id, b.name, o.title, o.description, o.category,
	o.image_url, o.original_price, o.discounted_price, o.discount_percent,
	o.latitude, o.longitude, o.start_date, o.end_date,
	o.view_count, o.like_count, o.save_count, o.created_at`

func scanOffer(row rowScanner) (models.Offer, error) {
	var (
		of          models.Offer
		idStr       string
		bizIDStr    string
		bizName     sql.NullString
		description sql.NullString
		imageURL    sql.NullString
		origPrice   sql.NullFloat64
		discPrice   sql.NullFloat64
		discPct     sql.NullFloat64
		lat, lon    sql.NullFloat64
	)

	err := row.Scan(&idStr, &bizIDStr, &bizName, &of.Title, &description, &of.Category,
		&imageURL, &origPrice, &discPrice, &discPct, &lat, &lon,
		&of.StartDate, &of.EndDate,
		&of.ViewCount, &of.LikeCount, &of.SaveCount, &of.CreatedAt)
	if err != nil {
		return of, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return of, fmt.Errorf("invalid offer id %q: %w", idStr, err)
	}
	of.ID = id
	bizID, err := uuid.Parse(bizIDStr)
	if err != nil {
		return of, fmt.Errorf("invalid business id %q: %w", bizIDStr, err)
	}
	of.BusinessID = bizID
	of.BusinessName = strOr(bizName)
	of.Description = strOr(description)
	of.ImageURL = strOr(imageURL)
	of.OriginalPrice = f64Ptr(origPrice)
	of.DiscountedPrice = f64Ptr(discPrice)
	of.DiscountPercent = f64Ptr(discPct)
	of.Latitude = f64Ptr(lat)
	of.Longitude = f64Ptr(lon)
	return of, nil
}
