// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the tables and indexes. Statements are idempotent
// so startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS businesses (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		description VARCHAR,
		category VARCHAR,
		latitude DOUBLE,
		longitude DOUBLE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id VARCHAR PRIMARY KEY,
		business_id VARCHAR,
		title VARCHAR NOT NULL,
		description VARCHAR,
		category VARCHAR NOT NULL,
		image_url VARCHAR,
		price DOUBLE,
		price_min DOUBLE,
		price_max DOUBLE,
		status VARCHAR NOT NULL DEFAULT 'active',
		latitude DOUBLE,
		longitude DOUBLE,
		view_count INTEGER NOT NULL DEFAULT 0,
		like_count INTEGER NOT NULL DEFAULT 0,
		save_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id VARCHAR PRIMARY KEY,
		business_id VARCHAR NOT NULL,
		title VARCHAR NOT NULL,
		description VARCHAR,
		category VARCHAR NOT NULL,
		image_url VARCHAR,
		price DOUBLE,
		latitude DOUBLE,
		longitude DOUBLE,
		start_date TIMESTAMP NOT NULL,
		end_date TIMESTAMP,
		view_count INTEGER NOT NULL DEFAULT 0,
		like_count INTEGER NOT NULL DEFAULT 0,
		save_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS offers (
		id VARCHAR PRIMARY KEY,
		business_id VARCHAR NOT NULL,
		title VARCHAR NOT NULL,
		description VARCHAR,
		category VARCHAR NOT NULL,
		image_url VARCHAR,
		original_price DOUBLE,
		discounted_price DOUBLE,
		discount_percent DOUBLE,
		latitude DOUBLE,
		longitude DOUBLE,
		start_date TIMESTAMP NOT NULL,
		end_date TIMESTAMP NOT NULL,
		view_count INTEGER NOT NULL DEFAULT 0,
		like_count INTEGER NOT NULL DEFAULT 0,
		save_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_interactions (
		id VARCHAR PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		content_type VARCHAR NOT NULL,
		content_id VARCHAR NOT NULL,
		interaction_type VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_category ON listings (category)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_status ON listings (status)`,
	`CREATE INDEX IF NOT EXISTS idx_events_category ON events (category)`,
	`CREATE INDEX IF NOT EXISTS idx_events_start ON events (start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_category ON offers (category)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_end ON offers (end_date)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_content ON user_interactions (user_id, content_type, content_id)`,
}

// initSchema creates all tables and indexes.
func (db *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
