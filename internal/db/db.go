// Package db provides the PostgreSQL page cache used when fetching job ads by URL.
// Vacancy records themselves are never stored.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS crawled_pages (
    id                   UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    url                  TEXT NOT NULL UNIQUE,
    raw_html             TEXT,
    parsed_text          TEXT,
    content_hash         TEXT,
    http_status          INTEGER,
    fetch_status         TEXT NOT NULL DEFAULT 'success',
    error_message        TEXT,
    is_permanent_failure BOOLEAN NOT NULL DEFAULT FALSE,
    retry_count          INTEGER NOT NULL DEFAULT 0,
    retry_after          TIMESTAMPTZ,
    fetched_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    expires_at           TIMESTAMPTZ,
    last_accessed_at     TIMESTAMPTZ,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_crawled_pages_expires_at ON crawled_pages (expires_at);
`

// EnsureSchema creates the page cache table when it does not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
