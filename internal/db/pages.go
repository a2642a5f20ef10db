package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const pageColumns = `id, url, raw_html, parsed_text, content_hash,
	http_status, fetch_status, error_message, is_permanent_failure, retry_count, retry_after,
	fetched_at, expires_at, last_accessed_at, created_at, updated_at`

func scanPage(row pgx.Row) (*CrawledPage, error) {
	var p CrawledPage
	err := row.Scan(&p.ID, &p.URL, &p.RawHTML, &p.ParsedText, &p.ContentHash,
		&p.HTTPStatus, &p.FetchStatus, &p.ErrorMessage, &p.IsPermanentFailure, &p.RetryCount, &p.RetryAfter,
		&p.FetchedAt, &p.ExpiresAt, &p.LastAccessedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetCrawledPageByURL retrieves a cached page by URL. A missing page is (nil, nil).
func (db *DB) GetCrawledPageByURL(ctx context.Context, pageURL string) (*CrawledPage, error) {
	page, err := scanPage(db.pool.QueryRow(ctx,
		`SELECT `+pageColumns+` FROM crawled_pages WHERE url = $1`, pageURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get crawled page: %w", err)
	}
	return page, nil
}

// GetFreshCrawledPage retrieves a page only if it's not stale and was successful
func (db *DB) GetFreshCrawledPage(ctx context.Context, pageURL string, maxAge time.Duration) (*CrawledPage, error) {
	page, err := db.GetCrawledPageByURL(ctx, pageURL)
	if err != nil || page == nil {
		return nil, err
	}
	if !page.IsFresh(maxAge) || page.FetchStatus != FetchStatusSuccess {
		return nil, nil
	}

	_ = db.TouchCrawledPage(ctx, page.ID)
	return page, nil
}

// ShouldSkipURL checks if a URL should be skipped due to a previous permanent
// failure or a pending retry backoff.
func (db *DB) ShouldSkipURL(ctx context.Context, pageURL string) (bool, string, error) {
	page, err := db.GetCrawledPageByURL(ctx, pageURL)
	if err != nil {
		return false, "", err
	}
	if page == nil {
		return false, "", nil
	}

	if page.IsPermanentFailure {
		reason := "permanent failure"
		if page.ErrorMessage != nil {
			reason = *page.ErrorMessage
		}
		return true, reason, nil
	}
	if page.RetryAfter != nil && time.Now().Before(*page.RetryAfter) {
		return true, "retry backoff", nil
	}
	return false, "", nil
}

// UpsertCrawledPage inserts or updates a successfully fetched page and fills
// in its ID and timestamps.
func (db *DB) UpsertCrawledPage(ctx context.Context, page *CrawledPage) error {
	var contentHash *string
	if page.RawHTML != nil {
		hash := HashContent(*page.RawHTML)
		contentHash = &hash
	}

	expiresAt := page.ExpiresAt
	if expiresAt == nil {
		t := time.Now().Add(DefaultPageCacheTTL)
		expiresAt = &t
	}

	fetchStatus := page.FetchStatus
	if fetchStatus == "" {
		fetchStatus = FetchStatusSuccess
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO crawled_pages (url, raw_html, parsed_text, content_hash,
		                            http_status, fetch_status, error_message, is_permanent_failure,
		                            retry_count, fetched_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, NOW(), $9)
		 ON CONFLICT (url) DO UPDATE SET
		     raw_html = $2,
		     parsed_text = $3,
		     content_hash = $4,
		     http_status = $5,
		     fetch_status = $6,
		     error_message = $7,
		     is_permanent_failure = $8,
		     retry_count = 0,
		     retry_after = NULL,
		     fetched_at = NOW(),
		     expires_at = $9,
		     updated_at = NOW()
		 RETURNING id, fetched_at, created_at, updated_at`,
		page.URL, page.RawHTML, page.ParsedText, contentHash,
		page.HTTPStatus, fetchStatus, page.ErrorMessage, page.IsPermanentFailure, expiresAt,
	).Scan(&page.ID, &page.FetchedAt, &page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert crawled page: %w", err)
	}
	page.ContentHash = contentHash
	page.ExpiresAt = expiresAt
	page.FetchStatus = fetchStatus
	return nil
}

// RecordFailedFetch records a failed fetch. Transient failures back off
// 1 min, 5 min, 25 min, then 2 hours; permanent ones are never retried.
func (db *DB) RecordFailedFetch(ctx context.Context, pageURL string, httpStatus int, errorMsg string) error {
	fetchStatus := FetchStatusFromHTTP(httpStatus)
	isPermanent := IsPermanentHTTPStatus(httpStatus)

	_, err := db.pool.Exec(ctx,
		`INSERT INTO crawled_pages (url, http_status, fetch_status, error_message, is_permanent_failure, retry_count, retry_after, fetched_at)
		 VALUES ($1, $2, $3, $4, $5, 1,
		         CASE WHEN $5 THEN NULL ELSE NOW() + INTERVAL '1 minute' END,
		         NOW())
		 ON CONFLICT (url) DO UPDATE SET
		     http_status = $2,
		     fetch_status = $3,
		     error_message = $4,
		     is_permanent_failure = $5 OR crawled_pages.is_permanent_failure,
		     retry_count = crawled_pages.retry_count + 1,
		     retry_after = CASE
		         WHEN $5 OR crawled_pages.is_permanent_failure THEN NULL
		         ELSE NOW() + LEAST(
		             INTERVAL '1 minute' * POWER(5, LEAST(crawled_pages.retry_count, 3)),
		             INTERVAL '2 hours'
		         )
		     END,
		     fetched_at = NOW(),
		     updated_at = NOW()`,
		pageURL, httpStatus, fetchStatus, errorMsg, isPermanent,
	)
	if err != nil {
		return fmt.Errorf("failed to record failed fetch: %w", err)
	}
	return nil
}

// TouchCrawledPage updates the last_accessed_at timestamp
func (db *DB) TouchCrawledPage(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE crawled_pages SET last_accessed_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to touch crawled page: %w", err)
	}
	return nil
}

// DeleteExpiredPages removes successful pages past their expiry and returns
// how many were deleted. Failure records are kept for their backoff state.
func (db *DB) DeleteExpiredPages(ctx context.Context) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM crawled_pages WHERE fetch_status = $1 AND expires_at < NOW()`,
		FetchStatusSuccess)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired pages: %w", err)
	}
	return tag.RowsAffected(), nil
}
