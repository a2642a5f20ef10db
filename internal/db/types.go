package db

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// CrawledPage is a cached fetch of one job ad URL.
type CrawledPage struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	RawHTML     *string   `json:"raw_html,omitempty"`
	ParsedText  *string   `json:"parsed_text,omitempty"`
	ContentHash *string   `json:"content_hash,omitempty"`

	HTTPStatus         *int       `json:"http_status,omitempty"`
	FetchStatus        string     `json:"fetch_status"` // 'success', 'error', 'not_found', 'timeout', 'blocked'
	ErrorMessage       *string    `json:"error_message,omitempty"`
	IsPermanentFailure bool       `json:"is_permanent_failure"`
	RetryCount         int        `json:"retry_count"`
	RetryAfter         *time.Time `json:"retry_after,omitempty"`

	FetchedAt      time.Time  `json:"fetched_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// FetchStatus values for crawled pages
const (
	FetchStatusSuccess  = "success"
	FetchStatusError    = "error"
	FetchStatusNotFound = "not_found"
	FetchStatusTimeout  = "timeout"
	FetchStatusBlocked  = "blocked"
)

// DefaultPageCacheTTL is how long a fetched job ad is served from cache.
const DefaultPageCacheTTL = 24 * time.Hour

// IsPermanentHTTPStatus returns true for status codes that indicate permanent failure
func IsPermanentHTTPStatus(status int) bool {
	switch status {
	case 404, 410, 451:
		return true
	default:
		return false
	}
}

// FetchStatusFromHTTP determines fetch status from HTTP status code
func FetchStatusFromHTTP(status int) string {
	switch {
	case status >= 200 && status < 300:
		return FetchStatusSuccess
	case status == 404 || status == 410:
		return FetchStatusNotFound
	case status == 403 || status == 429:
		return FetchStatusBlocked
	case status == 0:
		return FetchStatusTimeout
	default:
		return FetchStatusError
	}
}

// HashContent computes SHA-256 hash of content for change detection
func HashContent(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// IsExpired returns true if the page cache has expired
func (p *CrawledPage) IsExpired() bool {
	if p.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*p.ExpiresAt)
}

// IsFresh returns true if the page was fetched within maxAge and has not expired
func (p *CrawledPage) IsFresh(maxAge time.Duration) bool {
	return time.Since(p.FetchedAt) < maxAge && !p.IsExpired()
}
