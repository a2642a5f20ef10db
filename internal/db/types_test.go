package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashContent(t *testing.T) {
	hash1 := HashContent("Senior Data Scientist")
	hash2 := HashContent("Senior Data Scientist")
	hash3 := HashContent("Junior Data Scientist")

	assert.Equal(t, hash1, hash2)
	assert.NotEqual(t, hash1, hash3)
	assert.Len(t, hash1, 64)
}

func TestFetchStatusFromHTTP(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{200, FetchStatusSuccess},
		{204, FetchStatusSuccess},
		{404, FetchStatusNotFound},
		{410, FetchStatusNotFound},
		{403, FetchStatusBlocked},
		{429, FetchStatusBlocked},
		{500, FetchStatusError},
		{0, FetchStatusTimeout},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FetchStatusFromHTTP(tt.status), "status %d", tt.status)
	}
}

func TestIsPermanentHTTPStatus(t *testing.T) {
	assert.True(t, IsPermanentHTTPStatus(404))
	assert.True(t, IsPermanentHTTPStatus(410))
	assert.True(t, IsPermanentHTTPStatus(451))
	assert.False(t, IsPermanentHTTPStatus(429))
	assert.False(t, IsPermanentHTTPStatus(500))
}

func TestCrawledPage_Freshness(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name      string
		page      CrawledPage
		maxAge    time.Duration
		wantFresh bool
		wantExpd  bool
	}{
		{
			name:      "recent without expiry",
			page:      CrawledPage{FetchedAt: time.Now().Add(-time.Minute)},
			maxAge:    time.Hour,
			wantFresh: true,
		},
		{
			name:   "older than max age",
			page:   CrawledPage{FetchedAt: time.Now().Add(-2 * time.Hour)},
			maxAge: time.Hour,
		},
		{
			name:     "recent but expired",
			page:     CrawledPage{FetchedAt: time.Now().Add(-time.Minute), ExpiresAt: &past},
			maxAge:   time.Hour,
			wantExpd: true,
		},
		{
			name:      "recent with future expiry",
			page:      CrawledPage{FetchedAt: time.Now(), ExpiresAt: &future},
			maxAge:    time.Hour,
			wantFresh: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFresh, tt.page.IsFresh(tt.maxAge))
			assert.Equal(t, tt.wantExpd, tt.page.IsExpired())
		})
	}
}
