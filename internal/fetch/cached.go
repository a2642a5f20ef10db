package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/vacancy-wizard/internal/db"
)

// PageCache stores fetched pages between requests. *db.DB implements it.
type PageCache interface {
	GetFreshCrawledPage(ctx context.Context, pageURL string, maxAge time.Duration) (*db.CrawledPage, error)
	ShouldSkipURL(ctx context.Context, pageURL string) (bool, string, error)
	UpsertCrawledPage(ctx context.Context, page *db.CrawledPage) error
	RecordFailedFetch(ctx context.Context, pageURL string, httpStatus int, errorMsg string) error
}

// CachedFetcher fetches pages and reduces them to text, consulting an optional
// PageCache first. With a nil cache every call goes to the network.
type CachedFetcher struct {
	cache    PageCache
	options  *Options
	cacheTTL time.Duration
	logger   *slog.Logger
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL time.Duration
	Options  *Options
	Logger   *slog.Logger
}

// NewCachedFetcher creates a fetcher. cache may be nil.
func NewCachedFetcher(cache PageCache, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = &CachedFetcherConfig{}
	}
	f := &CachedFetcher{
		cache:    cache,
		options:  config.Options,
		cacheTTL: config.CacheTTL,
		logger:   config.Logger,
	}
	if f.options == nil {
		f.options = DefaultOptions()
	}
	if f.cacheTTL <= 0 {
		f.cacheTTL = db.DefaultPageCacheTTL
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
	PageID    uuid.UUID
}

// Fetch returns the page at urlStr with Text already extracted using the
// platform's selectors. Cache failures are logged and never fail the fetch.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if f.cache != nil {
		if skip, reason, err := f.cache.ShouldSkipURL(ctx, urlStr); err != nil {
			f.logger.Warn("page cache lookup failed", "url", urlStr, "error", err)
		} else if skip {
			return nil, &Error{URL: urlStr, Message: fmt.Sprintf("URL skipped: %s", reason)}
		}

		cached, err := f.cache.GetFreshCrawledPage(ctx, urlStr, f.cacheTTL)
		if err != nil {
			f.logger.Warn("page cache lookup failed", "url", urlStr, "error", err)
		} else if cached != nil && derefString(cached.ParsedText) != "" {
			f.logger.Debug("serving page from cache", "url", urlStr, "page_id", cached.ID)
			return &CachedResult{
				Result: &Result{
					URL:        cached.URL,
					HTML:       derefString(cached.RawHTML),
					Text:       derefString(cached.ParsedText),
					StatusCode: derefInt(cached.HTTPStatus),
				},
				FromCache: true,
				PageID:    cached.ID,
			}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		if f.cache != nil {
			statusCode := 0
			if result != nil {
				statusCode = result.StatusCode
			}
			if recErr := f.cache.RecordFailedFetch(ctx, urlStr, statusCode, err.Error()); recErr != nil {
				f.logger.Warn("failed to record fetch failure", "url", urlStr, "error", recErr)
			}
		}
		return nil, err
	}

	text, err := PageText(result.HTML, urlStr)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	result.Text = text

	out := &CachedResult{Result: result}
	if f.cache != nil && text != "" {
		page := &db.CrawledPage{
			URL:         urlStr,
			RawHTML:     &result.HTML,
			ParsedText:  &result.Text,
			HTTPStatus:  &result.StatusCode,
			FetchStatus: db.FetchStatusSuccess,
		}
		if err := f.cache.UpsertCrawledPage(ctx, page); err != nil {
			f.logger.Warn("failed to cache page", "url", urlStr, "error", err)
		} else {
			out.PageID = page.ID
		}
	}
	return out, nil
}

// Store caches text obtained outside Fetch, such as a browser render.
func (f *CachedFetcher) Store(ctx context.Context, urlStr, html, text string) {
	if f.cache == nil || text == "" {
		return
	}
	status := 200
	page := &db.CrawledPage{
		URL:         urlStr,
		RawHTML:     &html,
		ParsedText:  &text,
		HTTPStatus:  &status,
		FetchStatus: db.FetchStatusSuccess,
	}
	if err := f.cache.UpsertCrawledPage(ctx, page); err != nil {
		f.logger.Warn("failed to cache page", "url", urlStr, "error", err)
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
