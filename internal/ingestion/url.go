package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jonathan/vacancy-wizard/internal/fetch"
)

// ErrNoContent is the cause of a NetworkError for pages without readable text.
var ErrNoContent = errors.New("page has no readable text")

// Fetcher turns a job ad URL into a Source.
type Fetcher struct {
	pages    *fetch.CachedFetcher
	renderer fetch.Renderer
	logger   *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithRenderer enables the headless browser fallback for pages whose HTML
// yields too little text.
func WithRenderer(r fetch.Renderer) FetcherOption {
	return func(f *Fetcher) { f.renderer = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = l }
}

// NewFetcher creates a Fetcher. A nil pages fetcher uses an uncached default.
func NewFetcher(pages *fetch.CachedFetcher, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{pages: pages}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	if f.pages == nil {
		f.pages = fetch.NewCachedFetcher(nil, &fetch.CachedFetcherConfig{Logger: f.logger})
	}
	return f
}

// FetchText downloads rawURL and returns its main text. Every failure is a
// *NetworkError.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (*Source, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := fetch.ValidateURL(rawURL); err != nil {
		return nil, &NetworkError{URL: rawURL, Cause: err}
	}

	platform := fetch.DetectPlatform(rawURL)
	f.logger.Info("fetching job ad", "url", rawURL, "platform", platform)

	result, err := f.pages.Fetch(ctx, rawURL)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Cause: err}
	}
	text := CleanText(result.Text)

	rendered := false
	if f.renderer != nil && !result.FromCache && fetch.ShouldUseBrowser(text) {
		f.logger.Info("page text too short, rendering in browser", "url", rawURL, "chars", len(text))
		if browserText, ok := f.render(ctx, rawURL); ok && len(browserText) > len(text) {
			text = browserText
			rendered = true
		}
	}

	if text == "" {
		return nil, &NetworkError{URL: rawURL, Cause: ErrNoContent}
	}

	src := NewSource(SourceURL, rawURL, text)
	src.Platform = string(platform)
	src.FromCache = result.FromCache
	src.Rendered = rendered
	return src, nil
}

func (f *Fetcher) render(ctx context.Context, rawURL string) (string, bool) {
	html, err := f.renderer.Render(ctx, rawURL)
	if err != nil {
		f.logger.Warn("browser rendering failed", "url", rawURL, "error", err)
		return "", false
	}
	text, err := fetch.PageText(html, rawURL)
	if err != nil {
		f.logger.Warn("failed to extract rendered text", "url", rawURL, "error", err)
		return "", false
	}
	text = CleanText(text)
	f.pages.Store(ctx, rawURL, html, text)
	return text, true
}
