package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the extracted text length below which a page is treated
// as script-rendered and retried in a headless browser.
const MinContentLength = 500

// DefaultBrowserTimeout bounds a headless render.
const DefaultBrowserTimeout = 30 * time.Second

// ShouldUseBrowser reports whether the extracted text is too short to be a
// real job description.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Renderer renders a page and returns its final HTML.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// ChromeRenderer renders pages with a local headless Chrome or Chromium.
type ChromeRenderer struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

// Render navigates to url, waits for the body, dismisses common cookie
// banners and returns the outer HTML of the document.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}

	logger.Debug("starting headless browser", "url", url)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Banner buttons are optional; a miss is not an error.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"], #onetrust-accept-btn-handler`, chromedp.NodeVisible, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	logger.Debug("rendered page", "url", url, "bytes", len(html))
	return html, nil
}
