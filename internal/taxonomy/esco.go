// Package taxonomy looks up skills and tasks in the ESCO classification.
// Lookups never fail: errors are logged and yield empty results.
package taxonomy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBaseURL is the public ESCO REST API.
	DefaultBaseURL = "https://ec.europa.eu/esco/api"
	// DefaultTimeout bounds each ESCO request.
	DefaultTimeout = 10 * time.Second
	// DefaultLimit is the result count used when a caller passes zero.
	DefaultLimit = 10
)

// Client is an ESCO API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	onFailure  func(op string, err error)

	mu          sync.Mutex
	occupations map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another ESCO deployment.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for failed lookups.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithFailureHook is called for every failed request, after logging.
func WithFailureHook(fn func(op string, err error)) Option {
	return func(c *Client) { c.onFailure = fn }
}

// NewClient creates an ESCO client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		occupations: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

type searchResponse struct {
	Embedded struct {
		Results []struct {
			URI   string `json:"uri"`
			Title string `json:"title"`
		} `json:"results"`
	} `json:"_embedded"`
}

type relatedResponse struct {
	Embedded struct {
		HasEssentialSkill []struct {
			Title string `json:"title"`
		} `json:"hasEssentialSkill"`
	} `json:"_embedded"`
}

type occupationResponse struct {
	Description map[string]struct {
		Literal string `json:"literal"`
	} `json:"description"`
}

// SearchSkills returns the titles of skills matching query.
func (c *Client) SearchSkills(ctx context.Context, query, lang string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	limit = normalizeLimit(limit)

	var resp searchResponse
	err := c.get(ctx, "/search", url.Values{
		"text":     {query},
		"language": {lang},
		"type":     {"skill"},
		"limit":    {strconv.Itoa(limit)},
	}, &resp)
	if err != nil {
		c.fail("search_skills", err)
		return nil
	}

	titles := make([]string, 0, len(resp.Embedded.Results))
	for _, r := range resp.Embedded.Results {
		if r.Title != "" {
			titles = append(titles, r.Title)
		}
	}
	return truncate(titles, limit)
}

// SkillsForTitle returns the essential skills of the occupation best matching title.
func (c *Client) SkillsForTitle(ctx context.Context, title, lang string, limit int) []string {
	limit = normalizeLimit(limit)
	uri, err := c.occupationURI(ctx, title, lang)
	if err != nil {
		c.fail("skills_for_title", err)
		return nil
	}
	if uri == "" {
		return nil
	}

	var resp relatedResponse
	err = c.get(ctx, "/resource/related", url.Values{
		"uri":      {uri},
		"relation": {"hasEssentialSkill"},
		"language": {lang},
		"limit":    {strconv.Itoa(limit)},
		"full":     {"false"},
	}, &resp)
	if err != nil {
		c.fail("skills_for_title", err)
		return nil
	}

	skills := make([]string, 0, len(resp.Embedded.HasEssentialSkill))
	for _, s := range resp.Embedded.HasEssentialSkill {
		if s.Title != "" {
			skills = append(skills, s.Title)
		}
	}
	return truncate(skills, limit)
}

// TasksForTitle splits the occupation description of title into sentences.
func (c *Client) TasksForTitle(ctx context.Context, title, lang string, limit int) []string {
	limit = normalizeLimit(limit)
	uri, err := c.occupationURI(ctx, title, lang)
	if err != nil {
		c.fail("tasks_for_title", err)
		return nil
	}
	if uri == "" {
		return nil
	}

	var resp occupationResponse
	err = c.get(ctx, "/resource/occupation", url.Values{
		"uri":      {uri},
		"language": {lang},
	}, &resp)
	if err != nil {
		c.fail("tasks_for_title", err)
		return nil
	}

	var tasks []string
	for _, sentence := range strings.Split(resp.Description[lang].Literal, ".") {
		if sentence = strings.TrimSpace(sentence); sentence != "" {
			tasks = append(tasks, sentence)
		}
	}
	return truncate(tasks, limit)
}

// Suggestions are ESCO proposals for a job title.
type Suggestions struct {
	Skills []string `json:"skills"`
	Tasks  []string `json:"tasks"`
}

// SuggestForTitle looks up skills and tasks concurrently.
func (c *Client) SuggestForTitle(ctx context.Context, title, lang string, limit int) Suggestions {
	var out Suggestions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Skills = c.SkillsForTitle(gctx, title, lang, limit)
		return nil
	})
	g.Go(func() error {
		out.Tasks = c.TasksForTitle(gctx, title, lang, limit)
		return nil
	})
	_ = g.Wait()
	return out
}

// occupationURI resolves title to an occupation URI. An unknown title is ("", nil).
func (c *Client) occupationURI(ctx context.Context, title, lang string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", nil
	}
	cacheKey := lang + "|" + strings.ToLower(title)

	c.mu.Lock()
	uri, ok := c.occupations[cacheKey]
	c.mu.Unlock()
	if ok {
		return uri, nil
	}

	var resp searchResponse
	err := c.get(ctx, "/search", url.Values{
		"text":     {title},
		"language": {lang},
		"type":     {"occupation"},
		"limit":    {"1"},
		"full":     {"true"},
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Embedded.Results) > 0 {
		uri = resp.Embedded.Results[0].URI
	}

	c.mu.Lock()
	c.occupations[cacheKey] = uri
	c.mu.Unlock()
	return uri, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create ESCO request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ESCO request %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ESCO %s returned HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode ESCO %s response: %w", path, err)
	}
	return nil
}

func (c *Client) fail(op string, err error) {
	c.logger.Warn("ESCO API request failed", "op", op, "error", err)
	if c.onFailure != nil {
		c.onFailure(op, err)
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func truncate(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
