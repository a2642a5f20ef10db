package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/vacancy-wizard/internal/generate"
	"github.com/jonathan/vacancy-wizard/internal/ingestion"
	"github.com/jonathan/vacancy-wizard/internal/observability"
	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/server/ratelimit"
	"github.com/jonathan/vacancy-wizard/internal/session"
	"github.com/jonathan/vacancy-wizard/internal/taxonomy"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

// URLFetcher downloads a job ad page; *ingestion.Fetcher implements it.
type URLFetcher interface {
	FetchText(ctx context.Context, rawURL string) (*ingestion.Source, error)
}

// FieldExtractor fills fields with a model; *parsing.LLMExtractor implements it.
type FieldExtractor interface {
	Extract(ctx context.Context, text, language string) (types.Fields, error)
}

// Taxonomy proposes skills and tasks; *taxonomy.Client implements it.
type Taxonomy interface {
	SearchSkills(ctx context.Context, query, lang string, limit int) []string
	SkillsForTitle(ctx context.Context, title, lang string, limit int) []string
	TasksForTitle(ctx context.Context, title, lang string, limit int) []string
	SuggestForTitle(ctx context.Context, title, lang string, limit int) taxonomy.Suggestions
}

// Deps are the collaborators of the API. Store is required; a nil Fetcher,
// Extractor or Taxonomy makes the matching endpoints answer 503.
type Deps struct {
	Store     *session.Store
	Registry  *schema.Registry
	Fetcher   URLFetcher
	Extractor FieldExtractor
	Generator *generate.Generator
	Taxonomy  Taxonomy
	Metrics   *observability.Metrics
	Limiter   *ratelimit.Limiter
	Logger    *slog.Logger
}

// Config holds server configuration
type Config struct {
	Addr            string
	MaxUploadBytes  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// TaxonomyLanguage is the ESCO language used when a request names none.
	TaxonomyLanguage string
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	config     Config

	store     *session.Store
	registry  *schema.Registry
	fetcher   URLFetcher
	extractor FieldExtractor
	generator *generate.Generator
	taxonomy  Taxonomy
	metrics   *observability.Metrics
	limiter   *ratelimit.Limiter
	logger    *slog.Logger
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, errors.New("server: session store is required")
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.TaxonomyLanguage == "" {
		cfg.TaxonomyLanguage = "en"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	if deps.Registry == nil {
		deps.Registry = schema.Default()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = observability.NewMetrics()
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}
	if deps.Generator == nil {
		deps.Generator = generate.New(nil, deps.Logger)
	}

	s := &Server{
		config:    cfg,
		store:     deps.Store,
		registry:  deps.Registry,
		fetcher:   deps.Fetcher,
		extractor: deps.Extractor,
		generator: deps.Generator,
		taxonomy:  deps.Taxonomy,
		metrics:   deps.Metrics,
		limiter:   deps.Limiter,
		logger:    deps.Logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metricsHandler())
	mux.HandleFunc("GET /schema", s.handleSchema)

	// Session lifecycle
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("PUT /sessions/{id}/language", s.handleSetLanguage)

	// Ingestion
	mux.HandleFunc("POST /sessions/{id}/upload", s.handleUpload)
	mux.HandleFunc("POST /sessions/{id}/url", s.handleURL)
	mux.HandleFunc("POST /sessions/{id}/text", s.handleText)
	mux.HandleFunc("POST /sessions/{id}/llm-extract", s.handleLLMExtract)

	// Wizard steps
	mux.HandleFunc("PATCH /sessions/{id}/fields", s.handlePatchFields)
	mux.HandleFunc("GET /sessions/{id}/steps/{step}", s.handleGetStep)
	mux.HandleFunc("POST /sessions/{id}/steps/{step}/suggest", s.handleSuggest)

	// Generated content
	mux.HandleFunc("GET /sessions/{id}/boolean", s.handleBoolean)
	mux.HandleFunc("POST /sessions/{id}/generate/{kind}", s.handleGenerate)

	// Export
	mux.HandleFunc("GET /sessions/{id}/export.md", s.handleExportMarkdown)
	mux.HandleFunc("GET /sessions/{id}/export.json", s.handleExportJSON)
	mux.HandleFunc("GET /sessions/{id}/export.xlsx", s.handleExportXLSX)
	mux.HandleFunc("GET /sessions/{id}/summary", s.handleSummary)

	// Taxonomy
	mux.HandleFunc("GET /taxonomy/skills", s.handleSearchSkills)
	mux.HandleFunc("GET /taxonomy/titles/skills", s.handleTitleSkills)
	mux.HandleFunc("GET /taxonomy/titles/tasks", s.handleTitleTasks)

	// The metrics middleware must see the request the mux routes so that
	// r.Pattern is filled in; keep it directly around mux.
	routed := s.metrics.Middleware(routePattern)(mux)
	s.handler = s.withRateLimit(s.withLogging(s.withCORS(routed)))

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.limiter.Stop()
	s.store.Stop()
	s.logger.Info("server stopped")
	return nil
}

func routePattern(r *http.Request) string {
	return r.Pattern
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.limiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

// metricsHandler refreshes the session gauge before each scrape.
func (s *Server) metricsHandler() http.Handler {
	h := s.metrics.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.metrics.ActiveSessions.Set(float64(s.store.Len()))
		h.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.store.Len(),
		"features": map[string]bool{
			"url":      s.fetcher != nil,
			"llm":      s.extractor != nil,
			"taxonomy": s.taxonomy != nil,
		},
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, ErrorResponse{Error: message})
}

// writeError maps err to a status and writes it. Soft failures are flagged as
// warnings and logged at warn level.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	warning := IsWarning(err)
	switch {
	case status >= http.StatusInternalServerError && !warning:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	case warning:
		s.logger.Warn("request soft failure", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.jsonResponse(w, status, ErrorResponse{Error: err.Error(), Warning: warning})
}

// lookupSession resolves the {id} path value.
func (s *Server) lookupSession(r *http.Request) (*session.Session, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, &ErrValidation{Field: "id", Message: "invalid session ID"}
	}
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, &ErrSessionNotFound{ID: id}
	}
	return sess, nil
}

// extractClientID returns the host part of RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded",
		"client", s.extractClientID(r), "path", r.URL.Path, "limit", info.Limit)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
