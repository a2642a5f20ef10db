package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jonathan/vacancy-wizard/internal/config"
	"github.com/jonathan/vacancy-wizard/internal/db"
	"github.com/jonathan/vacancy-wizard/internal/fetch"
	"github.com/jonathan/vacancy-wizard/internal/generate"
	"github.com/jonathan/vacancy-wizard/internal/i18n"
	"github.com/jonathan/vacancy-wizard/internal/ingestion"
	"github.com/jonathan/vacancy-wizard/internal/llm"
	"github.com/jonathan/vacancy-wizard/internal/observability"
	"github.com/jonathan/vacancy-wizard/internal/parsing"
	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/session"
	"github.com/jonathan/vacancy-wizard/internal/taxonomy"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	metrics   *observability.Metrics
	registry  *schema.Registry
	extractor *parsing.Extractor
	fetcher   *ingestion.Fetcher
	llm       *parsing.LLMExtractor // nil without provider credentials
	generator *generate.Generator
	taxonomy  *taxonomy.Client // nil when disabled
	pages     *db.DB           // nil without a page cache

	closers []func()
}

// loadConfig applies the file, the environment and then the persistent flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if language != "" {
		cfg.Session.Language = i18n.Normalize(language)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp wires every component from cfg. Logs go to logOut. Optional
// collaborators that cannot start (database, LLM provider) are logged and
// left out.
func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) *app {
	logger := observability.SetupLogger(cfg.Log, logOut)
	slog.SetDefault(logger)

	a := &app{
		cfg:       cfg,
		logger:    logger,
		metrics:   observability.NewMetrics(),
		registry:  schema.Default(),
		extractor: parsing.NewExtractor(parsing.DefaultPatterns()),
	}

	a.fetcher = a.newFetcher(ctx)

	var completion *llm.Completion
	if llmCfg, apiKey, ok := cfg.LLM.ClientConfig(); ok {
		client, err := llm.NewClient(ctx, llmCfg, apiKey)
		if err != nil {
			logger.Warn("LLM provider unavailable", "provider", cfg.LLM.Provider, "error", err)
		} else {
			completion = llm.NewCompletion(client, logger)
			a.closers = append(a.closers, func() { _ = completion.Close() })
			a.llm = parsing.NewLLMExtractor(completion, a.registry)
			logger.Info("LLM provider configured", "provider", llmCfg.Provider, "model", client.GetModel(llm.TierStandard))
		}
	} else {
		logger.Info("no LLM credentials configured; LLM features disabled", "provider", cfg.LLM.Provider)
	}
	a.generator = generate.New(completion, logger)

	if cfg.Taxonomy.Enabled {
		a.taxonomy = taxonomy.NewClient(
			taxonomy.WithBaseURL(cfg.Taxonomy.BaseURL),
			taxonomy.WithHTTPClient(&http.Client{Timeout: cfg.Taxonomy.Timeout}),
			taxonomy.WithLogger(logger),
			taxonomy.WithFailureHook(a.metrics.ExternalFailure("esco")),
		)
	}
	return a
}

func (a *app) newFetcher(ctx context.Context) *ingestion.Fetcher {
	var cache fetch.PageCache
	if url := a.cfg.Cache.DatabaseURL; url != "" {
		database, err := db.Connect(ctx, url)
		if err == nil {
			err = database.EnsureSchema(ctx)
			if err != nil {
				database.Close()
			}
		}
		if err != nil {
			a.logger.Warn("page cache unavailable; fetching without cache", "error", err)
		} else {
			cache = database
			a.pages = database
			a.closers = append(a.closers, database.Close)
		}
	}

	pages := fetch.NewCachedFetcher(cache, &fetch.CachedFetcherConfig{
		CacheTTL: a.cfg.Cache.TTL,
		Options: &fetch.Options{
			Timeout:   a.cfg.Fetch.Timeout,
			UserAgent: a.cfg.Fetch.UserAgent,
		},
		Logger: a.logger,
	})
	opts := []ingestion.FetcherOption{ingestion.WithLogger(a.logger)}
	if a.cfg.Fetch.UseBrowser {
		opts = append(opts, ingestion.WithRenderer(&fetch.ChromeRenderer{
			Timeout: a.cfg.Fetch.BrowserTimeout,
			Logger:  a.logger,
		}))
	}
	return ingestion.NewFetcher(pages, opts...)
}

func (a *app) sessionDeps() session.Deps {
	return session.Deps{
		Registry:  a.registry,
		Extractor: a.extractor,
		Logger:    a.logger,
		Observer:  a.metrics,
	}
}

// close releases the collaborators in reverse order.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// loadSource reads a job ad from a URL or a local pdf, docx or txt file.
func (a *app) loadSource(ctx context.Context, input string) (*ingestion.Source, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return a.fetcher.FetchText(ctx, input)
	}
	return ingestion.ReadFile(input)
}

// ingest opens a session and merges the job ad at input into it.
func (a *app) ingest(ctx context.Context, input string) (*session.Session, session.IngestResult, error) {
	src, err := a.loadSource(ctx, input)
	if err != nil {
		return nil, session.IngestResult{}, fmt.Errorf("failed to load job ad: %w", err)
	}
	sess := session.New(a.cfg.Session.Language, a.sessionDeps())
	return sess, sess.Ingest(src), nil
}
