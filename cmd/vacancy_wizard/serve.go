package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/vacancy-wizard/internal/server"
	"github.com/jonathan/vacancy-wizard/internal/server/ratelimit"
	"github.com/jonathan/vacancy-wizard/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Start the HTTP API server exposing the wizard sessions, exports and generators.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on; overrides the config")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a := newApp(ctx, cfg, os.Stderr)
	defer a.close()

	store := session.NewStore(a.sessionDeps(), session.StoreConfig{
		IdleTTL:         cfg.Session.IdleTTL,
		CleanupInterval: cfg.Session.CleanupInterval,
	})

	deps := server.Deps{
		Store:     store,
		Registry:  a.registry,
		Fetcher:   a.fetcher,
		Generator: a.generator,
		Metrics:   a.metrics,
		Limiter:   ratelimit.NewLimiter(ratelimit.NewConfig(cfg.Server.RateLimitPerMin)),
		Logger:    a.logger,
	}
	// Typed nil pointers must not reach the interfaces.
	if a.llm != nil {
		deps.Extractor = a.llm
	}
	if a.taxonomy != nil {
		deps.Taxonomy = a.taxonomy
	}

	srv, err := server.New(server.Config{
		Addr:             cfg.Addr(),
		MaxUploadBytes:   cfg.MaxUploadBytes(),
		ReadTimeout:      cfg.Server.ReadTimeout,
		WriteTimeout:     cfg.Server.WriteTimeout,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
		TaxonomyLanguage: cfg.Taxonomy.Language,
	}, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if a.pages != nil {
		pruneCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go a.prunePages(pruneCtx, time.Hour)
	}

	return srv.Start(ctx)
}

// prunePages deletes expired cache rows every interval until ctx ends.
func (a *app) prunePages(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.pages.DeleteExpiredPages(ctx)
			if err != nil {
				a.logger.Warn("failed to prune page cache", "error", err)
				continue
			}
			if n > 0 {
				a.logger.Info("pruned page cache", "deleted", n)
			}
		}
	}
}
