package observability

import (
	"io"
	"log/slog"
	"strings"

	"github.com/jonathan/vacancy-wizard/internal/config"
)

// ServiceName is attached to every log line.
const ServiceName = "vacancy-wizard"

// SetupLogger builds a slog logger from cfg writing to w. Development
// environments log at debug level unless a level is configured explicitly.
func SetupLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Env, "dev") && cfg.Level == "" {
		opts.Level = slog.LevelDebug
	}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With(
		slog.String("service", ServiceName),
		slog.String("env", cfg.Env),
	)
}

// ParseLevel maps debug, info, warn and error to slog levels; anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
