// Package logging configures the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/skillhub-labs/skillhub/internal/branding"
)

// Setup installs a tint-backed slog default logger writing to stderr.
// Color is disabled when stderr is not a terminal. The level comes from
// the verbose flag, overridable via the SKILL_HUB_LOG env var
// (debug, info, warn, error).
func Setup(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if v := os.Getenv(branding.EnvVar("LOG")); v != "" {
		level = parseLevel(v, level)
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		TimeFormat: time.Kitchen,
		Level:      level,
	})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string, fallback slog.Level) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
