// Package observability wires structured logging, metrics, and tracing
// for the wizard binaries (API server, Temporal worker, shadow compare).
package observability

import (
	"log/slog"
	"os"
	"strings"

	tlog "go.temporal.io/sdk/log"
)

// InitLogger builds the process-wide JSON slog logger and installs it as
// the slog default. Unrecognised level strings fall back to info.
func InitLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// TemporalSlogAdapter routes Temporal SDK logging through slog so worker,
// workflow and API logs land in one JSON stream.
type TemporalSlogAdapter struct {
	logger *slog.Logger
}

// NewTemporalSlogAdapter wraps a slog.Logger for the Temporal client/worker
// Logger option.
func NewTemporalSlogAdapter(logger *slog.Logger) *TemporalSlogAdapter {
	return &TemporalSlogAdapter{logger: logger}
}

func (a *TemporalSlogAdapter) Debug(msg string, keyvals ...any) {
	a.logger.Debug(msg, keyvals...)
}

func (a *TemporalSlogAdapter) Info(msg string, keyvals ...any) {
	a.logger.Info(msg, keyvals...)
}

func (a *TemporalSlogAdapter) Warn(msg string, keyvals ...any) {
	a.logger.Warn(msg, keyvals...)
}

func (a *TemporalSlogAdapter) Error(msg string, keyvals ...any) {
	a.logger.Error(msg, keyvals...)
}

// Compile-time check.
var _ tlog.Logger = (*TemporalSlogAdapter)(nil)
