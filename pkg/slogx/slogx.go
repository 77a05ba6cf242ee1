package slogx

import (
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// Redacted replaces the value of any attribute whose key is in
// SensitiveKeys.
const Redacted = "[redacted]"

// SensitiveKeys are attribute keys that never reach the log output in clear.
// Client PII is logged as a fingerprint under a different key instead.
var SensitiveKeys = []string{
	"password",
	"email",
	"phone",
	"id_number",
	"token",
	"cookie",
	"authorization",
}

type Config struct {
	Service string
	Version string
	Env     string // dev, staging or production
	Level   string // debug, info, warn or error
	Format  string // json or text

	// Output defaults to stdout.
	Output io.Writer
}

// New builds the process logger and installs it as slog's default.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		AddSource:   cfg.Env == "dev",
		Level:       ParseLevel(cfg.Level),
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", cfg.Env,
	)

	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps LOG_LEVEL to a slog.Level. Unknown values mean info.
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
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

func redact(_ []string, a slog.Attr) slog.Attr {
	if slices.Contains(SensitiveKeys, strings.ToLower(a.Key)) {
		return slog.String(a.Key, Redacted)
	}
	return a
}
