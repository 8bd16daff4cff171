// Package gnnlog configures the structured logger used across the
// training loop and CLI driver: a zerolog.Logger writing human-readable
// output to stderr in development and compact JSON otherwise.
package gnnlog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger at the given level. When pretty is true,
// output goes through zerolog's ConsoleWriter for local development;
// otherwise it emits newline-delimited JSON suitable for log
// aggregation.
func New(level zerolog.Level, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stderr
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel resolves a level name ("debug", "info", "warn", "error")
// to a zerolog.Level, defaulting to Info for an unrecognized or empty
// name rather than failing the caller's configuration load.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
