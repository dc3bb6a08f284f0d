// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"facscope/internal/errors"
)

// Format selects the log encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// ParseFormat validates a format name. An empty name selects FormatConsole.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatConsole:
		return FormatConsole, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", errors.NewValidationError("log-format", fmt.Sprintf("unknown log format %q (want console or json)", s))
}

// New returns a logger writing to out. Verbose enables debug level.
func New(out io.Writer, format Format, verbose bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	w := out
	if format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Setup builds a logger with New and installs it as the global log.Logger.
func Setup(out io.Writer, format Format, verbose bool) zerolog.Logger {
	l := New(out, format, verbose)
	log.Logger = l
	return l
}
