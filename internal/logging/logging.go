// SPDX-License-Identifier: Apache-2.0

// Package logging installs the process-wide slog handler and hands out
// per-component loggers.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// DefaultComponent tags records logged through New("").
const DefaultComponent = "assetclass"

// ErrUnknownFormat is wrapped when a log format name is not recognised.
var ErrUnknownFormat = errors.New("unknown log format")

// Settings is a validated level and format pair.
type Settings struct {
	Level  slog.Level
	Format Format
}

// Parse validates the level and format names read from configuration.
func Parse(level, format string) (Settings, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return Settings{}, err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return Settings{}, err
	}
	return Settings{Level: lvl, Format: f}, nil
}

// ParseLevel parses debug, info, warn or error, in any case.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// ParseFormat parses text or json. An empty name means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w %q: want text or json", ErrUnknownFormat, s)
	}
}

// Install makes a handler writing to w the slog default and returns the
// resulting logger. Loggers obtained from New before Install keep their old
// handler.
func Install(w io.Writer, s Settings) *slog.Logger {
	opts := &slog.HandlerOptions{Level: s.Level}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if s.Format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// New returns the default logger tagged with component.
func New(component string) *slog.Logger {
	if component == "" {
		component = DefaultComponent
	}
	return slog.Default().With(slog.String("component", component))
}
