package slogutil

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log output formats accepted by NewFormatHandler.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
)

// LevelSilent is above every level slog defines; -q logs at it.
const LevelSilent = slog.Level(100)

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// NewLogger creates a logger writing the line format to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewFormatHandler returns a JSON handler for FormatJSON and the line handler otherwise.
func NewFormatHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, FormatJSON) {
		return slog.NewJSONHandler(w, opts)
	}
	return NewHandler(w, opts)
}

// NewFileHandler opens path for appending, creating it if needed. The caller
// closes the returned file.
func NewFileHandler(path string, format string, level slog.Level) (slog.Handler, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewFormatHandler(f, format, level), f, nil
}

// NewDiscardLogger returns a logger that drops every record.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel returns the level named by s (debug, info, warn, warning, error),
// ignoring case.
func ParseLevel(s string) (slog.Level, bool) {
	level, ok := levelNames[strings.ToLower(s)]
	return level, ok
}

// LevelFromString is ParseLevel falling back to info.
func LevelFromString(s string) slog.Level {
	if level, ok := ParseLevel(s); ok {
		return level
	}
	return slog.LevelInfo
}

// LevelFromVerbosity maps the -v count to a level: warn by default, info for
// -v and debug beyond. quiet wins over any count.
func LevelFromVerbosity(verbosity int, quiet bool) slog.Level {
	switch {
	case quiet:
		return LevelSilent
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// NewTeeLogger creates a logger that sends each record to every handler
// enabled for its level.
func NewTeeLogger(handlers ...slog.Handler) *slog.Logger {
	return slog.New(teeHandler(handlers))
}

type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t teeHandler) each(fn func(slog.Handler) slog.Handler) teeHandler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = fn(h)
	}
	return out
}
