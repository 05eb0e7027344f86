// Package slogutil provides the slog handler and level helpers used by importfix.
package slogutil

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Attribute keys that Handler renders ahead of all others.
const (
	KeyRun      = "run"
	KeyFile     = "file"
	KeyLine     = "line"
	KeyCategory = "category"
)

// runIDWidth is how much of a run id the line format shows.
const runIDWidth = 8

// Handler writes one line per record:
//
//	2026-01-02T15:04:05Z [info] ./x → ../x | run=1f2e3d4c file=src/a.ts:3 category=relative-normalize
//
// run, file (joined with line) and category come first in that order, the
// remaining attributes follow in the order they were added. Values containing
// spaces, quotes or '=' are quoted.
type Handler struct {
	w      io.Writer
	level  slog.Leveler
	prefix string
	attrs  []slog.Attr
	mu     *sync.Mutex
}

// NewHandler creates a line handler. A nil opts logs at info.
func NewHandler(w io.Writer, opts *slog.HandlerOptions) *Handler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &Handler{w: w, level: level, mu: &sync.Mutex{}}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = flatten(attrs, h.prefix, a)
		return true
	})

	var buf bytes.Buffer
	if !r.Time.IsZero() {
		buf.WriteString(r.Time.UTC().Format(time.RFC3339))
		buf.WriteByte(' ')
	}
	buf.WriteByte('[')
	buf.WriteString(levelName(r.Level))
	buf.WriteString("] ")
	buf.WriteString(r.Message)

	if fields := orderedFields(attrs); len(fields) > 0 {
		buf.WriteString(" | ")
		buf.WriteString(strings.Join(fields, " "))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(next.attrs, h.attrs)
	for _, a := range attrs {
		next.attrs = flatten(next.attrs, h.prefix, a)
	}
	return &next
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// flatten appends a to dst, expanding groups into dotted keys.
func flatten(dst []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			dst = flatten(dst, prefix, ga)
		}
		return dst
	}
	if a.Key == "" {
		return dst
	}
	return append(dst, slog.Attr{Key: prefix + a.Key, Value: a.Value})
}

// orderedFields renders attrs as key=value pairs, leading keys first.
// A leading key set twice keeps its last value.
func orderedFields(attrs []slog.Attr) []string {
	lead := make(map[string]string, 4)
	rest := make([]string, 0, len(attrs))
	for _, a := range attrs {
		switch a.Key {
		case KeyRun, KeyFile, KeyLine, KeyCategory:
			lead[a.Key] = valueString(a.Value)
		default:
			rest = append(rest, field(a.Key, valueString(a.Value)))
		}
	}

	fields := make([]string, 0, len(lead)+len(rest))
	if run, ok := lead[KeyRun]; ok {
		if len(run) > runIDWidth {
			run = run[:runIDWidth]
		}
		fields = append(fields, field(KeyRun, run))
	}

	file, hasFile := lead[KeyFile]
	line, hasLine := lead[KeyLine]
	switch {
	case hasFile && hasLine:
		fields = append(fields, field(KeyFile, file+":"+line))
	case hasFile:
		fields = append(fields, field(KeyFile, file))
	case hasLine:
		fields = append(fields, field(KeyLine, line))
	}

	if category, ok := lead[KeyCategory]; ok {
		fields = append(fields, field(KeyCategory, category))
	}
	return append(fields, rest...)
}

func field(key, value string) string {
	if value == "" || strings.ContainsAny(value, " \t\r\n\"=") {
		value = strconv.Quote(value)
	}
	return key + "=" + value
}

func valueString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	default:
		return v.String()
	}
}

func levelName(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "debug"
	case level < slog.LevelWarn:
		return "info"
	case level < slog.LevelError:
		return "warn"
	default:
		return "error"
	}
}
