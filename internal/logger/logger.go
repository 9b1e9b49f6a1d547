// Package logger provides per-subsystem structured loggers built on log/slog.
//
//	var log = logger.Logger("peer")
//	log.Info("record stored", "name", n.Short())
//
// Level and format come from Configure, or from SAFEID_LOG_LEVEL and
// SAFEID_LOG_FORMAT when Configure is never called.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

type Format int

const (
	FormatText Format = iota
	FormatJSON
)

var (
	mu     sync.RWMutex
	output io.Writer = os.Stderr
	level            = new(slog.LevelVar)
	format           = FormatText

	envOnce sync.Once
)

// Logger returns a logger tagged with subsystem. Loggers created before a
// call to SetOutput or Configure follow the new settings.
func Logger(subsystem string) *slog.Logger {
	envOnce.Do(applyEnv)
	return slog.New(&handler{}).With(slog.String("subsystem", subsystem))
}

// Configure sets the global level and format.
func Configure(lvl slog.Level, f Format) {
	envOnce.Do(func() {})
	mu.Lock()
	defer mu.Unlock()
	level.Set(lvl)
	format = f
}

// SetOutput redirects all loggers to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

func applyEnv() {
	lvl, _ := ParseLevel(os.Getenv("SAFEID_LOG_LEVEL"))
	level.Set(lvl)
	format = ParseFormat(os.Getenv("SAFEID_LOG_FORMAT"))
}

// handler resolves the output and format on every record so that the
// package-level settings can change after loggers are created.
type handler struct {
	ops []func(slog.Handler) slog.Handler
}

func (h *handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= level.Level()
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	mu.RLock()
	w, f := output, format
	mu.RUnlock()

	opts := &slog.HandlerOptions{Level: level}
	var inner slog.Handler
	if f == FormatJSON {
		inner = slog.NewJSONHandler(w, opts)
	} else {
		inner = slog.NewTextHandler(w, opts)
	}
	for _, op := range h.ops {
		inner = op(inner)
	}
	return inner.Handle(ctx, r)
}

func (h *handler) with(op func(slog.Handler) slog.Handler) *handler {
	ops := make([]func(slog.Handler) slog.Handler, 0, len(h.ops)+1)
	ops = append(ops, h.ops...)
	return &handler{ops: append(ops, op)}
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(in slog.Handler) slog.Handler { return in.WithAttrs(attrs) })
}

func (h *handler) WithGroup(name string) slog.Handler {
	return h.with(func(in slog.Handler) slog.Handler { return in.WithGroup(name) })
}
