package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Process-wide leveled logger backed by log/slog.
// - Debug/Info/Warn/Error/Fatal printf variants
// - key/value variants (Infow etc.) for structured lines
// - text (default) or json output, selected by Init

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// slogFatal sits above slog.LevelError and is rendered as FATAL.
const slogFatal = slog.Level(12)

var (
	mu      sync.RWMutex
	out     io.Writer = os.Stdout
	level   Level     = LevelInfo
	jsonOut bool
	sl      *slog.Logger = build()
)

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal)
// and optionally the output format ("json" or text). Default is info/text.
func Init(l string, format ...string) {
	mu.Lock()
	defer mu.Unlock()
	level = parseLevel(l)
	jsonOut = len(format) > 0 && strings.EqualFold(strings.TrimSpace(format[0]), "json")
	sl = build()
}

// setOutput redirects log lines; callers hold no lock.
func setOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	sl = build()
}

// build must run with mu held (or during package init).
func build() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: toSlog(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if lv, ok := a.Value.Any().(slog.Level); ok && lv >= slogFatal {
					a.Value = slog.StringValue("FATAL")
				}
			}
			return a
		},
	}
	if jsonOut {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

func parseLevel(l string) Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	}
	return LevelInfo
}

func toSlog(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelFatal:
		return slogFatal
	}
	return slog.LevelInfo
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return sl
}

func logf(lvl slog.Level, format string, v []interface{}) {
	l := current()
	ctx := context.Background()
	if !l.Enabled(ctx, lvl) {
		return
	}
	l.Log(ctx, lvl, fmt.Sprintf(format, v...))
}

func Debugf(format string, v ...interface{}) { logf(slog.LevelDebug, format, v) }
func Infof(format string, v ...interface{})  { logf(slog.LevelInfo, format, v) }
func Warnf(format string, v ...interface{})  { logf(slog.LevelWarn, format, v) }
func Errorf(format string, v ...interface{}) { logf(slog.LevelError, format, v) }

func Fatalf(format string, v ...interface{}) {
	logf(slogFatal, format, v)
	os.Exit(1)
}

// Infow and friends take alternating key/value pairs; a trailing key
// without a value is recorded under "!BADKEY".
func Debugw(msg string, kv ...interface{}) { current().Log(context.Background(), slog.LevelDebug, msg, kv...) }
func Infow(msg string, kv ...interface{})  { current().Log(context.Background(), slog.LevelInfo, msg, kv...) }
func Warnw(msg string, kv ...interface{})  { current().Log(context.Background(), slog.LevelWarn, msg, kv...) }
func Errorw(msg string, kv ...interface{}) { current().Log(context.Background(), slog.LevelError, msg, kv...) }

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
