package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// L is the global logger instance. It defaults to a plain text logger so
// library code can log before InitLogger runs (e.g. in tests).
var L *slog.Logger = slog.Default()

// InitLogger initializes the global logger.
// Call this once at application startup, after loading config.
func InitLogger(logLevelStr string) {
	var level slog.Level
	switch strings.ToLower(logLevelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		slog.Warn("Invalid LOG_LEVEL specified, defaulting to INFO", "configuredLevel", logLevelStr)
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				// RFC3339 timestamps for machine readability.
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)
	L = slog.New(handler)

	slog.SetDefault(L)
	L.Debug("Logger initialized", "level", level.String())
}
