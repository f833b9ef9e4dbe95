package app

import (
	"fmt"
	"io"
	"log/slog"
)

// newLogger creates a configured slog.Logger. It does not touch the global
// logger, so each App owns an isolated instance. Unknown settings are
// rejected rather than silently downgraded.
func newLogger(levelStr, formatStr string, outW io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", levelStr)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch formatStr {
	case "json":
		handler = slog.NewJSONHandler(outW, handlerOpts)
	case "text", "":
		handler = slog.NewTextHandler(outW, handlerOpts)
	default:
		return nil, fmt.Errorf("unknown log format %q", formatStr)
	}

	return slog.New(handler), nil
}
