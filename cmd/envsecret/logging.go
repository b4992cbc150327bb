package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

func setupLogging(w io.Writer, levelStr, format string) error {
	h, err := newHandler(w, parseLevel(levelStr), format)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(h))
	return nil
}

func newHandler(w io.Writer, level slog.Level, format string) (slog.Handler, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05.000",
		}), nil
	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339Nano))
				}
				return a
			},
		}), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (supported: text, json)", format)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
