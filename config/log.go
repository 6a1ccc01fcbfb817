package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// levelOff disables logging.
const levelOff = slog.Level(100)

// ParseLevel maps a level name to a slog level. "off" and "" disable logging.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "", "off":
		return levelOff, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, name)
	}
}

// NewLogger builds a text logger writing to w at the configured level, or
// nil when logging is off.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Level)
	if err != nil || level == levelOff {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
