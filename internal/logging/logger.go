// Package logging builds the slog loggers used by the stashconf CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mesh-intelligence/stashconf/pkg/types"
)

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Output io.Writer
	JSON   bool
}

// DefaultConfig logs warnings and errors as text on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelWarn,
		Output: os.Stderr,
	}
}

// New creates a logger with the given configuration.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a settings level name to a slog level. An empty name
// yields the default level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "":
		return DefaultConfig().Level, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", types.ErrLogLevelUnknown, name)
}

// FromSettings builds a Config from validated settings, writing to out.
func FromSettings(s types.Settings, out io.Writer) (Config, error) {
	level, err := ParseLevel(s.LogLevel)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Level:  level,
		Output: out,
		JSON:   s.LogFormat == types.LogFormatJSON,
	}, nil
}
