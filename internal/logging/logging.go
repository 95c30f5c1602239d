// Package logging configures the zerolog logger. The terminal belongs to the
// game UI, so log output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvLevel names the environment variable that overrides the configured level.
const EnvLevel = "COLORHUNT_LOG_LEVEL"

// ParseLevel resolves the level from the environment first, then the config
// value, defaulting to info.
func ParseLevel(configured string) (zerolog.Level, error) {
	value := strings.TrimSpace(os.Getenv(EnvLevel))
	if value == "" {
		value = strings.TrimSpace(configured)
	}
	if value == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(value))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", value, err)
	}
	return lvl, nil
}

// New builds a logger writing JSON lines to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// OpenFile creates a logger appending to path. The returned closer releases the file.
func OpenFile(path string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(file, level), file, nil
}

// Console builds a human-readable logger for CLI commands.
func Console(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
