// Package logging builds the application's zerolog logger.
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

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// SetLevel applies level process-wide so a change from the settings view
// reaches loggers already handed out.
func SetLevel(level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
}

// New returns a logger writing JSON lines to w and applies level.
func New(w io.Writer, level string) zerolog.Logger {
	SetLevel(level)
	return zerolog.New(w).
		With().
		Timestamp().
		Str("app", "todoview").
		Logger()
}

// OpenFile opens (appending) the log file at path, creating parent
// directories, and returns a logger on it plus the file to close on exit.
func OpenFile(path, level string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	return New(f, level), f, nil
}
