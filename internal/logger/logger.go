// Package logger configures the zerolog logger shared by the CLI and the
// interactive console. Output goes to a file, never to the terminal: the
// alternate-screen UI owns stdout, and interleaved log lines would corrupt it.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New opens (or creates) the log file and returns a logger writing to it.
// An empty path discards all output. The returned closer is nil when there
// is nothing to close.
func New(path, level string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	if path == "" {
		return zerolog.New(io.Discard).Level(lvl), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log: %w", err)
	}
	log := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return log, f, nil
}
