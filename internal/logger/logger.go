package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog logger writing to w.
//   - level: log level string (trace, debug, info, warn, error, fatal, panic);
//     unknown values fall back to info
//   - format: "json" for machine output, "pretty" for human-readable output
func New(w io.Writer, level, format string) zerolog.Logger {
	writer := w
	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Setup returns a logger on stdout, used by the HTTP server.
func Setup(level, format string) zerolog.Logger {
	return New(os.Stdout, level, format)
}

// SetupFile returns a logger appending to path, used while the terminal UI
// owns the screen. The returned closer must be called on exit.
func SetupFile(path, level string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level, "json"), f, nil
}

// DefaultLogPath resolves $XDG_STATE_HOME/studyflow/studyflow.log, falling
// back to ~/.local/state.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "studyflow", "studyflow.log"), nil
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
