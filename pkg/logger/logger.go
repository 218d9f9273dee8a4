// Package logger holds the process-wide zerolog logger.
//
// The TUI owns the terminal, so by default logs go nowhere; point LOG_FILE
// at a file to keep them. The mock server logs to stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string
	// Pretty switches to zerolog's console writer.
	Pretty bool
	// Output defaults to io.Discard.
	Output io.Writer
}

var (
	mu       sync.RWMutex
	instance = zerolog.Nop()
)

// Init builds the logger and makes it the one returned by Get.
func Init(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	l := zerolog.New(out).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()

	mu.Lock()
	instance = l
	mu.Unlock()
	return l
}

// Get returns the current logger; a no-op logger before Init.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// Reset restores the no-op logger. Tests only.
func Reset() {
	mu.Lock()
	instance = zerolog.Nop()
	mu.Unlock()
}

// OpenFile opens path for appending log lines. An empty path yields
// io.Discard and a no-op closer.
func OpenFile(path string) (io.WriteCloser, error) {
	if strings.TrimSpace(path) == "" {
		return nopCloser{io.Discard}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
