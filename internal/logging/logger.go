// Package logging wires charmbracelet/log for gradlint: a process-wide
// default logger, per-run loggers carried on a context, and the structured
// field names every package logs with.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide default, swapped by the CLI
var defaultLogger atomic.Pointer[log.Logger]

// ParseLevel maps a level name to a log.Level. Names are case-insensitive
// and "warning" is accepted for "warn". Anything unrecognised is info.
func ParseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := log.ParseLevel(name)
	if err != nil || lvl == log.FatalLevel {
		return log.InfoLevel
	}
	return lvl
}

// New returns a stderr logger at level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger writing to w at level, without timestamps
// or caller information.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level: ParseLevel(level),
	})
}

// NewInteractive returns the info logger used for messages addressed to a
// person at a terminal, such as those printed by "gradlint init".
func NewInteractive() *log.Logger {
	logger := NewWithWriter(os.Stderr, "info")
	logger.SetPrefix("gradlint")
	return logger
}

// Default returns the process-wide logger, creating an info logger on first
// use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
