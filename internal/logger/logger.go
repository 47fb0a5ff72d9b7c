// Package logger provides verbose logging for the Tally CLI.
// When verbose mode is enabled via the --verbose flag, pipeline stages
// (extraction, taxonomy resolution, counting) are traced to stderr.
// Errors for the user are returned by commands, never logged here.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level labels a verbose log line.
type Level string

// Log levels, in increasing severity.
const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	now               = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
}

// logf writes one line when verbose mode is on.
func logf(level Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", level, fmt.Sprintf(format, args...))
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Stage logs the start of a pipeline stage and returns a function that
// logs its duration. Typical use: defer logger.Stage("extract")().
func Stage(name string) func() {
	if !IsVerbose() {
		return func() {}
	}
	start := now()
	Debug("%s: started", name)
	return func() {
		Debug("%s: done in %s", name, now().Sub(start).Round(time.Microsecond))
	}
}
