// Package logger provides leveled logging for the gigsheet CLI.
// A Log instance is handed to each component explicitly so tests can
// capture warnings deterministically; there is no package-level state.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Log writes timestamped, leveled messages to a single output writer.
// Safe for use from multiple goroutines.
type Log struct {
	mu      sync.Mutex
	output  io.Writer
	verbose bool
}

// New creates a Log writing to w. A nil w defaults to os.Stderr.
func New(w io.Writer) *Log {
	if w == nil {
		w = os.Stderr
	}
	return &Log{output: w}
}

// SetVerbose enables or disables debug output.
func (l *Log) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// SetOutput redirects log output. Useful for testing.
func (l *Log) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// Debug prints a message only when verbose mode is enabled.
func (l *Log) Debug(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.verbose {
		l.write("DEBUG", format, args...)
	}
}

// Info prints an informational message.
func (l *Log) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write("INFO", format, args...)
}

// Warn prints a warning message.
func (l *Log) Warn(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write("WARN", format, args...)
}

// Error prints an error message.
func (l *Log) Error(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write("ERROR", format, args...)
}

func (l *Log) write(level, format string, args ...any) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.output, "%s [%s] "+format+"\n", append([]any{ts, level}, args...)...)
}
