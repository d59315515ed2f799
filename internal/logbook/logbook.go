// Package logbook journals run progress: a small leveled log that appends to
// a text file and keeps the most recent lines in memory for live display.
package logbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// DefaultKeep is how many recent lines the in-memory tail retains.
const DefaultKeep = 64

// Logbook records leveled entries. With a backing path every entry is
// appended to the file; with an empty path the logbook is memory-only, which
// still feeds Tail. A nil *Logbook is a valid discard journal.
type Logbook struct {
	mu     sync.Mutex
	path   string
	recent []string
	keep   int
	clock  func() time.Time
}

// Option customizes a logbook.
type Option func(*Logbook)

// WithKeep sets the in-memory tail size.
func WithKeep(n int) Option {
	return func(l *Logbook) {
		if n > 0 {
			l.keep = n
		}
	}
}

// WithClock injects a deterministic clock (primarily for tests).
func WithClock(clock func() time.Time) Option {
	return func(l *Logbook) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// New creates a logbook. An empty path means memory-only; otherwise the
// parent directory is created up front and entries append to the file.
func New(path string, opts ...Option) (*Logbook, error) {
	l := &Logbook{path: path, keep: DefaultKeep, clock: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("logbook: create %s: %w", filepath.Dir(path), err)
		}
	}
	return l, nil
}

// Path returns the file backing this logbook, if any.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append records a single entry.
func (l *Logbook) Append(level Level, message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	line := fmt.Sprintf("%s %-5s %s",
		l.clock().UTC().Format(time.RFC3339),
		string(level),
		strings.TrimSpace(message),
	)
	l.recent = append(l.recent, line)
	if len(l.recent) > l.keep {
		l.recent = l.recent[len(l.recent)-l.keep:]
	}
	if l.path == "" {
		return
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(line + "\n")
}

// Tail returns up to max of the most recent entries, oldest first.
func (l *Logbook) Tail(max int) []string {
	if l == nil || max <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.recent) == 0 {
		return nil
	}
	start := 0
	if len(l.recent) > max {
		start = len(l.recent) - max
	}
	out := make([]string, len(l.recent)-start)
	copy(out, l.recent[start:])
	return out
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}
