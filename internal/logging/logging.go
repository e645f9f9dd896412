// Package logging builds the diagnostic loggers fsel uses. Diagnostics go
// to stderr (the TUI and dmenu output own stdout) and optionally to a file
// in the data dir; each run carries a short id so overlapping invocations
// can be told apart in a shared log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Options configures a run logger.
type Options struct {
	Level string // debug, info, warn, error
	File  string // optional log file path, appended to
}

// New returns a logger for this run and a closer for the file target, if
// any. Unknown levels fall back to warn.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		level = log.WarnLevel
	}

	var out io.Writer = os.Stderr
	var closer io.Closer
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, f)
		closer = f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportCaller:    false,
		ReportTimestamp: opts.File != "",
		Formatter:       log.TextFormatter,
		Level:           level,
	})
	logger = logger.With("run", runID())
	return logger, closer, nil
}

// Nop returns a logger that discards everything, for tests and callers
// that have no diagnostics sink.
func Nop() *log.Logger {
	return log.New(io.Discard)
}

// runID is a short per-invocation tag.
func runID() string {
	return uuid.NewString()[:8]
}
