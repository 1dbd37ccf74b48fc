// Package logging builds scribe's diagnostic logger. The TUI owns the
// terminal, so diagnostics go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Format selects the log line encoding.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
)

// Config describes where and how to log.
type Config struct {
	Level  string // debug, info, warn, error; empty means info
	Path   string // empty discards everything
	Format Format
}

// New returns a logger and a closer for its file. The closer is never nil.
func New(cfg Config) (*charmlog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nopCloser{}, err
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return charmlog.New(io.Discard), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nopCloser{}, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nopCloser{}, fmt.Errorf("open diagnostic log: %w", err)
	}

	logger := charmlog.NewWithOptions(file, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           level,
		Prefix:          "scribe",
	})
	switch cfg.Format {
	case FormatJSON:
		logger.SetFormatter(charmlog.JSONFormatter)
	case FormatLogfmt:
		logger.SetFormatter(charmlog.LogfmtFormatter)
	default:
		logger.SetFormatter(charmlog.TextFormatter)
	}
	return logger, file, nil
}

// ParseLevel maps a level name to a charm log level.
func ParseLevel(s string) (charmlog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return charmlog.InfoLevel, nil
	case "debug":
		return charmlog.DebugLevel, nil
	case "warn", "warning":
		return charmlog.WarnLevel, nil
	case "error":
		return charmlog.ErrorLevel, nil
	default:
		return charmlog.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
