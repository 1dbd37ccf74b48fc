package logfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Appender writes lines to a log file, opening it on first use.
type Appender struct {
	path string

	mu   sync.Mutex
	file *os.File
}

// NewAppender returns an Appender for path. Nothing is created until the
// first WriteLine.
func NewAppender(path string) *Appender {
	return &Appender{path: path}
}

// Path returns the file the appender writes to.
func (a *Appender) Path() string {
	return a.path
}

// WriteLine appends line and a newline.
func (a *Appender) WriteLine(line string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open session log: %w", err)
		}
		a.file = f
	}
	if _, err := a.file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append session log: %w", err)
	}
	return nil
}

// Close closes the file if it was opened. The appender reopens on the next
// write.
func (a *Appender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}
