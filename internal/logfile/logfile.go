package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/five82/scribe/internal/journal"
	"github.com/five82/scribe/internal/severity"
)

const sessionLayout = "20060102_150405"

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Load reads a saved log into journal entries.
func Load(path string, c *severity.Classifier) ([]journal.Entry, error) {
	if c == nil {
		c = severity.NewClassifier()
	}
	lines, err := Read(path, 0)
	if err != nil {
		return nil, err
	}

	var (
		entries  []journal.Entry
		progress string
		open     bool
	)
	flush := func() {
		if open {
			entries = append(entries, journal.Entry{Message: progress, Level: severity.Info, State: journal.StateSaved})
			open = false
		}
	}
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.Contains(line, "["+severity.Progress+"]") {
			progress = line
			open = true
			continue
		}
		flush()
		entries = append(entries, journal.Entry{Message: line, Level: c.Classify(line), State: journal.StateSaved})
	}
	flush()
	return entries, nil
}

// NewSessionPath names the session log for a run started at now.
func NewSessionPath(dir string, now time.Time) string {
	return filepath.Join(dir, "log_viewer_"+now.Format(sessionLayout)+".log")
}
