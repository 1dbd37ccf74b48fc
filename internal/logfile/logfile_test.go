package logfile

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/five82/scribe/internal/journal"
	"github.com/five82/scribe/internal/severity"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Errorf("Read() = %v, want nil", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.log")
	content := strings.Join([]string{
		"[10:00:00] [INFO] start",
		"[10:00:01] [PROGRESS] 10%",
		"[10:00:02] [PROGRESS] 60%",
		"",
		"[10:00:03] [PROGRESS] 100%",
		"[10:00:04] [WARNING] hot",
		"   ",
		"[10:00:05] [COMMENT] note",
		"[10:00:06] [PROGRESS] trailing",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path, severity.NewClassifier())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []journal.Entry{
		{Message: "[10:00:00] [INFO] start", Level: "INFO", State: journal.StateSaved},
		{Message: "[10:00:03] [PROGRESS] 100%", Level: "INFO", State: journal.StateSaved},
		{Message: "[10:00:04] [WARNING] hot", Level: "WARNING", State: journal.StateSaved},
		{Message: "[10:00:05] [COMMENT] note", Level: "COMMENT", State: journal.StateSaved},
		{Message: "[10:00:06] [PROGRESS] trailing", Level: "INFO", State: journal.StateSaved},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %#v, want %#v", got, want)
	}
}

func TestLoadCollapsesAnyLineTaggedProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.log")
	content := strings.Join([]string{
		"[10:00:00] [SYSTEM] [PROGRESS] step 1",
		"[10:00:01] [SYSTEM] [PROGRESS] step 2",
		"[10:00:02] [ERROR] failed",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path, severity.NewClassifier())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []journal.Entry{
		{Message: "[10:00:01] [SYSTEM] [PROGRESS] step 2", Level: "INFO", State: journal.StateSaved},
		{Message: "[10:00:02] [ERROR] failed", Level: "ERROR", State: journal.StateSaved},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %#v, want %#v", got, want)
	}
}

func TestAppender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "session.log")
	a := NewAppender(path)

	if err := a.Close(); err != nil {
		t.Fatalf("Close() before write error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file created before first write: %v", err)
	}

	for _, line := range []string{"one", "two"} {
		if err := a.WriteLine(line); err != nil {
			t.Fatalf("WriteLine(%q) error = %v", line, err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := a.WriteLine("three"); err != nil {
		t.Fatalf("WriteLine after Close error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "one\ntwo\nthree\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestNewSessionPath(t *testing.T) {
	now := time.Date(2025, 10, 8, 21, 1, 5, 0, time.Local)
	got := NewSessionPath("/tmp/logs", now)
	want := filepath.Join("/tmp/logs", "log_viewer_20251008_210105.log")
	if got != want {
		t.Errorf("NewSessionPath() = %q, want %q", got, want)
	}
}
