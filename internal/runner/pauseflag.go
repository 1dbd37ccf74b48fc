package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// PauseFlagName is the file the monitored process polls between work units.
const PauseFlagName = "pause.flag"

// PauseFlag is the on-disk pause signal shared with the monitored process.
// The process sees a change on its next poll, so a pause may land late.
type PauseFlag struct {
	Path string
}

// NewPauseFlag returns the flag inside dataDir.
func NewPauseFlag(dataDir string) PauseFlag {
	return PauseFlag{Path: filepath.Join(dataDir, PauseFlagName)}
}

// Set creates the flag file.
func (f PauseFlag) Set() error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(f.Path, []byte("paused"), 0o644); err != nil {
		return fmt.Errorf("write pause flag: %w", err)
	}
	return nil
}

// Clear removes the flag file. A missing flag is not an error.
func (f PauseFlag) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove pause flag: %w", err)
	}
	return nil
}

// Exists reports whether the flag file is present.
func (f PauseFlag) Exists() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}
