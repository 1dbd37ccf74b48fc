//go:build !windows

package session

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/scribe/internal/runner"
)

func TestRunPauseEditResumeKill(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "job.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho '[INFO] hello'\nsleep 30\n"), 0o755))
	dataDir := filepath.Join(dir, "data")

	s := New(Options{
		LogDir:  filepath.Join(dir, "logs"),
		DataDir: dataDir,
		Now:     func() time.Time { return fixedNow },
	})

	st := s.Start(t.Context(), script)
	require.Equal(t, KindSuccess, st.Kind, st.Message)
	assert.Equal(t, ModeRunning, s.Mode())
	assert.False(t, s.Editable())

	require.Eventually(t, func() bool {
		s.Drain()
		return slices.Contains(messages(s), "[INFO] hello")
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, messages(s), "[21:01:05] [SYSTEM] Process started.")

	st, _ = s.Submit("too early", 0)
	assert.Equal(t, editLocked, st.Message)

	st = s.TogglePause()
	assert.Equal(t, ModePaused, s.Mode())
	assert.FileExists(t, filepath.Join(dataDir, runner.PauseFlagName))
	s.Drain()
	assert.Contains(t, messages(s), "[21:01:05] [SYSTEM] Process paused.")

	st, _ = s.Submit("operator note", -1)
	require.Equal(t, KindSuccess, st.Kind, st.Message)

	st = s.TogglePause()
	assert.Equal(t, "Saved changes and resumed.", st.Message)
	assert.Equal(t, ModeRunning, s.Mode())
	assert.NoFileExists(t, filepath.Join(dataDir, runner.PauseFlagName))
	data, err := os.ReadFile(s.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[21:01:05] [COMMENT] operator note\n")

	assert.Equal(t, "Stopping process...", s.Kill().Message)
	var res runner.Result
	select {
	case res = <-s.Process().Done():
	case <-time.After(10 * time.Second):
		t.Fatal("process did not exit")
	}
	st = s.Finish(res)
	assert.Equal(t, "Process terminated.", st.Message)
	assert.Equal(t, ModeFinished, s.Mode())
	assert.True(t, s.Editable())
	assert.Nil(t, s.Process())

	data, err = os.ReadFile(s.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[21:01:05] [SYSTEM] Process resumed.\n")
}
