package runner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookPath(found ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, f := range found {
			if f == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func writeScript(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho hi\n"), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	py := writeScript(t, dir, "job.py", 0o644)
	sh := writeScript(t, dir, "job.sh", 0o644)
	exe := writeScript(t, dir, "job", 0o755)
	plain := writeScript(t, dir, "notes.txt", 0o644)

	tests := []struct {
		name     string
		launcher Launcher
		input    string
		wantArgs []string
		wantErr  error
	}{
		{
			name:     "python prefers python3",
			launcher: Launcher{LookPath: fakeLookPath("python3", "python")},
			input:    py,
			wantArgs: []string{"/usr/bin/python3", "-u", py},
		},
		{
			name:     "python falls back to python",
			launcher: Launcher{LookPath: fakeLookPath("python")},
			input:    py,
			wantArgs: []string{"/usr/bin/python", "-u", py},
		},
		{
			name:     "python missing",
			launcher: Launcher{LookPath: fakeLookPath()},
			input:    py,
			wantErr:  ErrInterpreterNotFound,
		},
		{
			name: "interpreter map",
			launcher: Launcher{
				Interpreters: map[string][]string{".sh": {"bash", "-e"}},
				LookPath:     fakeLookPath("bash"),
			},
			input:    sh,
			wantArgs: []string{"/usr/bin/bash", "-e", sh},
		},
		{
			name: "mapped interpreter missing",
			launcher: Launcher{
				Interpreters: map[string][]string{".sh": {"zsh"}},
				LookPath:     fakeLookPath(),
			},
			input:   sh,
			wantErr: ErrInterpreterNotFound,
		},
		{
			name:     "executable runs directly",
			launcher: Launcher{LookPath: fakeLookPath()},
			input:    exe,
			wantArgs: []string{exe},
		},
		{
			name:     "not executable",
			launcher: Launcher{LookPath: fakeLookPath()},
			input:    plain,
			wantErr:  ErrNotExecutable,
		},
		{
			name:     "data dir appended",
			launcher: Launcher{DataDir: "/data", LookPath: fakeLookPath()},
			input:    exe,
			wantArgs: []string{exe, "--data-dir", "/data"},
		},
		{
			name:     "data dir already given",
			launcher: Launcher{DataDir: "/data", LookPath: fakeLookPath()},
			input:    exe + " --data-dir=/elsewhere",
			wantArgs: []string{exe, "--data-dir=/elsewhere"},
		},
		{
			name:     "arguments split like a shell",
			launcher: Launcher{LookPath: fakeLookPath()},
			input:    exe + ` --name "two words"`,
			wantArgs: []string{exe, "--name", "two words"},
		},
		{
			name:    "empty",
			input:   "   ",
			wantErr: ErrEmptyScript,
		},
		{
			name:    "missing",
			input:   filepath.Join(dir, "missing.py"),
			wantErr: ErrScriptNotFound,
		},
		{
			name:     "self",
			launcher: Launcher{Self: exe},
			input:    exe,
			wantErr:  ErrSelfLaunch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := tt.launcher.Resolve(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantArgs, cmd.Args)
			assert.Equal(t, dir, cmd.Dir)
		})
	}
}

func TestPauseFlag(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	flag := NewPauseFlag(dir)
	assert.Equal(t, filepath.Join(dir, "pause.flag"), flag.Path)

	assert.False(t, flag.Exists())
	require.NoError(t, flag.Clear())

	require.NoError(t, flag.Set())
	assert.True(t, flag.Exists())
	require.NoError(t, flag.Set())

	require.NoError(t, flag.Clear())
	assert.False(t, flag.Exists())
}
