package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/shlex"
)

var (
	// ErrEmptyScript is returned when no script path was given.
	ErrEmptyScript = errors.New("no script selected")
	// ErrScriptNotFound is returned when the script path does not exist.
	ErrScriptNotFound = errors.New("script not found")
	// ErrInterpreterNotFound is returned when the interpreter for a script is not on PATH.
	ErrInterpreterNotFound = errors.New("interpreter not found")
	// ErrNotExecutable is returned for files with no known interpreter and no execute bit.
	ErrNotExecutable = errors.New("file is not executable")
	// ErrSelfLaunch is returned when asked to run the viewer itself.
	ErrSelfLaunch = errors.New("refusing to run scribe inside itself")
)

const dataDirFlag = "--data-dir"

// Command is a resolved, ready-to-start invocation.
type Command struct {
	Args   []string
	Dir    string
	Script string
}

// String renders the command line for status messages.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Launcher resolves a script path into a Command.
type Launcher struct {
	// Interpreters maps a file extension (".sh") to the argv prefix that runs it.
	Interpreters map[string][]string
	// DataDir is passed as --data-dir unless the command already carries it.
	DataDir string
	// Self is the viewer's own executable path, if known.
	Self string
	// LookPath defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

// Resolve turns user input (a path, optionally followed by arguments) into a
// Command. Nothing is started.
func (l Launcher) Resolve(input string) (Command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Command{}, ErrEmptyScript
	}

	script, extra := input, []string(nil)
	if _, err := os.Stat(input); err != nil && strings.ContainsAny(input, " \t") {
		parts, err := shlex.Split(input)
		if err != nil {
			return Command{}, fmt.Errorf("parse command line: %w", err)
		}
		if len(parts) == 0 {
			return Command{}, ErrEmptyScript
		}
		script, extra = parts[0], parts[1:]
	}

	script = expandHome(script)
	abs, err := filepath.Abs(script)
	if err != nil {
		return Command{}, fmt.Errorf("resolve %s: %w", script, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Command{}, fmt.Errorf("%w: %s", ErrScriptNotFound, script)
		}
		return Command{}, fmt.Errorf("stat %s: %w", script, err)
	}
	if info.IsDir() {
		return Command{}, fmt.Errorf("%w: %s is a directory", ErrNotExecutable, script)
	}
	if l.isSelf(abs) {
		return Command{}, ErrSelfLaunch
	}

	prefix, err := l.interpreter(abs, info)
	if err != nil {
		return Command{}, err
	}

	args := append(append(prefix, abs), extra...)
	if l.DataDir != "" && !hasDataDir(args) {
		args = append(args, dataDirFlag, l.DataDir)
	}
	return Command{Args: args, Dir: filepath.Dir(abs), Script: abs}, nil
}

func (l Launcher) interpreter(path string, info os.FileInfo) ([]string, error) {
	lookPath := l.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".py" {
		for _, name := range []string{"python3", "python"} {
			if bin, err := lookPath(name); err == nil {
				return []string{bin, "-u"}, nil
			}
		}
		return nil, fmt.Errorf("%w: python3 or python", ErrInterpreterNotFound)
	}

	if argv, ok := l.Interpreters[ext]; ok && len(argv) > 0 {
		bin, err := lookPath(argv[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInterpreterNotFound, argv[0])
		}
		return append([]string{bin}, argv[1:]...), nil
	}

	if info.Mode().Perm()&0o111 != 0 {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotExecutable, filepath.Base(path))
}

func (l Launcher) isSelf(abs string) bool {
	if l.Self == "" {
		return false
	}
	self, err := filepath.EvalSymlinks(l.Self)
	if err != nil {
		self = l.Self
	}
	target, err := filepath.EvalSymlinks(abs)
	if err != nil {
		target = abs
	}
	return filepath.Clean(self) == filepath.Clean(target)
}

func hasDataDir(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == dataDirFlag || strings.HasPrefix(a, dataDirFlag+"=")
	})
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
