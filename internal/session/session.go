// Package session drives one monitored run: it owns the journal, the ingestion
// pipeline, the child process and the pause flag, and turns every operator
// action into a Status for the status bar.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/scribe/internal/ingest"
	"github.com/five82/scribe/internal/journal"
	"github.com/five82/scribe/internal/logfile"
	"github.com/five82/scribe/internal/runner"
	"github.com/five82/scribe/internal/severity"
)

// Options configures a Session.
type Options struct {
	Launcher   runner.Launcher
	LogDir     string
	DataDir    string
	PauseFlag  string // defaults to pause.flag inside DataDir
	Classifier *severity.Classifier
	Filters    map[string]bool
	Logger     *log.Logger
	Now        func() time.Time
}

// Session ties the journal, ingestion pipeline, running process and pause
// flag together. It is owned by a single goroutine.
type Session struct {
	launcher   runner.Launcher
	logDir     string
	classifier *severity.Classifier
	logger     *log.Logger
	now        func() time.Time

	journal  *journal.Journal
	filter   *journal.LevelFilter
	pipeline *ingest.Pipeline
	pause    runner.PauseFlag

	mode     Mode
	process  *runner.Process
	appender *logfile.Appender
	logPath  string
	viewPath string
	command  string
}

// New returns an idle session.
func New(opts Options) *Session {
	if opts.Classifier == nil {
		opts.Classifier = severity.NewClassifier()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Launcher.DataDir == "" {
		opts.Launcher.DataDir = opts.DataDir
	}

	pause := runner.NewPauseFlag(opts.DataDir)
	if opts.PauseFlag != "" {
		pause.Path = opts.PauseFlag
	}

	j := journal.New(journal.WithClock(opts.Now))
	return &Session{
		launcher:   opts.Launcher,
		logDir:     opts.LogDir,
		classifier: opts.Classifier,
		logger:     opts.Logger,
		now:        opts.Now,
		journal:    j,
		filter:     journal.NewLevelFilter(opts.Classifier.Filterable(), opts.Filters),
		pipeline:   ingest.NewPipeline(nil, j, opts.Classifier, opts.Logger),
		pause:      pause,
	}
}

// PauseFlagPath returns the file that signals a pause to the child.
func (s *Session) PauseFlagPath() string { return s.pause.Path }

// Journal returns the entry list.
func (s *Session) Journal() *journal.Journal { return s.journal }

// Filter returns the display filter.
func (s *Session) Filter() *journal.LevelFilter { return s.filter }

// Classifier returns the level classifier.
func (s *Session) Classifier() *severity.Classifier { return s.classifier }

// Mode returns the lifecycle state.
func (s *Session) Mode() Mode { return s.mode }

// Process returns the running process, or nil.
func (s *Session) Process() *runner.Process { return s.process }

// Active reports whether a process is running or paused.
func (s *Session) Active() bool {
	return s.mode == ModeRunning || s.mode == ModePaused
}

// Editable reports whether the operator may change entries.
func (s *Session) Editable() bool {
	return s.mode != ModeRunning
}

// Pending reports whether the ingest queue still holds lines.
func (s *Session) Pending() bool {
	return s.pipeline.Queue().Len() > 0
}

// Progress returns the transient progress text.
func (s *Session) Progress() string {
	return s.pipeline.Progress()
}

// LogPath returns the file Save writes to, if one is known.
func (s *Session) LogPath() string {
	if s.mode == ModeViewing {
		return s.viewPath
	}
	return s.logPath
}

// Command returns the command line of the current or last run.
func (s *Session) Command() string { return s.command }

// Visible returns the journal indices that pass the filter.
func (s *Session) Visible() []int {
	return s.filter.Visible(s.journal.Entries())
}

// Start launches script. Resolution errors are reported before any state
// changes.
func (s *Session) Start(ctx context.Context, script string) Status {
	if s.Active() {
		return warning("A process is already running.")
	}
	cmd, err := s.launcher.Resolve(script)
	if err != nil {
		s.logger.Warn("resolve script failed", "script", script, "err", err)
		return failure(launchMessage(err))
	}

	if s.logDir != "" {
		if err := os.MkdirAll(s.logDir, 0o755); err != nil {
			return failure(fmt.Sprintf("Cannot create log directory: %v", err))
		}
	}
	if err := s.pause.Clear(); err != nil {
		s.logger.Warn("clear pause flag failed", "err", err)
	}

	s.journal.Reset(nil)
	s.viewPath = ""
	s.logPath = logfile.NewSessionPath(s.logDir, s.now())
	s.appender = logfile.NewAppender(s.logPath)
	s.pipeline.Attach(s.appender)

	proc, err := runner.Start(ctx, cmd, s.pipeline.Queue(), s.logger)
	if err != nil {
		s.logger.Error("start failed", "cmd", cmd.String(), "err", err)
		_ = s.pipeline.Finish()
		s.appender = nil
		s.mode = ModeIdle
		return failure(fmt.Sprintf("Failed to start process: %v", err))
	}

	s.process = proc
	s.command = cmd.String()
	s.mode = ModeRunning
	s.pipeline.SetPaused(false)
	s.notice("Process started.")
	return success("Running " + filepath.Base(cmd.Script))
}

// Kill terminates the running process. Its exit still arrives through the
// process's Done channel and must be passed to Finish.
func (s *Session) Kill() Status {
	if !s.Active() || s.process == nil {
		return warning("No process is running.")
	}
	s.process.Kill()
	if err := s.pause.Clear(); err != nil {
		s.logger.Warn("clear pause flag failed", "err", err)
	}
	return info("Stopping process...")
}

// TogglePause pauses a running process or resumes a paused one. Resuming
// saves pending edits first.
func (s *Session) TogglePause() Status {
	switch s.mode {
	case ModeRunning:
		if err := s.pause.Set(); err != nil {
			return failure(fmt.Sprintf("Failed to pause: %v", err))
		}
		s.mode = ModePaused
		s.pipeline.SetPaused(true)
		s.notice("Process paused.")
		return info("Paused. Editing enabled.")
	case ModePaused:
		msg := "Resumed."
		if s.journal.Dirty() {
			st := s.saveTo(s.logPath)
			if st.Kind == KindError {
				return st
			}
			msg = "Saved changes and resumed."
		}
		if err := s.pause.Clear(); err != nil {
			return failure(fmt.Sprintf("Failed to resume: %v", err))
		}
		s.mode = ModeRunning
		s.pipeline.SetPaused(false)
		s.notice("Process resumed.")
		return info(msg)
	default:
		return warning("No process is running.")
	}
}

// Drain moves queued output into the journal.
func (s *Session) Drain() ingest.DrainResult {
	res := s.pipeline.Drain()
	for _, err := range res.Errors {
		s.logger.Warn("session log write failed", "path", s.logPath, "err", err)
	}
	return res
}

// Finish records a process exit. Remaining output is drained first.
func (s *Session) Finish(res runner.Result) Status {
	drained := s.Drain()
	killed := s.process != nil && s.process.Killed()
	if err := s.pipeline.Finish(); err != nil {
		s.logger.Warn("close session log failed", "err", err)
	}
	if err := s.pause.Clear(); err != nil {
		s.logger.Warn("clear pause flag failed", "err", err)
	}
	s.process = nil
	s.appender = nil
	s.mode = ModeFinished

	var st Status
	switch {
	case killed:
		st = warning("Process terminated.")
	case res.Err != nil:
		st = failure(fmt.Sprintf("Process failed: %v", res.Err))
	case res.ExitCode != 0:
		st = warning(fmt.Sprintf("Process exited with code %d.", res.ExitCode))
	default:
		st = success("Process finished.")
	}
	if len(drained.Errors) > 0 {
		st.Message += fmt.Sprintf(" Session log write failed: %v", errors.Join(drained.Errors...))
		if st.Kind != KindError {
			st.Kind = KindWarning
		}
	}
	return st
}

// Open loads a saved log for viewing and editing.
func (s *Session) Open(path string) Status {
	if s.Active() {
		return warning("Stop the running process before opening a file.")
	}
	if path == "" {
		return warning("Usage: /open <path>")
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return failure("File not found: " + path)
		}
		return failure(fmt.Sprintf("Cannot open %s: %v", path, err))
	}
	entries, err := logfile.Load(path, s.classifier)
	if err != nil {
		s.logger.Error("load log failed", "path", path, "err", err)
		return failure(fmt.Sprintf("Failed to load %s: %v", path, err))
	}
	s.journal.Reset(entries)
	s.mode = ModeViewing
	s.viewPath = path
	return success(fmt.Sprintf("Opened %s (%d lines).", filepath.Base(path), len(entries)))
}

// Close leaves view mode and clears the entries.
func (s *Session) Close() Status {
	if s.mode != ModeViewing {
		return info("No file is open.")
	}
	s.journal.Reset(nil)
	s.viewPath = ""
	s.mode = ModeIdle
	return info("Closed file.")
}

// Save writes the journal to the current log file.
func (s *Session) Save() Status {
	if !s.Editable() {
		return warning("Pause the process before saving.")
	}
	path := s.LogPath()
	if path == "" {
		if s.journal.Len() == 0 {
			return info("Nothing to save.")
		}
		path = logfile.NewSessionPath(s.logDir, s.now())
		s.logPath = path
	}
	return s.saveTo(path)
}

func (s *Session) saveTo(path string) Status {
	if s.appender != nil {
		if err := s.appender.Close(); err != nil {
			s.logger.Warn("close session log failed", "err", err)
		}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return failure(fmt.Sprintf("Save failed: %v", err))
		}
	}
	if err := s.journal.Save(path); err != nil {
		s.logger.Error("save failed", "path", path, "err", err)
		return failure(fmt.Sprintf("Save failed: %v", err))
	}
	s.logger.Info("saved log", "path", path, "entries", s.journal.Len())
	return success(fmt.Sprintf("Saved %d lines to %s.", s.journal.Len(), filepath.Base(path)))
}

func (s *Session) notice(content string) {
	s.pipeline.Enqueue(journal.FormatMessage(s.now(), severity.System, content))
}

func launchMessage(err error) string {
	switch {
	case errors.Is(err, runner.ErrEmptyScript):
		return "Select a script to run first."
	case errors.Is(err, runner.ErrSelfLaunch):
		return "Refusing to run scribe inside itself."
	default:
		return fmt.Sprintf("Cannot run script: %v", err)
	}
}
