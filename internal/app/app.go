package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/scribe/internal/config"
	"github.com/five82/scribe/internal/logging"
	"github.com/five82/scribe/internal/prefs"
	"github.com/five82/scribe/internal/runner"
	"github.com/five82/scribe/internal/session"
	"github.com/five82/scribe/internal/severity"
	"github.com/five82/scribe/internal/theme"
	"github.com/five82/scribe/internal/ui"
)

// exitGrace bounds how long shutdown waits for a killed process to be reaped.
const exitGrace = 3 * time.Second

// Options configure the scribe application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/scribe/prefs.toml
	DataDir    string // overrides the configured data dir
	Script     string // run this instead of the remembered script
	ViewFile   string // open a saved log instead of running anything
	LogLevel   string
	LogFile    string // empty uses <data dir>/scribe.log
	LogFormat  logging.Format
}

// Run boots the scribe TUI until the operator quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.DataDir != "" {
		cfg = cfg.WithDataDir(opts.DataDir)
	}

	logPath := opts.LogFile
	if logPath == "" {
		logPath = cfg.DiagnosticLogPath()
	}
	logger, closer, err := logging.New(logging.Config{Level: opts.LogLevel, Path: logPath, Format: opts.LogFormat})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("load prefs failed", "err", err)
	}
	if opts.Script != "" {
		userPrefs.ScriptPath = opts.Script
	}
	if userPrefs.LogDir == "" {
		userPrefs.LogDir = cfg.LogDir
	}

	themes := theme.NewRegistry(logger)
	if n, err := themes.LoadDir(cfg.ThemesDir); err != nil {
		logger.Warn("some themes failed to load", "dir", cfg.ThemesDir, "err", err)
	} else if n > 0 {
		logger.Info("loaded themes", "dir", cfg.ThemesDir, "count", n)
	}

	sess := NewSession(cfg, userPrefs, logger)

	var startup session.Status
	if opts.ViewFile != "" {
		startup = sess.Open(opts.ViewFile)
		if startup.Kind == session.KindError {
			return errors.New(startup.Message)
		}
	}

	program := ui.NewProgram(ui.Options{
		Context:       ctx,
		Session:       sess,
		Themes:        themes,
		LevelColors:   cfg.Levels,
		Prefs:         userPrefs,
		PrefsPath:     prefsPath,
		DrainInterval: cfg.DrainInterval,
		AutoStart:     opts.Script != "" && opts.ViewFile == "",
		Status:        startup,
		Logger:        logger,
	})

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	StartThemeWatcher(watchCtx, themes, func() { program.Send(ui.ThemesChangedMsg{}) }, logger)

	_, runErr := program.Run()
	stopWatch()
	shutdown(sess, logger)

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", runErr)
	}
	return nil
}

// NewSession builds a session from the loaded settings.
func NewSession(cfg config.Config, p prefs.Prefs, logger *log.Logger) *session.Session {
	self, err := os.Executable()
	if err != nil {
		logger.Debug("cannot resolve own executable", "err", err)
	}
	logDir := p.LogDir
	if logDir == "" {
		logDir = cfg.LogDir
	}
	return session.New(session.Options{
		Launcher: runner.Launcher{
			Interpreters: cfg.Interpreters,
			DataDir:      cfg.DataDir,
			Self:         self,
		},
		LogDir:     logDir,
		DataDir:    cfg.DataDir,
		PauseFlag:  cfg.PauseFlagPath(),
		Classifier: severity.NewClassifier(cfg.CustomLevels()...),
		Filters:    p.Filters,
		Logger:     logger,
	})
}

// shutdown stops a process the UI left behind and records its exit. The UI
// goroutine has returned, so the session is ours.
func shutdown(sess *session.Session, logger *log.Logger) {
	proc := sess.Process()
	if proc == nil {
		return
	}
	if sess.Active() {
		sess.Kill()
	}
	var res runner.Result
	select {
	case r, ok := <-proc.Done():
		if ok {
			res = r
		}
	case <-time.After(exitGrace):
		logger.Warn("process did not exit in time", "pid", proc.Pid())
	}
	st := sess.Finish(res)
	logger.Info("session closed", "status", st.Message, "log", sess.LogPath())
}
