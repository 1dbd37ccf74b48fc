package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/scribe/internal/app"
	"github.com/five82/scribe/internal/config"
	"github.com/five82/scribe/internal/logging"
	"github.com/five82/scribe/internal/prefs"
	"github.com/five82/scribe/internal/severity"
	"github.com/five82/scribe/internal/theme"
)

type rootFlags struct {
	configPath string
	prefsPath  string
	dataDir    string
	logLevel   string
	logFile    string
	logFormat  string
}

func (f *rootFlags) options() app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		PrefsPath:  f.prefsPath,
		DataDir:    f.dataDir,
		LogLevel:   f.logLevel,
		LogFile:    f.logFile,
		LogFormat:  logging.Format(f.logFormat),
	}
}

func (f *rootFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if f.dataDir != "" {
		cfg = cfg.WithDataDir(f.dataDir)
	}
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "scribe [script [args...]]",
		Short: "Run a script and watch, annotate and edit its log",
		Long: "scribe runs a script, streams its output into an editable log and\n" +
			"mirrors everything to a session log file. With no script it starts\n" +
			"idle; press r to pick one.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()
			opts.Script = strings.Join(args, " ")
			return app.Run(cmd.Context(), opts)
		},
	}
	// Everything after the script belongs to the script.
	cmd.Flags().SetInterspersed(false)

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/scribe/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/scribe/prefs.toml)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "data directory for session logs and the pause flag")
	pf.StringVar(&flags.logLevel, "log-level", "info", "diagnostic log level: debug, info, warn, error")
	pf.StringVar(&flags.logFile, "log-file", "", "diagnostic log file (default <data-dir>/scribe.log)")
	pf.StringVar(&flags.logFormat, "log-format", string(logging.FormatText), "diagnostic log format: text, json, logfmt")

	cmd.AddCommand(
		newViewCommand(flags),
		newLevelsCommand(flags),
		newThemesCommand(flags),
		newPrefsCommand(flags),
	)
	return cmd
}

func newViewCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>",
		Short: "Open a saved log for viewing and editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()
			opts.ViewFile = args[0]
			return app.Run(cmd.Context(), opts)
		},
	}
}

func newLevelsCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the log levels scribe recognises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			c := severity.NewClassifier(cfg.CustomLevels()...)
			for _, level := range c.Levels() {
				note := ""
				switch {
				case level == severity.Progress:
					note = "  (transient, merged)"
				case cfg.Levels[level] != "":
					note = "  " + cfg.Levels[level]
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", level, note)
			}
			return nil
		},
	}
}

func newThemesCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List built-in and installed themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			themes := theme.NewRegistry(nil)
			if _, err := themes.LoadDir(cfg.ThemesDir); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			current := prefs.Defaults().Theme
			if p, err := prefs.Load(flags.prefsPath); err == nil {
				current = p.Theme
			}
			for _, name := range themes.Names() {
				mark := " "
				if name == current {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, name)
			}
			return nil
		},
	}
}

func newPrefsCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or reset saved preferences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete saved preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := prefs.Reset(flags.prefsPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Preferences reset.")
			return nil
		},
	})
	return cmd
}
