// Package app is scribe's composition root.
//
// Run loads the config and preferences, opens the diagnostic log, builds the
// theme registry and a session, then hands everything to the Bubble Tea
// program and blocks until it exits:
//
//	Run()
//	 ├─> config.Load()         settings, interpreters, custom levels
//	 ├─> logging.New()         diagnostic log (file or discard)
//	 ├─> prefs.Load()          theme, last script, level filters
//	 ├─> theme.Registry        built-ins plus the themes dir
//	 ├─> NewSession()          launcher, journal, pipeline, pause flag
//	 ├─> StartThemeWatcher()   reload themes on change
//	 └─> ui.NewProgram().Run()
//
// On exit a process the UI left running is killed and reaped so its session
// log is closed.
//
// Fatal errors are an unreadable config, a bad log level or an unopenable
// diagnostic log, and a file passed for viewing that cannot be loaded.
// Missing or malformed preferences and theme files are logged and skipped.
package app
