// Package config loads scribe's configuration file.
//
// # Overview
//
// The configuration names where scribe keeps its files and how scripts are
// run. Everything is optional; a missing file yields the defaults.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/scribe/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/scribe/config.toml
//   - Data directory: ~/.local/share/scribe (holds pause.flag and scribe.log)
//   - Log directory: <data_dir>/logs (session logs)
//   - Themes directory: ~/.config/scribe/themes
//   - Drain interval: 50ms
//
// # TOML Format
//
//	data_dir = "~/.local/share/scribe"
//	log_dir = "~/logs/scribe"
//	themes_dir = "~/.config/scribe/themes"
//	drain_interval_ms = 50
//
//	[interpreters]
//	".sh" = ["bash"]
//	".ts" = ["deno", "run"]
//	".rb" = []            # remove a default
//
//	[levels]
//	METRIC = "#D7AFFF"
//
// Interpreter keys are file extensions; the leading dot is optional. Python
// files always use python3 or python and need no entry. Entries in [levels]
// add custom level names to the classifier, each with a display colour.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error.
package config
