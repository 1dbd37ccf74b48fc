package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds scribe's settings.
type Config struct {
	DataDir       string
	LogDir        string
	ThemesDir     string
	Interpreters  map[string][]string
	Levels        map[string]string
	DrainInterval time.Duration
}

const (
	defaultConfigPath    = "~/.config/scribe/config.toml"
	defaultDataDir       = "~/.local/share/scribe"
	defaultThemesDir     = "~/.config/scribe/themes"
	defaultDrainInterval = 50 * time.Millisecond
	minDrainInterval     = 10 * time.Millisecond
)

var defaultInterpreters = map[string][]string{
	".sh": {"bash"},
	".js": {"node"},
	".rb": {"ruby"},
	".pl": {"perl"},
	".go": {"go", "run"},
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return finalize(rawConfig{}), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return finalize(raw), nil
}

type rawConfig struct {
	DataDir         string              `toml:"data_dir"`
	LogDir          string              `toml:"log_dir"`
	ThemesDir       string              `toml:"themes_dir"`
	DrainIntervalMS int                 `toml:"drain_interval_ms"`
	Interpreters    map[string][]string `toml:"interpreters"`
	Levels          map[string]string   `toml:"levels"`
}

func finalize(raw rawConfig) Config {
	cfg := Config{
		DataDir:       orDefault(raw.DataDir, defaultDataDir),
		ThemesDir:     orDefault(raw.ThemesDir, defaultThemesDir),
		DrainInterval: defaultDrainInterval,
		Interpreters:  make(map[string][]string, len(defaultInterpreters)+len(raw.Interpreters)),
		Levels:        make(map[string]string, len(raw.Levels)),
	}
	cfg.DataDir = mustExpand(cfg.DataDir)
	cfg.ThemesDir = mustExpand(cfg.ThemesDir)
	if strings.TrimSpace(raw.LogDir) == "" {
		cfg.LogDir = filepath.Join(cfg.DataDir, "logs")
	} else {
		cfg.LogDir = mustExpand(raw.LogDir)
	}

	if raw.DrainIntervalMS > 0 {
		cfg.DrainInterval = max(time.Duration(raw.DrainIntervalMS)*time.Millisecond, minDrainInterval)
	}

	for ext, argv := range defaultInterpreters {
		cfg.Interpreters[ext] = argv
	}
	for ext, argv := range raw.Interpreters {
		ext = normalizeExt(ext)
		if ext == "" {
			continue
		}
		if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
			delete(cfg.Interpreters, ext)
			continue
		}
		cfg.Interpreters[ext] = argv
	}

	for name, color := range raw.Levels {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		cfg.Levels[name] = strings.TrimSpace(color)
	}
	return cfg
}

// CustomLevels returns the configured level names in sorted order.
func (c Config) CustomLevels() []string {
	names := make([]string, 0, len(c.Levels))
	for name := range c.Levels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithDataDir returns a copy rooted at dir. A log dir that was derived from
// the old data dir moves with it.
func (c Config) WithDataDir(dir string) Config {
	dir = mustExpand(dir)
	if c.LogDir == "" || c.LogDir == filepath.Join(c.DataDir, "logs") {
		c.LogDir = filepath.Join(dir, "logs")
	}
	c.DataDir = dir
	return c
}

// PauseFlagPath returns the path of the pause flag file.
func (c Config) PauseFlagPath() string {
	return filepath.Join(c.dataDir(), "pause.flag")
}

// DiagnosticLogPath returns the default file for scribe's own log.
func (c Config) DiagnosticLogPath() string {
	return filepath.Join(c.dataDir(), "scribe.log")
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
