package theme

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"
)

const reloadDebounce = 100 * time.Millisecond

// Registry is the set of available themes. It is safe for concurrent use;
// Watch reloads it from a background goroutine.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]Theme
	order  []string
	dir    string
	logger *log.Logger
}

// NewRegistry returns a registry holding the built-in themes.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		themes: builtins(),
		order:  slices.Clone(builtinOrder),
		logger: logger,
	}
}

// Get returns a theme by name, falling back to the default theme.
func (r *Registry) Get(name string) Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.themes[name]; ok {
		return t
	}
	return r.themes[DefaultName]
}

// Has reports whether name is a known theme.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.themes[name]
	return ok
}

// Next returns the theme name after current in the cycle.
func (r *Registry) Next(current string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, name := range r.order {
		if name == current {
			return r.order[(i+1)%len(r.order)]
		}
	}
	return r.order[0]
}

// Names returns the theme names: built-ins first, then file themes sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// LoadDir adds every *.toml theme in dir, replacing file themes loaded
// earlier. A missing dir is not an error. Bad files are skipped and reported
// together.
func (r *Registry) LoadDir(dir string) (int, error) {
	themes := builtins()
	order := slices.Clone(builtinOrder)

	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("read themes dir: %w", err)
	}

	var (
		errs  []error
		added []string
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".toml") {
			continue
		}
		t, err := loadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, builtin := themes[t.Name]; !builtin {
			added = append(added, t.Name)
		}
		themes[t.Name] = t
	}
	sort.Strings(added)
	order = append(order, slices.Compact(added)...)

	r.mu.Lock()
	r.themes = themes
	r.order = order
	r.dir = dir
	r.mu.Unlock()

	r.logger.Debug("themes loaded", "dir", dir, "files", len(added), "errors", len(errs))
	return len(added), errors.Join(errs...)
}

func loadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme %s: %w", filepath.Base(path), err)
	}
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", filepath.Base(path), err)
	}
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return t.fill(nightfoxTheme()), nil
}

// Watch reloads the themes directory whenever a file in it changes and calls
// onChange after each reload. It blocks until ctx is done.
func (r *Registry) Watch(ctx context.Context, onChange func()) error {
	r.mu.RLock()
	dir := r.dir
	r.mu.RUnlock()
	if dir == "" {
		return errors.New("no themes dir loaded")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create themes dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch themes dir: %w", err)
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".toml") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				debounce = time.After(reloadDebounce)
			}
		case <-debounce:
			debounce = nil
			if _, err := r.LoadDir(dir); err != nil {
				r.logger.Warn("theme reload had errors", "err", err)
			}
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("theme watcher error", "err", err)
		}
	}
}
