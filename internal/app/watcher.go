package app

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/five82/scribe/internal/theme"
)

// StartThemeWatcher launches a background goroutine that reloads the theme
// registry when its directory changes and calls onChange afterwards. It
// returns immediately.
func StartThemeWatcher(ctx context.Context, themes *theme.Registry, onChange func(), logger *log.Logger) {
	go func() {
		if err := themes.Watch(ctx, onChange); err != nil {
			logger.Debug("theme watcher stopped", "err", err)
		}
	}()
}
