package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yourusername/desk-cli/internal/logging"
)

// reloadDelay coalesces the burst of events editors produce on save
const reloadDelay = 200 * time.Millisecond

// Watch reloads the config file at path whenever it changes and passes each
// valid result to fn. Invalid files are logged and skipped. Watch blocks
// until ctx is cancelled.
//
// The directory is watched rather than the file so that editors which
// replace the file on save keep being followed.
func Watch(ctx context.Context, path string, fn func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	logging.Info().Str("path", path).Msg("config watcher started")

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logging.Info().Msg("config watcher stopped")
			return nil

		case <-fire:
			fire = nil
			cfg, err := LoadConfig(path)
			if err != nil {
				logging.Warn().Err(err).Str("path", path).Msg("config reload failed")
				continue
			}
			logging.Info().Str("path", path).Msg("config reloaded")
			fn(cfg)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Error().Err(err).Msg("config watcher error")
		}
	}
}
