package source

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// Watch reloads f from dir whenever a fixture file in dir changes, until ctx
// is cancelled. onReload, if non-nil, runs after each successful reload.
func Watch(ctx context.Context, f *Fixture, dir string, logger *slog.Logger, onReload func()) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}
	logger.Info("fixtures: watching", slog.String("dir", dir))

	var timer *time.Timer
	var fire <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(reloadDebounce)
			fire = timer.C
		} else {
			timer.Reset(reloadDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("fixtures: watcher stopped")
			return nil

		case <-fire:
			if err := f.LoadDir(dir); err != nil {
				logger.Warn("fixtures: reload failed", slog.String("error", err.Error()))
				continue
			}
			logger.Info("fixtures: reloaded", slog.String("dir", dir))
			if onReload != nil {
				onReload()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isFixtureFile(filepath.Base(ev.Name)) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.Debug("fixtures: change", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
				schedule()
			}

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("fixtures: watcher error", slog.String("error", werr.Error()))
		}
	}
}
