package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

// watchFile calls render once, then again after every change to path,
// until ctx is canceled. Render failures go to report and watching goes on.
//
// The parent directory is watched rather than the file, since many editors
// save by writing a new file and renaming it over the old one.
func watchFile(ctx context.Context, path string, logger *slog.Logger, render func() error, report func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadCard, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("%w: watching %s: %w", ErrReadCard, filepath.Dir(abs), err)
	}
	logger.Info("watcher: started", slog.String("path", abs))

	run := func() {
		if err := render(); err != nil {
			report(err)
			return
		}
		logger.Debug("watcher: rendered", slog.String("path", abs))
	}
	run()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case <-fire:
			fire = nil
			run()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}
