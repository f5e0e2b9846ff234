package main

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchConfig watches the config directory and invokes reload after
// changes settle. Editors write config files in bursts (truncate, write,
// rename), so events are debounced.
func watchConfig(dir string, logger *slog.Logger, reload func()) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	// Layout files live in a subdirectory; ignore the error if it does
	// not exist yet.
	_ = w.Add(filepath.Join(dir, "layouts"))

	go func() {
		var timer *time.Timer
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if filepath.Ext(ev.Name) != ".yml" {
					continue
				}
				logger.Debug("config changed", "file", ev.Name)
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(250*time.Millisecond, reload)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher", "error", err)
			}
		}
	}()

	return w, nil
}
