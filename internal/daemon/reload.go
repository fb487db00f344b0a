// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package daemon

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ReloadWatcher watches a config file for writes and calls OnReload when
// one occurs. Decided (see DESIGN.md Open Questions): reload is event-driven
// via fsnotify rather than re-read on every scheduler tick, so an edit takes
// effect immediately instead of waiting for the next sync interval.
type ReloadWatcher struct {
	Path     string
	OnReload func()
	Logger   *zap.Logger

	watcher *fsnotify.Watcher
}

// Start begins watching Path in a background goroutine. It returns once the
// watch is established; Stop (or ctx cancellation) ends the goroutine.
func (r *ReloadWatcher) Start(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(r.Path); err != nil {
		w.Close()
		return err
	}
	r.watcher = w

	go r.loop(ctx)
	return nil
}

func (r *ReloadWatcher) loop(ctx context.Context) {
	defer r.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if r.Logger != nil {
					r.Logger.Info("config file changed, reloading", zap.String("path", event.Name))
				}
				if r.OnReload != nil {
					r.OnReload()
				}
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			if r.Logger != nil {
				r.Logger.Error("config watch error", zap.Error(err))
			}
		}
	}
}

// Stop closes the underlying fsnotify watcher.
func (r *ReloadWatcher) Stop() error {
	if r.watcher == nil {
		return nil
	}
	return r.watcher.Close()
}
