// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package watch reports the configured network whenever the config file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/aplane-algo/btswitch/internal/netconfig"
)

// DefaultDebounce collapses the event burst produced by a single save
// (temp file create, write, rename).
const DefaultDebounce = 200 * time.Millisecond

// Source reloads the current network from disk.
type Source interface {
	Current() (netconfig.Network, error)
}

// Watcher follows a single config file.
type Watcher struct {
	path     string
	src      Source
	debounce time.Duration
}

// New returns a Watcher for path that reads values through src.
func New(path string, src Source) *Watcher {
	return &Watcher{path: filepath.Clean(path), src: src, debounce: DefaultDebounce}
}

// SetDebounce overrides DefaultDebounce.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run calls onChange with the current network, then again each time the
// stored network changes. It blocks until ctx is cancelled.
// The parent directory is watched rather than the file itself because
// atomic saves replace the file's inode.
func (w *Watcher) Run(ctx context.Context, onChange func(netconfig.Network)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	last, err := w.src.Current()
	if err != nil {
		return err
	}
	onChange(last)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.WithField("op", event.Op.String()).Debug("Config file event")
			timer.Reset(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			current, err := w.src.Current()
			if err != nil {
				log.WithError(err).Warn("Failed to reload config file")
				continue
			}
			if current != last {
				last = current
				onChange(current)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("File watcher error")
		}
	}
}
