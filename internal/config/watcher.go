// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads quickllm configuration from ordered TOML sources.
package config

import (
	"context"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounce collapses editor write bursts into one reload.
const debounce = 250 * time.Millisecond

// Watch watches dir for TOML changes and calls reload after each settled
// burst of events. It blocks until ctx is done; run it in its own goroutine.
// Watch errors are logged, never fatal: the running configuration stays live.
func Watch(ctx context.Context, dir string, log zerolog.Logger, reload func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".toml") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("config: watch error")

		case <-fire:
			timer = nil
			fire = nil
			log.Info().Str("dir", dir).Msg("config: change detected, reloading")
			reload()
		}
	}
}
