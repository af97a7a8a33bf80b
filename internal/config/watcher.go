package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	path      string
	overrides map[string]any
	debounce  time.Duration
	onChange  func(*Config)
	onError   func(error)
}

// NewWatcher watches path. overrides are reapplied on every reload so flags
// keep winning over the file. onError may be nil.
func NewWatcher(path string, overrides map[string]any, onChange func(*Config), onError func(error)) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is required for watching")
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Watcher{
		path:      path,
		overrides: overrides,
		debounce:  DefaultDebounce,
		onChange:  onChange,
		onError:   onError,
	}, nil
}

// Watch blocks until ctx is done. The parent directory is watched so that
// editors replacing the file by rename are noticed. An invalid file is
// reported through onError and the previous config stays in effect.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fsw.Close()

	target, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.onError(err)

		case <-timer.C:
			cfg, err := NewLoader().Load(w.path, w.overrides)
			if err != nil {
				w.onError(fmt.Errorf("reloading config: %w", err))
				continue
			}
			w.onChange(cfg)
		}
	}
}
