// Package watch re-runs an action when source files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a burst of file events must stay quiet before
// the action runs.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a fixed set of files.
type Watcher struct {
	w        *fsnotify.Watcher
	files    map[string]bool
	Debounce time.Duration
	Logger   *slog.Logger
}

// New watches the directories containing files; events for other entries
// in those directories are ignored. Editors that save by rename replace the
// file, so the directory is watched instead of the file itself.
func New(files ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	watcher := &Watcher{w: w, files: make(map[string]bool), Debounce: DefaultDebounce, Logger: slog.Default()}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("watching %s: %w", f, err)
		}
		watcher.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return watcher, nil
}

func (w *Watcher) Close() error { return w.w.Close() }

// Run calls action once per debounced burst of changes to the watched files
// until ctx is cancelled or the watcher is closed. It returns ctx.Err() on
// cancellation and nil when the watcher was closed.
func (w *Watcher) Run(ctx context.Context, action func(ctx context.Context)) error {
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.Logger.Debug("watch.event", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			timerC = timer.C
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("watch.error", "err", err)
		case <-timerC:
			timerC = nil
			action(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
