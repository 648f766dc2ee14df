// Package watch observes the snapshot history and the config file so the
// CLI can re-render a report whenever either changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is one coalesced filesystem change the watcher reports.
type Event struct {
	Path string
	Op   string // "create", "write", "remove", "rename"
}

// Watcher delivers debounced change events for snapshot files and config
// files. Other files in watched directories are ignored.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(Event)
}

func New(debounce time.Duration, onChange func(Event)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		watcher:  w,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Add registers a directory or file to watch. The snapshots directory is
// flat, so there is no recursive walk.
func (w *Watcher) Add(path string) error {
	if err := w.watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	return nil
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var lastEvent Event
	debouncer := NewDebouncer(w.debounce, func() {
		if w.onChange != nil {
			w.onChange(lastEvent)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			op := opName(event.Op)
			if op == "" || !relevant(event.Name) {
				continue
			}

			lastEvent = Event{Path: event.Name, Op: op}
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// relevant reports whether a changed path should trigger a re-render:
// snapshot captures and yaml config files do, report outputs and editor
// temp files do not.
func relevant(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "snapshot-") && strings.HasSuffix(base, ".json") {
		return true
	}
	ext := filepath.Ext(base)
	return ext == ".yaml" || ext == ".yml"
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
