// Package watcher purges module caches when component sources change on disk.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/bagel/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// skipDirs are never watched. Changes below node_modules need a restart.
var skipDirs = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

const eventBuffer = 100

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fsw    *fsnotify.Watcher
	log    ports.Logger
	events chan ports.WatchEvent
}

// NewWatcher creates a new file system watcher. log receives watch errors and may be nil.
func NewWatcher(log ports.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}
	return &Watcher{
		fsw:    fsw,
		log:    log,
		events: make(chan ports.WatchEvent, eventBuffer),
	}, nil
}

// Start watches root and every directory below it.
func (w *Watcher) Start(ctx context.Context, root string) error {
	for dir := range dirsUnder(root) {
		if err := w.fsw.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir)
		}
	}

	go w.loop(ctx)
	return nil
}

// Stop closes the underlying watcher. Events ends once pending events are drained.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func dirsUnder(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			ev, ok := convert(raw)
			if !ok {
				continue
			}

			select {
			case w.events <- ev:
			case <-ctx.Done():
				return
			}

			if ev.Operation == ports.OpCreate {
				w.addIfDir(raw.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.log != nil {
				w.log.Error(zerr.Wrap(err, "file watcher error"))
			}
		}
	}
}

// addIfDir starts watching a newly created directory tree.
func (w *Watcher) addIfDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || skipDirs[info.Name()] {
		return
	}
	for dir := range dirsUnder(path) {
		_ = w.fsw.Add(dir)
	}
}

func convert(ev fsnotify.Event) (ports.WatchEvent, bool) {
	out := ports.WatchEvent{Path: ev.Name}
	switch {
	case ev.Has(fsnotify.Write):
		out.Operation = ports.OpWrite
	case ev.Has(fsnotify.Create):
		out.Operation = ports.OpCreate
	case ev.Has(fsnotify.Remove):
		out.Operation = ports.OpRemove
	case ev.Has(fsnotify.Rename):
		out.Operation = ports.OpRename
	default:
		return out, false
	}
	return out, true
}
