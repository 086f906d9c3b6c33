package daemon

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// ContentWatcher monitors the content trees and emits a debounced signal when
// markdown files change.
type ContentWatcher struct {
	dirs     []string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	changed  chan struct{}
}

// NewContentWatcher creates a watcher over the given directories. Missing
// directories are skipped at Start.
func NewContentWatcher(debounce time.Duration, dirs ...string) (*ContentWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &ContentWatcher{
		dirs:     dirs,
		watcher:  watcher,
		debounce: debounce,
		changed:  make(chan struct{}, 1),
	}, nil
}

// Changes delivers one signal per debounced burst of content changes.
func (w *ContentWatcher) Changes() <-chan struct{} { return w.changed }

// Start registers the watch points and runs the event loop until ctx is
// cancelled.
func (w *ContentWatcher) Start(ctx context.Context) error {
	for _, dir := range w.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			slog.Warn("Watch directory not found, skipping", logfields.Path(dir))
			continue
		}
		if err := w.addRecursive(dir); err != nil {
			return err
		}
	}

	slog.Info("Content watcher started", slog.Int("dirs", len(w.dirs)))
	go w.eventLoop(ctx)
	return nil
}

// Close stops the underlying filesystem watcher.
func (w *ContentWatcher) Close() error { return w.watcher.Close() }

// addRecursive watches dir and every non-hidden subdirectory; fsnotify
// watches are not recursive on their own.
func (w *ContentWatcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			return fs.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *ContentWatcher) eventLoop(ctx context.Context) {
	var timer *time.Timer
	fire := func() {
		select {
		case w.changed <- struct{}{}:
		default:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			// New directories need their own watch to keep coverage.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
				}
			}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Content watcher error", logfields.Error(err))
		}
	}
}

// relevant filters events down to content-affecting ones: markdown writes,
// renames, removals and new directories.
func relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) && event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := filepath.Ext(base)
	if ext == ".md" || ext == ".mdx" {
		return true
	}
	// Directory events carry no extension; treat them as relevant so new
	// trees get picked up.
	return ext == ""
}
