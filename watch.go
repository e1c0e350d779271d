package marionette

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// ConfigWatcher reports changes to a single config file. Editors often
// replace a file instead of writing it, so the parent directory is watched
// and events are filtered by name.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan struct{}
	errs    chan error
	closeCh chan struct{}
	once    sync.Once
	logger  *slog.Logger
}

// WatchConfig starts watching path.
func WatchConfig(path string, logger *slog.Logger) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("marionette: watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("marionette: watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("marionette: watch %s: %w", path, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	cw := &ConfigWatcher{
		path:    abs,
		watcher: w,
		changes: make(chan struct{}, 1),
		errs:    make(chan error, 1),
		closeCh: make(chan struct{}),
		logger:  logger,
	}
	go cw.run()
	return cw, nil
}

// Path returns the absolute path being watched.
func (w *ConfigWatcher) Path() string {
	return w.path
}

// Close stops the watcher. Safe to call more than once.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *ConfigWatcher) run() {
	var last time.Time
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			now := time.Now()
			if now.Sub(last) < reloadDebounce {
				continue
			}
			last = now
			// Coalesce: one pending change is enough.
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Pump moves pending notifications into q as EventReload events. It never
// blocks and is meant to be called once per frame from the frame loop.
func (w *ConfigWatcher) Pump(q *EventQueue) {
	select {
	case <-w.changes:
		q.Push(Event{Kind: EventReload})
	default:
	}
	select {
	case err := <-w.errs:
		w.logger.Warn("config watcher", "path", w.path, "err", err)
	default:
	}
}
