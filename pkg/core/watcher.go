package core

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sunyelw/logging-log4j2/pkg/status"
	"github.com/fsnotify/fsnotify"
)

const (
	defaultWatchDebounce = 500 * time.Millisecond
	watchTick            = 100 * time.Millisecond
)

// Watcher reloads a context when its configuration file changes. Change
// events are debounced so editors that write in bursts trigger one
// reload.
type Watcher struct {
	path     string
	debounce time.Duration
	reload   func(ctx context.Context) error

	fsw      *fsnotify.Watcher
	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
	log      *slog.Logger
}

// NewWatcher prepares a watcher for one file. Nothing happens until
// Start.
func NewWatcher(path string, debounce time.Duration, reload func(ctx context.Context) error) (*Watcher, error) {
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch path: %w", err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		reload:   reload,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		log:      status.Logger().With("component", "watcher", "path", abs),
	}, nil
}

// Start begins watching and dispatching reloads.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory, not the file: editors and config managers
	// replace files by rename, which drops a watch held on the file
	// itself.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()

		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.fsw = fsw
	w.started.Store(true)
	go w.loop()

	w.log.Debug("configuration watch started")

	return nil
}

func (w *Watcher) loop() {
	defer close(w.doneCh)
	defer w.fsw.Close()

	ticker := time.NewTicker(watchTick)
	defer ticker.Stop()

	var dirtyAt time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if w.relevant(ev) {
				dirtyAt = time.Now()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			w.log.Warn("file watcher error", "err", err)
		case <-ticker.C:
			if dirtyAt.IsZero() || time.Since(dirtyAt) < w.debounce {
				continue
			}

			dirtyAt = time.Time{}

			if err := w.reload(context.Background()); err != nil {
				w.log.Error("reload after file change failed", "err", err)
			}
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}

	return filepath.Clean(ev.Name) == w.path
}

// Stop halts the watch and waits for the loop to exit. Safe to call
// more than once, and before Start.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})

	if w.started.Load() {
		<-w.doneCh
	}
}
