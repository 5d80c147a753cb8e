package store

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const seedDebounce = 400 * time.Millisecond

// SeedWatcher reloads a memory store from its YAML fixture file whenever
// the file changes on disk. Only meaningful in demo mode; edits to the
// fixture show up in the running server without a restart.
type SeedWatcher struct {
	path     string
	store    *MemoryStore
	logger   *zap.Logger
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewSeedWatcher creates a watcher for the fixture file at path, reloading
// into store on change.
func NewSeedWatcher(path string, store *MemoryStore, logger *zap.Logger) *SeedWatcher {
	return &SeedWatcher{
		path:     path,
		store:    store,
		logger:   logger,
		debounce: seedDebounce,
	}
}

// Start watches the fixture file until ctx is cancelled. Editors replace
// files on save, so the watch is on the containing directory and events are
// filtered by name and debounced.
func (w *SeedWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return err
	}
	w.logger.Info("watching seed fixtures", zap.String("path", w.path))

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != filepath.Base(w.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				w.scheduleReload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("seed watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}

func (w *SeedWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *SeedWatcher) reload() {
	seed, err := LoadSeed(w.path)
	if err != nil {
		w.logger.Warn("seed reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.store.Load(seed)
	w.logger.Info("seed fixtures reloaded",
		zap.Int("interviews", len(seed.Interviews)),
		zap.Int("templates", len(seed.Templates)),
	)
}
