package importer

import (
	"context"
	"os"
	"sync"
	"time"

	"spadmin/internal/logger"
)

const pollInterval = 2 * time.Second

// Watcher polls the source file's modification time and re-runs the import
// pipeline when it advances. One poll loop runs per collection name; starting
// a watch for a collection already being watched is a no-op.
type Watcher struct {
	importer *Importer
	logger   *logger.Logger

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

func NewWatcher(im *Importer, log *logger.Logger) *Watcher {
	return &Watcher{
		importer: im,
		logger:   log,
		cancels:  make(map[string]context.CancelFunc),
	}
}

// Start resolves the source file, failing fast if it cannot be found, then
// begins polling in a background goroutine.
func (w *Watcher) Start(collectionName string) error {
	if collectionName == "" {
		collectionName = DefaultCollection
	}

	_, sourcePath, err := FindSourceData(w.importer.paths)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, running := w.cancels[collectionName]; running {
		w.logger.Debug("watcher for collection %s already running", collectionName)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancels[collectionName] = cancel

	go w.poll(ctx, collectionName, sourcePath)

	w.logger.Info("watching %s for changes", sourcePath)
	return nil
}

// Watching reports whether a poll loop is running for the collection name.
func (w *Watcher) Watching(collectionName string) bool {
	if collectionName == "" {
		collectionName = DefaultCollection
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	_, running := w.cancels[collectionName]
	return running
}

// Stop cancels the poll loop for a collection name, if one is running.
func (w *Watcher) Stop(collectionName string) {
	if collectionName == "" {
		collectionName = DefaultCollection
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if cancel, ok := w.cancels[collectionName]; ok {
		cancel()
		delete(w.cancels, collectionName)
	}
}

// StopAll cancels every running poll loop.
func (w *Watcher) StopAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for name, cancel := range w.cancels {
		cancel()
		delete(w.cancels, name)
	}
}

func (w *Watcher) poll(ctx context.Context, collectionName, sourcePath string) {
	var lastMod time.Time
	if info, err := os.Stat(sourcePath); err == nil {
		lastMod = info.ModTime()
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(sourcePath)
			if err != nil {
				w.logger.Error("failed to stat %s: %v", sourcePath, err)
				continue
			}

			if !info.ModTime().After(lastMod) {
				continue
			}
			lastMod = info.ModTime()

			w.logger.Info("source data updated, re-importing into %s", collectionName)
			if _, err := w.importer.AutoImport(ctx, collectionName); err != nil {
				// One failed re-import does not stop polling.
				w.logger.Error("re-import failed: %v", err)
			}
		}
	}
}
