package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// SourceWatcher watches the resolved HBK file or JSON export directory
// for external modification after bootstrap has already published a
// catalog from it. Spec.md §5 forbids reloading — bootstrap is one-shot
// per process — so this never rebuilds anything; it only logs a warning
// that the running catalog may no longer match what's on disk, mirroring
// the teacher's config.Watcher but without its reload callback.
type SourceWatcher struct {
	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewSourceWatcher builds a watcher over path (a file or a directory).
func NewSourceWatcher(path string, logger *slog.Logger) *SourceWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceWatcher{path: path, logger: logger, stop: make(chan struct{})}
}

// Start begins watching in the background. Watching the containing
// directory, not the path itself, catches atomic replace-on-save the same
// way the teacher's config watcher does.
func (w *SourceWatcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	target := filepath.Clean(w.path)
	watchDir := target
	if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
		watchDir = filepath.Dir(target)
	}
	if err := fw.Add(watchDir); err != nil {
		fw.Close()
		return err
	}
	w.watcher = fw

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer fw.Close()
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				w.logger.Warn("ingestion source modified on disk after catalog was built; running catalog may be stale",
					"path", event.Name, "op", event.Op.String())
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("source watcher error", "error", err)
			case <-w.stop:
				return
			}
		}
	}()
	return nil
}

// Stop terminates the watcher goroutine and releases the fsnotify handle.
func (w *SourceWatcher) Stop() {
	close(w.stop)
	w.wg.Wait()
}
