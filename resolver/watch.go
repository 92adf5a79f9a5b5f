package resolver

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/lokitools/schema/logging"
	"github.com/sirupsen/logrus"
)

// Watcher re-runs resolution whenever a document under the target directory
// changes. Rapid write bursts are debounced, which also swallows the events
// caused by the resolver's own rewrites.
type Watcher struct {
	watcher    *fsnotify.Watcher
	resolver   *Resolver
	targetDir  string
	debounceMs int
	lastChange time.Time
	mu         sync.Mutex
	logger     *logrus.Entry
}

// NewWatcher creates a Watcher over targetDir and its subdirectories.
// The debounceMs parameter controls how long to wait before processing rapid changes.
func NewWatcher(resolver *Resolver, targetDir string, debounceMs int) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(targetDir); err != nil {
		watcher.Close()
		return nil, err
	}

	// fsnotify watches are not recursive, so register every subdirectory
	// present at startup.
	files, err := FindFilesWithExtension(targetDir, ".json")
	if err != nil {
		watcher.Close()
		return nil, err
	}
	watchedDirs := map[string]bool{targetDir: true}
	for _, file := range files {
		dir := filepath.Dir(file)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err == nil {
				watchedDirs[dir] = true
			}
		}
	}

	if debounceMs <= 0 {
		debounceMs = 250
	}

	return &Watcher{
		watcher:    watcher,
		resolver:   resolver,
		targetDir:  targetDir,
		debounceMs: debounceMs,
		logger:     logging.NewLogger("resolver-watch"),
	}, nil
}

// Start begins watching for document changes. It blocks until the context is
// cancelled.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if strings.HasSuffix(event.Name, ".json") {
					w.handleChange(ctx, event.Name)
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.watcher.Close()
			return
		}
	}
}

// handleChange re-runs resolution over the target directory, with debouncing.
func (w *Watcher) handleChange(ctx context.Context, file string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	elapsed := time.Since(w.lastChange)
	if elapsed < time.Duration(w.debounceMs)*time.Millisecond {
		w.logger.Debugf("Debounced: %s (only %v since last change)", filepath.Base(file), elapsed)
		return
	}
	w.lastChange = time.Now()

	w.logger.Infof("Document changed: %s", filepath.Base(file))
	if err := w.resolver.Run(ctx, w.targetDir); err != nil {
		w.logger.Errorf("Resolution failed: %v", err)
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
