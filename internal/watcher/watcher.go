// Package watcher provides inbox directory watching with fsnotify and debounced rescans.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hyperjump/genie/internal/extract"
	"github.com/hyperjump/genie/internal/models"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// BatchFunc receives the full set of inbox documents after a settled change.
type BatchFunc func(docs []models.SourceDocument)

// Inbox watches one drop folder. Any create, write, rename, or removal of a
// matching file schedules a debounced rescan of the whole folder; the complete
// batch is then handed to the callback. Rescanning everything keeps the
// callback's view consistent with replace-on-process session semantics.
type Inbox struct {
	dir        string
	extensions []string
	onBatch    BatchFunc
	debounce   time.Duration
	watcher    *fsnotify.Watcher
	mu         sync.Mutex
	timer      *time.Timer
	done       chan struct{}
	started    bool
	stopOnce   sync.Once
	logger     *zap.Logger // optional; when set, logs debug events
}

// Option configures an Inbox.
type Option func(*Inbox)

// WithLogger sets a logger for debug output (file events, rescans).
func WithLogger(l *zap.Logger) Option {
	return func(w *Inbox) { w.logger = l }
}

// WithDebounce overrides the settle interval before a rescan fires.
func WithDebounce(d time.Duration) Option {
	return func(w *Inbox) { w.debounce = d }
}

// NewInbox creates a watcher over dir. extensions filter which files count
// (empty = all). onBatch is invoked with the folder's full document set after
// each settled change.
func NewInbox(dir string, extensions []string, onBatch BatchFunc, opts ...Option) *Inbox {
	w := &Inbox{
		dir:        dir,
		extensions: extensions,
		onBatch:    onBatch,
		debounce:   defaultDebounce,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start starts the watcher, creating the inbox directory if missing. It runs
// until ctx is cancelled or Stop is called.
func (w *Inbox) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	if _, err := os.Stat(w.dir); os.IsNotExist(err) {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			w.mu.Unlock()
			return err
		}
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		w.mu.Unlock()
		return err
	}
	w.watcher = watcher
	w.started = true
	w.mu.Unlock()
	if w.logger != nil {
		w.logger.Debug("inbox watcher starting",
			zap.String("dir", w.dir),
			zap.Strings("extensions", w.extensions))
	}
	go w.run(ctx)
	return nil
}

func (w *Inbox) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil && w.logger != nil {
				w.logger.Debug("inbox watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Inbox) handleEvent(ev fsnotify.Event) {
	if !w.matchExtension(ev.Name) {
		return
	}
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if w.logger != nil {
		w.logger.Debug("inbox event", zap.String("op", ev.Op.String()), zap.String("path", ev.Name))
	}
	w.scheduleScan()
}

func (w *Inbox) matchExtension(path string) bool {
	if len(w.extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// scheduleScan restarts the settle timer; the rescan fires once events stop.
func (w *Inbox) scheduleScan() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.scan)
}

// scan reads every matching inbox file in name order and hands the batch to
// the callback. Unreadable files are skipped.
func (w *Inbox) scan() {
	var paths []string
	_ = filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != w.dir {
				return fs.SkipDir
			}
			return nil
		}
		if w.matchExtension(path) {
			paths = append(paths, path)
		}
		return nil
	})
	sort.Strings(paths)

	docs := make([]models.SourceDocument, 0, len(paths))
	for _, path := range paths {
		doc, err := extract.FromFile(path)
		if err != nil {
			if w.logger != nil {
				w.logger.Warn("inbox file unreadable, skipping",
					zap.String("path", path), zap.Error(err))
			}
			continue
		}
		docs = append(docs, doc)
	}
	if w.logger != nil {
		w.logger.Debug("inbox rescan complete", zap.Int("documents", len(docs)))
	}
	if w.onBatch != nil {
		w.onBatch(docs)
	}
}

// Sync rescans the inbox immediately. Call after Start to pick up files that
// were already present.
func (w *Inbox) Sync() {
	w.scan()
}

// Stop stops the watcher and releases resources.
func (w *Inbox) Stop() {
	w.mu.Lock()
	if !w.started || w.watcher == nil {
		w.mu.Unlock()
		return
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}
