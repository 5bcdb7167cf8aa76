// Package watch converts transcript files as they appear in a directory.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mgpai22/diarsrt/internal/convert"
	"github.com/mgpai22/diarsrt/internal/subtitle"
)

const (
	DefaultMaxConcurrent = 2
	DefaultSettle        = 500 * time.Millisecond
)

// processes one detected transcript file
type Handler func(ctx context.Context, path string) error

// Watcher runs a Handler for every new *.json file in a directory. At most
// maxConcurrent handlers run at once; a file is not queued again while it
// is still pending.
type Watcher struct {
	dir     string
	handler Handler
	notify  convert.Notifier
	watcher *fsnotify.Watcher

	// delay between the first event for a file and handling it, so writers
	// can finish
	Settle time.Duration

	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup

	mu      sync.Mutex
	pending map[string]bool
}

func New(dir string, handler Handler, notify convert.Notifier, maxConcurrent int) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if notify == nil {
		notify = zap.NewNop().Sugar()
	}

	return &Watcher{
		dir:           dir,
		handler:       handler,
		notify:        notify,
		watcher:       watcher,
		Settle:        DefaultSettle,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
		pending:       make(map[string]bool),
	}, nil
}

// Run blocks until ctx is done, then waits for in-flight handlers.
func (w *Watcher) Run(ctx context.Context) error {
	w.notify.Infow("Watching directory",
		"dir", w.dir,
		"max_concurrent", w.maxConcurrent,
	)

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			w.notify.Infow("Watcher stopped", "dir", w.dir)
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !IsTranscriptFile(event.Name) {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.notify.Warnw("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	if w.pending[path] {
		w.mu.Unlock()
		return
	}
	w.pending[path] = true
	w.mu.Unlock()

	w.notify.Infow("New transcript detected", "file", path)

	w.wg.Go(func() {
		defer func() {
			w.mu.Lock()
			delete(w.pending, path)
			w.mu.Unlock()
		}()

		select {
		case <-time.After(w.Settle):
		case <-ctx.Done():
			return
		}

		select {
		case w.semaphore <- struct{}{}:
		case <-ctx.Done():
			return
		}
		defer func() { <-w.semaphore }()

		if err := w.handler(ctx, path); err != nil {
			w.notify.Errorw("Failed to process file", "file", path, "error", err)
		}
	})
}

// Close stops watching the directory
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// reports whether path names a visible .json file
func IsTranscriptFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".json")
}

// ConvertInto returns a Handler that converts each file with c and writes
// <outputDir>/<file name><ext>.
func ConvertInto(c *convert.Converter, outputDir string) Handler {
	return func(ctx context.Context, path string) error {
		_, err := c.ConvertFile(ctx, path, OutputPath(outputDir, path, c.Format()))
		return err
	}
}

// destination for the transcript at path
func OutputPath(outputDir, path string, format subtitle.Format) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, base+subtitle.GetExtensionForFormat(format))
}
