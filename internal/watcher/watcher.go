// Package watcher reports changes to a single file, coalescing the burst of
// events editors produce into one callback once the file has settled.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay is how long a file must stay quiet before a change is reported.
const DefaultSettleDelay = 100 * time.Millisecond

// File watches one file via its parent directory, so atomic replace-by-rename
// saves are seen as well as in-place writes.
type File struct {
	path    string
	settle  time.Duration
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// NewFile starts watching path. A zero settle uses DefaultSettleDelay.
func NewFile(path string, settle time.Duration, logger *slog.Logger) (*File, error) {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &File{path: abs, settle: settle, logger: logger, watcher: w}, nil
}

// Path returns the absolute path being watched.
func (f *File) Path() string { return f.path }

// Run calls onChange after each settled change until ctx is done. It closes
// the underlying watcher before returning.
func (f *File) Run(ctx context.Context, onChange func()) error {
	defer f.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-f.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			f.schedule(onChange)
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("file watcher error", "path", f.path, "error", err)
		}
	}
}

func (f *File) schedule(onChange func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.settle, onChange)
}

func (f *File) stop() {
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.mu.Unlock()
	_ = f.watcher.Close()
}
