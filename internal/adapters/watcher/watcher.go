// Package watcher reports changes to a tree source on disk.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"a11ytree/internal/logger"
)

// Common errors.
var (
	ErrAlreadyStarted = errors.New("watcher already started")
	ErrFileRemoved    = errors.New("watched file was removed")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the debounce duration.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounceDuration = d
	}
}

// WithOnChange sets the callback invoked when the source changes.
func WithOnChange(fn func()) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.onChange = fn
		}
	}
}

// WithOnError sets the callback invoked on errors.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.onError = fn
		}
	}
}

// Watcher monitors a file, or a directory tree, with fsnotify. File
// watches go through the parent directory so atomic saves (write to a
// temporary file, then rename) are seen.
type Watcher struct {
	path             string
	isDir            bool
	debounceDuration time.Duration
	onChange         func()
	onError          func(error)

	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer

	cancel   context.CancelFunc
	started  bool
	mu       sync.Mutex
	changeCh chan struct{}
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:             absPath,
		debounceDuration: DefaultDebounceDuration,
		onChange:         func() {},
		onError:          func(error) {},
		changeCh:         make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = NewDebouncer(w.debounceDuration)

	return w, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}

	info, err := os.Stat(w.path)
	if err != nil {
		return err
	}
	w.isDir = info.IsDir()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if w.isDir {
		err = addTree(fsw, w.path)
	} else {
		err = fsw.Add(filepath.Dir(w.path))
	}
	if err != nil {
		fsw.Close()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.fsWatcher = fsw
	w.cancel = cancel
	w.started = true

	go w.run(ctx, fsw)
	logger.For("watcher").Debug("watching source", "path", w.path, "dir", w.isDir)
	return nil
}

// Stop stops watching. The change channel stays open.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	w.cancel()
	w.fsWatcher.Close()
	w.fsWatcher = nil
	w.debouncer.Cancel()
	w.started = false
}

// Changed returns a channel that receives when the source changes.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Path returns the watched path.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher) {
	target := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event, target) {
				continue
			}

			if w.isDir && event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(fsw, event.Name); err != nil {
						w.onError(err)
					}
				}
			}

			if !w.isDir && event.Op&fsnotify.Remove != 0 {
				w.onError(ErrFileRemoved)
				continue
			}
			w.debouncer.Trigger(w.notifyChange)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event, target string) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.isDir {
		return !strings.HasPrefix(filepath.Base(event.Name), ".")
	}
	return filepath.Base(event.Name) == target
}

func (w *Watcher) notifyChange() {
	w.onChange()

	// Non-blocking: one pending notification is enough
	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}

// addTree watches dir and every non-hidden directory below it
func addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}
