package server

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last file event before a
// change is reported. Editors save in bursts (write, chmod, rename), so a
// single save must not trigger several re-renders.
const DefaultDebounce = 500 * time.Millisecond

// watcher watches one file and reports changes after a debounce window.
// The parent directory is watched rather than the file itself: many editors
// replace files on save, which would silently detach a file-level watch.
type watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu            sync.Mutex
	debounceTimer *time.Timer

	onChange func(path string)
	onError  func(error)

	done chan struct{}
}

func newWatcher(path string, debounce time.Duration, onChange func(string), onError func(error)) (*watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &watcher{
		path:     abs,
		fsw:      fsw,
		debounce: debounce,
		onChange: onChange,
		onError:  onError,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching for changes.
func (w *watcher) Start() {
	go w.eventLoop()
}

// Stop stops the watcher.
func (w *watcher) Stop() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *watcher) handleEvent(event fsnotify.Event) {
	if name, err := filepath.Abs(event.Name); err != nil || name != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		w.onChange(w.path)
	})
}
