package fsutil

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gizzahub/lpmcore/errs"
)

// WatchEvent reports one debounced filesystem change under a watched root,
// the signal a long-running host process uses to invalidate its view of
// the content-addressed store (a concurrent manager process extracted a
// new package, or an operator touched the store by hand) without polling.
type WatchEvent struct {
	Path string
	Op   fsnotify.Op
	Time time.Time
}

// Watcher wraps fsnotify.Watcher with per-path debouncing so a burst of
// writes into a store directory (an in-progress extraction, a concurrent
// manager process) surfaces as a single change notification.
type Watcher struct {
	fsw      *fsnotify.Watcher
	events   chan WatchEvent
	errors   chan error
	debounce time.Duration
	mu       sync.Mutex
	pending  map[string]*time.Timer
	done     chan struct{}
	closeOne sync.Once
}

// Watch begins monitoring paths (directories or files) for changes,
// coalescing bursts of events on the same path into one WatchEvent per
// debounce window. A debounce of 0 uses a 250ms default.
func Watch(paths []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &errs.PathError{Op: "watch", Path: "<fsnotify>", Err: err}
	}

	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			fsw.Close()
			return nil, &errs.PathError{Op: "watch", Path: p, Err: err}
		}
	}

	w := &Watcher{
		fsw:      fsw,
		events:   make(chan WatchEvent, 64),
		errors:   make(chan error, 16),
		debounce: debounce,
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Events returns the channel of debounced change notifications.
func (w *Watcher) Events() <-chan WatchEvent { return w.events }

// Errors returns the channel of watch-loop errors (fsnotify internals,
// never a caller-visible Stat/Mkdir failure).
func (w *Watcher) Errors() <-chan error { return w.errors }

// Add starts watching an additional path.
func (w *Watcher) Add(path string) error {
	if err := w.fsw.Add(path); err != nil {
		return &errs.PathError{Op: "watch", Path: path, Err: err}
	}
	return nil
}

// Close stops the watcher and releases the underlying fsnotify handle.
// Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOne.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.mu.Lock()
		for _, t := range w.pending {
			t.Stop()
		}
		w.mu.Unlock()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.events)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.debounced(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// debounced coalesces repeated events on the same path within the
// debounce window into a single emitted WatchEvent, carrying the most
// recent Op observed when the timer fires.
func (w *Watcher) debounced(ev fsnotify.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[ev.Name]; ok {
		t.Stop()
	}
	w.pending[ev.Name] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, ev.Name)
		w.mu.Unlock()
		select {
		case w.events <- WatchEvent{Path: ev.Name, Op: ev.Op, Time: time.Now()}:
		case <-w.done:
		}
	})
}
