package page

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 250 * time.Millisecond

// Watcher reports writes to the content file so the viewer can re-layout in
// place. Rapid editor saves are debounced into a single reload.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	reloads chan struct{}
	stop    chan struct{}
	done    chan struct{}
}

// NewWatcher prepares a watcher for the given content file. The file's
// directory is watched rather than the file itself so editors that rename on
// save keep triggering reloads.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		watcher: fw,
		path:    abs,
		reloads: make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// Reloads delivers one value per settled change to the content file.
func (w *Watcher) Reloads() <-chan struct{} {
	return w.reloads
}

// Start begins watching. It is non-blocking; the event loop runs in its own
// goroutine until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop halts the event loop and releases the underlying watcher.
func (w *Watcher) Stop() {
	close(w.stop)
	<-w.done
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	var pending *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.matches(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(reloadDebounce)
			} else {
				pending.Reset(reloadDebounce)
			}
			fire = pending.C
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		case <-fire:
			fire = nil
			select {
			case w.reloads <- struct{}{}:
			default:
			}
		}
	}
}

func (w *Watcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return strings.EqualFold(abs, w.path)
}
