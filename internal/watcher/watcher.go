// Package watcher reports changes to the files backing the attendance log.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of file system event.
type EventType int

// Event types for file system changes.
const (
	EventChanged EventType = iota
	EventRemoved
)

// DebounceDelay collapses bursts of writes (csv append, xlsx save) into one event.
const DebounceDelay = 150 * time.Millisecond

// Event represents a change to a watched file.
type Event struct {
	Type EventType
	Path string
}

// Watcher watches individual files through their parent directories, so files
// that do not exist yet or are replaced by rename are still seen.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
	files      map[string]struct{} // cleaned absolute paths
	dirs       map[string]int      // dir -> number of watched files in it
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a new file watcher.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		files:      make(map[string]struct{}),
		dirs:       make(map[string]int),
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start starts processing events.
func (w *Watcher) Start() {
	go w.processEvents()
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for _, t := range w.debounce {
			t.Stop()
		}
		w.debounceMu.Unlock()
	})
}

// WatchFile adds a file to be watched. Its directory must exist.
func (w *Watcher) WatchFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[abs]; ok {
		return nil
	}
	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = struct{}{}

	log.Printf("[watcher] Watching %s", abs)
	return nil
}

// UnwatchFile removes a file from being watched.
func (w *Watcher) UnwatchFile(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[abs]; !ok {
		return
	}
	delete(w.files, abs)

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.fsWatcher.Remove(dir)
	}
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	w.mu.RLock()
	_, watched := w.files[path]
	w.mu.RUnlock()
	if !watched {
		return
	}

	var typ EventType
	switch {
	// Rename onto the target is how atomic saves land.
	case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
		typ = EventChanged
	case event.Op&fsnotify.Remove != 0:
		typ = EventRemoved
	default:
		return
	}

	w.debounceEvent(path, func() {
		w.emit(Event{Type: typ, Path: path})
	})
}

func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(DebounceDelay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}

// emit drops the event when nobody is draining the channel; a later change
// triggers another refresh anyway.
func (w *Watcher) emit(ev Event) {
	select {
	case <-w.done:
	case w.eventsChan <- ev:
	default:
		log.Printf("[watcher] dropped event for %s", ev.Path)
	}
}
