// Package watch reports changes to the files of a working set so the viewer
// can refresh what it shows.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"lookat/internal/log"
)

// FileModification represents a file event detected by the watcher
type FileModification struct {
	Path      string
	Info      os.FileInfo // nil when the file is gone
	Timestamp time.Time
	Op        fsnotify.Op
}

// Removed reports whether the file no longer exists under its path.
func (m FileModification) Removed() bool {
	return m.Info == nil
}

// Watcher monitors the directories of tracked files using fsnotify and
// reports events for the tracked files only.
type Watcher struct {
	fileModChan chan FileModification
	stopChan    chan struct{}
	done        chan struct{}
	fsWatcher   *fsnotify.Watcher

	mutex       sync.RWMutex
	directories map[string]bool
	tracked     map[string]bool
	running     bool
}

// New creates a new watcher
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{
		fileModChan: make(chan FileModification, 16),
		stopChan:    make(chan struct{}),
		fsWatcher:   fsWatcher,
		directories: make(map[string]bool),
		tracked:     make(map[string]bool),
	}, nil
}

// Track replaces the tracked file set and watches every directory holding
// one of the files. Directories no longer needed are unwatched.
func (w *Watcher) Track(paths []string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	tracked := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		p = filepath.Clean(p)
		tracked[p] = true
		dirs[filepath.Dir(p)] = true
	}

	for dir := range w.directories {
		if !dirs[dir] {
			if err := w.fsWatcher.Remove(dir); err != nil {
				log.LogWithFields(log.F("directory", dir), log.F("error", err)).Debug("unwatch failed")
			}
			delete(w.directories, dir)
		}
	}
	var firstErr error
	for dir := range dirs {
		if w.directories[dir] {
			continue
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			continue
		}
		w.directories[dir] = true
		log.LogWithFields(log.F("directory", dir)).Debug("watching directory")
	}
	w.tracked = tracked
	return firstErr
}

// FileChannel returns the channel that delivers file modification events
func (w *Watcher) FileChannel() <-chan FileModification {
	return w.fileModChan
}

func (w *Watcher) isTracked(path string) bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.tracked[filepath.Clean(path)]
}

// Start begins the file watching process
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	stop, done := w.stopChan, w.done
	w.mutex.Unlock()

	go w.loop(stop, done)
	log.Debug("watcher started")
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if mod, ok := w.translate(event); ok {
				select {
				case w.fileModChan <- mod:
				case <-stop:
					return
				default:
					log.LogWithFields(log.F("file", event.Name)).Warn("event channel is full, dropped event")
				}
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")
		case <-stop:
			return
		}
	}
}

// translate turns an fsnotify event for a tracked file into a
// modification. Chmod-only events are ignored.
func (w *Watcher) translate(event fsnotify.Event) (FileModification, bool) {
	if !w.isTracked(event.Name) {
		return FileModification{}, false
	}
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return FileModification{}, false
	}

	mod := FileModification{Path: filepath.Clean(event.Name), Timestamp: time.Now(), Op: event.Op}
	info, err := os.Stat(event.Name)
	switch {
	case err == nil && info.IsDir():
		return FileModification{}, false
	case err == nil:
		mod.Info = info
	case !os.IsNotExist(err):
		log.LogWithFields(log.F("file", event.Name), log.F("error", err)).Debug("cannot stat changed file")
	}
	return mod, true
}

// Stop halts the file watching process and closes the event channel once
// the event loop has exited. A stopped watcher cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return
	}
	w.running = false
	close(w.stopChan)
	done := w.done
	w.mutex.Unlock()

	<-done
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("error closing fsnotify watcher")
	}
	close(w.fileModChan)
	log.Debug("watcher stopped")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// GetDirectories returns the watched directories
func (w *Watcher) GetDirectories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirs := make([]string, 0, len(w.directories))
	for d := range w.directories {
		dirs = append(dirs, d)
	}
	return dirs
}
