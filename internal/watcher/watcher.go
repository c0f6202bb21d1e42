package watcher

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ignorePatterns lists base-name globs for in-progress files that should
// never be renamed while a watch session is active.
var ignorePatterns = []string{
	"*.tmp",
	"*.part",
	"*.partial",
	"*.download",
	"*.crdownload",
	".~*",
}

// shouldIgnore reports whether a path looks like a temporary or in-progress
// file. Backup copies made by this tool are ignored too.
func shouldIgnore(path string) bool {
	name := filepath.Base(path)
	if strings.Contains(name, ".bak") {
		return true
	}
	for _, pattern := range ignorePatterns {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// Handler processes one settled arrival. It reports whether the file was
// renamed; errors count toward the session summary without stopping the
// watch.
type Handler func(path string) (renamed bool, err error)

// Summary holds the statistics for one watch session.
type Summary struct {
	Renamed  int
	Skipped  int
	Errors   int
	Duration time.Duration
}

// Watcher monitors a directory tree and feeds settled create/rename arrivals
// through the handler. New subdirectories are added to the watch as they
// appear, so the whole tree stays covered.
type Watcher struct {
	handler   Handler
	debounce  *Debouncer
	fsWatcher *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup
	startTime time.Time

	mu      sync.Mutex
	renamed int
	skipped int
	errors  int
}

// New creates a Watcher with the given settle delay and handler.
func New(settle time.Duration, handler Handler) *Watcher {
	w := &Watcher{
		handler: handler,
		done:    make(chan struct{}),
	}
	w.debounce = NewDebouncer(settle, w.process)
	return w
}

// Start registers root and all its subdirectories and begins processing
// events until Stop is called.
func (w *Watcher) Start(root string) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		w.fsWatcher.Close()
		return err
	}
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, same as a batch walk.
			if path == absRoot {
				return err
			}
			return filepath.SkipDir
		}
		if d.IsDir() {
			return w.fsWatcher.Add(path)
		}
		return nil
	})
	if err != nil {
		w.fsWatcher.Close()
		return err
	}

	w.startTime = time.Now()
	w.done = make(chan struct{})

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop shuts the watcher down and returns the session summary.
func (w *Watcher) Stop() *Summary {
	close(w.done)
	w.wg.Wait()
	w.debounce.CancelAll()
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return &Summary{
		Renamed:  w.renamed,
		Skipped:  w.skipped,
		Errors:   w.errors,
		Duration: time.Since(w.startTime),
	}
}

// loop consumes fsnotify events until the session ends.
func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Newly created directories join the watch; files get a
			// settle window before they are evaluated.
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				_ = w.fsWatcher.Add(event.Name)
				continue
			}
			w.debounce.Add(event.Name)
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; keep the session alive.
		}
	}
}

// process handles one settled path.
func (w *Watcher) process(path string) {
	select {
	case <-w.done:
		return
	default:
	}

	if shouldIgnore(path) {
		w.count(func() { w.skipped++ })
		return
	}
	if w.handler == nil {
		w.count(func() { w.skipped++ })
		return
	}
	renamed, err := w.handler(path)
	switch {
	case err != nil:
		w.count(func() { w.errors++ })
	case renamed:
		w.count(func() { w.renamed++ })
	default:
		w.count(func() { w.skipped++ })
	}
}

func (w *Watcher) count(f func()) {
	w.mu.Lock()
	f()
	w.mu.Unlock()
}
