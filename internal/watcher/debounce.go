// Package watcher monitors a directory tree and renames matching arrivals.
package watcher

import (
	"sync"
	"time"
)

// Debouncer delays processing until file activity settles. Rapid events for
// the same path collapse into a single callback after the delay expires,
// which covers files still being written when the first event arrives.
type Debouncer struct {
	delay    time.Duration
	callback func(path string)
	mu       sync.Mutex
	pending  map[string]*time.Timer
}

// NewDebouncer creates a Debouncer invoking callback once per settled path.
func NewDebouncer(delay time.Duration, callback func(path string)) *Debouncer {
	return &Debouncer{
		delay:    delay,
		callback: callback,
		pending:  make(map[string]*time.Timer),
	}
}

// Add schedules path for processing after the delay, resetting any timer
// already pending for it.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.pending[path]; ok {
		timer.Stop()
	}
	d.pending[path] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.pending, path)
		d.mu.Unlock()

		// Invoke outside the lock so a slow handler cannot deadlock Add.
		if d.callback != nil {
			d.callback(path)
		}
	})
}

// CancelAll stops every pending timer. Used during shutdown so callbacks
// stop firing once the watch session ends.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for path, timer := range d.pending {
		timer.Stop()
		delete(d.pending, path)
	}
}

// PendingCount returns the number of paths awaiting their settle window.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
