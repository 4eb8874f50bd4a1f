package watcher

import (
	"slices"
	"sync"
	"time"
)

// Debouncer coalesces bursts of changed paths into one batch delivered after
// a quiet window.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a debouncer calling callback with the sorted batch.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records path and restarts the quiet window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// drain empties the pending set. The caller holds d.mu.
func (d *Debouncer) drain() []string {
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	clear(d.pending)
	return paths
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	paths := d.drain()
	d.mu.Unlock()

	if len(paths) > 0 && d.callback != nil {
		d.callback(paths)
	}
}

// Flush delivers pending paths immediately and waits for the callback.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Already firing.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	paths := d.drain()
	d.mu.Unlock()

	if len(paths) > 0 && d.callback != nil {
		d.callback(paths)
	}
}

// Stop discards pending paths and cancels the window.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}
