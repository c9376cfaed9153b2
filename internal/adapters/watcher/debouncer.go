// Package watcher reports project file changes so generated build files can follow them.
package watcher

import (
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/crusader/internal/core/ports"
)

// DefaultDebounceWindow is the default time window for coalescing file events.
const DefaultDebounceWindow = 300 * time.Millisecond

// Debouncer coalesces rapid file system events into one batch.
// For a path seen several times within the window, the last operation wins.
// Batches reach the callback one at a time, in the order they were taken.
// The callback must not call Flush.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]ports.WatchOp
	timer    *time.Timer
	window   time.Duration
	callback func(events []ports.WatchEvent)

	// deliver is held while a batch is taken and handed to the callback.
	deliver chan struct{}
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(events []ports.WatchEvent)) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]ports.WatchOp),
		window:   window,
		callback: callback,
		deliver:  make(chan struct{}, 1),
	}
}

// Add records an event and restarts the window.
func (d *Debouncer) Add(event ports.WatchEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[event.Path] = event.Operation

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// takeLocked empties the pending set into a batch sorted by path.
func (d *Debouncer) takeLocked() []ports.WatchEvent {
	events := make([]ports.WatchEvent, 0, len(d.pending))
	for path, op := range d.pending {
		events = append(events, ports.WatchEvent{Path: path, Operation: op})
	}
	slices.SortFunc(events, func(a, b ports.WatchEvent) int {
		return strings.Compare(a.Path, b.Path)
	})
	d.pending = make(map[string]ports.WatchOp)
	return events
}

// fire is called when the debounce window expires.
func (d *Debouncer) fire() {
	d.deliver <- struct{}{}
	defer func() { <-d.deliver }()

	d.mu.Lock()
	// Flush may have emptied the set already.
	if len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}
	events := d.takeLocked()
	d.timer = nil
	d.mu.Unlock()

	if d.callback != nil {
		d.callback(events)
	}
}

// Flush delivers all pending events now and blocks until the callback returns.
func (d *Debouncer) Flush() {
	d.deliver <- struct{}{}
	defer func() { <-d.deliver }()

	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// The timer already fired; that batch is on its way.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	events := d.takeLocked()
	d.mu.Unlock()

	if len(events) > 0 && d.callback != nil {
		d.callback(events)
	}
}
