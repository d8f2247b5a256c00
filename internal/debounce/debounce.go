// Package debounce delays an action until input has been quiet for a fixed
// interval, and tags every fired action with a generation so late results of
// superseded actions can be dropped.
package debounce

import (
	"sync"
	"time"
)

// Debouncer is safe for concurrent use.
type Debouncer struct {
	mu         sync.Mutex
	delay      time.Duration
	timer      *time.Timer
	generation uint64
}

// New returns a Debouncer that waits delay after the last Trigger.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger (re)starts the timer. When it fires, fn runs on its own goroutine
// with the generation assigned at fire time.
func (d *Debouncer) Trigger(fn func(generation uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.timer != t {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.generation++
		gen := d.generation
		d.mu.Unlock()

		fn(gen)
	})
	d.timer = t
}

// Cancel drops any pending action and invalidates results of actions already
// in flight.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
}

// IsCurrent reports whether no newer action has fired since generation.
func (d *Debouncer) IsCurrent(generation uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generation == generation
}

// Pending reports whether an action is waiting for its timer.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
