package storage

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of save requests into a single trailing write.
// Every Trigger resets the timer; the save runs once the burst has been quiet
// for the full interval.
type Debouncer struct {
	interval time.Duration
	save     func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a Debouncer that invokes save after interval of
// quiet following the last Trigger.
func NewDebouncer(interval time.Duration, save func()) *Debouncer {
	return &Debouncer{interval: interval, save: save}
}

// Trigger schedules (or reschedules) the trailing save.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.save)
}

// Flush runs a pending save immediately, if one is scheduled.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()
	if pending {
		d.save()
	}
}

// Stop cancels any pending save and rejects further triggers. A pending save
// is flushed first so shutdown never drops the last edit.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()
	if pending {
		d.save()
	}
}
