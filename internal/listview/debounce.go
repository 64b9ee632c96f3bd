package listview

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the quiet window applied to search input.
const DefaultDebounceDelay = 500 * time.Millisecond

// Debouncer collapses a burst of observed values into the last one: each
// Observe restarts the timer, and only the value alive at the end of a quiet
// window is emitted on C. The final observed value is never dropped.
type Debouncer struct {
	delay time.Duration
	out   chan string

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewDebouncer builds a debouncer; a non-positive delay means the default.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{
		delay: delay,
		out:   make(chan string, 1),
	}
}

// Observe records a new value and restarts the quiet window.
func (d *Debouncer) Observe(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.emit(value)
	})
}

// emit replaces any value still waiting in the channel so a slow consumer
// always reads the latest one.
func (d *Debouncer) emit(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	select {
	case <-d.out:
	default:
	}
	d.out <- value
}

// C delivers debounced values.
func (d *Debouncer) C() <-chan string {
	return d.out
}

// Stop cancels any pending emission. Observe calls after Stop are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
