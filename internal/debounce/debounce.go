package debounce

import (
	"sync"
	"time"
)

// Debouncer calls fn with the last pushed value once no new value has arrived
// for the configured delay. Each Push restarts the timer (trailing edge).
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// New returns a Debouncer. A non-positive delay calls fn synchronously on Push.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Push schedules fn(value), replacing any pending value.
func (d *Debouncer[T]) Push(value T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.delay == 0 {
		d.mu.Unlock()
		d.fn(value)
		return
	}
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq, value) })
	d.mu.Unlock()
}

// Cancel drops the pending value, if any.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Pending reports whether a value is waiting to be delivered.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels the pending value and ignores all later pushes.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer[T]) cancelLocked() {
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire runs on the timer goroutine. A timer that lost the race with Push,
// Cancel or Stop sees a newer seq and does nothing.
func (d *Debouncer[T]) fire(seq uint64, value T) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()
	d.fn(value)
}
