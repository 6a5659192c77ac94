// Package debounce provides a cancellable one-shot timer: arm it on every
// keystroke and only the last call inside the delay fires.
package debounce

import (
	"sync"
	"time"
)

type Timer struct {
	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

func New() *Timer {
	return &Timer{}
}

// Arm schedules fn after d, replacing any call that has not fired yet.
func (t *Timer) Arm(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	gen := t.gen
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		current := gen == t.gen && !t.stopped
		if current {
			t.timer = nil
		}
		t.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Disarm cancels the pending call. It reports whether there was one.
func (t *Timer) Disarm() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer == nil {
		return false
	}
	t.timer.Stop()
	t.timer = nil
	t.gen++
	return true
}

// Stop disarms the timer for good. Later Arm calls are ignored.
func (t *Timer) Stop() {
	t.Disarm()
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}
