package navigation

import (
	"sync"
	"time"
)

// DefaultAdvanceDelay lets the operator see the new centroid before the view changes.
const DefaultAdvanceDelay = time.Second

// Cancel stops a scheduled callback if it has not fired yet.
type Cancel func()

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Cancel
}

// TimerScheduler schedules with time.AfterFunc; fn runs on the timer's goroutine.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// AutoAdvancer arms at most one deferred advance at a time. Scheduling again
// replaces the pending one; Cancel suppresses it (manual navigation, reload).
type AutoAdvancer struct {
	sched   Scheduler
	delay   time.Duration
	mu      sync.Mutex
	enabled bool
	gen     uint64
	fired   uint64
	cancel  Cancel
}

// NewAutoAdvancer returns an advancer using sched. A non-positive delay uses DefaultAdvanceDelay.
func NewAutoAdvancer(sched Scheduler, delay time.Duration, enabled bool) *AutoAdvancer {
	if sched == nil {
		sched = TimerScheduler{}
	}
	if delay <= 0 {
		delay = DefaultAdvanceDelay
	}
	return &AutoAdvancer{sched: sched, delay: delay, enabled: enabled}
}

// Enabled reports whether Schedule arms anything.
func (a *AutoAdvancer) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// SetEnabled toggles auto-advance; disabling cancels a pending advance.
func (a *AutoAdvancer) SetEnabled(b bool) {
	a.mu.Lock()
	a.enabled = b
	a.mu.Unlock()
	if !b {
		a.Cancel()
	}
}

// Delay returns the configured delay.
func (a *AutoAdvancer) Delay() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.delay
}

// SetDelay changes the delay for advances scheduled from now on.
func (a *AutoAdvancer) SetDelay(d time.Duration) {
	if d <= 0 {
		return
	}
	a.mu.Lock()
	a.delay = d
	a.mu.Unlock()
}

// Schedule arms fn after the delay, cancelling any earlier pending advance.
// It reports false when auto-advance is disabled.
func (a *AutoAdvancer) Schedule(fn func()) bool {
	a.mu.Lock()
	if !a.enabled {
		a.mu.Unlock()
		return false
	}
	a.stopLocked()
	a.gen++
	gen := a.gen
	delay := a.delay
	a.mu.Unlock()

	cancel := a.sched.AfterFunc(delay, func() {
		a.mu.Lock()
		if a.gen != gen {
			a.mu.Unlock()
			return
		}
		a.fired = gen
		a.cancel = nil
		a.mu.Unlock()
		fn()
	})

	a.mu.Lock()
	if a.gen == gen && a.fired != gen {
		a.cancel = cancel
	}
	a.mu.Unlock()
	return true
}

// Cancel suppresses the pending advance, if any.
func (a *AutoAdvancer) Cancel() {
	a.mu.Lock()
	a.stopLocked()
	a.gen++
	a.mu.Unlock()
}

// Pending reports whether an advance is armed.
func (a *AutoAdvancer) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

func (a *AutoAdvancer) stopLocked() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
