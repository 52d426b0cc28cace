package infra

import (
	"time"
)

// WindowRateLimiter tracks the timestamps of order actions taken within a
// trailing interval and answers how many more actions the window admits.
//
// Every order-affecting action (insert, cancel, hedge) is recorded at
// issuance, before any confirmation arrives: the limiter bounds submitted
// actions, not confirmed ones. That is conservative admission control: it
// may under-use the budget when cancellations are later rejected, but it
// can never let the engine exceed the venue's action-rate limit.
//
// The limiter is owned by the dispatcher goroutine and is not locked.
type WindowRateLimiter struct {
	interval time.Duration
	max      int
	stamps   []time.Time // ordered oldest first; push back, pop front
}

// NewWindowRateLimiter creates a limiter admitting max actions per
// trailing interval.
func NewWindowRateLimiter(interval time.Duration, max int) *WindowRateLimiter {
	if interval <= 0 || max <= 0 {
		panic("WindowRateLimiter: interval and max must be positive")
	}
	return &WindowRateLimiter{
		interval: interval,
		max:      max,
		stamps:   make([]time.Time, 0, max),
	}
}

// Prune drops all recorded timestamps older than now minus the interval.
// Must run before every admission decision.
func (w *WindowRateLimiter) Prune(now time.Time) {
	cutoff := now.Add(-w.interval)
	i := 0
	for i < len(w.stamps) && w.stamps[i].Before(cutoff) {
		i++
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}

// Budget returns the number of actions the window still admits, never
// negative. Mandatory risk cancels may push the count past max; the
// budget simply reads zero then.
func (w *WindowRateLimiter) Budget() int {
	b := w.max - len(w.stamps)
	if b < 0 {
		return 0
	}
	return b
}

// Record appends an action timestamp.
func (w *WindowRateLimiter) Record(now time.Time) {
	w.stamps = append(w.stamps, now)
}

// Len returns the number of actions currently in the window.
func (w *WindowRateLimiter) Len() int {
	return len(w.stamps)
}
