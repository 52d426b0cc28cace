package infra

import (
	"testing"
	"time"
)

func TestWindowRateLimiter(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rl := NewWindowRateLimiter(time.Second, 3)

	if got := rl.Budget(); got != 3 {
		t.Fatalf("fresh limiter Budget() = %d, want 3", got)
	}

	rl.Record(base)
	rl.Record(base.Add(200 * time.Millisecond))
	rl.Record(base.Add(400 * time.Millisecond))

	rl.Prune(base.Add(500 * time.Millisecond))
	if got := rl.Budget(); got != 0 {
		t.Errorf("Budget() with full window = %d, want 0", got)
	}

	// One second after the first record: it ages out, the others stay.
	rl.Prune(base.Add(1100 * time.Millisecond))
	if got := rl.Len(); got != 2 {
		t.Errorf("Len() after prune = %d, want 2", got)
	}
	if got := rl.Budget(); got != 1 {
		t.Errorf("Budget() after prune = %d, want 1", got)
	}

	rl.Prune(base.Add(5 * time.Second))
	if got := rl.Budget(); got != 3 {
		t.Errorf("Budget() after window drained = %d, want 3", got)
	}
}

func TestWindowRateLimiterOverCommit(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rl := NewWindowRateLimiter(time.Second, 2)

	// Mandatory cancels record past the cap; budget clamps at zero.
	rl.Record(base)
	rl.Record(base)
	rl.Record(base)

	rl.Prune(base.Add(100 * time.Millisecond))
	if got := rl.Budget(); got != 0 {
		t.Errorf("Budget() over cap = %d, want 0", got)
	}
	if got := rl.Len(); got != 3 {
		t.Errorf("Len() over cap = %d, want 3", got)
	}
}

func TestWindowRateLimiterPanicsOnBadArgs(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewWindowRateLimiter(0, 0) did not panic")
		}
	}()
	NewWindowRateLimiter(0, 0)
}
