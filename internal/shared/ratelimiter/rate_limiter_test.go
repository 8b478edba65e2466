package ratelimiter

import (
	"testing"
	"time"
)

func TestWaitIfNeeded_FirstCallDoesNotSleep(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(5)
	slept := time.Duration(0)
	rl.sleep = func(d time.Duration) { slept += d }

	rl.WaitIfNeeded()

	if slept != 0 {
		t.Errorf("first call slept %v, want 0", slept)
	}
}

func TestWaitIfNeeded_EnforcesMinimumSpacing(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(5) // 200ms spacing

	current := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	var slept time.Duration
	rl.sleep = func(d time.Duration) { slept += d }

	rl.WaitIfNeeded()

	// Second call 50ms later must wait the remaining 150ms.
	current = current.Add(50 * time.Millisecond)
	rl.WaitIfNeeded()

	if slept != 150*time.Millisecond {
		t.Errorf("slept %v, want 150ms", slept)
	}
}

func TestWaitIfNeeded_NoWaitAfterInterval(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(5)

	current := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	var slept time.Duration
	rl.sleep = func(d time.Duration) { slept += d }

	rl.WaitIfNeeded()

	current = current.Add(300 * time.Millisecond)
	rl.WaitIfNeeded()

	if slept != 0 {
		t.Errorf("slept %v, want 0 when interval already elapsed", slept)
	}
}

func TestWaitIfNeeded_ZeroLimitDisablesThrottle(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0)
	rl.sleep = func(d time.Duration) { t.Errorf("unexpected sleep %v", d) }

	for i := 0; i < 10; i++ {
		rl.WaitIfNeeded()
	}
}
