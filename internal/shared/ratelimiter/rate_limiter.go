// Package ratelimiter paces outbound calls to external APIs.
package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiterInterface limits how often an operation may run.
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter enforces a minimum spacing of 1/limit seconds between calls.
// Callers arriving sooner are delayed, not rejected. Safe for concurrent use:
// request handlers and background sync jobs share one instance per provider.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	sleep func(time.Duration) // injectable for tests
	now   func() time.Time
}

// NewRateLimiter creates a limiter allowing at most limit calls per second.
// A limit of zero or less disables throttling.
func NewRateLimiter(limit int) *RateLimiter {
	rl := &RateLimiter{
		sleep: time.Sleep,
		now:   time.Now,
	}
	if limit > 0 {
		rl.interval = time.Second / time.Duration(limit)
	}
	return rl
}

// WaitIfNeeded blocks until the minimum interval since the previous call has
// elapsed, then records the call.
func (rl *RateLimiter) WaitIfNeeded() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.interval <= 0 {
		return
	}
	now := rl.now()
	if !rl.last.IsZero() {
		if wait := rl.interval - now.Sub(rl.last); wait > 0 {
			rl.sleep(wait)
			now = now.Add(wait)
		}
	}
	rl.last = now
}
