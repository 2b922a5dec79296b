package ai

import (
	"sync"
	"time"
)

// RateLimiter enforces a minimum interval between outbound model calls. It is
// an explicit object with an injectable clock so callers own the pacing state
// and tests can drive time.
type RateLimiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	last        time.Time
	now         func() time.Time
}

// NewRateLimiter returns a limiter that spaces calls at least minInterval
// apart. A nil clock uses time.Now.
func NewRateLimiter(minInterval time.Duration, clock func() time.Time) *RateLimiter {
	if clock == nil {
		clock = time.Now
	}
	return &RateLimiter{minInterval: minInterval, now: clock}
}

// Reserve records a call slot and returns how long the caller must wait
// before making it. Zero means go now.
func (l *RateLimiter) Reserve() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	next := l.last.Add(l.minInterval)
	if now.Before(next) {
		l.last = next
		return next.Sub(now)
	}
	l.last = now
	return 0
}
