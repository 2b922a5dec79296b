package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig sets the sustained rate and burst allowance applied to
// each client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{RequestsPerSecond: 100, BurstSize: 200}
}

// ipLimiter keeps one token bucket per client IP. The clock is injectable
// for tests; a nil clock uses time.Now.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64
	burst   float64
	now     func() time.Time
}

type bucket struct {
	tokens  float64
	refresh time.Time
}

func newIPLimiter(cfg RateLimitConfig, clock func() time.Time) *ipLimiter {
	if clock == nil {
		clock = time.Now
	}
	return &ipLimiter{
		buckets: make(map[string]*bucket),
		rate:    cfg.RequestsPerSecond,
		burst:   float64(cfg.BurstSize),
		now:     clock,
	}
}

// take spends one token for ip. When the bucket is empty it reports false
// along with the whole seconds to wait for the next token.
func (l *ipLimiter) take(ip string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{tokens: l.burst, refresh: now}
		l.buckets[ip] = b
	}

	b.tokens = math.Min(l.burst, b.tokens+now.Sub(b.refresh).Seconds()*l.rate)
	b.refresh = now

	if b.tokens < 1 {
		if l.rate <= 0 {
			return false, 1
		}
		return false, int(math.Ceil((1 - b.tokens) / l.rate))
	}
	b.tokens--
	return true, 0
}

// RateLimit rejects requests beyond the configured per-IP budget with 429
// and a Retry-After hint.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	return rateLimitWithClock(cfg, nil)
}

func rateLimitWithClock(cfg RateLimitConfig, clock func() time.Time) echo.MiddlewareFunc {
	limiter := newIPLimiter(cfg, clock)
	limit := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, wait := limiter.take(c.RealIP())
			c.Response().Header().Set("X-RateLimit-Limit", limit)
			if !ok {
				c.Response().Header().Set("Retry-After", strconv.Itoa(wait))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
