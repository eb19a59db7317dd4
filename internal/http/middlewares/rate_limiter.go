package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

type RateLimiterConfig struct {
	Limit  int
	Window time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// RateLimiter allows Limit requests per client IP in each fixed window.
func RateLimiter(cfg RateLimiterConfig) echo.MiddlewareFunc {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	limiter := newFixedWindowLimiter(cfg.Limit, cfg.Window)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			remaining, retryAfter, ok := limiter.allow(c.RealIP(), cfg.Now())
			if !ok {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			return next(c)
		}
	}
}

type window struct {
	count int
	start time.Time
}

type fixedWindowLimiter struct {
	limit  int
	length time.Duration

	mu      sync.Mutex
	windows map[string]*window
}

func newFixedWindowLimiter(limit int, length time.Duration) *fixedWindowLimiter {
	return &fixedWindowLimiter{
		limit:   limit,
		length:  length,
		windows: make(map[string]*window),
	}
}

// allow counts one request for key. When the limit is spent it reports how
// long until key's window resets.
func (l *fixedWindowLimiter) allow(key string, now time.Time) (int, time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.expired(w, now) {
		l.prune(now)
		w = &window{start: now}
		l.windows[key] = w
	}

	if w.count >= l.limit {
		return 0, w.start.Add(l.length).Sub(now), false
	}

	w.count++
	return l.limit - w.count, 0, true
}

// prune drops every expired window so idle clients do not accumulate.
func (l *fixedWindowLimiter) prune(now time.Time) {
	for key, w := range l.windows {
		if l.expired(w, now) {
			delete(l.windows, key)
		}
	}
}

func (l *fixedWindowLimiter) expired(w *window, now time.Time) bool {
	return now.Sub(w.start) >= l.length
}
