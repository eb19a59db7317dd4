package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	e := echo.New()
	e.Use(RateLimiter(RateLimiterConfig{
		Limit:  2,
		Window: time.Minute,
		Now:    func() time.Time { return now },
	}))
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	hit := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	first := hit("10.0.0.1")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.1").Code)

	limited := hit("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, hit("10.0.0.2").Code)

	now = now.Add(time.Minute)
	assert.Equal(t, http.StatusOK, hit("10.0.0.1").Code)
}

func TestFixedWindowLimiter_PrunesExpiredWindows(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	limiter := newFixedWindowLimiter(5, time.Minute)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		_, _, ok := limiter.allow(ip, now)
		assert.True(t, ok)
	}
	assert.Len(t, limiter.windows, 3)

	_, _, ok := limiter.allow("10.0.0.2", now.Add(30*time.Second))
	assert.True(t, ok)
	assert.Len(t, limiter.windows, 3)

	remaining, _, ok := limiter.allow("10.0.0.4", now.Add(time.Minute))
	assert.True(t, ok)
	assert.Equal(t, 4, remaining)
	assert.Len(t, limiter.windows, 1)
	assert.Contains(t, limiter.windows, "10.0.0.4")
}
