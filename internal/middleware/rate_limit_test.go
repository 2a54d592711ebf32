package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopdesk/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := NewRateLimiter(config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}, zerolog.Nop())
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(addr, path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1:1000", "/api/products"))
	assert.Equal(t, http.StatusOK, request("10.0.0.1:1001", "/api/products"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1:1002", "/api/products"))

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, request("10.0.0.2:1000", "/api/products"))

	// Health checks are never throttled.
	assert.Equal(t, http.StatusOK, request("10.0.0.1:1003", HealthPath))
}

func TestRateLimiter_IgnoresForwardedHeaders(t *testing.T) {
	limiter := NewRateLimiter(config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1}, zerolog.Nop())
	assert.False(t, limiter.TrustsProxy())

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.RemoteAddr = "198.51.100.4:4000"
		req.Header.Set("X-Forwarded-For", forwarded)
		req.Header.Set("X-Real-IP", forwarded)
		req.Header.Set("True-Client-IP", forwarded)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, request("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, request("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, request("203.0.113.3"))
	assert.Len(t, limiter.visitors, 1)
	assert.Contains(t, limiter.visitors, "198.51.100.4")
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 1}, zerolog.Nop())
	limiter.now = func() time.Time { return now }

	limiter.visitor("10.0.0.1")
	now = now.Add(4 * time.Minute)
	limiter.visitor("10.0.0.2")

	now = now.Add(2 * time.Minute)
	limiter.Cleanup()

	assert.NotContains(t, limiter.visitors, "10.0.0.1")
	assert.Contains(t, limiter.visitors, "10.0.0.2")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.RemoteAddr = "192.0.2.1"
	assert.Equal(t, "192.0.2.1", clientIP(req))
}
