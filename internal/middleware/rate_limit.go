package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"shopdesk/internal/config"
	"shopdesk/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	visitorCleanupInterval = time.Minute
	visitorIdleTTL         = 5 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket.
// Clients are keyed on the connection's remote address.
type RateLimiter struct {
	mu         sync.Mutex
	visitors   map[string]*visitor
	rps        rate.Limit
	burst      int
	trustProxy bool
	now        func() time.Time
	logger     zerolog.Logger
}

// NewRateLimiter creates a per-client rate limiter.
func NewRateLimiter(cfg config.RateLimitConfig, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		visitors:   make(map[string]*visitor),
		rps:        rate.Limit(cfg.RPS),
		burst:      cfg.Burst,
		trustProxy: cfg.TrustProxy,
		now:        time.Now,
		logger:     logger.With().Str("component", "rate-limiter").Logger(),
	}
}

// TrustsProxy reports whether forwarded client addresses may replace the
// remote address before the limiter runs.
func (l *RateLimiter) TrustsProxy() bool {
	return l.trustProxy
}

func (l *RateLimiter) visitor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

// Cleanup forgets clients idle for longer than the visitor TTL.
func (l *RateLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > visitorIdleTTL {
			delete(l.visitors, ip)
		}
	}
}

// Run calls Cleanup periodically until ctx is done.
func (l *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(visitorCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}

// Middleware rejects requests over the client's rate with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isInfraPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		if !l.visitor(ip).Allow() {
			l.logger.Warn().Str("client_ip", ip).Str("path", r.URL.Path).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", "1")
			writeError(w, r, http.StatusTooManyRequests, model.ErrCodeRateLimited, "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
