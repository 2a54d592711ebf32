package middleware

import (
	"net/http"
	"strconv"
	"time"

	"shopdesk/internal/metrics"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const unmatchedRoute = "unmatched"

// Metrics records request counts and latencies labelled by route pattern,
// so that /api/products/1 and /api/products/2 share one series.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrapResponseWriter(w)

		next.ServeHTTP(rw, r)

		route := routePattern(r)
		metrics.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
		metrics.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

// Tracing starts a server span per request using the global tracer
// provider. Health and metrics scrapes are not traced.
func Tracing(serviceName string) func(http.Handler) http.Handler {
	opts := []otelhttp.Option{
		otelhttp.WithFilter(func(r *http.Request) bool {
			return !isInfraPath(r.URL.Path)
		}),
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return "HTTP " + r.Method + " " + r.URL.Path
		}),
	}

	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, serviceName, opts...)
	}
}
