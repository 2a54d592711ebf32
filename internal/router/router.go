package router

import (
	"encoding/json"
	"net/http"

	"shopdesk/internal/handler"
	"shopdesk/internal/middleware"
	"shopdesk/internal/model"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Order    *handler.OrderHandler
	Report   *handler.ReportHandler
}

// Options configures the middleware chain.
type Options struct {
	APIKey      string
	ServiceName string
	// RateLimiter is optional; requests are not throttled when nil.
	RateLimiter *middleware.RateLimiter
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Logging -> Metrics -> Tracing -> CORS -> RateLimit -> APIKeyAuth
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.Tracing(opts.ServiceName))
	r.Use(middleware.CORS)
	if opts.RateLimiter != nil {
		if opts.RateLimiter.TrustsProxy() {
			r.Use(chimiddleware.RealIP)
		}
		r.Use(opts.RateLimiter.Middleware)
	}
	r.Use(middleware.APIKeyAuth(opts.APIKey, logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Health check endpoint (no authentication required)
	r.Get(middleware.HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Handle(middleware.MetricsPath, promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.Search)
			r.Get("/search", h.Product.Search)
			r.Post("/", h.Product.Create)
			r.Post("/import", h.Product.Import)
			r.Get("/inventory/low", h.Product.LowInventory)
			r.Get("/categories/{category}", h.Product.ByCategory)
			r.Get("/{id}", h.Product.GetByID)
			r.Put("/{id}", h.Product.Update)
			r.Delete("/{id}", h.Product.Delete)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.Customer.Search)
			r.Post("/", h.Customer.Create)
			r.Get("/{id}", h.Customer.GetByID)
			r.Put("/{id}", h.Customer.Update)
			r.Delete("/{id}", h.Customer.Delete)
			r.Get("/{id}/history", h.Customer.History)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Order.Search)
			r.Post("/", h.Order.Create)
			r.Get("/{id}", h.Order.GetByID)
			r.Delete("/{id}", h.Order.Delete)
			r.Patch("/{id}/status", h.Order.UpdateStatus)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/sales", h.Report.Sales)
			r.Get("/inventory", h.Report.Inventory)
			r.Get("/top-products", h.Report.TopProducts)
		})
	})

	return r
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.RequestIDFromContext(r.Context()),
	})
}
