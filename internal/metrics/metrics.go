package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Import result labels for CatalogRowsImported.
const (
	ImportCreated = "created"
	ImportUpdated = "updated"
	ImportSkipped = "skipped"
	ImportFailed  = "failed"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// OrdersCreated tracks placed orders by initial status
	OrdersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created",
		},
		[]string{"status"},
	)

	// OrderAmount tracks order totals
	OrderAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_amount",
			Help:    "Order totals in store currency",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000},
		},
	)

	// CatalogRowsImported tracks catalog rows by import outcome
	CatalogRowsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_rows_imported_total",
			Help: "Total number of catalog rows processed by import outcome",
		},
		[]string{"result"},
	)
)
