package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exchange_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	listingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exchange_listings_created_total",
			Help: "Total number of listings posted",
		},
	)

	reportsFiledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exchange_reports_filed_total",
			Help: "Total number of listing reports filed",
		},
	)

	signupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exchange_signups_total",
			Help: "Total number of accounts created",
		},
	)
)

// Metrics returns a middleware that records request counts and latencies.
// The path label uses the chi route pattern so IDs don't explode cardinality.
func Metrics() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// CountListingCreated increments the listings-posted counter.
func CountListingCreated() {
	listingsCreatedTotal.Inc()
}

// CountReportFiled increments the reports-filed counter.
func CountReportFiled() {
	reportsFiledTotal.Inc()
}

// CountSignup increments the accounts-created counter.
func CountSignup() {
	signupsTotal.Inc()
}
