package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreLatency is the duration of document store operations.
	StoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_store_latency",
			Help: "Duration of document store operations",
		},
		[]string{"backend", "operation", "document"},
	)

	// StoreTotalRequests is the total number of document store operations.
	StoreTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_store_total_requests",
			Help: "Total number of document store operations",
		},
		[]string{"backend", "operation", "document"},
	)

	// StoreFailures is the total number of failed loads and saves that were swallowed.
	StoreFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_store_failures_total",
			Help: "Total number of document loads and saves that failed",
		},
		[]string{"backend", "operation", "document"},
	)
)

// Observe counts an operation and returns a func that records its latency.
func Observe(backend, operation, document string) func() {
	StoreTotalRequests.WithLabelValues(backend, operation, document).Inc()
	t := prometheus.NewTimer(StoreLatency.WithLabelValues(backend, operation, document))
	return func() {
		t.ObserveDuration()
	}
}
