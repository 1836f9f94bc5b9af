// Package metrics declares the Prometheus collectors of the server. They are
// registered on the default registry and exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Requests counts handled requests by operation ("create", "get") and
	// outcome ("created", "revealed", "hidden", "invalid", "not_found", "error").
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toldya_requests_total",
		Help: "Handled requests by operation and outcome",
	}, []string{"operation", "outcome"})

	// StoreDuration observes message store calls by backend, operation and result.
	StoreDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "toldya_store_duration_seconds",
		Help:    "Latency of message store calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation", "result"})

	// CacheLookups counts read-cache lookups by result ("hit", "miss").
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toldya_cache_lookups_total",
		Help: "Read cache lookups by result",
	}, []string{"result"})
)
