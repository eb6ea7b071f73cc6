package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for StorageOperationLatency.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	// StorageOperationLatency records storage engine call latency.
	StorageOperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "selam_storage_operation_seconds",
		Help:    "Storage engine operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation", "outcome"})

	// CacheLookups counts cache-aside lookups by key kind and result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "selam_cache_lookups_total",
		Help: "Total number of cache lookups by kind and result",
	}, []string{"kind", "result"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "selam_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ToggleResults counts like and bookmark toggles by kind and resulting state.
	ToggleResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "selam_toggle_results_total",
		Help: "Total number of toggles by relation, target kind and resulting state",
	}, []string{"relation", "target", "state"})
)

// ObserveStorage records the latency of a storage call started at start.
func ObserveStorage(backend, operation string, start time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	StorageOperationLatency.WithLabelValues(backend, operation, outcome).Observe(time.Since(start).Seconds())
}
