package allocator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "heapsim"

const (
	outcomeGranted     = "granted"
	outcomeDenied      = "denied"
	outcomeInvalidSize = "invalid_size"
	outcomeReleased    = "released"
	outcomeUnknown     = "unknown_address"

	directionLeft  = "left"
	directionRight = "right"
)

type allocatorMetrics struct {
	allocations *prometheus.CounterVec
	releases    *prometheus.CounterVec
	merges      *prometheus.CounterVec
	pruned      prometheus.Counter
	busyCells   prometheus.Gauge
	freeCells   prometheus.Gauge
}

// A nil registerer gives collectors that are never registered
func newAllocatorMetrics(r prometheus.Registerer) *allocatorMetrics {
	m := allocatorMetrics{}
	m.allocations = promauto.With(r).NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "allocations_total",
		Help:      "Number of allocate calls, by outcome.",
	}, []string{"outcome"})

	m.releases = promauto.With(r).NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "releases_total",
		Help:      "Number of release calls, by outcome.",
	}, []string{"outcome"})

	m.merges = promauto.With(r).NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "merges_total",
		Help:      "Number of free neighbors merged into a released region, by side.",
	}, []string{"direction"})

	m.pruned = promauto.With(r).NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "stack_pruned_total",
		Help:      "Number of stale recency stack entries dropped.",
	})

	m.busyCells = promauto.With(r).NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "busy_cells",
		Help:      "Number of cells currently allocated.",
	})

	m.freeCells = promauto.With(r).NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "free_cells",
		Help:      "Number of cells currently free.",
	})
	return &m
}

func (m *allocatorMetrics) observeUsage(busy uint32, capacity uint32) {
	m.busyCells.Set(float64(busy))
	m.freeCells.Set(float64(capacity - busy))
}
