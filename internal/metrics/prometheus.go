// Package metrics exposes RecordStore activity as Prometheus collectors on a
// private registry, written out in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	resultOK    = "ok"
	resultError = "error"
)

// Metrics holds the store collectors. It implements store.Observer.
type Metrics struct {
	registry *prometheus.Registry

	OperationsTotal *prometheus.CounterVec
	Records         prometheus.Gauge
	PersistDuration prometheus.Histogram
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		OperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rolodex",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of store operations by operation and result",
		}, []string{"op", "result"}),
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rolodex",
			Subsystem: "store",
			Name:      "records",
			Help:      "Number of customer records currently held",
		}),
		PersistDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rolodex",
			Subsystem: "store",
			Name:      "persist_seconds",
			Help:      "Time spent writing the customer blob to storage",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
	m.registry.MustRegister(m.OperationsTotal, m.Records, m.PersistDuration)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveOperation counts one operation outcome.
func (m *Metrics) ObserveOperation(op string, err error) {
	result := resultOK
	if err != nil {
		result = resultError
	}
	m.OperationsTotal.WithLabelValues(op, result).Inc()
}

// ObserveRecords sets the record gauge.
func (m *Metrics) ObserveRecords(n int) { m.Records.Set(float64(n)) }

// ObservePersist records one persist latency.
func (m *Metrics) ObservePersist(d time.Duration) { m.PersistDuration.Observe(d.Seconds()) }

// WriteTextfile writes the current values to path atomically, in the format
// read by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
