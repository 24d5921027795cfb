// Package prometheus provides Prometheus-backed implementations of the
// instrumentation interfaces exposed by the kvfs packages.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/kvfs/pkg/metrics"
)

// vfsMetrics is the Prometheus implementation of vfs.Metrics.
type vfsMetrics struct {
	ops          *prometheus.CounterVec
	opDuration   *prometheus.HistogramVec
	bytesRead    prometheus.Counter
	bytesWritten prometheus.Counter
}

// NewVFSMetrics creates a Prometheus-backed vfs.Metrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called); the vfs
// layer treats a nil sink as disabled instrumentation.
func NewVFSMetrics() *vfsMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &vfsMetrics{
		ops: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kvfs_operations_total",
				Help: "Total number of filesystem operations by operation and outcome",
			},
			[]string{"op", "outcome"}, // op: list, read, write, remove, metadata
		),
		opDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kvfs_operation_duration_seconds",
				Help:    "Filesystem operation latency by operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		bytesRead: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "kvfs_read_bytes_total",
				Help: "Total payload bytes delivered by read operations",
			},
		),
		bytesWritten: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "kvfs_written_bytes_total",
				Help: "Total payload bytes persisted by write operations",
			},
		),
	}
}

// ObserveOp records one completed operation.
func (m *vfsMetrics) ObserveOp(op string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.ops.WithLabelValues(op, outcome).Inc()
	m.opDuration.WithLabelValues(op).Observe(d.Seconds())
}

// AddBytesRead records payload bytes delivered by Read.
func (m *vfsMetrics) AddBytesRead(n int64) {
	if m == nil {
		return
	}
	m.bytesRead.Add(float64(n))
}

// AddBytesWritten records payload bytes persisted by Write.
func (m *vfsMetrics) AddBytesWritten(n int64) {
	if m == nil {
		return
	}
	m.bytesWritten.Add(float64(n))
}
