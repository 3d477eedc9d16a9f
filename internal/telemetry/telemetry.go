// Package telemetry records audit job counters in Prometheus format.
//
// The job is short-lived, so instead of serving /metrics the counters are
// written as a node_exporter textfile once the run finishes.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "metricsaudit"

// RunStats holds the counters of a single audit run.
type RunStats struct {
	registry *prometheus.Registry

	Checked       prometheus.Counter
	Unqueried     prometheus.Counter
	ProbeFailures prometheus.Counter
	Skipped       prometheus.Counter
	LastRun       prometheus.Gauge
	Duration      prometheus.Gauge
}

// NewRunStats registers the run counters on a private registry.
func NewRunStats() *RunStats {
	s := &RunStats{
		registry: prometheus.NewRegistry(),
		Checked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checked_total",
			Help:      "custom metrics probed for query activity",
		}),
		Unqueried: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unqueried_total",
			Help:      "custom metrics with no series in the query window",
		}),
		ProbeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probe_failures_total",
			Help:      "custom metrics whose probe failed",
		}),
		Skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_total",
			Help:      "inventory metrics skipped as vendor or integration metrics",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "unix time the last audit run finished",
		}),
		Duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "wall time of the last audit run",
		}),
	}
	s.registry.MustRegister(s.Checked, s.Unqueried, s.ProbeFailures, s.Skipped, s.LastRun, s.Duration)
	return s
}

// Finish records the completion time and duration of a run that started at start.
func (s *RunStats) Finish(start, end time.Time) {
	s.LastRun.Set(float64(end.Unix()))
	s.Duration.Set(end.Sub(start).Seconds())
}

// Registry exposes the private registry for gathering.
func (s *RunStats) Registry() *prometheus.Registry {
	return s.registry
}

// WriteTextfile atomically replaces path with the current counter values.
func (s *RunStats) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, s.registry)
}
