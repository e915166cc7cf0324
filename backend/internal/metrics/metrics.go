// Package metrics exposes prometheus counters and histograms for the
// scheduler, mirroring therealutkarshpriyadarshi-vector/pkg/observability/metrics.go's
// promauto CounterVec/HistogramVec pattern, but registered on an
// instance-scoped registry (SPEC_FULL §4.13) rather than prometheus's
// package-global default, so embedding `dock` never pollutes a host
// process's own metrics namespace.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the set of counters/histograms the scheduler updates.
type Metrics struct {
	Registry *prometheus.Registry

	TasksDispatched prometheus.Counter
	TasksCompleted  prometheus.Counter
	TasksFailed     prometheus.Counter
	EnergyEvals     prometheus.Counter

	PoolReplaced prometheus.Counter
	PoolAppended prometheus.Counter
	PoolDropped  prometheus.Counter

	TaskDuration prometheus.Histogram
}

// New registers and returns a fresh metric set on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		TasksDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vedidock_tasks_dispatched_total",
			Help: "Number of (ligand, seed) tasks dispatched.",
		}),
		TasksCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vedidock_tasks_completed_total",
			Help: "Number of tasks that returned a result (possibly empty).",
		}),
		TasksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vedidock_tasks_failed_total",
			Help: "Number of tasks that aborted with an error or panic.",
		}),
		EnergyEvals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vedidock_energy_evaluations_total",
			Help: "Number of conformation energy evaluations performed.",
		}),
		PoolReplaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vedidock_pool_near_duplicate_replacements_total",
			Help: "Number of result-pool insertions that replaced a near-duplicate.",
		}),
		PoolAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vedidock_pool_diverse_appends_total",
			Help: "Number of result-pool insertions that appended a diverse pose.",
		}),
		PoolDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vedidock_pool_dropped_total",
			Help: "Number of result-pool insertions dropped (worse than every neighbor).",
		}),
		TaskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vedidock_task_duration_seconds",
			Help:    "Wall time of one (ligand, seed) search task.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.TasksDispatched, m.TasksCompleted, m.TasksFailed,
		m.EnergyEvals, m.PoolReplaced, m.PoolAppended, m.PoolDropped, m.TaskDuration)
	return m
}

// ObserveDuration records a task's wall-clock duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	m.TaskDuration.Observe(d.Seconds())
}
