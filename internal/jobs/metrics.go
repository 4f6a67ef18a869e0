// Package jobmetrics instruments the audit worker.
package jobmetrics

import (
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
)

// Task outcomes. A dropped task failed with asynq.SkipRetry and will not run
// again; a retried one goes back to its queue.
const (
	OutcomeOK      = "ok"
	OutcomeRetry   = "retry"
	OutcomeDropped = "dropped"
)

// Metrics holds the worker collectors.
type Metrics struct {
	tasks    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	pruned   prometheus.Counter
}

// NewMetrics registers the worker collectors on registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "odontia_worker_tasks_total",
			Help: "Worker task runs by queue, task type and outcome.",
		}, []string{"queue", "task", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "odontia_worker_task_duration_seconds",
			Help:    "Worker task run time by queue and task type.",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30},
		}, []string{"queue", "task"}),
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "odontia_audit_decisions_pruned_total",
			Help: "Authorization decisions removed by the retention sweep.",
		}),
	}
	registerer.MustRegister(m.tasks, m.duration, m.pruned)
	return m
}

// Tracker times a single task run.
type Tracker struct {
	metrics *Metrics
	queue   string
	task    string
	start   time.Time
}

// Track starts timing a run of task on queue. A nil Metrics yields a tracker
// that records nothing.
func (m *Metrics) Track(queue, task string) *Tracker {
	return &Tracker{metrics: m, queue: queue, task: task, start: time.Now()}
}

// End records the outcome of the run and returns err untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil {
		return err
	}
	t.metrics.tasks.WithLabelValues(t.queue, t.task, Outcome(err)).Inc()
	t.metrics.duration.WithLabelValues(t.queue, t.task).Observe(time.Since(t.start).Seconds())
	return err
}

// Pruned adds n to the count of decisions removed by retention.
func (m *Metrics) Pruned(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.pruned.Add(float64(n))
}

// Outcome classifies a handler result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, asynq.SkipRetry):
		return OutcomeDropped
	default:
		return OutcomeRetry
	}
}
