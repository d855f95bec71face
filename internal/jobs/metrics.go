// Package jobmetrics instruments the print worker.
package jobmetrics

import (
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels. A dropped task failed with asynq.SkipRetry and will not
// come back; a retried one will.
const (
	OutcomeOK      = "ok"
	OutcomeRetry   = "retry"
	OutcomeDropped = "dropped"
)

// Metrics holds the worker collectors. A nil *Metrics records nothing.
type Metrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	printed  *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg, or on a throwaway registry
// when reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_jobs_total",
			Help: "Task executions by task type and outcome.",
		}, []string{"task", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_job_duration_seconds",
			Help:    "Task execution time.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
		}, []string{"task"}),
		printed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_printer_bytes_total",
			Help: "ESC/POS bytes written per printer.",
		}, []string{"printer"}),
	}
	reg.MustRegister(m.runs, m.duration, m.printed)
	return m
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

// Observe returns a func that records one run of task when handed its error.
// The error passes through unchanged.
//
//	done := metrics.Observe(task)
//	defer func() { err = done(err) }()
func (m *Metrics) Observe(task string) func(error) error {
	start := time.Now()
	return func(err error) error {
		if m == nil {
			return err
		}
		m.runs.WithLabelValues(task, Outcome(err)).Inc()
		m.duration.WithLabelValues(task).Observe(time.Since(start).Seconds())
		return err
	}
}

// AddPrinted counts bytes delivered to a printer.
func (m *Metrics) AddPrinted(printerID string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.printed.WithLabelValues(printerID).Add(float64(n))
}
