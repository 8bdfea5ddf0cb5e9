package metrics

import (
	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// EvaluationMetrics tracks what the interpreter does while a program runs.
//
// Metrics:
//   - callisto_interpreter_calls_total: invocations by function and kind (user or builtin)
//   - callisto_interpreter_statements_total: executed statements by statement kind
//   - callisto_interpreter_max_call_depth: deepest call nesting of the last run
type EvaluationMetrics struct {
	callsTotal      *prometheus.CounterVec
	statementsTotal *prometheus.CounterVec
	maxCallDepth    prometheus.Gauge
}

// NewEvaluationMetrics creates and registers evaluation metrics with the provided registry.
func NewEvaluationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *EvaluationMetrics {
	em := &EvaluationMetrics{
		callsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "calls_total",
				Help:      "Total number of function invocations",
			},
			[]string{"function", "kind"},
		),

		statementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "statements_total",
				Help:      "Total number of executed statements",
			},
			[]string{"statement"},
		),

		maxCallDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "max_call_depth",
				Help:      "Deepest call nesting reached by the last run",
			},
		),
	}

	registry.MustRegister(
		em.callsTotal,
		em.statementsTotal,
		em.maxCallDepth,
	)

	return em
}

// RecordCall records one invocation.
func (em *EvaluationMetrics) RecordCall(function string, builtin bool) {
	kind := "user"
	if builtin {
		kind = "builtin"
	}
	em.callsTotal.WithLabelValues(function, kind).Inc()
}

// RecordStatement records one executed statement.
func (em *EvaluationMetrics) RecordStatement(statement string) {
	em.statementsTotal.WithLabelValues(statement).Inc()
}

// RecordDepth records the deepest call nesting of a run.
func (em *EvaluationMetrics) RecordDepth(depth int) {
	em.maxCallDepth.Set(float64(depth))
}
