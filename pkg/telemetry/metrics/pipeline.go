package metrics

import (
	"time"

	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics tracks the load → tokenize → parse → evaluate pipeline.
//
// Metrics:
//   - callisto_interpreter_runs_total: runs by status
//   - callisto_interpreter_run_duration_seconds: whole-run duration
//   - callisto_interpreter_stage_duration_seconds: duration by stage and status
//   - callisto_interpreter_errors_total: failed runs by error kind
//   - callisto_interpreter_source_bytes, callisto_interpreter_source_lines: size of the last program loaded
type PipelineMetrics struct {
	runsTotal     *prometheus.CounterVec
	runDuration   prometheus.Histogram
	stageDuration *prometheus.HistogramVec
	errorsTotal   *prometheus.CounterVec
	sourceBytes   prometheus.Gauge
	sourceLines   prometheus.Gauge
}

// NewPipelineMetrics creates and registers pipeline metrics with the provided registry.
func NewPipelineMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *PipelineMetrics {
	pm := &PipelineMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of pipeline runs",
			},
			[]string{"status"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of whole pipeline runs in seconds",
				Buckets:   cfg.StageDurationBuckets,
			},
		),

		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "stage_duration_seconds",
				Help:      "Duration of pipeline stages in seconds",
				Buckets:   cfg.StageDurationBuckets,
			},
			[]string{"stage", "status"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "errors_total",
				Help:      "Total number of failed runs by error kind",
			},
			[]string{"kind"},
		),

		sourceBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "source_bytes",
				Help:      "Size in bytes of the last program loaded",
			},
		),

		sourceLines: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "source_lines",
				Help:      "Number of lines in the last program loaded",
			},
		),
	}

	registry.MustRegister(
		pm.runsTotal,
		pm.runDuration,
		pm.stageDuration,
		pm.errorsTotal,
		pm.sourceBytes,
		pm.sourceLines,
	)

	return pm
}

// RecordStage records one stage of a run.
func (pm *PipelineMetrics) RecordStage(stage, status string, duration time.Duration) {
	pm.stageDuration.WithLabelValues(stage, status).Observe(duration.Seconds())
}

// RecordRun records a finished run.
func (pm *PipelineMetrics) RecordRun(status string, duration time.Duration) {
	pm.runsTotal.WithLabelValues(status).Inc()
	pm.runDuration.Observe(duration.Seconds())
}

// RecordError records a failed run by error kind.
func (pm *PipelineMetrics) RecordError(kind string) {
	pm.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSource records the size of a loaded program.
func (pm *PipelineMetrics) RecordSource(bytes, lines int) {
	pm.sourceBytes.Set(float64(bytes))
	pm.sourceLines.Set(float64(lines))
}
