package metrics

import (
	"sync"
	"time"

	"mercator-hq/callisto/pkg/cal/ast"
	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Stage names used as the "stage" label.
const (
	StageLoad     = "load"
	StageTokenize = "tokenize"
	StageParse    = "parse"
	StageEvaluate = "evaluate"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// maxFunctionLabels bounds the distinct function names recorded. Programs
// are user input, so names beyond the limit aggregate into "other".
const maxFunctionLabels = 1000

// Collector is the main orchestrator for all Prometheus metrics of the
// Callisto toolchain. It records pipeline stage timings and outcomes, and it
// implements the interpreter's Observer so evaluation can be counted call by
// call and statement by statement.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	pipelineMetrics   *PipelineMetrics
	evaluationMetrics *EvaluationMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is used.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "callisto",
//		Subsystem: "interpreter",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.StageDurationBuckets) == 0 {
		cfg.StageDurationBuckets = append([]float64(nil), config.DefaultStageDurationBuckets...)
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		pipelineMetrics:    NewPipelineMetrics(cfg, registry),
		evaluationMetrics:  NewEvaluationMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(maxFunctionLabels),
	}
}

// RecordStage records the duration and outcome of one pipeline stage.
//
// Example:
//
//	collector.RecordStage(metrics.StageParse, metrics.StatusSuccess, 2*time.Millisecond)
func (c *Collector) RecordStage(stage, status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.pipelineMetrics.RecordStage(stage, status, duration)
}

// RecordRun records a finished pipeline run.
func (c *Collector) RecordRun(status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.pipelineMetrics.RecordRun(status, duration)
}

// RecordError records a failed run by error kind, e.g. "syntax" or "range".
func (c *Collector) RecordError(kind string) {
	if !c.config.Enabled {
		return
	}

	c.pipelineMetrics.RecordError(kind)
}

// RecordSource records the size of a loaded program.
func (c *Collector) RecordSource(bytes, lines int) {
	if !c.config.Enabled {
		return
	}

	c.pipelineMetrics.RecordSource(bytes, lines)
}

// RecordCallDepth records the deepest call nesting a run reached.
func (c *Collector) RecordCallDepth(depth int) {
	if !c.config.Enabled {
		return
	}

	c.evaluationMetrics.RecordDepth(depth)
}

// ObserveCall counts one invocation of a user function or built-in.
func (c *Collector) ObserveCall(function string, builtin bool) {
	if !c.config.Enabled {
		return
	}

	if !c.cardinalityLimiter.Allow(function) {
		function = "other"
	}
	c.evaluationMetrics.RecordCall(function, builtin)
}

// ObserveStatement counts one executed statement.
func (c *Collector) ObserveStatement(kind ast.NodeKind) {
	if !c.config.Enabled {
		return
	}

	c.evaluationMetrics.RecordStatement(kind.String())
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether a label value may be used. Values already seen are
// always allowed; new ones are allowed until the limit is reached.
func (cl *CardinalityLimiter) Allow(label string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[label]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[label]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[label] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
