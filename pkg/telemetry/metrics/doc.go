// Package metrics provides Prometheus metrics collection for the Callisto
// toolchain.
//
// # Metrics Categories
//
//   - Pipeline Metrics: runs, whole-run and per-stage durations, errors by kind, source size
//   - Evaluation Metrics: calls by function, statements by kind, call depth
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//
//	// The collector is an interpreter.Observer.
//	in.WithObserver(collector)
//
//	collector.RecordStage(metrics.StageParse, metrics.StatusSuccess, elapsed)
//	collector.RecordRun(metrics.StatusSuccess, total)
//
// # Export
//
// A single run is too short-lived to be scraped, so WriteTextfile dumps the
// registry in the Prometheus text format after each run. Scheduled runs can
// instead serve Handler on an HTTP address.
//
//	# HELP callisto_interpreter_calls_total Total number of function invocations
//	# TYPE callisto_interpreter_calls_total counter
//	callisto_interpreter_calls_total{function="writeLine",kind="builtin"} 3
//
// # Cardinality Management
//
// Function names come from user programs. At most 1000 distinct names are
// recorded; the rest are counted under "other".
package metrics
