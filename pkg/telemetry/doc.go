// Package telemetry groups the observability support of the Callisto
// toolchain.
//
// # Components
//
//   - logging: structured logging with run and file context
//   - metrics: Prometheus metrics for pipeline stages and evaluation
//   - tracing: OpenTelemetry spans around each pipeline stage
//
// # Usage
//
//	logger, _ := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//	tracer, _ := tracing.New(ctx, &cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(ctx)
package telemetry
