// Package tracing provides OpenTelemetry tracing for Callisto pipeline runs.
//
// Each run produces a root span "callisto.run" with one child per stage:
// callisto.load, callisto.tokenize, callisto.parse and callisto.evaluate.
// Failing stages carry the language error kind and line.
//
// When tracing is disabled New returns a noop tracer; when enabled spans are
// exported over OTLP/gRPC to the configured endpoint. A run launched with a
// TRACEPARENT environment variable joins the caller's trace (ExtractFromEnv).
//
//	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "callisto.parse")
//	defer span.End()
package tracing
