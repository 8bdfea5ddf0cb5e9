package tracing

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Environment variables carrying W3C trace context into a process, the
// convention CI systems and build tools use when they launch a traced child.
const (
	EnvTraceParent = "TRACEPARENT"
	EnvTraceState  = "TRACESTATE"
)

// Propagator returns the configured text map propagator.
func Propagator() propagation.TextMapPropagator {
	return otel.GetTextMapPropagator()
}

// ExtractFromEnv returns ctx carrying the trace context found in the
// TRACEPARENT and TRACESTATE environment variables, so runs show up as
// children of whatever launched callisto. Malformed values are ignored.
func ExtractFromEnv(ctx context.Context) context.Context {
	traceparent := os.Getenv(EnvTraceParent)
	if !ValidateTraceParent(traceparent) {
		return ctx
	}
	carrier := map[string]string{"traceparent": traceparent}
	if state := os.Getenv(EnvTraceState); state != "" {
		carrier["tracestate"] = state
	}
	return ExtractFromMap(ctx, carrier)
}

// ExtractFromMap extracts trace context from a string map.
func ExtractFromMap(ctx context.Context, carrier map[string]string) context.Context {
	return Propagator().Extract(ctx, propagation.MapCarrier(carrier))
}

// InjectToMap injects trace context into a string map.
func InjectToMap(ctx context.Context, carrier map[string]string) {
	Propagator().Inject(ctx, propagation.MapCarrier(carrier))
}

// ValidateTraceParent validates the format of a traceparent value:
// version-trace_id-parent_id-trace_flags, with 2, 32, 16 and 2 hex digits
// and neither ID all zeros.
//
// Example: 00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
func ValidateTraceParent(traceparent string) bool {
	parts := strings.Split(traceparent, "-")
	if len(parts) != 4 {
		return false
	}

	for i, n := range []int{2, 32, 16, 2} {
		if len(parts[i]) != n || !isHexString(parts[i]) {
			return false
		}
	}

	if parts[1] == strings.Repeat("0", 32) || parts[2] == strings.Repeat("0", 16) {
		return false
	}

	return true
}

// isHexString checks if a string contains only hexadecimal characters.
func isHexString(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
