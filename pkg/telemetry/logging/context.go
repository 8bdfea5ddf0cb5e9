package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for pipeline run IDs.
	RunIDKey contextKey = "run_id"

	// FileKey is the context key for the program file being run.
	FileKey contextKey = "file"

	// FunctionKey is the context key for the function being evaluated.
	FunctionKey contextKey = "function"

	// TraceIDKey is the context key for trace IDs.
	TraceIDKey contextKey = "trace_id"

	// SpanIDKey is the context key for span IDs.
	SpanIDKey contextKey = "span_id"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	return getString(ctx, RunIDKey)
}

// WithFile adds a program file path to the context.
func WithFile(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, FileKey, file)
}

// GetFile retrieves the program file path from the context.
func GetFile(ctx context.Context) string {
	return getString(ctx, FileKey)
}

// WithFunction adds a function name to the context.
func WithFunction(ctx context.Context, function string) context.Context {
	return context.WithValue(ctx, FunctionKey, function)
}

// GetFunction retrieves the function name from the context.
func GetFunction(ctx context.Context) string {
	return getString(ctx, FunctionKey)
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	return getString(ctx, TraceIDKey)
}

// WithSpanID adds a span ID to the context.
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, SpanIDKey, spanID)
}

// GetSpanID retrieves the span ID from the context.
func GetSpanID(ctx context.Context) string {
	return getString(ctx, SpanIDKey)
}

func getString(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any
	for _, key := range []contextKey{RunIDKey, FileKey, FunctionKey, TraceIDKey, SpanIDKey} {
		if v := getString(ctx, key); v != "" {
			fields = append(fields, string(key), v)
		}
	}
	return fields
}
