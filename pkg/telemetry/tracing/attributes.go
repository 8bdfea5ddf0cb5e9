package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Custom attribute keys use the "callisto.*" namespace.
const (
	// Run attributes
	AttrRunID      = "callisto.run_id"
	AttrFile       = "callisto.file"
	AttrEntryPoint = "callisto.entry_point"

	// Source attributes
	AttrSourceBytes = "callisto.source.bytes"
	AttrSourceLines = "callisto.source.lines"

	// Stage output attributes
	AttrTokens     = "callisto.tokens"
	AttrFunctions  = "callisto.functions"
	AttrStatements = "callisto.statements"
	AttrCalls      = "callisto.calls"
	AttrMaxDepth   = "callisto.max_call_depth"

	// Error attributes
	AttrErrorKind    = "callisto.error.kind"
	AttrErrorLine    = "callisto.error.line"
	AttrErrorMessage = "error.message"
)

// SetRunAttributes sets the attributes identifying a run.
func SetRunAttributes(span trace.Span, runID, file, entryPoint string) {
	attrs := []attribute.KeyValue{attribute.String(AttrRunID, runID)}
	if file != "" {
		attrs = append(attrs, attribute.String(AttrFile, file))
	}
	if entryPoint != "" {
		attrs = append(attrs, attribute.String(AttrEntryPoint, entryPoint))
	}
	span.SetAttributes(attrs...)
}

// SetLanguageError records a language error with its kind and line, and
// marks the span as failed. A line of zero is left out.
func SetLanguageError(span trace.Span, err error, kind string, line int) {
	if err == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("error", true),
		attribute.String(AttrErrorKind, kind),
		attribute.String(AttrErrorMessage, err.Error()),
	}
	if line > 0 {
		attrs = append(attrs, attribute.Int(AttrErrorLine, line))
	}
	span.SetAttributes(attrs...)

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// AddEvent adds a named event to the span with optional attributes.
//
//	AddEvent(span, "source.changed", attribute.String(AttrFile, path))
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// AttributeBuilder provides a fluent interface for building span attributes.
type AttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewAttributeBuilder creates a new attribute builder.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 6),
	}
}

// WithSource adds the size of the loaded program.
func (ab *AttributeBuilder) WithSource(bytes, lines int) *AttributeBuilder {
	ab.attrs = append(ab.attrs,
		attribute.Int(AttrSourceBytes, bytes),
		attribute.Int(AttrSourceLines, lines),
	)
	return ab
}

// WithTokens adds the token count produced by the tokenizer.
func (ab *AttributeBuilder) WithTokens(n int) *AttributeBuilder {
	ab.attrs = append(ab.attrs, attribute.Int(AttrTokens, n))
	return ab
}

// WithFunctions adds the number of functions the parser produced.
func (ab *AttributeBuilder) WithFunctions(n int) *AttributeBuilder {
	ab.attrs = append(ab.attrs, attribute.Int(AttrFunctions, n))
	return ab
}

// WithEvaluation adds the interpreter's counters.
func (ab *AttributeBuilder) WithEvaluation(statements, calls, maxDepth int) *AttributeBuilder {
	ab.attrs = append(ab.attrs,
		attribute.Int(AttrStatements, statements),
		attribute.Int(AttrCalls, calls),
		attribute.Int(AttrMaxDepth, maxDepth),
	)
	return ab
}

// Apply sets the built attributes on a span.
func (ab *AttributeBuilder) Apply(span trace.Span) {
	span.SetAttributes(ab.attrs...)
}

// Attributes returns the built attributes.
func (ab *AttributeBuilder) Attributes() []attribute.KeyValue {
	return ab.attrs
}
