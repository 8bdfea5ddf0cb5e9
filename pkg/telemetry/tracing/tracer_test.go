package tracing

import (
	"context"
	"errors"
	"testing"
	"time"

	"mercator-hq/callisto/pkg/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return NewWithProvider(tp), rec
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  *config.TracingConfig
		enabled bool
		wantErr bool
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
		},
		{
			name:   "disabled tracing",
			config: &config.TracingConfig{Enabled: false, ServiceName: "test"},
		},
		{
			name: "enabled with always sampler",
			config: &config.TracingConfig{
				Enabled:     true,
				Sampler:     "always",
				Endpoint:    "localhost:4317",
				ServiceName: "test",
				OTLP:        config.OTLPConfig{Insecure: true, Timeout: time.Second},
			},
			enabled: true,
		},
		{
			name: "invalid sampler",
			config: &config.TracingConfig{
				Enabled:  true,
				Sampler:  "sometimes",
				Endpoint: "localhost:4317",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(context.Background(), tt.config, "test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer tracer.Shutdown(context.Background())

			if tracer.Enabled() != tt.enabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.enabled)
			}
			_, span := tracer.Start(context.Background(), "probe")
			span.End()
		})
	}
}

func TestNoop(t *testing.T) {
	tracer := Noop()
	if tracer.Enabled() {
		t.Error("Noop tracer should be disabled")
	}
	ctx, span := tracer.Start(context.Background(), "probe")
	span.End()
	if TraceID(ctx) != "" {
		t.Error("noop span should not carry a trace ID")
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestTracer_ParentChild(t *testing.T) {
	tracer, rec := newRecordingTracer(t)

	ctx, root := tracer.Start(context.Background(), "callisto.run")
	_, child := tracer.Start(ctx, "callisto.parse")
	child.End()
	root.End()

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	parse, run := spans[0], spans[1]
	if parse.Parent().SpanID() != run.SpanContext().SpanID() {
		t.Error("parse span is not a child of the run span")
	}
	if TraceID(ctx) != run.SpanContext().TraceID().String() {
		t.Error("TraceID() does not match the root span")
	}
	if SpanID(ctx) != run.SpanContext().SpanID().String() {
		t.Error("SpanID() does not match the root span")
	}
}

func TestSetLanguageError(t *testing.T) {
	tracer, rec := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "callisto.evaluate")
	SetLanguageError(span, errors.New("division by zero"), "arithmetic", 7)
	span.End()

	got := rec.Ended()[0]
	if got.Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", got.Status().Code)
	}
	if v, ok := attrValue(got.Attributes(), AttrErrorKind); !ok || v.AsString() != "arithmetic" {
		t.Errorf("error kind attribute = %v", v)
	}
	if v, ok := attrValue(got.Attributes(), AttrErrorLine); !ok || v.AsInt64() != 7 {
		t.Errorf("error line attribute = %v", v)
	}
	if len(got.Events()) != 1 {
		t.Errorf("events = %d, want the recorded exception", len(got.Events()))
	}
}

func TestSetStatusAndError(t *testing.T) {
	tracer, rec := newRecordingTracer(t)

	_, ok := tracer.Start(context.Background(), "ok")
	SetError(ok, nil)
	SetStatus(ok, nil)
	ok.End()

	_, failed := tracer.Start(context.Background(), "failed")
	err := errors.New("boom")
	SetError(failed, err)
	SetStatus(failed, err)
	failed.End()

	spans := rec.Ended()
	if spans[0].Status().Code != codes.Ok {
		t.Errorf("ok span status = %v", spans[0].Status().Code)
	}
	if spans[1].Status().Code != codes.Error || spans[1].Status().Description != "boom" {
		t.Errorf("failed span status = %+v", spans[1].Status())
	}
}

func TestAttributeBuilder(t *testing.T) {
	tracer, rec := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "callisto.run")
	SetRunAttributes(span, "run-1", "hello.cal", "start")
	NewAttributeBuilder().
		WithSource(42, 3).
		WithTokens(17).
		WithFunctions(2).
		WithEvaluation(5, 4, 2).
		Apply(span)
	span.End()

	attrs := rec.Ended()[0].Attributes()
	want := map[string]int64{
		AttrSourceBytes: 42,
		AttrSourceLines: 3,
		AttrTokens:      17,
		AttrFunctions:   2,
		AttrStatements:  5,
		AttrCalls:       4,
		AttrMaxDepth:    2,
	}
	for key, n := range want {
		if v, ok := attrValue(attrs, key); !ok || v.AsInt64() != n {
			t.Errorf("%s = %v, want %d", key, v, n)
		}
	}
	if v, _ := attrValue(attrs, AttrRunID); v.AsString() != "run-1" {
		t.Errorf("run id = %v", v)
	}
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		strategy string
		ratio    float64
		wantErr  bool
	}{
		{SamplerAlways, 0, false},
		{SamplerNever, 0, false},
		{SamplerRatio, 0.5, false},
		{SamplerRatio, 1.5, true},
		{"sometimes", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			sampler, err := createSampler(tt.strategy, tt.ratio)
			if (err != nil) != tt.wantErr {
				t.Fatalf("createSampler() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && sampler == nil {
				t.Error("createSampler() returned nil sampler")
			}
		})
	}
}

func TestValidateTraceParent(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", true},
		{"00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7", false},
		{"00-00000000000000000000000000000000-00f067aa0ba902b7-01", false},
		{"00-4bf92f3577b34da6a3ce929d0e0e4736-0000000000000000-01", false},
		{"zz-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateTraceParent(tt.value); got != tt.want {
			t.Errorf("ValidateTraceParent(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestExtractFromEnv(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	t.Setenv(EnvTraceParent, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	ctx := ExtractFromEnv(context.Background())

	tracer, rec := newRecordingTracer(t)
	_, span := tracer.Start(ctx, "callisto.run")
	span.End()

	got := rec.Ended()[0]
	if got.SpanContext().TraceID().String() != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace id = %s, want the parent's", got.SpanContext().TraceID())
	}
	if got.Parent().SpanID().String() != "00f067aa0ba902b7" {
		t.Errorf("parent span id = %s", got.Parent().SpanID())
	}
}

func TestExtractFromEnv_Invalid(t *testing.T) {
	t.Setenv(EnvTraceParent, "garbage")
	ctx := context.Background()
	if got := ExtractFromEnv(ctx); got != ctx {
		t.Error("invalid TRACEPARENT should leave the context untouched")
	}
}

func TestInjectToMap(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	tracer, _ := newRecordingTracer(t)
	ctx, span := tracer.Start(context.Background(), "callisto.run")
	defer span.End()

	carrier := map[string]string{}
	InjectToMap(ctx, carrier)
	if !ValidateTraceParent(carrier["traceparent"]) {
		t.Errorf("injected traceparent %q is invalid", carrier["traceparent"])
	}
}
