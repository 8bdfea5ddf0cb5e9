package logging

import (
	"context"
	"testing"
)

func TestContextKeys(t *testing.T) {
	tests := []struct {
		name string
		with func(context.Context, string) context.Context
		get  func(context.Context) string
	}{
		{"run id", WithRunID, GetRunID},
		{"file", WithFile, GetFile},
		{"function", WithFunction, GetFunction},
		{"trace id", WithTraceID, GetTraceID},
		{"span id", WithSpanID, GetSpanID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if got := tt.get(ctx); got != "" {
				t.Errorf("empty context returned %q", got)
			}
			ctx = tt.with(ctx, "value")
			if got := tt.get(ctx); got != "value" {
				t.Errorf("got %q, want %q", got, "value")
			}
		})
	}
}

func TestExtractContextFields(t *testing.T) {
	if fields := extractContextFields(context.Background()); len(fields) != 0 {
		t.Errorf("empty context produced %v", fields)
	}

	ctx := WithFunction(WithRunID(context.Background(), "r1"), "start")
	fields := extractContextFields(ctx)
	want := []any{"run_id", "r1", "function", "start"}
	if len(fields) != len(want) {
		t.Fatalf("fields = %v, want %v", fields, want)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("fields[%d] = %v, want %v", i, fields[i], want[i])
		}
	}
}

func TestContextOverwrite(t *testing.T) {
	ctx := WithRunID(context.Background(), "first")
	ctx = WithRunID(ctx, "second")
	if got := GetRunID(ctx); got != "second" {
		t.Errorf("GetRunID() = %q, want %q", got, "second")
	}
}
