package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	cases := []struct {
		name string
		msg  string
		args []any
		want bool
	}{
		{"health probe", "http_request", []any{"http_path", "/healthz"}, true},
		{"metrics scrape", "http_request", []any{"http_path", "/metrics"}, true},
		{"api call", "http_request", []any{"http_path", "/v1/leagues/arg-primera/players/ranking"}, false},
		{"other event", "import finished", []any{"http_path", "/healthz"}, false},
		{"no path", "http_request", []any{"http_status", 200}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := shouldSkipUptraceLog(tc.msg, tc.args); got != tc.want {
				t.Fatalf("shouldSkipUptraceLog() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"league_id", "arg-primera", "workers", 2, 7, "x", "payload"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "scout.league_id" || attrs[0].Value.AsString() != "arg-primera" {
		t.Fatalf("unexpected league attribute %+v", attrs[0])
	}
	if attrs[1].Key != "workers" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected workers attribute %+v", attrs[1])
	}
	if attrs[2].Key != "arg_2" {
		t.Fatalf("expected positional key, got %q", attrs[2].Key)
	}
	if attrs[3].Key != "payload" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute %+v", attrs[3])
	}
}

func TestToOTelLogValue(t *testing.T) {
	if v := toOTelLogValue(1500 * time.Millisecond); v.AsInt64() != 1500 {
		t.Fatalf("expected duration in ms, got %v", v)
	}
	if v := toOTelLogValue(errors.New("boom")); v.AsString() != "boom" {
		t.Fatalf("expected error text, got %v", v)
	}
	if v := toOTelLogValue([]string{"a", "b"}); v.Kind() != otellog.KindSlice || len(v.AsSlice()) != 2 {
		t.Fatalf("expected slice, got %v", v)
	}
	if v := toOTelLogValue(nil); v.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty, got %v", v)
	}
}

func TestToOTelSeverity(t *testing.T) {
	if toOTelSeverity(zapcore.WarnLevel) != otellog.SeverityWarn {
		t.Fatalf("warn mismatch")
	}
	if toOTelSeverity(zapcore.ErrorLevel) != otellog.SeverityError {
		t.Fatalf("error mismatch")
	}
}
