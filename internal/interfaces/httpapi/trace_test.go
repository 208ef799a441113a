package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func tracedContext() context.Context {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestStartSpan_SkipsUntracedAndHelpers(t *testing.T) {
	ctx, span := startSpan(context.Background(), "httpapi.Handler.GetTeamStats")
	assert.Equal(t, context.Background(), ctx)
	assert.False(t, span.SpanContext().IsValid())

	parent := tracedContext()
	ctx, span = startSpan(parent, "httpapi.writeError")
	assert.Equal(t, parent, ctx)
	assert.False(t, span.IsRecording())
}

func TestStartHandlerSpan_KeepsParentTrace(t *testing.T) {
	var gotTrace trace.TraceID
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/teams/{teamID}/stats", func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startHandlerSpan(r, "GetTeamStats")
		defer span.End()
		gotTrace = trace.SpanContextFromContext(ctx).TraceID()
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/arg-velez/stats", nil).WithContext(tracedContext())
	mux.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, trace.TraceID{1}, gotTrace)
}
