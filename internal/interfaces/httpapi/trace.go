package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("football-scout/internal/interfaces/httpapi")

const handlerSpanPrefix = "httpapi.Handler."

// Path wildcards copied onto handler spans, keyed by route segment name.
var spanPathParams = map[string]string{
	"leagueID":  "scout.league_id",
	"teamID":    "scout.team_id",
	"playerID":  "scout.player_id",
	"refereeID": "scout.referee_id",
	"matchID":   "scout.match_id",
}

// startHandlerSpan opens the per-route span and tags it with whichever
// entity ids the matched pattern carries.
func startHandlerSpan(r *http.Request, handler string) (context.Context, trace.Span) {
	var attrs []attribute.KeyValue
	for param, key := range spanPathParams {
		if v := strings.TrimSpace(r.PathValue(param)); v != "" {
			attrs = append(attrs, attribute.String(key, v))
		}
	}
	if r.Pattern != "" {
		attrs = append(attrs, attribute.String("http.route", r.Pattern))
	}
	return startSpan(r.Context(), handlerSpanPrefix+handler, attrs...)
}

// startSpan only creates handler spans under an existing trace. Helpers and
// untraced routes such as /healthz get a non-recording span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() || !strings.HasPrefix(name, handlerSpanPrefix) {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
