package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-scout/internal/platform/id"
	"github.com/riskibarqy/football-scout/internal/platform/logging"
)

// MetricsExporter is both the request observer and the scrape endpoint.
type MetricsExporter interface {
	HTTPObserver
	Handler() http.Handler
}

type RouterConfig struct {
	Logger             *logging.Logger
	CORSAllowedOrigins []string
	DocsEnabled        bool
	// Metrics is optional. Without it /metrics is not mounted.
	Metrics MetricsExporter
	IDs     id.Generator
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	ids := cfg.IDs
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.DocsEnabled)
	registerStatsRoutes(mux, handler)
	registerRankingRoutes(mux, handler)
	registerPredictionRoutes(mux, handler)

	var observer HTTPObserver
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
		observer = cfg.Metrics
	}

	return RequestTracing(
		RequestID(ids,
			RequestLogging(logger,
				CORS(cfg.CORSAllowedOrigins,
					recoverPanic(logger,
						RouteMetrics(observer, mux))))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "http_path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
