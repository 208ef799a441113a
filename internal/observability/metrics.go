package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns every Prometheus collector of the service. It satisfies the
// observer interfaces of the ranking engine, the prediction service and the
// cache stores.
type Metrics struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	boardBuilds        *prometheus.CounterVec
	boardBuildDuration *prometheus.HistogramVec

	predictions        *prometheus.CounterVec
	reducedPredictions *prometheus.CounterVec

	cacheLookups *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

type MetricsOption func(*Metrics)

func WithMetricsNamespace(namespace string) MetricsOption {
	return func(m *Metrics) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

func WithMetricsSubsystem(subsystem string) MetricsOption {
	return func(m *Metrics) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithHistogramBuckets sets the latency buckets, in milliseconds.
func WithHistogramBuckets(buckets []float64) MetricsOption {
	return func(m *Metrics) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

func WithMetricsRegistry(registry *prometheus.Registry) MetricsOption {
	return func(m *Metrics) {
		if registry != nil {
			m.registry = registry
		}
	}
}

func NewMetrics(opts ...MetricsOption) *Metrics {
	m := &Metrics{
		namespace:        "football_scout",
		subsystem:        "api",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.init()
	return m
}

func (m *Metrics) init() {
	auto := promauto.With(m.registry)

	m.boardBuilds = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "board_builds_total",
		Help:      "Ranking boards computed from samples, by board kind",
	}, []string{"kind"})

	m.boardBuildDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "board_build_duration_milliseconds",
		Help:      "Time spent computing one ranking board",
		Buckets:   m.histogramBuckets,
	}, []string{"kind"})

	m.predictions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_total",
		Help:      "Match scenarios computed, by metric",
	}, []string{"metric"})

	m.reducedPredictions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_reduced_confidence_total",
		Help:      "Match scenarios computed without a referee term, by metric",
	}, []string{"metric"})

	m.cacheLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_lookups_total",
		Help:      "In-process cache lookups, by store and result",
	}, []string{"store", "result"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method", "status_code"})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveBoardBuild(kind string, d time.Duration) {
	m.boardBuilds.WithLabelValues(kind).Inc()
	m.boardBuildDuration.WithLabelValues(kind).Observe(milliseconds(d))
}

func (m *Metrics) ObservePrediction(metric string, reducedConfidence bool) {
	m.predictions.WithLabelValues(metric).Inc()
	if reducedConfidence {
		m.reducedPredictions.WithLabelValues(metric).Inc()
	}
}

func (m *Metrics) CacheHit(name string) {
	m.cacheLookups.WithLabelValues(name, "hit").Inc()
}

func (m *Metrics) CacheMiss(name string) {
	m.cacheLookups.WithLabelValues(name, "miss").Inc()
}

// ObserveHTTPRequest records one served request. route should be the route
// pattern, never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(route, method string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(route, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, code).Observe(milliseconds(d))
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
