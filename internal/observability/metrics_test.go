package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given a metrics manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewMetrics(WithMetricsRegistry(registry), WithMetricsNamespace("test"))

		Convey("When boards are built", func() {
			m.ObserveBoardBuild("player", 3*time.Millisecond)
			m.ObserveBoardBuild("player", time.Millisecond)
			m.ObserveBoardBuild("team", time.Millisecond)

			Convey("Then builds are counted per kind", func() {
				So(testutil.ToFloat64(m.boardBuilds.WithLabelValues("player")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.boardBuilds.WithLabelValues("team")), ShouldEqual, 1)
			})
		})

		Convey("When predictions are observed", func() {
			m.ObservePrediction("shots", false)
			m.ObservePrediction("shots", true)

			Convey("Then reduced confidence is counted separately", func() {
				So(testutil.ToFloat64(m.predictions.WithLabelValues("shots")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.reducedPredictions.WithLabelValues("shots")), ShouldEqual, 1)
			})
		})

		Convey("When cache lookups are observed", func() {
			m.CacheHit("boards")
			m.CacheMiss("boards")
			m.CacheMiss("boards")

			Convey("Then hits and misses are split", func() {
				So(testutil.ToFloat64(m.cacheLookups.WithLabelValues("boards", "hit")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.cacheLookups.WithLabelValues("boards", "miss")), ShouldEqual, 2)
			})
		})

		Convey("When the handler is scraped", func() {
			m.ObserveHTTPRequest("/v1/leagues", http.MethodGet, http.StatusOK, 2*time.Millisecond)
			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then the request counter is exposed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(strings.Contains(rec.Body.String(), `test_api_http_requests_total{method="GET",route="/v1/leagues",status_code="200"} 1`), ShouldBeTrue)
			})
		})
	})
}
