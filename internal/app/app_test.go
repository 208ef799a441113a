package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-scout/internal/config"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
	"github.com/riskibarqy/football-scout/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		HTTPAddr:                ":0",
		ReadTimeout:             time.Second,
		WriteTimeout:            time.Second,
		DataBackend:             config.BackendMemory,
		CacheTTL:                time.Minute,
		RankingWorkers:          2,
		PredictionWeightAttack:  0.45,
		PredictionWeightDefense: 0.35,
		PredictionWeightReferee: 0.20,
		CORSAllowedOrigins:      []string{"*"},
		MetricsEnabled:          true,
		DocsEnabled:             true,
		ImportBatchSize:         100,
	}
}

func TestBuild_MemoryBackend(t *testing.T) {
	c, err := Build(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NotNil(t, c.Metrics)
	scenario, err := c.Predictions.GetMatchPrediction(context.Background(), "gw6-m1", stats.MetricShots)
	require.NoError(t, err)
	assert.Equal(t, "arg-velez", scenario.Home.TeamID)
}

func TestBuild_RejectsBadWeights(t *testing.T) {
	cfg := memoryConfig()
	cfg.PredictionWeightReferee = 0.5

	_, err := Build(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := memoryConfig()
	cfg.MetricsEnabled = false
	c, err := Build(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	require.Nil(t, c.Metrics)

	srv, err := NewHTTPServer(cfg, c, logging.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	cfg.HTTPAddr = " "
	_, err = NewHTTPServer(cfg, c, logging.NewNop())
	require.Error(t, err)
}
