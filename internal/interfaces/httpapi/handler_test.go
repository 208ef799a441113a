package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-scout/internal/domain/prediction"
	"github.com/riskibarqy/football-scout/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-scout/internal/observability"
	"github.com/riskibarqy/football-scout/internal/platform/cache"
	"github.com/riskibarqy/football-scout/internal/platform/logging"
	"github.com/riskibarqy/football-scout/internal/usecase"
)

type envelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       json.RawMessage  `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func newTestRouter(t *testing.T, metrics MetricsExporter) http.Handler {
	t.Helper()

	db := memory.NewDBFromDataset(memory.SeedDataset())
	leagues := memory.NewLeagueRepository(db)
	teams := memory.NewTeamRepository(db)
	players := memory.NewPlayerRepository(db)
	referees := memory.NewRefereeRepository(db)
	matches := memory.NewMatchRepository(db)
	appearances := memory.NewAppearanceRepository(db)
	events := memory.NewEventRepository(db)

	engine := usecase.NewRankingEngine(matches, appearances, events, cache.NewStore(time.Minute),
		usecase.WithRankingLogger(logging.NewNop()))
	predictions, err := usecase.NewPredictionService(matches, engine, prediction.DefaultWeights(), nil, logging.NewNop())
	require.NoError(t, err)

	handler := NewHandler(
		usecase.NewTeamStatsService(teams, matches, engine),
		usecase.NewPlayerStatsService(leagues, teams, players, matches, appearances, events, engine),
		usecase.NewRefereeService(leagues, referees, engine),
		predictions,
		logging.NewNop(),
	)
	return NewRouter(handler, RouterConfig{
		Logger:             logging.NewNop(),
		CORSAllowedOrigins: []string{"*"},
		DocsEnabled:        true,
		Metrics:            metrics,
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, sonic.Unmarshal(env.Data, &out))
	return out
}

func TestRouter_StatsEndpoints(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil)

	rec, env := do(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.0", env.APIVersion)

	rec, env = do(t, router, http.MethodGet, "/v1/teams/arg-boca/stats?scope=career", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	teamStats := decodeData[teamStatsDTO](t, env)
	assert.Equal(t, "arg-boca", teamStats.Team.ID)
	assert.Equal(t, "career", teamStats.Scope)
	assert.Equal(t, 5, teamStats.For.Matches)
	assert.NotEmpty(t, teamStats.Attack)

	rec, env = do(t, router, http.MethodGet, "/v1/teams/arg-boca/ranking", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	teamRanking := decodeData[teamRankingDTO](t, env)
	assert.Len(t, teamRanking.Totals, 6)

	rec, env = do(t, router, http.MethodGet, "/v1/players/arg-boca-DL/stats", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	playerStats := decodeData[playerStatsDTO](t, env)
	assert.Equal(t, "arg-boca-DL", playerStats.Player.ID)
	assert.Equal(t, 350, playerStats.Career.Minutes)
	assert.Equal(t, "arg-boca", playerStats.ContextTeamID)

	rec, env = do(t, router, http.MethodGet, "/v1/referees/dario-herrera/stats", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	refStats := decodeData[refereeStatsDTO](t, env)
	assert.Equal(t, "dario-herrera", refStats.Referee.ID)
}

func TestRouter_RankingEndpoints(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil)

	rec, env := do(t, router, http.MethodGet, "/v1/leagues/arg-primera/players/ranking?scope=career&metric=shots&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	board := decodeData[leaderboardDTO](t, env)
	assert.Len(t, board.Entries, 5)
	assert.Greater(t, board.Population, 5)
	for i, e := range board.Entries {
		assert.Equal(t, i+1, e.Rank)
		assert.NotEmpty(t, e.Name)
	}

	rec, env = do(t, router, http.MethodGet, "/v1/leagues/arg-primera/players/ranking?position=DL", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "position:DL", decodeData[leaderboardDTO](t, env).Context)

	rec, env = do(t, router, http.MethodGet, "/v1/leagues/arg-primera/referees/ranking?metric=cards", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 3, decodeData[leaderboardDTO](t, env).Population)
}

func TestRouter_ErrorMapping(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantReason string
	}{
		{"unknown scope", "/v1/teams/arg-boca/stats?scope=weekly", http.StatusBadRequest, "invalidScope"},
		{"unknown team", "/v1/teams/arg-nowhere/stats", http.StatusNotFound, "notFound"},
		{"match id outside match scope", "/v1/teams/arg-boca/stats?scope=career&match_id=arg-2025-gw1-m1", http.StatusBadRequest, "invalidInput"},
		{"bad limit", "/v1/leagues/arg-primera/players/ranking?limit=many", http.StatusBadRequest, "invalidInput"},
		{"exclusive contexts", "/v1/leagues/arg-primera/players/ranking?team_id=arg-boca&position=DL", http.StatusBadRequest, "invalidScope"},
		{"unknown metric", "/v1/matches/arg-2025-gw6-m1/prediction?metric=corners", http.StatusBadRequest, "invalidScope"},
		{"empty league", "/v1/leagues/nowhere/referees/ranking", http.StatusUnprocessableEntity, "insufficientData"},
		{"unknown match", "/v1/matches/nope/prediction", http.StatusNotFound, "notFound"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantReason, env.Error.Errors[0].Reason)
		})
	}
}

func TestRouter_Predictions(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil)

	rec, env := do(t, router, http.MethodGet, "/v1/matches/arg-2025-gw6-m1/prediction?metric=shots", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	scenario := decodeData[scenarioDTO](t, env)
	assert.Equal(t, "arg-velez", scenario.Home.TeamID)
	assert.Equal(t, "arg-boca", scenario.Away.TeamID)
	assert.False(t, scenario.ReducedConfidence)
	assert.Equal(t, prediction.Framing, scenario.Framing)

	rec, env = do(t, router, http.MethodPost, "/v1/predictions", `{"match_ids":["arg-2025-gw6-m1","missing"],"metric":"cards"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	items := decodeData[[]batchPredictionItemDTO](t, env)
	require.Len(t, items, 2)
	assert.NotNil(t, items[0].Prediction)
	require.NotNil(t, items[1].Error)
	assert.Equal(t, "notFound", items[1].Error.Reason)

	rec, _ = do(t, router, http.MethodPost, "/v1/predictions", `{"match_ids":["arg-2025-gw6-m1"],"extra":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, router, http.MethodPost, "/v1/predictions", `{"match_ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RequestIDAndMetrics(t *testing.T) {
	t.Parallel()
	metrics := observability.NewMetrics(observability.WithMetricsRegistry(prometheus.NewRegistry()))
	router := newTestRouter(t, metrics)

	rec, _ := do(t, router, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	const inbound = "0b6a3c9e-2f51-4b8e-9d0a-6c1f5e7d8a90"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, inbound)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, inbound, rec.Header().Get(requestIDHeader))

	do(t, router, http.MethodGet, "/v1/teams/arg-boca/stats", "")

	scrape := httptest.NewRecorder()
	router.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), `route="GET /v1/teams/{teamID}/stats"`)
}

func TestRouter_Docs(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/predictions")
}

func TestRouter_DocsPage(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<title>Football Scout API</title>")
	assert.Contains(t, rec.Body.String(), "openapi.yaml")
}
