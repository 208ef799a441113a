package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/prediction"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
	"github.com/riskibarqy/football-scout/internal/platform/logging"
)

type recordingObserver struct {
	mu      sync.Mutex
	reduced []bool
}

func (o *recordingObserver) ObservePrediction(_ string, reduced bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reduced = append(o.reduced, reduced)
}

func newPredictionService(t *testing.T, f *fixture, observer PredictionObserver) *PredictionService {
	t.Helper()

	service, err := NewPredictionService(f.matches, f.engine, prediction.DefaultWeights(), observer, logging.NewNop())
	require.NoError(t, err)
	return service
}

func addScheduledMatch(t *testing.T, f *fixture, id, home, away, refereeID string) {
	t.Helper()
	require.NoError(t, f.db.UpsertMatches(context.Background(), []match.Match{{
		ID:         id,
		LeagueID:   seedLeague,
		Gameweek:   9,
		KickoffAt:  time.Date(2025, 9, 1, 19, 0, 0, 0, time.UTC),
		HomeTeamID: home,
		AwayTeamID: away,
		RefereeID:  refereeID,
	}}))
}

func TestPredictionService_GetMatchPrediction(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	observer := &recordingObserver{}
	service := newPredictionService(t, f, observer)

	got, err := service.GetMatchPrediction(context.Background(), "arg-2025-gw6-m1", stats.MetricGoals)
	require.NoError(t, err)

	assert.Equal(t, prediction.Framing, got.Framing)
	assert.Equal(t, prediction.DefaultWeights(), got.Weights)
	assert.False(t, got.ReducedConfidence)
	assert.Equal(t, "arg-velez", got.Home.TeamID)
	assert.Equal(t, "arg-boca", got.Away.TeamID)
	assert.Equal(t, 6, got.Home.Attack.Population)
	assert.Equal(t, 3, got.Referee.Population)
	for _, score := range []float64{got.HomeScore(), got.AwayScore()} {
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}

	want := prediction.SideScore(got.Weights, got.Home.AttackPercentile, got.Away.DefensePercentile, got.RefereeFactor)
	assert.InDelta(t, want, got.HomeScore(), 1e-9)
	assert.Equal(t, []bool{false}, observer.reduced)
}

func TestPredictionService_RefereeFallback(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	addScheduledMatch(t, f, "no-referee", "arg-boca", "arg-river", "")
	addScheduledMatch(t, f, "new-referee", "arg-boca", "arg-river", "debutant")
	observer := &recordingObserver{}
	service := newPredictionService(t, f, observer)

	for _, id := range []string{"no-referee", "new-referee"} {
		got, err := service.GetMatchPrediction(context.Background(), id, stats.MetricCards)
		require.NoError(t, err, id)
		assert.True(t, got.ReducedConfidence, id)
		assert.Zero(t, got.RefereeFactor, id)
		assert.Zero(t, got.Weights.Referee, id)
		assert.InDelta(t, 1.0, got.Weights.Attack+got.Weights.Defense, 1e-9, id)
	}
	assert.Equal(t, []bool{true, true}, observer.reduced)
}

func TestPredictionService_Errors(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.db.UpsertTeams(ctx, teamFixtures(seedLeague, "arg-newcomer")))
	addScheduledMatch(t, f, "newcomer-match", "arg-newcomer", "arg-boca", "dario-herrera")
	service := newPredictionService(t, f, nil)

	tests := []struct {
		name    string
		matchID string
		metric  stats.Metric
		want    error
	}{
		{name: "blank match", matchID: "", metric: stats.MetricGoals, want: ErrInvalidInput},
		{name: "unknown match", matchID: "missing", metric: stats.MetricGoals, want: ErrNotFound},
		{name: "unknown metric", matchID: "arg-2025-gw6-m1", metric: stats.Metric(77), want: ErrInvalidScope},
		{name: "team without ranked matches", matchID: "newcomer-match", metric: stats.MetricGoals, want: ErrInsufficientData},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.GetMatchPrediction(ctx, tc.matchID, tc.metric)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPredictionService_ListMatchPredictions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	service := newPredictionService(t, f, nil)
	ctx := context.Background()

	got, err := service.ListMatchPredictions(ctx, []string{"arg-2025-gw6-m1", "missing", "arg-2025-gw6-m3"}, stats.MetricShots)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.NoError(t, got[0].Err)
	assert.True(t, errors.Is(got[1].Err, ErrNotFound))
	assert.NoError(t, got[2].Err)
	assert.Equal(t, "arg-2025-gw6-m3", got[2].Scenario.MatchID)

	_, err = service.ListMatchPredictions(ctx, nil, stats.MetricShots)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	tooMany := make([]string, MaxPredictionBatch+1)
	_, err = service.ListMatchPredictions(ctx, tooMany, stats.MetricShots)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

type mockMatchRepo struct {
	mock.Mock
}

func (m *mockMatchRepo) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	args := m.Called(ctx, matchID)
	return args.Get(0).(match.Match), args.Bool(1), args.Error(2)
}

func (m *mockMatchRepo) ListFinishedByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	args := m.Called(ctx, leagueID)
	items, _ := args.Get(0).([]match.Match)
	return items, args.Error(1)
}

func TestPredictionService_RepositoryErrorIsWrapped(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	repo := &mockMatchRepo{}
	dbErr := errors.New("connection reset")
	repo.On("GetByID", mock.Anything, "m1").Return(match.Match{}, false, dbErr).Once()

	service, err := NewPredictionService(repo, f.engine, prediction.DefaultWeights(), nil, logging.NewNop())
	require.NoError(t, err)

	_, err = service.GetMatchPrediction(context.Background(), "m1", stats.MetricGoals)
	assert.True(t, errors.Is(err, dbErr))
	repo.AssertExpectations(t)
}

func TestNewPredictionService_RejectsBadWeights(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := NewPredictionService(f.matches, f.engine, prediction.Weights{Attack: 0.5, Defense: 0.5, Referee: 0.5}, nil, nil)
	assert.True(t, errors.Is(err, prediction.ErrInvalidWeights))
}
