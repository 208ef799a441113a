package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-scout/internal/domain/stats"
)

func baseInputs() Inputs {
	return Inputs{
		MatchID:     "m1",
		Metric:      stats.MetricShots,
		HomeTeamID:  "team-a",
		AwayTeamID:  "team-b",
		HomeAttack:  Position{Rank: 2, Population: 20},
		HomeDefense: Position{Rank: 10, Population: 20},
		AwayAttack:  Position{Rank: 7, Population: 20},
		AwayDefense: Position{Rank: 18, Population: 20},
		Referee:     Position{Rank: 5, Population: 11},
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pos  Position
		want float64
	}{
		{name: "first", pos: Position{Rank: 1, Population: 20}, want: 1},
		{name: "last", pos: Position{Rank: 20, Population: 20}, want: 0},
		{name: "second of twenty", pos: Position{Rank: 2, Population: 20}, want: 18.0 / 19.0},
		{name: "single entity", pos: Position{Rank: 1, Population: 1}, want: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Percentile(tc.pos)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}

	_, err := Percentile(Position{})
	require.ErrorIs(t, err, ErrInsufficientData)
	_, err = Percentile(Position{Rank: 21, Population: 20})
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestPredict_EndToEnd(t *testing.T) {
	t.Parallel()

	got, err := Predict(baseInputs(), DefaultWeights())
	require.NoError(t, err)

	assert.InDelta(t, 0.947, got.Home.AttackPercentile, 1e-3)
	assert.InDelta(t, 0.105, got.Away.DefensePercentile, 1e-3)
	assert.InDelta(t, 0.60, got.RefereeFactor, 1e-9)

	want := 100 * (0.45*(18.0/19.0) + 0.35*(1-2.0/19.0) + 0.20*0.60)
	assert.InDelta(t, want, got.HomeScore(), 1e-9)
	assert.InDelta(t, 85.95, got.HomeScore(), 0.01)
	assert.False(t, got.ReducedConfidence)
	assert.Equal(t, Framing, got.Framing)
}

func TestPredict_AttackMonotonic(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	prev := -1.0
	for rank := 20; rank >= 1; rank-- {
		in.HomeAttack = Position{Rank: rank, Population: 20}
		got, err := Predict(in, DefaultWeights())
		require.NoError(t, err)
		require.GreaterOrEqual(t, got.HomeScore(), prev, "rank %d", rank)
		prev = got.HomeScore()
	}
}

func TestPredict_OpponentDefenseMonotonic(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	prev := 101.0
	for rank := 20; rank >= 1; rank-- {
		in.AwayDefense = Position{Rank: rank, Population: 20}
		got, err := Predict(in, DefaultWeights())
		require.NoError(t, err)
		require.LessOrEqual(t, got.HomeScore(), prev, "rank %d", rank)
		prev = got.HomeScore()
	}
}

func TestPredict_RefereeMonotonic(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	prevHome, prevAway := -1.0, -1.0
	var first Scenario
	for rank := 20; rank >= 1; rank-- {
		in.Referee = Position{Rank: rank, Population: 20}
		got, err := Predict(in, DefaultWeights())
		require.NoError(t, err)
		require.GreaterOrEqual(t, got.HomeScore(), prevHome, "rank %d", rank)
		require.GreaterOrEqual(t, got.AwayScore(), prevAway, "rank %d", rank)
		if rank == 20 {
			first = got
		}
		prevHome, prevAway = got.HomeScore(), got.AwayScore()
	}
	assert.InDelta(t, 20.0, prevHome-first.HomeScore(), 1e-9)
	assert.InDelta(t, 20.0, prevAway-first.AwayScore(), 1e-9)
}

func TestPredict_InsufficientData(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	in.AwayAttack = Position{}
	_, err := Predict(in, DefaultWeights())
	require.ErrorIs(t, err, ErrInsufficientData)

	in = baseInputs()
	in.Referee = Position{}
	_, err = Predict(in, DefaultWeights())
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestPredictWithFallback(t *testing.T) {
	t.Parallel()

	in := baseInputs()
	in.Referee = Position{}

	got, err := PredictWithFallback(in, DefaultWeights())
	require.NoError(t, err)
	assert.True(t, got.ReducedConfidence)
	assert.Zero(t, got.RefereeFactor)
	assert.InDelta(t, 0.45/0.80, got.Weights.Attack, 1e-9)
	assert.InDelta(t, 0.35/0.80, got.Weights.Defense, 1e-9)
	assert.Zero(t, got.Weights.Referee)

	want := 100 * ((0.45/0.80)*(18.0/19.0) + (0.35/0.80)*(1-2.0/19.0))
	assert.InDelta(t, want, got.HomeScore(), 1e-9)

	again, err := PredictWithFallback(in, DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, got, again)

	in.HomeDefense = Position{}
	_, err = PredictWithFallback(in, DefaultWeights())
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestPredictWithFallback_KnownReferee(t *testing.T) {
	t.Parallel()

	plain, err := Predict(baseInputs(), DefaultWeights())
	require.NoError(t, err)
	withFallback, err := PredictWithFallback(baseInputs(), DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, plain, withFallback)
}

func TestWeights_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultWeights().Validate())
	require.ErrorIs(t, Weights{Attack: 0.5, Defense: 0.5, Referee: 0.5}.Validate(), ErrInvalidWeights)
	require.ErrorIs(t, Weights{Attack: -0.1, Defense: 0.9, Referee: 0.2}.Validate(), ErrInvalidWeights)
	require.ErrorIs(t, Weights{Referee: 1}.Validate(), ErrInvalidWeights)
}

func TestSideScore_Clamped(t *testing.T) {
	t.Parallel()

	w := Weights{Attack: 1, Defense: 1, Referee: 1}
	assert.Equal(t, 100.0, SideScore(w, 1, 0, 1))
	assert.Equal(t, 0.0, SideScore(DefaultWeights(), 0, 1, 0))
}
