package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-scout/internal/domain/stats"
)

func TestTeamStatsService_GetTeamStats(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	service := f.teamService()
	ctx := context.Background()

	got, err := service.GetTeamStats(ctx, "arg-boca", stats.ScopeCareer, "")
	require.NoError(t, err)
	assert.Equal(t, 5, got.For.Matches)
	assert.Equal(t, 450, got.For.Minutes)
	assert.True(t, got.For.Eligible)
	assert.Equal(t, got.For.Matches, got.Against.Matches)
	require.Len(t, got.Attack, len(stats.Metrics()))
	require.Len(t, got.Defense, len(stats.Metrics()))
	for _, pos := range append(got.Attack, got.Defense...) {
		assert.True(t, pos.Ranked)
		assert.Equal(t, 6, pos.Population)
		assert.GreaterOrEqual(t, pos.Rank, 1)
	}

	current, err := service.GetTeamStats(ctx, "arg-boca", stats.ScopeCurrentMatch, "arg-2025-gw1-m1")
	require.NoError(t, err)
	assert.Equal(t, 1, current.For.Matches)
	assert.Empty(t, current.Attack)
}

func TestTeamStatsService_GetTeamStats_Errors(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	service := f.teamService()
	ctx := context.Background()

	tests := []struct {
		name    string
		teamID  string
		scope   stats.Scope
		matchID string
		want    error
	}{
		{name: "blank team", teamID: " ", scope: stats.ScopeCareer, want: ErrInvalidInput},
		{name: "unknown team", teamID: "arg-nope", scope: stats.ScopeCareer, want: ErrNotFound},
		{name: "invalid scope", teamID: "arg-boca", scope: stats.Scope(42), want: ErrInvalidScope},
		{name: "unknown match", teamID: "arg-boca", scope: stats.ScopeCurrentMatch, matchID: "missing", want: ErrNotFound},
		{name: "match of other teams", teamID: "arg-boca", scope: stats.ScopeCurrentMatch, matchID: "arg-2025-gw1-m2", want: ErrInvalidInput},
		{name: "match with ranked scope", teamID: "arg-boca", scope: stats.ScopeCareer, matchID: "arg-2025-gw1-m1", want: ErrInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.GetTeamStats(ctx, tc.teamID, tc.scope, tc.matchID)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTeamStatsService_GetTeamRanking(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	got, err := f.teamService().GetTeamRanking(context.Background(), "arg-river")
	require.NoError(t, err)

	assert.Equal(t, stats.ScopeCareer, got.Scope)
	assert.Len(t, got.Boards, 2*len(stats.Metrics()))
	require.Len(t, got.Totals, 6)
	for _, b := range got.Boards {
		assert.Equal(t, 6, b.Board.Population)
		assert.True(t, b.Position.Ranked)
	}

	var scored, conceded int
	for _, row := range got.Totals {
		assert.Equal(t, 5, row.Matches)
		scored += row.Scored.Get(stats.MetricShots)
		conceded += row.Conceded.Get(stats.MetricShots)
	}
	assert.Equal(t, scored, conceded)
}

func TestTeamStatsService_GetTeamRanking_NoFinishedMatches(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.db.UpsertLeague(ctx, leagueFixture("empty-league")))
	require.NoError(t, f.db.UpsertTeams(ctx, teamFixtures("empty-league", "lonely")))

	_, err := f.teamService().GetTeamRanking(ctx, "lonely")
	assert.True(t, errors.Is(err, ErrInsufficientData))
}
