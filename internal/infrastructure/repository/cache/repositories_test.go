package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/team"
	basecache "github.com/riskibarqy/football-scout/internal/platform/cache"
)

type countingTeamRepo struct {
	calls int
}

func (r *countingTeamRepo) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.calls++
	return []team.Team{{ID: "t1", LeagueID: leagueID, Name: "One"}}, nil
}

func (r *countingTeamRepo) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.calls++
	if teamID != "t1" {
		return team.Team{}, false, nil
	}
	return team.Team{ID: "t1", Name: "One"}, true, nil
}

func TestTeamRepository_CachesLookupsAndMisses(t *testing.T) {
	ctx := context.Background()
	next := &countingTeamRepo{}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	for range 3 {
		got, ok, err := repo.GetByID(ctx, "t1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "One", got.Name)

		_, ok, err = repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, 2, next.calls)

	items, err := repo.ListByLeague(ctx, "l")
	require.NoError(t, err)
	items[0].Name = "mutated"

	again, err := repo.ListByLeague(ctx, "l")
	require.NoError(t, err)
	assert.Equal(t, "One", again[0].Name)
	assert.Equal(t, 3, next.calls)
}

type staticPlayerRepo struct {
	calls int
}

func (r *staticPlayerRepo) GetByID(context.Context, string) (player.Player, bool, error) {
	return player.Player{}, false, nil
}

func (r *staticPlayerRepo) ListByIDs(_ context.Context, ids []string) ([]player.Player, error) {
	r.calls++
	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, player.Player{ID: id})
	}
	return out, nil
}

func TestPlayerRepository_ListByIDsKeepsCallerOrder(t *testing.T) {
	ctx := context.Background()
	next := &staticPlayerRepo{}
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.ListByIDs(ctx, []string{"b", "a"})
	require.NoError(t, err)
	second, err := repo.ListByIDs(ctx, []string{"a", "b", "a"})
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, []string{first[0].ID, first[1].ID})
	assert.Equal(t, []string{"a", "b", "a"}, []string{second[0].ID, second[1].ID, second[2].ID})
	assert.Equal(t, 1, next.calls)
}
