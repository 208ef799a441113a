package memory

import (
	"context"

	"github.com/riskibarqy/football-scout/internal/domain/league"
)

type LeagueRepository struct {
	db *DB
}

func NewLeagueRepository(db *DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]league.League, 0, len(r.db.leagueOrder))
	for _, id := range r.db.leagueOrder {
		out = append(out, r.db.leagues[id])
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	l, ok := r.db.leagues[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return l, true, nil
}
