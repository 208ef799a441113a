package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/riskibarqy/football-scout/internal/domain/team"
)

type TeamRepository struct {
	db *DB
}

func NewTeamRepository(db *DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, t := range r.db.teams {
		if t.LeagueID == leagueID {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b team.Team) int { return strings.Compare(a.ID, b.ID) })

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t, ok := r.db.teams[teamID]
	return t, ok, nil
}
