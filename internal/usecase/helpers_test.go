package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/football-scout/internal/domain/league"
	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/team"
	"github.com/riskibarqy/football-scout/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-scout/internal/platform/cache"
	"github.com/riskibarqy/football-scout/internal/platform/logging"
)

const seedLeague = memory.LeagueIDArgentina

type countingMatchRepo struct {
	match.Repository
	listCalls atomic.Int32
}

func (r *countingMatchRepo) ListFinishedByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	r.listCalls.Add(1)
	return r.Repository.ListFinishedByLeague(ctx, leagueID)
}

type fixture struct {
	db      *memory.DB
	matches *countingMatchRepo
	engine  *RankingEngine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := memory.NewDBFromDataset(memory.SeedDataset())
	matches := &countingMatchRepo{Repository: memory.NewMatchRepository(db)}
	engine := NewRankingEngine(
		matches,
		memory.NewAppearanceRepository(db),
		memory.NewEventRepository(db),
		cache.NewStore(time.Minute),
		WithRankingWorkers(4),
		WithRankingLogger(logging.NewNop()),
	)
	return &fixture{db: db, matches: matches, engine: engine}
}

func (f *fixture) teamService() *TeamStatsService {
	return NewTeamStatsService(memory.NewTeamRepository(f.db), f.matches, f.engine)
}

func (f *fixture) playerService() *PlayerStatsService {
	return NewPlayerStatsService(
		memory.NewLeagueRepository(f.db),
		memory.NewTeamRepository(f.db),
		memory.NewPlayerRepository(f.db),
		f.matches,
		memory.NewAppearanceRepository(f.db),
		memory.NewEventRepository(f.db),
		f.engine,
	)
}

func (f *fixture) refereeService() *RefereeService {
	return NewRefereeService(memory.NewLeagueRepository(f.db), memory.NewRefereeRepository(f.db), f.engine)
}

func leagueFixture(id string) league.League {
	return league.League{ID: id, Name: id, Season: "2025"}
}

func teamFixtures(leagueID string, ids ...string) []team.Team {
	out := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		out = append(out, team.Team{ID: id, LeagueID: leagueID, Name: id})
	}
	return out
}
