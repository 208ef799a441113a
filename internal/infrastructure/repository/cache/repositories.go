package cache

import (
	"context"
	"slices"
	"strings"

	"github.com/riskibarqy/football-scout/internal/domain/league"
	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/referee"
	"github.com/riskibarqy/football-scout/internal/domain/team"
	basecache "github.com/riskibarqy/football-scout/internal/platform/cache"
)

type lookup[T any] struct {
	value  T
	exists bool
}

func cachedLookup[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) (T, bool, error)) (T, bool, error) {
	v, err := basecache.Load(ctx, store, key, func(ctx context.Context) (lookup[T], error) {
		item, exists, err := load(ctx)
		if err != nil {
			return lookup[T]{}, err
		}
		return lookup[T]{value: item, exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v.value, v.exists, nil
}

func cachedList[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	items, err := basecache.Load(ctx, store, key, func(ctx context.Context) ([]T, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	return cachedList(ctx, r.cache, "league:list", r.next.List)
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return cachedLookup(ctx, r.cache, basecache.Key("league", "id", leagueID), func(ctx context.Context) (league.League, bool, error) {
		return r.next.GetByID(ctx, leagueID)
	})
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	return cachedList(ctx, r.cache, basecache.Key("team", "list", leagueID), func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return cachedLookup(ctx, r.cache, basecache.Key("team", "id", teamID), func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	return cachedLookup(ctx, r.cache, basecache.Key("player", "id", playerID), func(ctx context.Context) (player.Player, bool, error) {
		return r.next.GetByID(ctx, playerID)
	})
}

// ListByIDs caches by the sorted id set; the result keeps the caller's order.
func (r *PlayerRepository) ListByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := sortedUnique(playerIDs)
	items, err := cachedList(ctx, r.cache, basecache.Key("player", "ids", strings.Join(ids, ",")), func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]player.Player, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type RefereeRepository struct {
	next  referee.Repository
	cache *basecache.Store
}

func NewRefereeRepository(next referee.Repository, cache *basecache.Store) *RefereeRepository {
	return &RefereeRepository{next: next, cache: cache}
}

func (r *RefereeRepository) GetByID(ctx context.Context, refereeID string) (referee.Referee, bool, error) {
	return cachedLookup(ctx, r.cache, basecache.Key("referee", "id", refereeID), func(ctx context.Context) (referee.Referee, bool, error) {
		return r.next.GetByID(ctx, refereeID)
	})
}

func (r *RefereeRepository) ListByIDs(ctx context.Context, refereeIDs []string) ([]referee.Referee, error) {
	return cachedList(ctx, r.cache, basecache.Key("referee", "ids", strings.Join(refereeIDs, ",")), func(ctx context.Context) ([]referee.Referee, error) {
		return r.next.ListByIDs(ctx, refereeIDs)
	})
}

// MatchRepository caches single-match lookups only. League match lists are
// memoized one level up by the ranking engine.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	return cachedLookup(ctx, r.cache, basecache.Key("match", "id", matchID), func(ctx context.Context) (match.Match, bool, error) {
		return r.next.GetByID(ctx, matchID)
	})
}

func (r *MatchRepository) ListFinishedByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	return r.next.ListFinishedByLeague(ctx, leagueID)
}

func sortedUnique(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
