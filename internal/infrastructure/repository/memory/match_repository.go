package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/football-scout/internal/domain/appearance"
	"github.com/riskibarqy/football-scout/internal/domain/event"
	"github.com/riskibarqy/football-scout/internal/domain/match"
)

type MatchRepository struct {
	db *DB
}

func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	m, ok := r.db.matches[matchID]
	return m, ok, nil
}

func (r *MatchRepository) ListFinishedByLeague(_ context.Context, leagueID string) ([]match.Match, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.db.matches {
		if m.LeagueID == leagueID && m.Finished {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, match.CompareMatches)
	return out, nil
}

type AppearanceRepository struct {
	db *DB
}

func NewAppearanceRepository(db *DB) *AppearanceRepository {
	return &AppearanceRepository{db: db}
}

func (r *AppearanceRepository) ListByPlayer(_ context.Context, playerID string) ([]appearance.Appearance, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.finishedAppearances(func(_ match.Match, a appearance.Appearance) bool {
		return a.PlayerID == playerID
	}), nil
}

func (r *AppearanceRepository) ListByLeague(_ context.Context, leagueID string) ([]appearance.Appearance, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.finishedAppearances(func(m match.Match, _ appearance.Appearance) bool {
		return m.LeagueID == leagueID
	}), nil
}

type EventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) ListShotsByMatches(_ context.Context, matchIDs []string) ([]event.Shot, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	wanted := toSet(matchIDs)
	out := make([]event.Shot, 0)
	for _, s := range r.db.shots {
		if _, ok := wanted[s.MatchID]; ok {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b event.Shot) int { return compareInt64(a.ID, b.ID) })
	return out, nil
}

func (r *EventRepository) ListCardsByMatches(_ context.Context, matchIDs []string) ([]event.Card, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	wanted := toSet(matchIDs)
	out := make([]event.Card, 0)
	for _, c := range r.db.cards {
		if _, ok := wanted[c.MatchID]; ok {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b event.Card) int { return compareInt64(a.ID, b.ID) })
	return out, nil
}

func toSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
