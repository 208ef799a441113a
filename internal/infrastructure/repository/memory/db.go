package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/football-scout/internal/domain/appearance"
	"github.com/riskibarqy/football-scout/internal/domain/dataset"
	"github.com/riskibarqy/football-scout/internal/domain/event"
	"github.com/riskibarqy/football-scout/internal/domain/league"
	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/referee"
	"github.com/riskibarqy/football-scout/internal/domain/team"
)

type appearanceKey struct {
	matchID  string
	playerID string
}

// DB is the shared in-memory state behind every memory repository. It also
// accepts imports, so a dataset written into it is visible to readers at once.
type DB struct {
	mu sync.RWMutex

	leagues     map[string]league.League
	leagueOrder []string
	teams       map[string]team.Team
	players     map[string]player.Player
	referees    map[string]referee.Referee
	matches     map[string]match.Match
	appearances map[appearanceKey]appearance.Appearance
	shots       map[int64]event.Shot
	cards       map[int64]event.Card
}

func NewDB() *DB {
	return &DB{
		leagues:     make(map[string]league.League),
		teams:       make(map[string]team.Team),
		players:     make(map[string]player.Player),
		referees:    make(map[string]referee.Referee),
		matches:     make(map[string]match.Match),
		appearances: make(map[appearanceKey]appearance.Appearance),
		shots:       make(map[int64]event.Shot),
		cards:       make(map[int64]event.Card),
	}
}

// NewDBFromDataset builds a DB already holding ds.
func NewDBFromDataset(ds dataset.Dataset) *DB {
	db := NewDB()
	ctx := context.Background()
	_ = db.UpsertLeague(ctx, ds.League)
	_ = db.UpsertTeams(ctx, ds.Teams)
	_ = db.UpsertPlayers(ctx, ds.Players)
	_ = db.UpsertReferees(ctx, ds.Referees)
	_ = db.UpsertMatches(ctx, ds.Matches)
	_ = db.UpsertAppearances(ctx, ds.Appearances)
	_ = db.UpsertShots(ctx, ds.Shots)
	_ = db.UpsertCards(ctx, ds.Cards)
	return db
}

func (db *DB) UpsertLeague(_ context.Context, l league.League) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.leagues[l.ID]; !ok {
		db.leagueOrder = append(db.leagueOrder, l.ID)
	}
	db.leagues[l.ID] = l
	return nil
}

func (db *DB) UpsertTeams(_ context.Context, items []team.Team) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, item := range items {
		if _, ok := db.teams[item.ID]; !ok {
			db.teams[item.ID] = item
		}
	}
	return nil
}

func (db *DB) UpsertPlayers(_ context.Context, items []player.Player) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, item := range items {
		if _, ok := db.players[item.ID]; !ok {
			db.players[item.ID] = item
		}
	}
	return nil
}

func (db *DB) UpsertReferees(_ context.Context, items []referee.Referee) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, item := range items {
		if _, ok := db.referees[item.ID]; !ok {
			db.referees[item.ID] = item
		}
	}
	return nil
}

// UpsertMatches overwrites existing matches so re-imports pick up results.
func (db *DB) UpsertMatches(_ context.Context, items []match.Match) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, item := range items {
		db.matches[item.ID] = item
	}
	return nil
}

func (db *DB) UpsertAppearances(_ context.Context, items []appearance.Appearance) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, item := range items {
		db.appearances[appearanceKey{matchID: item.MatchID, playerID: item.PlayerID}] = item
	}
	return nil
}

func (db *DB) UpsertShots(_ context.Context, items []event.Shot) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, item := range items {
		if _, ok := db.shots[item.ID]; !ok {
			db.shots[item.ID] = item
		}
	}
	return nil
}

func (db *DB) UpsertCards(_ context.Context, items []event.Card) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, item := range items {
		if _, ok := db.cards[item.ID]; !ok {
			db.cards[item.ID] = item
		}
	}
	return nil
}

// finishedAppearances returns appearances in finished matches accepted by
// keep, with kickoff copied from the match, oldest first. Caller holds mu.
func (db *DB) finishedAppearances(keep func(match.Match, appearance.Appearance) bool) []appearance.Appearance {
	out := make([]appearance.Appearance, 0)
	for _, a := range db.appearances {
		m, ok := db.matches[a.MatchID]
		if !ok || !m.Finished || !keep(m, a) {
			continue
		}
		a.KickoffAt = m.KickoffAt
		out = append(out, a)
	}

	slices.SortFunc(out, func(a, b appearance.Appearance) int {
		if c := appearance.Compare(a, b); c != 0 {
			return c
		}
		if a.PlayerID < b.PlayerID {
			return -1
		}
		if a.PlayerID > b.PlayerID {
			return 1
		}
		return 0
	})
	return out
}
