package memory

import (
	"context"

	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/referee"
)

type PlayerRepository struct {
	db *DB
}

func NewPlayerRepository(db *DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.players[playerID]
	return p, ok, nil
}

// ListByIDs keeps the requested order and skips unknown ids.
func (r *PlayerRepository) ListByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := r.db.players[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type RefereeRepository struct {
	db *DB
}

func NewRefereeRepository(db *DB) *RefereeRepository {
	return &RefereeRepository{db: db}
}

func (r *RefereeRepository) GetByID(_ context.Context, refereeID string) (referee.Referee, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ref, ok := r.db.referees[refereeID]
	return ref, ok, nil
}

func (r *RefereeRepository) ListByIDs(_ context.Context, refereeIDs []string) ([]referee.Referee, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]referee.Referee, 0, len(refereeIDs))
	for _, id := range refereeIDs {
		if ref, ok := r.db.referees[id]; ok {
			out = append(out, ref)
		}
	}
	return out, nil
}
