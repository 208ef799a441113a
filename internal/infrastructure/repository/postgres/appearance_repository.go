package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-scout/internal/domain/appearance"
	"github.com/riskibarqy/football-scout/internal/domain/player"
	qb "github.com/riskibarqy/football-scout/internal/platform/querybuilder"
)

type AppearanceRepository struct {
	db *sqlx.DB
}

func NewAppearanceRepository(db *sqlx.DB) *AppearanceRepository {
	return &AppearanceRepository{db: db}
}

func (r *AppearanceRepository) ListByPlayer(ctx context.Context, playerID string) ([]appearance.Appearance, error) {
	return r.list(ctx, "player", qb.Eq("a.player_id", playerID))
}

func (r *AppearanceRepository) ListByLeague(ctx context.Context, leagueID string) ([]appearance.Appearance, error) {
	return r.list(ctx, "league", qb.Eq("m.league_id", leagueID))
}

func (r *AppearanceRepository) list(ctx context.Context, by string, filter qb.Condition) ([]appearance.Appearance, error) {
	query, args, err := qb.Select(appearanceSelectColumns...).From("appearances a").
		Join("JOIN matches m ON m.id = a.match_id").
		Where(filter, qb.Eq("m.finished", true)).
		OrderBy("m.kickoff_at", "m.id", "a.player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select appearances by %s query: %w", by, err)
	}

	var rows []appearanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select appearances by %s: %w", by, err)
	}

	out := make([]appearance.Appearance, 0, len(rows))
	for _, row := range rows {
		pos, _ := player.ParsePosition(row.Position)
		out = append(out, appearance.Appearance{
			MatchID:        row.MatchID,
			PlayerID:       row.PlayerID,
			TeamID:         row.TeamID,
			KickoffAt:      row.KickoffAt.UTC(),
			Minutes:        row.MinutesPlayed,
			Position:       pos,
			ShirtNumber:    row.ShirtNumber,
			IsStarter:      row.IsStarter,
			FoulsCommitted: row.FoulsCommitted,
			FoulsReceived:  row.FoulsReceived,
		})
	}
	return out, nil
}
