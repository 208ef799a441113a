package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-scout/internal/domain/event"
	qb "github.com/riskibarqy/football-scout/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) ListShotsByMatches(ctx context.Context, matchIDs []string) ([]event.Shot, error) {
	if len(matchIDs) == 0 {
		return []event.Shot{}, nil
	}

	query, args, err := qb.Select("*").From("shots").
		Where(qb.InStrings("match_id", matchIDs)).
		OrderBy("match_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select shots by matches query: %w", err)
	}

	var rows []shotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select shots by matches: %w", err)
	}

	out := make([]event.Shot, 0, len(rows))
	for _, row := range rows {
		out = append(out, event.Shot{
			ID:        row.ID,
			MatchID:   row.MatchID,
			PlayerID:  row.PlayerID,
			TeamID:    row.TeamID,
			Minute:    row.Minute,
			OnTarget:  row.OnTarget,
			Header:    row.IsHeader,
			InsideBox: row.InsideBox,
			Situation: row.Situation,
			Outcome:   row.Outcome,
		})
	}
	return out, nil
}

func (r *EventRepository) ListCardsByMatches(ctx context.Context, matchIDs []string) ([]event.Card, error) {
	if len(matchIDs) == 0 {
		return []event.Card{}, nil
	}

	query, args, err := qb.Select("*").From("cards").
		Where(qb.InStrings("match_id", matchIDs)).
		OrderBy("match_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select cards by matches query: %w", err)
	}

	var rows []cardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select cards by matches: %w", err)
	}

	out := make([]event.Card, 0, len(rows))
	for _, row := range rows {
		out = append(out, event.Card{
			ID:       row.ID,
			MatchID:  row.MatchID,
			PlayerID: row.PlayerID,
			TeamID:   row.TeamID,
			Type:     event.ParseCardType(row.CardType),
			Minute:   row.Minute,
		})
	}
	return out, nil
}
