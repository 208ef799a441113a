package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-scout/internal/domain/referee"
	qb "github.com/riskibarqy/football-scout/internal/platform/querybuilder"
)

type RefereeRepository struct {
	db *sqlx.DB
}

func NewRefereeRepository(db *sqlx.DB) *RefereeRepository {
	return &RefereeRepository{db: db}
}

func (r *RefereeRepository) GetByID(ctx context.Context, refereeID string) (referee.Referee, bool, error) {
	query, args, err := qb.Select("*").From("referees").
		Where(qb.Eq("id", refereeID)).
		ToSQL()
	if err != nil {
		return referee.Referee{}, false, fmt.Errorf("build get referee by id query: %w", err)
	}

	var row refereeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return referee.Referee{}, false, nil
		}
		return referee.Referee{}, false, fmt.Errorf("get referee by id: %w", err)
	}
	return referee.Referee{ID: row.ID, Name: row.Name}, true, nil
}

func (r *RefereeRepository) ListByIDs(ctx context.Context, refereeIDs []string) ([]referee.Referee, error) {
	if len(refereeIDs) == 0 {
		return []referee.Referee{}, nil
	}

	query, args, err := qb.Select("*").From("referees").
		Where(qb.InStrings("id", refereeIDs)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select referees by ids query: %w", err)
	}

	var rows []refereeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select referees by ids: %w", err)
	}

	out := make([]referee.Referee, 0, len(rows))
	for _, row := range rows {
		out = append(out, referee.Referee{ID: row.ID, Name: row.Name})
	}
	return out, nil
}
