package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-scout/internal/domain/appearance"
	"github.com/riskibarqy/football-scout/internal/domain/event"
	"github.com/riskibarqy/football-scout/internal/domain/league"
	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/referee"
	"github.com/riskibarqy/football-scout/internal/domain/team"
	qb "github.com/riskibarqy/football-scout/internal/platform/querybuilder"
)

const (
	onConflictIDDoNothing = "ON CONFLICT (id) DO NOTHING"
	onConflictMatchUpdate = "ON CONFLICT (id) DO UPDATE SET " +
		"gameweek = EXCLUDED.gameweek, kickoff_at = EXCLUDED.kickoff_at, referee_id = EXCLUDED.referee_id, " +
		"home_score = EXCLUDED.home_score, away_score = EXCLUDED.away_score, finished = EXCLUDED.finished"
	onConflictAppearanceUpdate = "ON CONFLICT (match_id, player_id) DO UPDATE SET " +
		"team_id = EXCLUDED.team_id, minutes_played = EXCLUDED.minutes_played, position = EXCLUDED.position, " +
		"fouls_committed = EXCLUDED.fouls_committed, fouls_received = EXCLUDED.fouls_received"
)

// ImportRepository writes imported rows. Every call is one INSERT statement,
// callers chunk large slices.
type ImportRepository struct {
	db *sqlx.DB
}

func NewImportRepository(db *sqlx.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

func (r *ImportRepository) UpsertLeague(ctx context.Context, l league.League) error {
	row := leagueInsertModel{ID: l.ID, Name: l.Name, CountryCode: l.CountryCode, Season: l.Season}
	return insertRows(ctx, r.db, "leagues", []leagueInsertModel{row},
		"ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, season = EXCLUDED.season")
}

func (r *ImportRepository) UpsertTeams(ctx context.Context, items []team.Team) error {
	rows := make([]teamInsertModel, 0, len(items))
	for _, t := range items {
		rows = append(rows, teamInsertModel{ID: t.ID, LeagueID: t.LeagueID, Name: t.Name, Short: t.Short})
	}
	return insertRows(ctx, r.db, "teams", rows, onConflictIDDoNothing)
}

func (r *ImportRepository) UpsertPlayers(ctx context.Context, items []player.Player) error {
	rows := make([]playerInsertModel, 0, len(items))
	for _, p := range items {
		rows = append(rows, playerInsertModel{ID: p.ID, Name: p.Name, Position: string(p.Position), ShirtNumber: p.ShirtNumber})
	}
	return insertRows(ctx, r.db, "players", rows, onConflictIDDoNothing)
}

func (r *ImportRepository) UpsertReferees(ctx context.Context, items []referee.Referee) error {
	rows := make([]refereeInsertModel, 0, len(items))
	for _, ref := range items {
		rows = append(rows, refereeInsertModel{ID: ref.ID, Name: ref.Name})
	}
	return insertRows(ctx, r.db, "referees", rows, onConflictIDDoNothing)
}

func (r *ImportRepository) UpsertMatches(ctx context.Context, items []match.Match) error {
	rows := make([]matchInsertModel, 0, len(items))
	for _, m := range items {
		rows = append(rows, matchInsertModel{
			ID:         m.ID,
			LeagueID:   m.LeagueID,
			Gameweek:   m.Gameweek,
			KickoffAt:  m.KickoffAt,
			HomeTeamID: m.HomeTeamID,
			AwayTeamID: m.AwayTeamID,
			RefereeID:  stringToNullString(m.RefereeID),
			HomeScore:  intPtrToNullInt64(m.HomeScore),
			AwayScore:  intPtrToNullInt64(m.AwayScore),
			Finished:   m.Finished,
		})
	}
	return insertRows(ctx, r.db, "matches", rows, onConflictMatchUpdate)
}

func (r *ImportRepository) UpsertAppearances(ctx context.Context, items []appearance.Appearance) error {
	rows := make([]appearanceInsertModel, 0, len(items))
	for _, a := range items {
		rows = append(rows, appearanceInsertModel{
			MatchID:        a.MatchID,
			PlayerID:       a.PlayerID,
			TeamID:         a.TeamID,
			MinutesPlayed:  a.Minutes,
			Position:       string(a.Position),
			ShirtNumber:    a.ShirtNumber,
			IsStarter:      a.IsStarter,
			FoulsCommitted: a.FoulsCommitted,
			FoulsReceived:  a.FoulsReceived,
		})
	}
	return insertRows(ctx, r.db, "appearances", rows, onConflictAppearanceUpdate)
}

func (r *ImportRepository) UpsertShots(ctx context.Context, items []event.Shot) error {
	rows := make([]shotTableModel, 0, len(items))
	for _, s := range items {
		rows = append(rows, shotTableModel{
			ID:        s.ID,
			MatchID:   s.MatchID,
			PlayerID:  s.PlayerID,
			TeamID:    s.TeamID,
			Minute:    s.Minute,
			OnTarget:  s.OnTarget,
			IsHeader:  s.Header,
			InsideBox: s.InsideBox,
			Situation: s.Situation,
			Outcome:   s.Outcome,
		})
	}
	return insertRows(ctx, r.db, "shots", rows, onConflictIDDoNothing)
}

func (r *ImportRepository) UpsertCards(ctx context.Context, items []event.Card) error {
	rows := make([]cardTableModel, 0, len(items))
	for _, c := range items {
		rows = append(rows, cardTableModel{
			ID:       c.ID,
			MatchID:  c.MatchID,
			PlayerID: c.PlayerID,
			TeamID:   c.TeamID,
			CardType: string(c.Type),
			Minute:   c.Minute,
		})
	}
	return insertRows(ctx, r.db, "cards", rows, onConflictIDDoNothing)
}

func insertRows[T any](ctx context.Context, db *sqlx.DB, table string, rows []T, suffix string) error {
	if len(rows) == 0 {
		return nil
	}

	query, args, err := qb.InsertModels(table, rows, suffix)
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", table, err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}
