package sqlite

import "database/sql"

type legacyMatchRow struct {
	ID         string         `db:"id"`
	Date       sql.NullString `db:"date"`
	Finished   sql.NullBool   `db:"finished"`
	Tournament sql.NullString `db:"tournament"`
	Gameweek   sql.NullString `db:"gameweek"`
	HomeTeam   sql.NullString `db:"home_team"`
	HomeTeamID sql.NullString `db:"id_home_team"`
	AwayTeam   sql.NullString `db:"away_team"`
	AwayTeamID sql.NullString `db:"id_away_team"`
	Score      sql.NullString `db:"score"`
	Referee    sql.NullString `db:"referee"`
}

var legacyMatchColumns = []string{
	"id", "date", "finished", "tournament", "gameweek", "home_team",
	"id_home_team", "away_team", "id_away_team", "score", "referee",
}

type legacyAppearanceRow struct {
	MatchID        string         `db:"match_id"`
	PlayerID       string         `db:"player_id"`
	TeamID         sql.NullString `db:"team_id"`
	PlayerName     sql.NullString `db:"player_name"`
	Position       sql.NullString `db:"position"`
	ShirtNumber    sql.NullString `db:"shirt_number"`
	IsStarter      sql.NullBool   `db:"is_starter"`
	MinutesPlayed  sql.NullInt64  `db:"minutes_played"`
	FoulsCommitted sql.NullInt64  `db:"fouls_committed"`
	FoulsReceived  sql.NullInt64  `db:"fouls_received"`
}

var legacyAppearanceColumns = []string{
	"match_id", "player_id", "team_id", "player_name", "position", "shirt_number",
	"is_starter", "minutes_played", "fouls_committed", "fouls_received",
}

type legacyShotRow struct {
	ID        int64          `db:"shot_id"`
	MatchID   string         `db:"match_id"`
	PlayerID  sql.NullString `db:"player_id"`
	TeamID    sql.NullString `db:"team_id"`
	Minute    sql.NullString `db:"minute"`
	OnTarget  sql.NullBool   `db:"on_target"`
	ShotType  sql.NullString `db:"shot_type"`
	Situation sql.NullString `db:"situation"`
	Outcome   sql.NullString `db:"outcome"`
	InsideBox sql.NullBool   `db:"inside_box"`
}

var legacyShotColumns = []string{
	"shot_id", "match_id", "player_id", "team_id", "minute", "on_target",
	"shot_type", "situation", "outcome", "inside_box",
}

type legacyCardRow struct {
	ID       int64          `db:"card_id"`
	MatchID  string         `db:"match_id"`
	PlayerID sql.NullString `db:"player_id"`
	TeamID   sql.NullString `db:"team_id"`
	CardType sql.NullString `db:"card_type"`
	Minute   sql.NullString `db:"minute"`
}

var legacyCardColumns = []string{"card_id", "match_id", "player_id", "team_id", "card_type", "minute"}
