package postgres

import (
	"database/sql"
	"time"
)

type leagueInsertModel struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	CountryCode string `db:"country_code"`
	Season      string `db:"season"`
}

type teamInsertModel struct {
	ID       string `db:"id"`
	LeagueID string `db:"league_id"`
	Name     string `db:"name"`
	Short    string `db:"short"`
}

type playerInsertModel struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Position    string `db:"position"`
	ShirtNumber string `db:"shirt_number"`
}

type refereeInsertModel struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type matchInsertModel struct {
	ID         string         `db:"id"`
	LeagueID   string         `db:"league_id"`
	Gameweek   int            `db:"gameweek"`
	KickoffAt  time.Time      `db:"kickoff_at"`
	HomeTeamID string         `db:"home_team_id"`
	AwayTeamID string         `db:"away_team_id"`
	RefereeID  sql.NullString `db:"referee_id"`
	HomeScore  sql.NullInt64  `db:"home_score"`
	AwayScore  sql.NullInt64  `db:"away_score"`
	Finished   bool           `db:"finished"`
}

type appearanceInsertModel struct {
	MatchID        string `db:"match_id"`
	PlayerID       string `db:"player_id"`
	TeamID         string `db:"team_id"`
	MinutesPlayed  int    `db:"minutes_played"`
	Position       string `db:"position"`
	ShirtNumber    string `db:"shirt_number"`
	IsStarter      bool   `db:"is_starter"`
	FoulsCommitted int    `db:"fouls_committed"`
	FoulsReceived  int    `db:"fouls_received"`
}
