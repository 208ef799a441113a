package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
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

var matchSelectColumns = []string{
	"id",
	"league_id",
	"gameweek",
	"kickoff_at",
	"home_team_id",
	"away_team_id",
	"referee_id",
	"home_score",
	"away_score",
	"finished",
}

type appearanceTableModel struct {
	MatchID        string    `db:"match_id"`
	PlayerID       string    `db:"player_id"`
	TeamID         string    `db:"team_id"`
	KickoffAt      time.Time `db:"kickoff_at"`
	MinutesPlayed  int       `db:"minutes_played"`
	Position       string    `db:"position"`
	ShirtNumber    string    `db:"shirt_number"`
	IsStarter      bool      `db:"is_starter"`
	FoulsCommitted int       `db:"fouls_committed"`
	FoulsReceived  int       `db:"fouls_received"`
}

var appearanceSelectColumns = []string{
	"a.match_id",
	"a.player_id",
	"a.team_id",
	"m.kickoff_at",
	"a.minutes_played",
	"a.position",
	"a.shirt_number",
	"a.is_starter",
	"a.fouls_committed",
	"a.fouls_received",
}

type shotTableModel struct {
	ID        int64  `db:"id"`
	MatchID   string `db:"match_id"`
	PlayerID  string `db:"player_id"`
	TeamID    string `db:"team_id"`
	Minute    int    `db:"minute"`
	OnTarget  bool   `db:"on_target"`
	IsHeader  bool   `db:"is_header"`
	InsideBox bool   `db:"inside_box"`
	Situation string `db:"situation"`
	Outcome   string `db:"outcome"`
}

type cardTableModel struct {
	ID       int64  `db:"id"`
	MatchID  string `db:"match_id"`
	PlayerID string `db:"player_id"`
	TeamID   string `db:"team_id"`
	CardType string `db:"card_type"`
	Minute   int    `db:"minute"`
}
