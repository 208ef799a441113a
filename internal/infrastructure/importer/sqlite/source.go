// Package sqlite reads the scraper's SQLite database and maps it onto the
// domain model.
package sqlite

import (
	"context"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/riskibarqy/football-scout/internal/domain/appearance"
	"github.com/riskibarqy/football-scout/internal/domain/dataset"
	"github.com/riskibarqy/football-scout/internal/domain/event"
	"github.com/riskibarqy/football-scout/internal/domain/league"
	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/referee"
	"github.com/riskibarqy/football-scout/internal/domain/team"
	qb "github.com/riskibarqy/football-scout/internal/platform/querybuilder"
)

const headerShotType = "header"

type Source struct {
	db       *sqlx.DB
	leagueID string
}

// Open opens path read-only.
func Open(ctx context.Context, path, leagueID string) (*Source, error) {
	db, err := sqlx.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, crerr.Wrapf(err, "open sqlite %s", path)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrapf(err, "ping sqlite %s", path)
	}
	return NewSource(db, leagueID), nil
}

func NewSource(db *sqlx.DB, leagueID string) *Source {
	return &Source{db: db, leagueID: leagueID}
}

func (s *Source) Close() error {
	return s.db.Close()
}

// Read loads the whole legacy database. Rows that break referential
// integrity (unknown match, team outside the match) are skipped and counted.
func (s *Source) Read(ctx context.Context) (dataset.Dataset, dataset.Skipped, error) {
	var skipped dataset.Skipped

	var matchRows []legacyMatchRow
	if err := s.selectAll(ctx, &matchRows, "matches", legacyMatchColumns, "date", "id"); err != nil {
		return dataset.Dataset{}, skipped, err
	}
	var appRows []legacyAppearanceRow
	if err := s.selectAll(ctx, &appRows, "player_match_details", legacyAppearanceColumns, "match_id", "player_id"); err != nil {
		return dataset.Dataset{}, skipped, err
	}
	var shotRows []legacyShotRow
	if err := s.selectAll(ctx, &shotRows, "shots", legacyShotColumns, "shot_id"); err != nil {
		return dataset.Dataset{}, skipped, err
	}
	var cardRows []legacyCardRow
	if err := s.selectAll(ctx, &cardRows, "cards", legacyCardColumns, "card_id"); err != nil {
		return dataset.Dataset{}, skipped, err
	}

	ds := dataset.Dataset{League: league.League{ID: s.leagueID, CountryCode: "AR"}}
	teams := make(map[string]team.Team)
	referees := make(map[string]referee.Referee)
	matches := make(map[string]match.Match, len(matchRows))

	for _, row := range matchRows {
		m, ok := s.mapMatch(row)
		if !ok {
			skipped.Matches++
			continue
		}
		if ds.League.Name == "" && strings.TrimSpace(row.Tournament.String) != "" {
			ds.League.Name = strings.TrimSpace(row.Tournament.String)
		}
		if ds.League.Season == "" {
			ds.League.Season = strconv.Itoa(m.KickoffAt.Year())
		}

		for _, side := range [][2]string{{m.HomeTeamID, row.HomeTeam.String}, {m.AwayTeamID, row.AwayTeam.String}} {
			id, name := side[0], strings.TrimSpace(side[1])
			if _, seen := teams[id]; !seen {
				if name == "" {
					name = id
				}
				teams[id] = team.Team{ID: id, LeagueID: s.leagueID, Name: name, Short: shortName(name)}
				ds.Teams = append(ds.Teams, teams[id])
			}
		}
		if m.HasReferee() {
			if _, seen := referees[m.RefereeID]; !seen {
				referees[m.RefereeID] = referee.Referee{ID: m.RefereeID, Name: strings.TrimSpace(row.Referee.String)}
				ds.Referees = append(ds.Referees, referees[m.RefereeID])
			}
		}

		matches[m.ID] = m
		ds.Matches = append(ds.Matches, m)
	}
	if ds.League.Name == "" {
		ds.League.Name = s.leagueID
	}

	players := make(map[string]int)
	latest := make(map[string]appearance.Appearance)
	for _, row := range appRows {
		m, ok := matches[row.MatchID]
		teamID := strings.TrimSpace(row.TeamID.String)
		if !ok || row.PlayerID == "" || !m.Involves(teamID) {
			skipped.Appearances++
			continue
		}

		position, _ := player.ParsePosition(row.Position.String)
		a := appearance.Appearance{
			MatchID:        row.MatchID,
			PlayerID:       row.PlayerID,
			TeamID:         teamID,
			KickoffAt:      m.KickoffAt,
			Minutes:        int(max(row.MinutesPlayed.Int64, 0)),
			Position:       position,
			ShirtNumber:    strings.TrimSpace(row.ShirtNumber.String),
			IsStarter:      row.IsStarter.Bool,
			FoulsCommitted: int(row.FoulsCommitted.Int64),
			FoulsReceived:  int(row.FoulsReceived.Int64),
		}
		ds.Appearances = append(ds.Appearances, a)

		// Identity follows the most recent appearance.
		idx, seen := players[a.PlayerID]
		if !seen {
			idx = len(ds.Players)
			players[a.PlayerID] = idx
			ds.Players = append(ds.Players, player.Player{ID: a.PlayerID})
		}
		if prev, ok := latest[a.PlayerID]; ok && appearance.Compare(a, prev) < 0 {
			continue
		}
		latest[a.PlayerID] = a
		name := strings.TrimSpace(row.PlayerName.String)
		if name == "" {
			name = a.PlayerID
		}
		ds.Players[idx] = player.Player{
			ID:          a.PlayerID,
			Name:        name,
			Position:    position,
			ShirtNumber: a.ShirtNumber,
		}
	}

	for _, row := range shotRows {
		if _, ok := matches[row.MatchID]; !ok || row.PlayerID.String == "" {
			skipped.Shots++
			continue
		}
		ds.Shots = append(ds.Shots, event.Shot{
			ID:        row.ID,
			MatchID:   row.MatchID,
			PlayerID:  row.PlayerID.String,
			TeamID:    strings.TrimSpace(row.TeamID.String),
			Minute:    parseMinute(row.Minute.String),
			OnTarget:  row.OnTarget.Bool,
			Header:    strings.EqualFold(strings.TrimSpace(row.ShotType.String), headerShotType),
			// NULL location is never a long shot.
			InsideBox: !row.InsideBox.Valid || row.InsideBox.Bool,
			Situation: strings.TrimSpace(row.Situation.String),
			Outcome:   strings.TrimSpace(row.Outcome.String),
		})
	}

	for _, row := range cardRows {
		if _, ok := matches[row.MatchID]; !ok || row.PlayerID.String == "" {
			skipped.Cards++
			continue
		}
		ds.Cards = append(ds.Cards, event.Card{
			ID:       row.ID,
			MatchID:  row.MatchID,
			PlayerID: row.PlayerID.String,
			TeamID:   strings.TrimSpace(row.TeamID.String),
			Type:     event.ParseCardType(row.CardType.String),
			Minute:   parseMinute(row.Minute.String),
		})
	}

	return ds, skipped, nil
}

func (s *Source) mapMatch(row legacyMatchRow) (match.Match, bool) {
	homeID := strings.TrimSpace(row.HomeTeamID.String)
	awayID := strings.TrimSpace(row.AwayTeamID.String)
	if row.ID == "" || homeID == "" || awayID == "" || homeID == awayID {
		return match.Match{}, false
	}
	kickoff, err := parseKickoff(row.Date.String)
	if err != nil {
		return match.Match{}, false
	}

	m := match.Match{
		ID:         row.ID,
		LeagueID:   s.leagueID,
		Gameweek:   parseGameweek(row.Gameweek.String),
		KickoffAt:  kickoff,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		RefereeID:  slug(row.Referee.String),
		Finished:   row.Finished.Bool,
	}
	if home, away, ok := parseScore(row.Score.String); ok {
		m.HomeScore, m.AwayScore = home, away
	}
	return m, true
}

func (s *Source) selectAll(ctx context.Context, dst any, table string, columns []string, orderBy ...string) error {
	query, args, err := qb.Select(columns...).From(table).
		OrderBy(orderBy...).
		PlaceholderFormat(qb.Question).
		ToSQL()
	if err != nil {
		return crerr.Wrapf(err, "build select %s query", table)
	}
	if err := s.db.SelectContext(ctx, dst, query, args...); err != nil {
		return crerr.Wrapf(err, "select legacy %s", table)
	}
	return nil
}
