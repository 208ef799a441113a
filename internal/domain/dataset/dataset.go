// Package dataset carries a complete league extract between an import source
// and a writer.
package dataset

import (
	"github.com/riskibarqy/football-scout/internal/domain/appearance"
	"github.com/riskibarqy/football-scout/internal/domain/event"
	"github.com/riskibarqy/football-scout/internal/domain/league"
	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/referee"
	"github.com/riskibarqy/football-scout/internal/domain/team"
)

type Dataset struct {
	League      league.League
	Teams       []team.Team
	Players     []player.Player
	Referees    []referee.Referee
	Matches     []match.Match
	Appearances []appearance.Appearance
	Shots       []event.Shot
	Cards       []event.Card
}

// Counts summarizes a dataset for logs and import reports.
type Counts struct {
	Teams       int `json:"teams"`
	Players     int `json:"players"`
	Referees    int `json:"referees"`
	Matches     int `json:"matches"`
	Appearances int `json:"appearances"`
	Shots       int `json:"shots"`
	Cards       int `json:"cards"`
}

func (d Dataset) Counts() Counts {
	return Counts{
		Teams:       len(d.Teams),
		Players:     len(d.Players),
		Referees:    len(d.Referees),
		Matches:     len(d.Matches),
		Appearances: len(d.Appearances),
		Shots:       len(d.Shots),
		Cards:       len(d.Cards),
	}
}

// Skipped counts source rows that could not be mapped.
type Skipped struct {
	Matches     int `json:"matches"`
	Appearances int `json:"appearances"`
	Shots       int `json:"shots"`
	Cards       int `json:"cards"`
}

func (s Skipped) Total() int {
	return s.Matches + s.Appearances + s.Shots + s.Cards
}
