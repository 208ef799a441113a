package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/football-scout/internal/domain/appearance"
	"github.com/riskibarqy/football-scout/internal/domain/dataset"
	"github.com/riskibarqy/football-scout/internal/domain/event"
	"github.com/riskibarqy/football-scout/internal/domain/league"
	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/referee"
	"github.com/riskibarqy/football-scout/internal/domain/team"
)

const LeagueIDArgentina = "arg-primera"

var argentinaTime = time.FixedZone("ART", -3*60*60)

var seedTeams = []team.Team{
	{ID: "arg-boca", LeagueID: LeagueIDArgentina, Name: "Boca Juniors", Short: "BOC"},
	{ID: "arg-river", LeagueID: LeagueIDArgentina, Name: "River Plate", Short: "RIV"},
	{ID: "arg-racing", LeagueID: LeagueIDArgentina, Name: "Racing Club", Short: "RAC"},
	{ID: "arg-independiente", LeagueID: LeagueIDArgentina, Name: "Independiente", Short: "IND"},
	{ID: "arg-sanlorenzo", LeagueID: LeagueIDArgentina, Name: "San Lorenzo", Short: "SLO"},
	{ID: "arg-velez", LeagueID: LeagueIDArgentina, Name: "Velez Sarsfield", Short: "VEL"},
}

var seedReferees = []referee.Referee{
	{ID: "dario-herrera", Name: "Dario Herrera"},
	{ID: "facundo-tello", Name: "Facundo Tello"},
	{ID: "yael-falcon-perez", Name: "Yael Falcon Perez"},
}

var seedPositions = []player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender,
	player.PositionMidfielder,
	player.PositionForward,
}

// seedRounds is a single round robin for six teams, as team indexes.
var seedRounds = [][][2]int{
	{{0, 5}, {1, 4}, {2, 3}},
	{{5, 3}, {4, 2}, {0, 1}},
	{{1, 5}, {2, 0}, {3, 4}},
	{{5, 4}, {0, 3}, {1, 2}},
	{{2, 5}, {3, 1}, {4, 0}},
}

// SeedDataset returns a small deterministic league: five finished gameweeks
// and one scheduled gameweek for predictions.
func SeedDataset() dataset.Dataset {
	ds := dataset.Dataset{
		League: league.League{
			ID:          LeagueIDArgentina,
			Name:        "Liga Profesional Argentina",
			CountryCode: "AR",
			Season:      "2025",
		},
		Teams:    append([]team.Team(nil), seedTeams...),
		Referees: append([]referee.Referee(nil), seedReferees...),
	}

	for ti, t := range seedTeams {
		for pi, pos := range seedPositions {
			ds.Players = append(ds.Players, player.Player{
				ID:          seedPlayerID(ti, pi),
				Name:        fmt.Sprintf("%s %s", t.Short, pos),
				Position:    pos,
				ShirtNumber: fmt.Sprintf("%d", pi*3+1),
			})
		}
	}

	var shotID, cardID int64
	start := time.Date(2025, 2, 1, 19, 0, 0, 0, argentinaTime)
	for ri, round := range seedRounds {
		for mi, pair := range round {
			home, away := pair[0], pair[1]
			m := match.Match{
				ID:         fmt.Sprintf("arg-2025-gw%d-m%d", ri+1, mi+1),
				LeagueID:   LeagueIDArgentina,
				Gameweek:   ri + 1,
				KickoffAt:  start.AddDate(0, 0, 7*ri).Add(time.Duration(mi) * 2 * time.Hour),
				HomeTeamID: seedTeams[home].ID,
				AwayTeamID: seedTeams[away].ID,
				RefereeID:  seedReferees[(ri+mi)%len(seedReferees)].ID,
				Finished:   true,
			}

			goals := [2]int{}
			for side, ti := range []int{home, away} {
				for pi := range seedPositions {
					playerID := seedPlayerID(ti, pi)
					minutes := 90
					if seedPositions[pi] == player.PositionForward {
						minutes = 70
					}
					ds.Appearances = append(ds.Appearances, appearance.Appearance{
						MatchID:        m.ID,
						PlayerID:       playerID,
						TeamID:         seedTeams[ti].ID,
						KickoffAt:      m.KickoffAt,
						Minutes:        minutes,
						Position:       seedPositions[pi],
						ShirtNumber:    fmt.Sprintf("%d", pi*3+1),
						IsStarter:      true,
						FoulsCommitted: (ti + pi + ri) % 4,
						FoulsReceived:  (ti*2 + pi + ri) % 3,
					})

					if seedPositions[pi] == player.PositionGoalkeeper {
						continue
					}
					for k := range (ti + pi + ri) % 4 {
						shotID++
						shot := event.Shot{
							ID:        shotID,
							MatchID:   m.ID,
							PlayerID:  playerID,
							TeamID:    seedTeams[ti].ID,
							Minute:    10 + 17*k + ri,
							OnTarget:  k%2 == 0,
							Header:    seedPositions[pi] == player.PositionDefender,
							InsideBox: k != 2,
							Situation: "RegularPlay",
							Outcome:   "Saved",
						}
						if k == 0 && (ti+ri)%2 == 0 {
							shot.Outcome = event.OutcomeGoal
							goals[side]++
						}
						ds.Shots = append(ds.Shots, shot)
					}

					if seedPositions[pi] != player.PositionForward && (ti+pi+ri)%3 == 0 {
						cardID++
						ds.Cards = append(ds.Cards, event.Card{
							ID:       cardID,
							MatchID:  m.ID,
							PlayerID: playerID,
							TeamID:   seedTeams[ti].ID,
							Type:     event.CardYellow,
							Minute:   30 + 11*pi,
						})
					}
				}
			}

			m.HomeScore, m.AwayScore = intPtr(goals[0]), intPtr(goals[1])
			ds.Matches = append(ds.Matches, m)
		}
	}

	next := len(seedRounds)
	for mi, pair := range [][2]int{{5, 0}, {4, 1}, {3, 2}} {
		ds.Matches = append(ds.Matches, match.Match{
			ID:         fmt.Sprintf("arg-2025-gw%d-m%d", next+1, mi+1),
			LeagueID:   LeagueIDArgentina,
			Gameweek:   next + 1,
			KickoffAt:  start.AddDate(0, 0, 7*next).Add(time.Duration(mi) * 2 * time.Hour),
			HomeTeamID: seedTeams[pair[0]].ID,
			AwayTeamID: seedTeams[pair[1]].ID,
			RefereeID:  seedReferees[mi%len(seedReferees)].ID,
		})
	}

	return ds
}

func seedPlayerID(teamIdx, posIdx int) string {
	return fmt.Sprintf("%s-%s", seedTeams[teamIdx].ID, seedPositions[posIdx])
}

func intPtr(v int) *int {
	return &v
}
