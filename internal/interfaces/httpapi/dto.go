package httpapi

import (
	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/prediction"
	"github.com/riskibarqy/football-scout/internal/domain/ranking"
	"github.com/riskibarqy/football-scout/internal/domain/referee"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
	"github.com/riskibarqy/football-scout/internal/domain/team"
	"github.com/riskibarqy/football-scout/internal/usecase"
)

type teamDTO struct {
	ID       string `json:"id"`
	LeagueID string `json:"league_id"`
	Name     string `json:"name"`
	Short    string `json:"short,omitempty"`
}

type playerDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	ShirtNumber string `json:"shirt_number,omitempty"`
}

type refereeDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type windowDTO struct {
	Scope    string             `json:"scope"`
	Matches  int                `json:"matches"`
	Minutes  int                `json:"minutes"`
	Eligible bool               `json:"eligible"`
	Raw      map[string]int     `json:"raw"`
	Per90    map[string]float64 `json:"per90"`
}

type metricPositionDTO struct {
	Metric     string  `json:"metric"`
	Scope      string  `json:"scope"`
	Ranked     bool    `json:"ranked"`
	Rank       int     `json:"rank,omitempty"`
	Population int     `json:"population"`
	Value      float64 `json:"value,omitempty"`
}

type playerRankDTO struct {
	Context string `json:"context"`
	metricPositionDTO
	InTop bool `json:"in_top"`
}

type playerStatsDTO struct {
	Player        playerDTO       `json:"player"`
	LeagueID      string          `json:"league_id"`
	CurrentTeamID string          `json:"current_team_id"`
	ContextTeamID string          `json:"context_team_id"`
	Transferred   bool            `json:"transferred"`
	CurrentMatch  windowDTO       `json:"current_match"`
	LastFive      windowDTO       `json:"last5"`
	Career        windowDTO       `json:"career"`
	Ranks         []playerRankDTO `json:"ranks"`
}

type teamStatsDTO struct {
	Team    teamDTO             `json:"team"`
	Scope   string              `json:"scope"`
	MatchID string              `json:"match_id,omitempty"`
	For     windowDTO           `json:"for"`
	Against windowDTO           `json:"against"`
	Attack  []metricPositionDTO `json:"attack,omitempty"`
	Defense []metricPositionDTO `json:"defense,omitempty"`
}

type boardEntryDTO struct {
	Rank     int     `json:"rank"`
	EntityID string  `json:"entity_id"`
	Name     string  `json:"name,omitempty"`
	Value    float64 `json:"value"`
	Matches  int     `json:"matches"`
	Minutes  int     `json:"minutes"`
	Raw      int     `json:"raw"`
}

type teamAxisBoardDTO struct {
	Axis     string            `json:"axis"`
	Metric   string            `json:"metric"`
	Order    string            `json:"order"`
	Position metricPositionDTO `json:"position"`
	Entries  []boardEntryDTO   `json:"entries"`
}

type teamTotalsDTO struct {
	TeamID   string         `json:"team_id"`
	Matches  int            `json:"matches"`
	Scored   map[string]int `json:"scored"`
	Conceded map[string]int `json:"conceded"`
}

type teamRankingDTO struct {
	Team   teamDTO            `json:"team"`
	Scope  string             `json:"scope"`
	Boards []teamAxisBoardDTO `json:"boards"`
	Totals []teamTotalsDTO    `json:"totals"`
}

type leaderboardDTO struct {
	LeagueID   string          `json:"league_id"`
	Scope      string          `json:"scope"`
	Metric     string          `json:"metric"`
	Context    string          `json:"context,omitempty"`
	Population int             `json:"population"`
	Entries    []boardEntryDTO `json:"entries"`
}

type targetDTO struct {
	TeamID string `json:"team_id"`
	Total  int    `json:"total"`
}

type refereeMetricDTO struct {
	metricPositionDTO
	Total      int         `json:"total"`
	PerMatch   float64     `json:"per_match"`
	TopTargets []targetDTO `json:"top_targets"`
}

type refereeLeagueDTO struct {
	LeagueID string             `json:"league_id"`
	Matches  int                `json:"matches"`
	Metrics  []refereeMetricDTO `json:"metrics"`
}

type refereeStatsDTO struct {
	Referee refereeDTO         `json:"referee"`
	Leagues []refereeLeagueDTO `json:"leagues"`
}

type scenarioDTO struct {
	MatchID           string              `json:"match_id"`
	Metric            string              `json:"metric"`
	Weights           prediction.Weights  `json:"weights"`
	Home              prediction.Side     `json:"home"`
	Away              prediction.Side     `json:"away"`
	Referee           prediction.Position `json:"referee"`
	RefereeFactor     float64             `json:"referee_factor"`
	ReducedConfidence bool                `json:"reduced_confidence"`
	Framing           string              `json:"framing"`
}

type batchPredictionItemDTO struct {
	MatchID    string           `json:"match_id"`
	Prediction *scenarioDTO     `json:"prediction,omitempty"`
	Error      *googleErrorItem `json:"error,omitempty"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{ID: t.ID, LeagueID: t.LeagueID, Name: t.Name, Short: t.Short}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{ID: p.ID, Name: p.Name, Position: string(p.Position), ShirtNumber: p.ShirtNumber}
}

func refereeToDTO(r referee.Referee) refereeDTO {
	return refereeDTO{ID: r.ID, Name: r.Name}
}

func countersToMap(c stats.Counters) map[string]int {
	out := make(map[string]int, len(c))
	for _, m := range stats.Metrics() {
		out[m.String()] = c.Get(m)
	}
	return out
}

func windowToDTO(w stats.Window) windowDTO {
	per90 := make(map[string]float64, len(w.Per90))
	for _, m := range stats.Metrics() {
		per90[m.String()] = w.Per90.Get(m)
	}
	return windowDTO{
		Scope:    w.Scope.String(),
		Matches:  w.Matches,
		Minutes:  w.Minutes,
		Eligible: w.Eligible,
		Raw:      countersToMap(w.Raw),
		Per90:    per90,
	}
}

func metricPositionToDTO(p usecase.MetricPosition) metricPositionDTO {
	return metricPositionDTO{
		Metric:     p.Metric.String(),
		Scope:      p.Scope.String(),
		Ranked:     p.Ranked,
		Rank:       p.Rank,
		Population: p.Population,
		Value:      p.Value,
	}
}

func metricPositionsToDTO(items []usecase.MetricPosition) []metricPositionDTO {
	out := make([]metricPositionDTO, 0, len(items))
	for _, p := range items {
		out = append(out, metricPositionToDTO(p))
	}
	return out
}

func entryToDTO(e ranking.Entry, name string) boardEntryDTO {
	return boardEntryDTO{
		Rank:     e.Rank,
		EntityID: e.EntityID,
		Name:     name,
		Value:    e.Value,
		Matches:  e.Matches,
		Minutes:  e.Minutes,
		Raw:      e.Raw,
	}
}

func playerStatsToDTO(s usecase.PlayerStats) playerStatsDTO {
	ranks := make([]playerRankDTO, 0, len(s.Ranks))
	for _, r := range s.Ranks {
		ranks = append(ranks, playerRankDTO{
			Context:           r.Context.String(),
			metricPositionDTO: metricPositionToDTO(r.MetricPosition),
			InTop:             r.InTop,
		})
	}
	return playerStatsDTO{
		Player:        playerToDTO(s.Player),
		LeagueID:      s.LeagueID,
		CurrentTeamID: s.CurrentTeamID,
		ContextTeamID: s.ContextTeamID,
		Transferred:   s.Transferred,
		CurrentMatch:  windowToDTO(s.CurrentMatch),
		LastFive:      windowToDTO(s.LastFive),
		Career:        windowToDTO(s.Career),
		Ranks:         ranks,
	}
}

func teamStatsToDTO(s usecase.TeamStats) teamStatsDTO {
	return teamStatsDTO{
		Team:    teamToDTO(s.Team),
		Scope:   s.Scope.String(),
		MatchID: s.MatchID,
		For:     windowToDTO(s.For),
		Against: windowToDTO(s.Against),
		Attack:  metricPositionsToDTO(s.Attack),
		Defense: metricPositionsToDTO(s.Defense),
	}
}

func teamRankingToDTO(r usecase.TeamRanking) teamRankingDTO {
	boards := make([]teamAxisBoardDTO, 0, len(r.Boards))
	for _, b := range r.Boards {
		entries := make([]boardEntryDTO, 0, b.Board.Len())
		for e := range b.Board.Seq() {
			entries = append(entries, entryToDTO(e, ""))
		}
		boards = append(boards, teamAxisBoardDTO{
			Axis:     string(b.Axis),
			Metric:   b.Metric.String(),
			Order:    b.Board.Order.String(),
			Position: metricPositionToDTO(b.Position),
			Entries:  entries,
		})
	}

	totals := make([]teamTotalsDTO, 0, len(r.Totals))
	for _, t := range r.Totals {
		totals = append(totals, teamTotalsDTO{
			TeamID:   t.TeamID,
			Matches:  t.Matches,
			Scored:   countersToMap(t.Scored),
			Conceded: countersToMap(t.Conceded),
		})
	}

	return teamRankingDTO{
		Team:   teamToDTO(r.Team),
		Scope:  r.Scope.String(),
		Boards: boards,
		Totals: totals,
	}
}

func playerLeaderboardToDTO(l usecase.PlayerLeaderboard) leaderboardDTO {
	entries := make([]boardEntryDTO, 0, len(l.Entries))
	for _, e := range l.Entries {
		entries = append(entries, entryToDTO(e.Entry, e.Name))
	}
	return leaderboardDTO{
		LeagueID:   l.LeagueID,
		Scope:      l.Scope.String(),
		Metric:     l.Metric.String(),
		Context:    l.Context.String(),
		Population: l.Population,
		Entries:    entries,
	}
}

func refereeLeaderboardToDTO(l usecase.RefereeLeaderboard) leaderboardDTO {
	entries := make([]boardEntryDTO, 0, len(l.Entries))
	for _, e := range l.Entries {
		entries = append(entries, entryToDTO(e.Entry, e.Name))
	}
	return leaderboardDTO{
		LeagueID:   l.LeagueID,
		Scope:      stats.ScopeCareer.String(),
		Metric:     l.Metric.String(),
		Population: l.Population,
		Entries:    entries,
	}
}

func refereeStatsToDTO(s usecase.RefereeStats) refereeStatsDTO {
	leagues := make([]refereeLeagueDTO, 0, len(s.Leagues))
	for _, l := range s.Leagues {
		metrics := make([]refereeMetricDTO, 0, len(l.Metrics))
		for _, m := range l.Metrics {
			targets := make([]targetDTO, 0, len(m.TopTargets))
			for _, t := range m.TopTargets {
				targets = append(targets, targetDTO{TeamID: t.TeamID, Total: t.Total})
			}
			metrics = append(metrics, refereeMetricDTO{
				metricPositionDTO: metricPositionToDTO(m.MetricPosition),
				Total:             m.Total,
				PerMatch:          m.PerMatch,
				TopTargets:        targets,
			})
		}
		leagues = append(leagues, refereeLeagueDTO{LeagueID: l.LeagueID, Matches: l.Matches, Metrics: metrics})
	}
	return refereeStatsDTO{Referee: refereeToDTO(s.Referee), Leagues: leagues}
}

func scenarioToDTO(s prediction.Scenario) scenarioDTO {
	return scenarioDTO{
		MatchID:           s.MatchID,
		Metric:            s.Metric.String(),
		Weights:           s.Weights,
		Home:              s.Home,
		Away:              s.Away,
		Referee:           s.Referee,
		RefereeFactor:     s.RefereeFactor,
		ReducedConfidence: s.ReducedConfidence,
		Framing:           s.Framing,
	}
}
