package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/ranking"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
	"github.com/riskibarqy/football-scout/internal/domain/team"
)

// MetricPosition is where an entity sits on one board. Ranked is false
// when the entity did not clear the board's minutes floor.
type MetricPosition struct {
	Metric     stats.Metric
	Scope      stats.Scope
	Ranked     bool
	Rank       int
	Population int
	Value      float64
}

func positionOn(b ranking.Board, entityID string) MetricPosition {
	out := MetricPosition{Metric: b.Metric, Scope: b.Scope, Population: b.Population}
	if e, ok := b.Position(entityID); ok {
		out.Ranked = true
		out.Rank = e.Rank
		out.Value = e.Value
	}
	return out
}

type TeamStats struct {
	Team    team.Team
	Scope   stats.Scope
	MatchID string
	// For holds what the team produced, Against what its opponents produced.
	For     stats.Window
	Against stats.Window
	Attack  []MetricPosition
	Defense []MetricPosition
}

type TeamAxisBoard struct {
	Axis     TeamAxis
	Metric   stats.Metric
	Board    ranking.Board
	Position MetricPosition
}

type TeamTotals struct {
	TeamID   string
	Matches  int
	Scored   stats.Counters
	Conceded stats.Counters
}

type TeamRanking struct {
	Team   team.Team
	Scope  stats.Scope
	Boards []TeamAxisBoard
	Totals []TeamTotals
}

type TeamStatsService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	engine    *RankingEngine
}

func NewTeamStatsService(teamRepo team.Repository, matchRepo match.Repository, engine *RankingEngine) *TeamStatsService {
	return &TeamStatsService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		engine:    engine,
	}
}

// GetTeamStats aggregates the team's for/against windows in scope. Ranked
// scopes also carry the team's position on every attack and defense board.
func (s *TeamStatsService) GetTeamStats(ctx context.Context, teamID string, scope stats.Scope, matchID string) (TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamStatsService.GetTeamStats", idAttr("team_id", teamID))
	defer span.End()

	if !scope.Valid() {
		return TeamStats{}, fmt.Errorf("%w: unsupported scope %s", ErrInvalidScope, scope)
	}
	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return TeamStats{}, err
	}

	matchID = strings.TrimSpace(matchID)
	if matchID != "" {
		if scope != stats.ScopeCurrentMatch {
			return TeamStats{}, fmt.Errorf("%w: match id only applies to the current-match scope", ErrInvalidInput)
		}
		m, exists, err := s.matchRepo.GetByID(ctx, matchID)
		if err != nil {
			return TeamStats{}, fmt.Errorf("get match: %w", err)
		}
		if !exists {
			return TeamStats{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		}
		if !m.Involves(item.ID) {
			return TeamStats{}, fmt.Errorf("%w: team %s did not play match %s", ErrInvalidInput, item.ID, matchID)
		}
	}

	snap, err := s.engine.Snapshot(ctx, item.LeagueID)
	if err != nil {
		return TeamStats{}, err
	}
	samples := snap.Teams[item.ID]
	out := TeamStats{
		Team:    item,
		Scope:   scope,
		MatchID: matchID,
		For:     stats.Build(item.ID, scope, samples.For, matchID),
		Against: stats.Build(item.ID, scope, samples.Against, matchID),
	}
	if policy, _ := scope.Policy(); !policy.Ranked {
		return out, nil
	}

	for _, metric := range stats.Metrics() {
		attack, err := s.engine.TeamBoard(ctx, item.LeagueID, scope, metric, TeamAxisAttack)
		if err != nil {
			return TeamStats{}, fmt.Errorf("team attack board: %w", err)
		}
		defense, err := s.engine.TeamBoard(ctx, item.LeagueID, scope, metric, TeamAxisDefense)
		if err != nil {
			return TeamStats{}, fmt.Errorf("team defense board: %w", err)
		}
		out.Attack = append(out.Attack, positionOn(attack, item.ID))
		out.Defense = append(out.Defense, positionOn(defense, item.ID))
	}
	return out, nil
}

// GetTeamRanking returns every attack and defense board of the team's
// league over the career scope, plus raw totals scored and conceded.
func (s *TeamStatsService) GetTeamRanking(ctx context.Context, teamID string) (TeamRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamStatsService.GetTeamRanking", idAttr("team_id", teamID))
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return TeamRanking{}, err
	}

	out := TeamRanking{Team: item, Scope: stats.ScopeCareer}
	for _, axis := range []TeamAxis{TeamAxisAttack, TeamAxisDefense} {
		for _, metric := range stats.Metrics() {
			b, err := s.engine.TeamBoard(ctx, item.LeagueID, stats.ScopeCareer, metric, axis)
			if err != nil {
				return TeamRanking{}, fmt.Errorf("team %s board: %w", axis, err)
			}
			if b.Population == 0 {
				return TeamRanking{}, fmt.Errorf("%w: no ranked teams in league %s", ErrInsufficientData, item.LeagueID)
			}
			out.Boards = append(out.Boards, TeamAxisBoard{
				Axis:     axis,
				Metric:   metric,
				Board:    b,
				Position: positionOn(b, item.ID),
			})
		}
	}

	snap, err := s.engine.Snapshot(ctx, item.LeagueID)
	if err != nil {
		return TeamRanking{}, err
	}
	for id, ts := range snap.Teams {
		scored := stats.Aggregate(id, stats.ScopeCareer, ts.For, "")
		conceded := stats.Aggregate(id, stats.ScopeCareer, ts.Against, "")
		out.Totals = append(out.Totals, TeamTotals{
			TeamID:   id,
			Matches:  scored.Matches,
			Scored:   scored.Raw,
			Conceded: conceded.Raw,
		})
	}
	slices.SortFunc(out.Totals, func(a, b TeamTotals) int { return strings.Compare(a.TeamID, b.TeamID) })

	return out, nil
}

func (s *TeamStatsService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}
