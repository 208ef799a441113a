package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/football-scout/internal/domain/appearance"
	"github.com/riskibarqy/football-scout/internal/domain/event"
	"github.com/riskibarqy/football-scout/internal/domain/league"
	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/ranking"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
	"github.com/riskibarqy/football-scout/internal/domain/team"
	"github.com/riskibarqy/football-scout/internal/domain/transfer"
)

// PlayerRank is a player's place on one contextual leaderboard.
type PlayerRank struct {
	Context ranking.Context
	MetricPosition
	// InTop is true when the rank falls inside the player leaderboard size.
	InTop bool
}

type PlayerStats struct {
	Player        player.Player
	LeagueID      string
	CurrentTeamID string
	ContextTeamID string
	Transferred   bool
	CurrentMatch  stats.Window
	LastFive      stats.Window
	Career        stats.Window
	Ranks         []PlayerRank
}

type PlayerStatsQuery struct {
	PlayerID string
	// MatchID selects the current-match window; blank means the latest match.
	MatchID string
	// ContextTeamID is the team the player is viewed under. Blank falls back
	// to the player's team in MatchID.
	ContextTeamID string
}

type LeaderboardEntry struct {
	ranking.Entry
	Name string
}

type PlayerLeaderboard struct {
	LeagueID   string
	Scope      stats.Scope
	Metric     stats.Metric
	Context    ranking.Context
	Population int
	Entries    []LeaderboardEntry
}

type PlayerLeaderboardQuery struct {
	LeagueID string
	Scope    stats.Scope
	Metric   stats.Metric
	Context  ranking.Context
	Limit    int
}

type PlayerStatsService struct {
	leagueRepo     league.Repository
	teamRepo       team.Repository
	playerRepo     player.Repository
	matchRepo      match.Repository
	appearanceRepo appearance.Repository
	eventRepo      event.Repository
	engine         *RankingEngine
}

func NewPlayerStatsService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	appearanceRepo appearance.Repository,
	eventRepo event.Repository,
	engine *RankingEngine,
) *PlayerStatsService {
	return &PlayerStatsService{
		leagueRepo:     leagueRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		appearanceRepo: appearanceRepo,
		eventRepo:      eventRepo,
		engine:         engine,
	}
}

// GetPlayerStats returns the player's three windows, the transfer flag and
// every leaderboard position the player holds in the league of the latest
// appearance. A player without appearances gets empty windows, not an error.
func (s *PlayerStatsService) GetPlayerStats(ctx context.Context, q PlayerStatsQuery) (PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.GetPlayerStats", idAttr("player_id", q.PlayerID))
	defer span.End()

	playerID := strings.TrimSpace(q.PlayerID)
	if playerID == "" {
		return PlayerStats{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return PlayerStats{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	matchID := strings.TrimSpace(q.MatchID)
	if matchID != "" {
		if _, exists, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
			return PlayerStats{}, fmt.Errorf("get match: %w", err)
		} else if !exists {
			return PlayerStats{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		}
	}

	apps, err := s.appearanceRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("list player appearances: %w", err)
	}
	samples, err := s.playerSamples(ctx, playerID, apps)
	if err != nil {
		return PlayerStats{}, err
	}

	out := PlayerStats{
		Player:       item,
		CurrentMatch: stats.Build(playerID, stats.ScopeCurrentMatch, samples, matchID),
		LastFive:     stats.Build(playerID, stats.ScopeLastFive, samples, ""),
		Career:       stats.Build(playerID, stats.ScopeCareer, samples, ""),
	}

	current, ok := transfer.CurrentTeam(apps)
	if !ok {
		return out, nil
	}
	out.CurrentTeamID = current
	out.ContextTeamID = contextTeam(apps, strings.TrimSpace(q.ContextTeamID), matchID, current)
	out.Transferred = transfer.Detect(apps, out.ContextTeamID)

	currentTeam, exists, err := s.teamRepo.GetByID(ctx, current)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return out, nil
	}
	out.LeagueID = currentTeam.LeagueID

	latest, _ := appearance.Latest(apps)
	contexts := []ranking.Context{ranking.LeagueContext(), ranking.TeamContext(current)}
	if latest.Position.Valid() {
		contexts = append(contexts, ranking.PositionContext(latest.Position))
	}

	for _, scope := range []stats.Scope{stats.ScopeLastFive, stats.ScopeCareer} {
		for _, rctx := range contexts {
			for _, metric := range stats.Metrics() {
				b, err := s.engine.PlayerBoard(ctx, out.LeagueID, scope, metric, rctx)
				if err != nil {
					return PlayerStats{}, fmt.Errorf("player board: %w", err)
				}
				pos := positionOn(b, playerID)
				if !pos.Ranked {
					continue
				}
				out.Ranks = append(out.Ranks, PlayerRank{
					Context:        rctx,
					MetricPosition: pos,
					InTop:          pos.Rank <= ranking.PlayerLimit,
				})
			}
		}
	}
	return out, nil
}

// ListLeagueRanking returns a player leaderboard, at most ranking.PlayerLimit
// entries long.
func (s *PlayerStatsService) ListLeagueRanking(ctx context.Context, q PlayerLeaderboardQuery) (PlayerLeaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.ListLeagueRanking",
		idAttr("league_id", q.LeagueID), idAttr("metric", q.Metric.String()))
	defer span.End()

	leagueID := strings.TrimSpace(q.LeagueID)
	if leagueID == "" {
		return PlayerLeaderboard{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if q.Limit < 0 {
		return PlayerLeaderboard{}, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}
	limit := q.Limit
	if limit == 0 || limit > ranking.PlayerLimit {
		limit = ranking.PlayerLimit
	}

	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return PlayerLeaderboard{}, fmt.Errorf("get league: %w", err)
	} else if !exists {
		return PlayerLeaderboard{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if q.Context.Kind == ranking.ContextTeam {
		t, exists, err := s.teamRepo.GetByID(ctx, q.Context.TeamID)
		if err != nil {
			return PlayerLeaderboard{}, fmt.Errorf("get team: %w", err)
		}
		if !exists || t.LeagueID != leagueID {
			return PlayerLeaderboard{}, fmt.Errorf("%w: team=%s league=%s", ErrNotFound, q.Context.TeamID, leagueID)
		}
	}

	b, err := s.engine.PlayerBoard(ctx, leagueID, q.Scope, q.Metric, q.Context)
	if err != nil {
		return PlayerLeaderboard{}, fmt.Errorf("player board: %w", err)
	}
	if b.Population == 0 {
		return PlayerLeaderboard{}, fmt.Errorf("%w: no eligible players for %s %s in %s", ErrInsufficientData, q.Scope, q.Metric, q.Context)
	}

	top := b.Top(limit)
	ids := make([]string, 0, len(top))
	for _, e := range top {
		ids = append(ids, e.EntityID)
	}
	players, err := s.playerRepo.ListByIDs(ctx, ids)
	if err != nil {
		return PlayerLeaderboard{}, fmt.Errorf("list players: %w", err)
	}
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}

	out := PlayerLeaderboard{
		LeagueID:   leagueID,
		Scope:      q.Scope,
		Metric:     q.Metric,
		Context:    q.Context,
		Population: b.Population,
		Entries:    make([]LeaderboardEntry, 0, len(top)),
	}
	for _, e := range top {
		out.Entries = append(out.Entries, LeaderboardEntry{Entry: e, Name: names[e.EntityID]})
	}
	return out, nil
}

func (s *PlayerStatsService) playerSamples(ctx context.Context, playerID string, apps []appearance.Appearance) ([]stats.Sample, error) {
	if len(apps) == 0 {
		return nil, nil
	}
	matchIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		matchIDs = append(matchIDs, a.MatchID)
	}

	shots, err := s.eventRepo.ListShotsByMatches(ctx, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("list shots: %w", err)
	}
	cards, err := s.eventRepo.ListCardsByMatches(ctx, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return stats.PlayerSamples(apps, shots, cards)[playerID], nil
}

// contextTeam resolves the team a player is viewed under: the explicit
// team, else the team in the requested match, else the current team.
func contextTeam(apps []appearance.Appearance, explicit, matchID, current string) string {
	if explicit != "" {
		return explicit
	}
	if matchID != "" {
		for _, a := range apps {
			if a.MatchID == matchID {
				return a.TeamID
			}
		}
	}
	return current
}
