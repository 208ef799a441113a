package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/football-scout/internal/domain/league"
	"github.com/riskibarqy/football-scout/internal/domain/ranking"
	"github.com/riskibarqy/football-scout/internal/domain/referee"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
)

type RefereeMetricStats struct {
	MetricPosition
	Total      int
	PerMatch   float64
	TopTargets []ranking.Target
}

// RefereeLeagueStats is a referee's record inside one league.
type RefereeLeagueStats struct {
	LeagueID string
	Matches  int
	Metrics  []RefereeMetricStats
}

type RefereeStats struct {
	Referee referee.Referee
	Leagues []RefereeLeagueStats
}

type RefereeLeaderboardEntry struct {
	ranking.Entry
	Name string
}

type RefereeLeaderboard struct {
	LeagueID   string
	Metric     stats.Metric
	Population int
	Entries    []RefereeLeaderboardEntry
}

type RefereeService struct {
	leagueRepo  league.Repository
	refereeRepo referee.Repository
	engine      *RankingEngine
}

func NewRefereeService(leagueRepo league.Repository, refereeRepo referee.Repository, engine *RankingEngine) *RefereeService {
	return &RefereeService{
		leagueRepo:  leagueRepo,
		refereeRepo: refereeRepo,
		engine:      engine,
	}
}

// GetRefereeStats returns per-match disciplinary averages, board positions
// and top targets for every league the referee officiated in.
func (s *RefereeService) GetRefereeStats(ctx context.Context, refereeID string) (RefereeStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefereeService.GetRefereeStats", idAttr("referee_id", refereeID))
	defer span.End()

	refereeID = strings.TrimSpace(refereeID)
	if refereeID == "" {
		return RefereeStats{}, fmt.Errorf("%w: referee id is required", ErrInvalidInput)
	}
	item, exists, err := s.refereeRepo.GetByID(ctx, refereeID)
	if err != nil {
		return RefereeStats{}, fmt.Errorf("get referee: %w", err)
	}
	if !exists {
		return RefereeStats{}, fmt.Errorf("%w: referee=%s", ErrNotFound, refereeID)
	}

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return RefereeStats{}, fmt.Errorf("list leagues: %w", err)
	}

	out := RefereeStats{Referee: item}
	for _, l := range leagues {
		snap, err := s.engine.Snapshot(ctx, l.ID)
		if err != nil {
			return RefereeStats{}, err
		}
		w, ok := snap.Referees[refereeID]
		if !ok || w.Matches == 0 {
			continue
		}

		row := RefereeLeagueStats{LeagueID: l.ID, Matches: w.Matches}
		for _, metric := range ranking.RefereeMetrics {
			b, err := s.engine.RefereeBoard(ctx, l.ID, metric)
			if err != nil {
				return RefereeStats{}, fmt.Errorf("referee board: %w", err)
			}
			row.Metrics = append(row.Metrics, RefereeMetricStats{
				MetricPosition: positionOn(b, refereeID),
				Total:          w.Totals.Get(metric),
				PerMatch:       w.PerMatch(metric),
				TopTargets:     ranking.TopTargets(w, metric, ranking.TopTargetsLimit),
			})
		}
		out.Leagues = append(out.Leagues, row)
	}
	return out, nil
}

// ListLeagueRanking ranks every referee of a league on one metric.
func (s *RefereeService) ListLeagueRanking(ctx context.Context, leagueID string, metric stats.Metric) (RefereeLeaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefereeService.ListLeagueRanking",
		idAttr("league_id", leagueID), idAttr("metric", metric.String()))
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return RefereeLeaderboard{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return RefereeLeaderboard{}, fmt.Errorf("get league: %w", err)
	} else if !exists {
		return RefereeLeaderboard{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	b, err := s.engine.RefereeBoard(ctx, leagueID, metric)
	if err != nil {
		return RefereeLeaderboard{}, fmt.Errorf("referee board: %w", err)
	}
	if b.Population == 0 {
		return RefereeLeaderboard{}, fmt.Errorf("%w: no referees with finished matches in league %s", ErrInsufficientData, leagueID)
	}

	entries := b.Entries()
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.EntityID)
	}
	refs, err := s.refereeRepo.ListByIDs(ctx, ids)
	if err != nil {
		return RefereeLeaderboard{}, fmt.Errorf("list referees: %w", err)
	}
	names := make(map[string]string, len(refs))
	for _, r := range refs {
		names[r.ID] = r.Name
	}

	out := RefereeLeaderboard{
		LeagueID:   leagueID,
		Metric:     metric,
		Population: b.Population,
		Entries:    make([]RefereeLeaderboardEntry, 0, len(entries)),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, RefereeLeaderboardEntry{Entry: e, Name: names[e.EntityID]})
	}
	return out, nil
}
