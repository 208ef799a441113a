package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/prediction"
	"github.com/riskibarqy/football-scout/internal/domain/ranking"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
	"github.com/riskibarqy/football-scout/internal/platform/logging"
)

const (
	// MaxPredictionBatch bounds one gameweek request.
	MaxPredictionBatch   = 50
	predictionBatchLimit = 4
)

// PredictionObserver is told about every computed scenario.
type PredictionObserver interface {
	ObservePrediction(metric string, reducedConfidence bool)
}

// MatchPrediction is one batch slot. Err is set instead of Scenario when the
// match could not be scored.
type MatchPrediction struct {
	MatchID  string
	Scenario prediction.Scenario
	Err      error
}

type PredictionService struct {
	matchRepo match.Repository
	engine    *RankingEngine
	weights   prediction.Weights
	observer  PredictionObserver
	logger    *logging.Logger
}

func NewPredictionService(
	matchRepo match.Repository,
	engine *RankingEngine,
	weights prediction.Weights,
	observer PredictionObserver,
	logger *logging.Logger,
) (*PredictionService, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		matchRepo: matchRepo,
		engine:    engine,
		weights:   weights,
		observer:  observer,
		logger:    logger,
	}, nil
}

// GetMatchPrediction scores both sides of a match from career attack and
// defense boards and the referee board matching metric. A referee without a
// ranked position drops the referee term and flags reduced confidence.
func (s *PredictionService) GetMatchPrediction(ctx context.Context, matchID string, metric stats.Metric) (prediction.Scenario, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.GetMatchPrediction", idAttr("match_id", matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return prediction.Scenario{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if !metric.Valid() {
		return prediction.Scenario{}, fmt.Errorf("%w: unsupported metric %s", ErrInvalidScope, metric)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return prediction.Scenario{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return prediction.Scenario{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	attack, err := s.engine.TeamBoard(ctx, m.LeagueID, stats.ScopeCareer, metric, TeamAxisAttack)
	if err != nil {
		return prediction.Scenario{}, fmt.Errorf("team attack board: %w", err)
	}
	defense, err := s.engine.TeamBoard(ctx, m.LeagueID, stats.ScopeCareer, metric, TeamAxisDefense)
	if err != nil {
		return prediction.Scenario{}, fmt.Errorf("team defense board: %w", err)
	}

	in := prediction.Inputs{
		MatchID:     m.ID,
		Metric:      metric,
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  m.AwayTeamID,
		HomeAttack:  prediction.PositionOn(attack, m.HomeTeamID),
		HomeDefense: prediction.PositionOn(defense, m.HomeTeamID),
		AwayAttack:  prediction.PositionOn(attack, m.AwayTeamID),
		AwayDefense: prediction.PositionOn(defense, m.AwayTeamID),
	}
	if m.HasReferee() {
		refBoard, err := s.engine.RefereeBoard(ctx, m.LeagueID, ranking.RefereeAxis(metric))
		if err != nil {
			return prediction.Scenario{}, fmt.Errorf("referee board: %w", err)
		}
		in.Referee = prediction.PositionOn(refBoard, m.RefereeID)
	}

	scenario, err := prediction.PredictWithFallback(in, s.weights)
	if err != nil {
		return prediction.Scenario{}, fmt.Errorf("predict match %s: %w", m.ID, err)
	}
	if scenario.ReducedConfidence {
		s.logger.InfoContext(ctx, "prediction without referee signal",
			"match_id", m.ID,
			"referee_id", m.RefereeID,
			"metric", metric.String(),
		)
	}
	if s.observer != nil {
		s.observer.ObservePrediction(metric.String(), scenario.ReducedConfidence)
	}
	return scenario, nil
}

// ListMatchPredictions scores a set of matches, typically one gameweek.
// Per-match failures are reported in their slot; only input errors fail the
// whole call.
func (s *PredictionService) ListMatchPredictions(ctx context.Context, matchIDs []string, metric stats.Metric) ([]MatchPrediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListMatchPredictions")
	defer span.End()

	if len(matchIDs) == 0 {
		return nil, fmt.Errorf("%w: match ids are required", ErrInvalidInput)
	}
	if len(matchIDs) > MaxPredictionBatch {
		return nil, fmt.Errorf("%w: at most %d match ids per request", ErrInvalidInput, MaxPredictionBatch)
	}
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: unsupported metric %s", ErrInvalidScope, metric)
	}

	out := make([]MatchPrediction, len(matchIDs))
	var g errgroup.Group
	g.SetLimit(predictionBatchLimit)
	for i, id := range matchIDs {
		g.Go(func() error {
			scenario, err := s.GetMatchPrediction(ctx, id, metric)
			out[i] = MatchPrediction{MatchID: strings.TrimSpace(id), Scenario: scenario, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}
