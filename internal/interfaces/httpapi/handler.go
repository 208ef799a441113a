package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/football-scout/internal/domain/ranking"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
	"github.com/riskibarqy/football-scout/internal/platform/logging"
	"github.com/riskibarqy/football-scout/internal/usecase"
)

const (
	defaultScope  = stats.ScopeCareer
	defaultMetric = stats.MetricShots
)

type Handler struct {
	teamStats   *usecase.TeamStatsService
	playerStats *usecase.PlayerStatsService
	referees    *usecase.RefereeService
	predictions *usecase.PredictionService
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(
	teamStats *usecase.TeamStatsService,
	playerStats *usecase.PlayerStatsService,
	referees *usecase.RefereeService,
	predictions *usecase.PredictionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamStats:   teamStats,
		playerStats: playerStats,
		referees:    referees,
		predictions: predictions,
		logger:      logger,
		validator:   validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// logFailure keeps client errors at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(err).HTTPStatus < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg, args...)
		return
	}
	h.logger.ErrorContext(ctx, msg, args...)
}

type teamStatsQuery struct {
	Scope   string `validate:"omitempty,max=32"`
	MatchID string `validate:"omitempty,max=128"`
}

type playerStatsQuery struct {
	MatchID string `validate:"omitempty,max=128"`
	TeamID  string `validate:"omitempty,max=128"`
}

type playerRankingQuery struct {
	Scope    string `validate:"omitempty,max=32"`
	Metric   string `validate:"omitempty,max=32"`
	TeamID   string `validate:"omitempty,max=128"`
	Position string `validate:"omitempty,max=16"`
	Limit    int    `validate:"gte=0"`
}

type metricQuery struct {
	Metric string `validate:"omitempty,max=32"`
}

type batchPredictionRequest struct {
	MatchIDs []string `json:"match_ids" validate:"required,min=1,max=50,dive,required,max=128"`
	Metric   string   `json:"metric" validate:"omitempty,max=32"`
}

func queryValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := queryValue(r, key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func parseScopeParam(v string) (stats.Scope, error) {
	if v == "" {
		return defaultScope, nil
	}
	return stats.ParseScope(v)
}

func parseMetricParam(v string) (stats.Metric, error) {
	if v == "" {
		return defaultMetric, nil
	}
	return stats.ParseMetric(v)
}

func parseContextParam(teamID, position string) (ranking.Context, error) {
	return ranking.ParseContext(teamID, position)
}
