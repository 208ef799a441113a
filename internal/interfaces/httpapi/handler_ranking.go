package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/football-scout/internal/usecase"
)

func (h *Handler) ListPlayerRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListPlayerRanking")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	q := playerRankingQuery{
		Scope:    queryValue(r, "scope"),
		Metric:   queryValue(r, "metric"),
		TeamID:   queryValue(r, "team_id"),
		Position: queryValue(r, "position"),
		Limit:    limit,
	}
	if err := h.validateRequest(ctx, q); err != nil {
		writeError(ctx, w, err)
		return
	}

	scope, err := parseScopeParam(q.Scope)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	metric, err := parseMetricParam(q.Metric)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	rctx, err := parseContextParam(q.TeamID, q.Position)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.playerStats.ListLeagueRanking(ctx, usecase.PlayerLeaderboardQuery{
		LeagueID: leagueID,
		Scope:    scope,
		Metric:   metric,
		Context:  rctx,
		Limit:    q.Limit,
	})
	if err != nil {
		h.logFailure(ctx, "list player ranking failed", err,
			"league_id", leagueID,
			"scope", scope.String(),
			"metric", metric.String(),
			"context", rctx.String(),
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerLeaderboardToDTO(board))
}

func (h *Handler) ListRefereeRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListRefereeRanking")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	q := metricQuery{Metric: queryValue(r, "metric")}
	if err := h.validateRequest(ctx, q); err != nil {
		writeError(ctx, w, err)
		return
	}
	metric, err := parseMetricParam(q.Metric)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.referees.ListLeagueRanking(ctx, leagueID, metric)
	if err != nil {
		h.logFailure(ctx, "list referee ranking failed", err, "league_id", leagueID, "metric", metric.String())
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, refereeLeaderboardToDTO(board))
}
