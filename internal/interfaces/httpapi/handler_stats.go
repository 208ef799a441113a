package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/football-scout/internal/usecase"
)

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetTeamStats")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	q := teamStatsQuery{Scope: queryValue(r, "scope"), MatchID: queryValue(r, "match_id")}
	if err := h.validateRequest(ctx, q); err != nil {
		writeError(ctx, w, err)
		return
	}
	scope, err := parseScopeParam(q.Scope)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamStats.GetTeamStats(ctx, teamID, scope, q.MatchID)
	if err != nil {
		h.logFailure(ctx, "get team stats failed", err, "team_id", teamID, "scope", scope.String())
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamStatsToDTO(item))
}

func (h *Handler) GetTeamRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetTeamRanking")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	item, err := h.teamStats.GetTeamRanking(ctx, teamID)
	if err != nil {
		h.logFailure(ctx, "get team ranking failed", err, "team_id", teamID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamRankingToDTO(item))
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetPlayerStats")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	q := playerStatsQuery{MatchID: queryValue(r, "match_id"), TeamID: queryValue(r, "team_id")}
	if err := h.validateRequest(ctx, q); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerStats.GetPlayerStats(ctx, usecase.PlayerStatsQuery{
		PlayerID:      playerID,
		MatchID:       q.MatchID,
		ContextTeamID: q.TeamID,
	})
	if err != nil {
		h.logFailure(ctx, "get player stats failed", err, "player_id", playerID, "match_id", q.MatchID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerStatsToDTO(item))
}

func (h *Handler) GetRefereeStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetRefereeStats")
	defer span.End()

	refereeID := strings.TrimSpace(r.PathValue("refereeID"))
	item, err := h.referees.GetRefereeStats(ctx, refereeID)
	if err != nil {
		h.logFailure(ctx, "get referee stats failed", err, "referee_id", refereeID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, refereeStatsToDTO(item))
}
