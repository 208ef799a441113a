package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, docsEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !docsEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/{teamID}/stats", handler.GetTeamStats)
	mux.HandleFunc("GET /v1/teams/{teamID}/ranking", handler.GetTeamRanking)
	mux.HandleFunc("GET /v1/players/{playerID}/stats", handler.GetPlayerStats)
	mux.HandleFunc("GET /v1/referees/{refereeID}/stats", handler.GetRefereeStats)
}

func registerRankingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players/ranking", handler.ListPlayerRanking)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/referees/ranking", handler.ListRefereeRanking)
}

func registerPredictionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}/prediction", handler.GetMatchPrediction)
	mux.HandleFunc("POST /v1/predictions", handler.ListMatchPredictions)
}
