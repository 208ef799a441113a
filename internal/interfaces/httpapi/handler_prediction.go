package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/football-scout/internal/usecase"
)

func (h *Handler) GetMatchPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetMatchPrediction")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
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

	scenario, err := h.predictions.GetMatchPrediction(ctx, matchID, metric)
	if err != nil {
		h.logFailure(ctx, "get match prediction failed", err, "match_id", matchID, "metric", metric.String())
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scenarioToDTO(scenario))
}

// ListMatchPredictions scores a set of matches, typically one gameweek.
// Matches that cannot be scored carry an error item instead of failing the
// whole request.
func (h *Handler) ListMatchPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListMatchPredictions")
	defer span.End()

	var req batchPredictionRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	metric, err := parseMetricParam(strings.TrimSpace(req.Metric))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.predictions.ListMatchPredictions(ctx, req.MatchIDs, metric)
	if err != nil {
		h.logFailure(ctx, "list match predictions failed", err, "matches", len(req.MatchIDs))
		writeError(ctx, w, err)
		return
	}

	items := make([]batchPredictionItemDTO, 0, len(results))
	for _, res := range results {
		item := batchPredictionItemDTO{MatchID: res.MatchID}
		if res.Err != nil {
			mapped := mapError(res.Err)
			errItem := errorItem(mapped, publicMessage(res.Err, mapped))
			item.Error = &errItem
		} else {
			scenario := scenarioToDTO(res.Scenario)
			item.Prediction = &scenario
		}
		items = append(items, item)
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
