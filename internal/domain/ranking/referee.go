package ranking

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
)

// TopTargetsLimit is how many teams a referee profile lists per metric.
const TopTargetsLimit = 5

// RefereeMetrics are the metrics a referee is measured on.
var RefereeMetrics = []stats.Metric{stats.MetricCards, stats.MetricFoulsCommitted, stats.MetricFoulsReceived}

// RefereeAxis maps a prediction metric onto the referee board that scores it.
func RefereeAxis(m stats.Metric) stats.Metric {
	switch m {
	case stats.MetricFoulsCommitted, stats.MetricFoulsReceived:
		return stats.MetricFoulsCommitted
	default:
		return stats.MetricCards
	}
}

// RefereeWindow is everything produced in the finished matches one referee
// officiated.
type RefereeWindow struct {
	RefereeID string
	Matches   int
	Totals    stats.Counters
	ByTeam    map[string]stats.Counters
}

func (w RefereeWindow) PerMatch(m stats.Metric) float64 {
	if w.Matches == 0 {
		return 0
	}
	return float64(w.Totals.Get(m)) / float64(w.Matches)
}

// BuildRefereeWindows folds team "for" samples into per-referee totals.
// Matches without a referee are skipped.
func BuildRefereeWindows(matches []match.Match, teams map[string]stats.TeamSamples) map[string]RefereeWindow {
	refereeOf := make(map[string]string, len(matches))
	out := make(map[string]RefereeWindow)
	for _, m := range matches {
		if !m.Finished || !m.HasReferee() {
			continue
		}
		refereeOf[m.ID] = m.RefereeID
		w := out[m.RefereeID]
		w.RefereeID = m.RefereeID
		w.Matches++
		if w.ByTeam == nil {
			w.ByTeam = make(map[string]stats.Counters)
		}
		out[m.RefereeID] = w
	}

	for teamID, ts := range teams {
		for _, s := range ts.For {
			refID, ok := refereeOf[s.MatchID]
			if !ok {
				continue
			}
			w := out[refID]
			w.Totals.Add(s.Counters)
			byTeam := w.ByTeam[teamID]
			byTeam.Add(s.Counters)
			w.ByTeam[teamID] = byTeam
			out[refID] = w
		}
	}
	return out
}

// RankReferees orders referees by per-match average, then by matches
// officiated, then by id. Referees without matches are left out.
func RankReferees(windows []RefereeWindow, metric stats.Metric, opts Options) (Board, error) {
	if !metric.Valid() {
		return Board{}, fmt.Errorf("%w: unsupported metric %s", stats.ErrInvalidScope, metric)
	}

	entries := make([]Entry, 0, len(windows))
	for _, w := range windows {
		if w.Matches == 0 {
			continue
		}
		entries = append(entries, Entry{
			EntityID: w.RefereeID,
			Value:    w.PerMatch(metric),
			Matches:  w.Matches,
			Minutes:  w.Matches * stats.MatchMinutes,
			Raw:      w.Totals.Get(metric),
		})
	}

	return finish(Board{Scope: stats.ScopeCareer, Metric: metric, Order: opts.Order}, entries, opts, func(e Entry) int { return e.Matches }), nil
}

// Target is a team that piled up a metric under one referee.
type Target struct {
	TeamID string
	Total  int
}

// TopTargets lists the teams with the largest totals for metric in the
// referee's matches. Teams with nothing recorded are left out.
func TopTargets(w RefereeWindow, metric stats.Metric, limit int) []Target {
	out := make([]Target, 0, len(w.ByTeam))
	for teamID, c := range w.ByTeam {
		if total := c.Get(metric); total > 0 {
			out = append(out, Target{TeamID: teamID, Total: total})
		}
	}
	slices.SortFunc(out, func(a, b Target) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.TeamID, b.TeamID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
