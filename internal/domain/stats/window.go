package stats

import (
	"slices"
	"time"

	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/player"
)

// MatchMinutes is the length credited to a team for every match it plays.
const MatchMinutes = 90

// Sample is the contribution of one appearance to an entity's windows.
type Sample struct {
	MatchID   string
	KickoffAt time.Time
	TeamID    string
	Position  player.Position
	Minutes   int
	Counters  Counters
}

func compareSamples(a, b Sample) int {
	return match.Compare(a.KickoffAt, a.MatchID, b.KickoffAt, b.MatchID)
}

// SortSamples sorts samples in place, oldest first.
func SortSamples(samples []Sample) {
	slices.SortStableFunc(samples, compareSamples)
}

// Window is the derived statistics of one entity over one scope.
type Window struct {
	EntityID string
	Scope    Scope
	// Matches is PJ: the number of samples aggregated.
	Matches  int
	Minutes  int
	Raw      Counters
	Per90    Rates
	Eligible bool
}

func (w Window) Value(m Metric) float64 {
	return w.Per90.Get(m)
}

// Aggregate sums the samples that fall into scope. samples must be
// chronological. matchID selects the current-match sample; blank means the
// most recent one.
func Aggregate(entityID string, scope Scope, samples []Sample, matchID string) Window {
	w := Window{EntityID: entityID, Scope: scope}
	policy, ok := scope.Policy()
	if !ok {
		return w
	}

	var selected []Sample
	switch {
	case scope == ScopeCurrentMatch:
		selected = currentMatchSample(samples, matchID)
	case policy.MatchLimit > 0 && len(samples) > policy.MatchLimit:
		selected = samples[len(samples)-policy.MatchLimit:]
	default:
		selected = samples
	}

	for _, s := range selected {
		w.Matches++
		w.Minutes += s.Minutes
		w.Raw.Add(s.Counters)
	}

	return w
}

func currentMatchSample(samples []Sample, matchID string) []Sample {
	if len(samples) == 0 {
		return nil
	}
	if matchID == "" {
		return samples[len(samples)-1:]
	}
	for i := len(samples) - 1; i >= 0; i-- {
		if samples[i].MatchID == matchID {
			return samples[i : i+1]
		}
	}
	return nil
}

// Normalize derives per-90 values from the raw counters and applies the
// scope's eligibility floor. It always starts from Raw, so applying it twice
// gives the same window.
func Normalize(w Window) Window {
	out := w
	out.Per90 = Rates{}
	out.Eligible = false
	if w.Minutes <= 0 {
		return out
	}

	minutes := float64(w.Minutes)
	for i, v := range w.Raw {
		out.Per90[i] = float64(v) * 90 / minutes
	}
	if policy, ok := w.Scope.Policy(); ok {
		out.Eligible = policy.Eligible(w.Minutes)
	}

	return out
}

// Build aggregates and normalizes in one step.
func Build(entityID string, scope Scope, samples []Sample, matchID string) Window {
	return Normalize(Aggregate(entityID, scope, samples, matchID))
}

// Filter returns the samples keep accepts, preserving order.
func Filter(samples []Sample, keep func(Sample) bool) []Sample {
	out := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
