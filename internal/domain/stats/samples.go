package stats

import (
	"github.com/riskibarqy/football-scout/internal/domain/appearance"
	"github.com/riskibarqy/football-scout/internal/domain/event"
	"github.com/riskibarqy/football-scout/internal/domain/match"
)

type sampleKey struct {
	matchID  string
	entityID string
}

// ShotCounters is the contribution of one shot.
func ShotCounters(s event.Shot) Counters {
	var c Counters
	c[MetricShots] = 1
	if s.OnTarget {
		c[MetricShotsOnTarget] = 1
	}
	if !s.InsideBox {
		c[MetricLongShots] = 1
	}
	if s.Header {
		c[MetricHeaders] = 1
	}
	if s.IsGoal() {
		c[MetricGoals] = 1
	}
	return c
}

// PlayerSamples groups per-appearance samples by player id. Shots and cards
// only count when the player has an appearance in the same match.
func PlayerSamples(apps []appearance.Appearance, shots []event.Shot, cards []event.Card) map[string][]Sample {
	index := make(map[sampleKey]int, len(apps))
	flat := make([]Sample, 0, len(apps))
	for _, a := range apps {
		key := sampleKey{matchID: a.MatchID, entityID: a.PlayerID}
		if _, dup := index[key]; dup {
			continue
		}
		s := Sample{
			MatchID:   a.MatchID,
			KickoffAt: a.KickoffAt,
			TeamID:    a.TeamID,
			Position:  a.Position,
			Minutes:   a.Minutes,
		}
		s.Counters[MetricFoulsCommitted] = a.FoulsCommitted
		s.Counters[MetricFoulsReceived] = a.FoulsReceived
		index[key] = len(flat)
		flat = append(flat, s)
	}

	for _, shot := range shots {
		i, ok := index[sampleKey{matchID: shot.MatchID, entityID: shot.PlayerID}]
		if !ok {
			continue
		}
		flat[i].Counters.Add(ShotCounters(shot))
	}
	for _, card := range cards {
		i, ok := index[sampleKey{matchID: card.MatchID, entityID: card.PlayerID}]
		if !ok {
			continue
		}
		flat[i].Counters[MetricCards]++
	}

	out := make(map[string][]Sample)
	for key, i := range index {
		out[key.entityID] = append(out[key.entityID], flat[i])
	}
	for id := range out {
		SortSamples(out[id])
	}
	return out
}

// TeamSamples is the pair of sample streams kept for a team.
type TeamSamples struct {
	// For holds what the team produced.
	For []Sample
	// Against holds what its opponents produced in the same matches.
	Against []Sample
}

// BuildTeamSamples derives per-team samples from finished matches. Every
// match is credited as MatchMinutes to both sides.
func BuildTeamSamples(matches []match.Match, apps []appearance.Appearance, shots []event.Shot, cards []event.Card) map[string]TeamSamples {
	produced := make(map[sampleKey]*Counters, len(matches)*2)
	for _, m := range matches {
		if !m.Finished {
			continue
		}
		produced[sampleKey{matchID: m.ID, entityID: m.HomeTeamID}] = &Counters{}
		produced[sampleKey{matchID: m.ID, entityID: m.AwayTeamID}] = &Counters{}
	}

	for _, a := range apps {
		c, ok := produced[sampleKey{matchID: a.MatchID, entityID: a.TeamID}]
		if !ok {
			continue
		}
		c[MetricFoulsCommitted] += a.FoulsCommitted
		c[MetricFoulsReceived] += a.FoulsReceived
	}
	for _, shot := range shots {
		if c, ok := produced[sampleKey{matchID: shot.MatchID, entityID: shot.TeamID}]; ok {
			c.Add(ShotCounters(shot))
		}
	}
	for _, card := range cards {
		if c, ok := produced[sampleKey{matchID: card.MatchID, entityID: card.TeamID}]; ok {
			c[MetricCards]++
		}
	}

	out := make(map[string]TeamSamples)
	for _, m := range matches {
		if !m.Finished {
			continue
		}
		home := *produced[sampleKey{matchID: m.ID, entityID: m.HomeTeamID}]
		away := *produced[sampleKey{matchID: m.ID, entityID: m.AwayTeamID}]
		addTeamSample(out, m, m.HomeTeamID, home, away)
		addTeamSample(out, m, m.AwayTeamID, away, home)
	}
	for id, ts := range out {
		SortSamples(ts.For)
		SortSamples(ts.Against)
		out[id] = ts
	}
	return out
}

func addTeamSample(out map[string]TeamSamples, m match.Match, teamID string, forCounters, againstCounters Counters) {
	base := Sample{MatchID: m.ID, KickoffAt: m.KickoffAt, TeamID: teamID, Minutes: MatchMinutes}
	ts := out[teamID]
	f := base
	f.Counters = forCounters
	a := base
	a.Counters = againstCounters
	ts.For = append(ts.For, f)
	ts.Against = append(ts.Against, a)
	out[teamID] = ts
}
