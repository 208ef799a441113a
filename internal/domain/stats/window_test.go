package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kickoff = time.Date(2025, 2, 1, 21, 0, 0, 0, time.UTC)

func samplesOf(minutes ...int) []Sample {
	out := make([]Sample, 0, len(minutes))
	for i, m := range minutes {
		s := Sample{
			MatchID:   fmt.Sprintf("m%02d", i+1),
			KickoffAt: kickoff.AddDate(0, 0, 7*i),
			TeamID:    "boca",
			Minutes:   m,
		}
		s.Counters[MetricShots] = i + 1
		out = append(out, s)
	}
	return out
}

func TestAggregate_Windows(t *testing.T) {
	t.Parallel()

	samples := samplesOf(90, 90, 90, 90, 90, 90, 45)

	career := Aggregate("p1", ScopeCareer, samples, "")
	assert.Equal(t, 7, career.Matches)
	assert.Equal(t, 585, career.Minutes)
	assert.Equal(t, 28, career.Raw.Get(MetricShots))

	last5 := Aggregate("p1", ScopeLastFive, samples, "")
	assert.Equal(t, 5, last5.Matches)
	assert.Equal(t, 405, last5.Minutes)
	assert.Equal(t, 3+4+5+6+7, last5.Raw.Get(MetricShots))

	latest := Aggregate("p1", ScopeCurrentMatch, samples, "")
	assert.Equal(t, 1, latest.Matches)
	assert.Equal(t, 45, latest.Minutes)
	assert.Equal(t, 7, latest.Raw.Get(MetricShots))

	picked := Aggregate("p1", ScopeCurrentMatch, samples, "m02")
	assert.Equal(t, 1, picked.Matches)
	assert.Equal(t, 2, picked.Raw.Get(MetricShots))

	missing := Aggregate("p1", ScopeCurrentMatch, samples, "m99")
	assert.Zero(t, missing.Matches)
	assert.Zero(t, missing.Minutes)
}

func TestAggregate_NoSamples(t *testing.T) {
	t.Parallel()

	for _, scope := range Scopes() {
		w := Build("p1", scope, nil, "")
		assert.Zero(t, w.Matches, scope.String())
		assert.False(t, w.Eligible, scope.String())
		assert.Equal(t, Rates{}, w.Per90, scope.String())
	}
}

func TestNormalize_Per90(t *testing.T) {
	t.Parallel()

	w := Window{EntityID: "p1", Scope: ScopeCareer, Matches: 4, Minutes: 360}
	w.Raw[MetricShots] = 12
	w.Raw[MetricGoals] = 2

	got := Normalize(w)
	assert.InDelta(t, 3.0, got.Per90.Get(MetricShots), 1e-9)
	assert.InDelta(t, 0.5, got.Per90.Get(MetricGoals), 1e-9)
	assert.True(t, got.Eligible)
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	w := Aggregate("p1", ScopeLastFive, samplesOf(90, 67, 12, 90, 81), "")
	once := Normalize(w)
	twice := Normalize(once)
	require.Equal(t, once, twice)
}

func TestNormalize_ZeroMinutes(t *testing.T) {
	t.Parallel()

	for _, scope := range Scopes() {
		w := Window{EntityID: "p1", Scope: scope, Matches: 1}
		w.Raw[MetricCards] = 1
		got := Normalize(w)
		assert.Zero(t, got.Per90.Get(MetricCards), scope.String())
		assert.False(t, got.Eligible, scope.String())
	}
}

func TestNormalize_MinutesFloors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scope   Scope
		minutes int
		want    bool
	}{
		{scope: ScopeCareer, minutes: 300, want: false},
		{scope: ScopeCareer, minutes: 301, want: true},
		{scope: ScopeLastFive, minutes: 150, want: false},
		{scope: ScopeLastFive, minutes: 151, want: true},
		{scope: ScopeCurrentMatch, minutes: 1, want: true},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s/%d", tc.scope, tc.minutes), func(t *testing.T) {
			t.Parallel()
			got := Normalize(Window{EntityID: "p1", Scope: tc.scope, Matches: 2, Minutes: tc.minutes})
			assert.Equal(t, tc.want, got.Eligible)
		})
	}
}

func TestParseScope(t *testing.T) {
	t.Parallel()

	got, err := ParseScope(" Last5 ")
	require.NoError(t, err)
	assert.Equal(t, ScopeLastFive, got)

	got, err = ParseScope("league")
	require.NoError(t, err)
	assert.Equal(t, ScopeCareer, got)

	_, err = ParseScope("season")
	require.ErrorIs(t, err, ErrInvalidScope)
}

func TestParseMetric(t *testing.T) {
	t.Parallel()

	for _, m := range Metrics() {
		got, err := ParseMetric(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := ParseMetric("fouls_rec")
	require.NoError(t, err)
	assert.Equal(t, MetricFoulsReceived, got)

	_, err = ParseMetric("xg")
	require.ErrorIs(t, err, ErrInvalidScope)
}
