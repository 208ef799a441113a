package ranking

import (
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
)

func sampleWith(matchID string, cards, fouls int) stats.Sample {
	s := stats.Sample{MatchID: matchID, Minutes: stats.MatchMinutes}
	s.Counters[stats.MetricCards] = cards
	s.Counters[stats.MetricFoulsCommitted] = fouls
	return s
}

func TestRefereeBoards(t *testing.T) {
	convey.Convey("Given three finished matches and two referees", t, func() {
		day := time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC)
		matches := []match.Match{
			{ID: "m1", KickoffAt: day, HomeTeamID: "boca", AwayTeamID: "river", RefereeID: "ref-a", Finished: true},
			{ID: "m2", KickoffAt: day.AddDate(0, 0, 7), HomeTeamID: "river", AwayTeamID: "racing", RefereeID: "ref-a", Finished: true},
			{ID: "m3", KickoffAt: day.AddDate(0, 0, 14), HomeTeamID: "racing", AwayTeamID: "boca", RefereeID: "ref-b", Finished: true},
			{ID: "m4", KickoffAt: day.AddDate(0, 0, 21), HomeTeamID: "boca", AwayTeamID: "river", RefereeID: "ref-b"},
		}
		teams := map[string]stats.TeamSamples{
			"boca":   {For: []stats.Sample{sampleWith("m1", 2, 10), sampleWith("m3", 4, 12)}},
			"river":  {For: []stats.Sample{sampleWith("m1", 3, 14), sampleWith("m2", 1, 9)}},
			"racing": {For: []stats.Sample{sampleWith("m2", 2, 11), sampleWith("m3", 2, 8)}},
		}

		windows := BuildRefereeWindows(matches, teams)

		convey.Convey("Then unfinished matches are not counted", func() {
			convey.So(windows["ref-a"].Matches, convey.ShouldEqual, 2)
			convey.So(windows["ref-b"].Matches, convey.ShouldEqual, 1)
		})

		convey.Convey("Then totals add up both sides of every match", func() {
			convey.So(windows["ref-a"].Totals.Get(stats.MetricCards), convey.ShouldEqual, 8)
			convey.So(windows["ref-a"].PerMatch(stats.MetricCards), convey.ShouldEqual, 4.0)
			convey.So(windows["ref-b"].Totals.Get(stats.MetricFoulsCommitted), convey.ShouldEqual, 20)
		})

		convey.Convey("When ranking by cards", func() {
			board, err := RankReferees([]RefereeWindow{windows["ref-a"], windows["ref-b"]}, stats.MetricCards, Options{})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the higher per-match average leads", func() {
				convey.So(ids(board), convey.ShouldResemble, []string{"ref-b", "ref-a"})
			})
		})

		convey.Convey("When listing top targets", func() {
			targets := TopTargets(windows["ref-a"], stats.MetricCards, TopTargetsLimit)

			convey.Convey("Then teams are ordered by total, ties by id", func() {
				convey.So(targets, convey.ShouldResemble, []Target{
					{TeamID: "river", Total: 4},
					{TeamID: "boca", Total: 2},
					{TeamID: "racing", Total: 2},
				})
			})

			convey.Convey("Then the limit applies", func() {
				convey.So(len(TopTargets(windows["ref-a"], stats.MetricCards, 1)), convey.ShouldEqual, 1)
			})
		})
	})

	convey.Convey("Given prediction metrics", t, func() {
		convey.So(RefereeAxis(stats.MetricFoulsReceived), convey.ShouldEqual, stats.MetricFoulsCommitted)
		convey.So(RefereeAxis(stats.MetricShots), convey.ShouldEqual, stats.MetricCards)
	})
}
