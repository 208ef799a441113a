package match

import (
	"slices"
	"testing"
	"time"
)

func TestMatch_Opponent(t *testing.T) {
	t.Parallel()

	m := Match{ID: "m1", HomeTeamID: "boca", AwayTeamID: "river"}

	got, ok := m.Opponent("boca")
	if !ok || got != "river" {
		t.Fatalf("unexpected opponent for home side: got=%q ok=%v", got, ok)
	}
	got, ok = m.Opponent("river")
	if !ok || got != "boca" {
		t.Fatalf("unexpected opponent for away side: got=%q ok=%v", got, ok)
	}
	if _, ok := m.Opponent("racing"); ok {
		t.Fatalf("expected no opponent for a team outside the match")
	}
	if m.Involves("") {
		t.Fatalf("blank team id must not be involved")
	}
}

func TestCompareMatches_KickoffThenID(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	items := []Match{
		{ID: "m3", KickoffAt: day.Add(48 * time.Hour)},
		{ID: "m2", KickoffAt: day},
		{ID: "m1", KickoffAt: day},
	}
	slices.SortFunc(items, CompareMatches)

	got := []string{items[0].ID, items[1].ID, items[2].ID}
	want := []string{"m1", "m2", "m3"}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected order: got=%v want=%v", got, want)
	}
}
