package appearance

import (
	"slices"
	"time"

	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/player"
)

// Appearance is one player's participation in one match. It is the only
// source for matches played.
type Appearance struct {
	MatchID        string
	PlayerID       string
	TeamID         string
	KickoffAt      time.Time
	Minutes        int
	Position       player.Position
	ShirtNumber    string
	IsStarter      bool
	FoulsCommitted int
	FoulsReceived  int
}

// Compare orders appearances chronologically by their match.
func Compare(a, b Appearance) int {
	return match.Compare(a.KickoffAt, a.MatchID, b.KickoffAt, b.MatchID)
}

// SortChronological sorts items in place, oldest first.
func SortChronological(items []Appearance) {
	slices.SortStableFunc(items, Compare)
}

// Latest returns the most recent appearance.
func Latest(items []Appearance) (Appearance, bool) {
	if len(items) == 0 {
		return Appearance{}, false
	}
	return slices.MaxFunc(items, Compare), true
}
