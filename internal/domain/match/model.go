package match

import (
	"strings"
	"time"
)

// Match is one recorded fixture. It is immutable once finished.
type Match struct {
	ID         string
	LeagueID   string
	Gameweek   int
	KickoffAt  time.Time
	HomeTeamID string
	AwayTeamID string
	RefereeID  string
	HomeScore  *int
	AwayScore  *int
	Finished   bool
}

// Involves reports whether teamID played in the match.
func (m Match) Involves(teamID string) bool {
	return teamID != "" && (m.HomeTeamID == teamID || m.AwayTeamID == teamID)
}

// Opponent returns the other side of teamID in the match.
func (m Match) Opponent(teamID string) (string, bool) {
	switch teamID {
	case "":
		return "", false
	case m.HomeTeamID:
		return m.AwayTeamID, true
	case m.AwayTeamID:
		return m.HomeTeamID, true
	default:
		return "", false
	}
}

func (m Match) HasReferee() bool {
	return strings.TrimSpace(m.RefereeID) != ""
}

// Compare orders two (kickoff, id) pairs chronologically. Every "latest" or
// "last N" computation in the service sorts with it.
func Compare(aKickoff time.Time, aID string, bKickoff time.Time, bID string) int {
	if c := aKickoff.Compare(bKickoff); c != 0 {
		return c
	}
	return strings.Compare(aID, bID)
}

// CompareMatches is Compare over whole matches.
func CompareMatches(a, b Match) int {
	return Compare(a.KickoffAt, a.ID, b.KickoffAt, b.ID)
}
