// Package transfer flags players whose most recent appearance was for a
// different team than the one they are being viewed under.
package transfer

import (
	"strings"

	"github.com/riskibarqy/football-scout/internal/domain/appearance"
)

// Detect reports whether the latest appearance belongs to a team other than
// contextTeamID. A player without appearances is never flagged.
func Detect(apps []appearance.Appearance, contextTeamID string) bool {
	latest, ok := appearance.Latest(apps)
	if !ok {
		return false
	}
	return latest.TeamID != strings.TrimSpace(contextTeamID)
}

// CurrentTeam is the team of the latest appearance.
func CurrentTeam(apps []appearance.Appearance) (string, bool) {
	latest, ok := appearance.Latest(apps)
	if !ok {
		return "", false
	}
	return latest.TeamID, true
}
