package team

import (
	"fmt"
	"strings"
)

// Team is a club inside one league. Which team a player represented in a
// given match is recorded on the appearance, not here.
type Team struct {
	ID       string
	LeagueID string
	Name     string
	Short    string
}

// Validate checks an imported team against the league it is written into.
func (t Team) Validate(leagueID string) error {
	switch {
	case strings.TrimSpace(t.ID) == "":
		return fmt.Errorf("team id is required")
	case strings.TrimSpace(t.Name) == "":
		return fmt.Errorf("team %s: name is required", t.ID)
	case t.LeagueID != leagueID:
		return fmt.Errorf("team %s: belongs to league %q, not %q", t.ID, t.LeagueID, leagueID)
	}
	return nil
}
