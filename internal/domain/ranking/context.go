package ranking

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
)

type ContextKind uint8

const (
	ContextLeague ContextKind = iota
	ContextTeam
	ContextPosition
)

// Context restricts which player samples feed a board.
type Context struct {
	Kind     ContextKind
	TeamID   string
	Position player.Position
}

func LeagueContext() Context {
	return Context{Kind: ContextLeague}
}

func TeamContext(teamID string) Context {
	return Context{Kind: ContextTeam, TeamID: teamID}
}

func PositionContext(pos player.Position) Context {
	return Context{Kind: ContextPosition, Position: pos}
}

// ParseContext builds a context from optional team and position filters.
// Setting both is rejected.
func ParseContext(teamID, position string) (Context, error) {
	teamID = strings.TrimSpace(teamID)
	position = strings.TrimSpace(position)
	switch {
	case teamID != "" && position != "":
		return Context{}, fmt.Errorf("%w: team and position contexts are exclusive", stats.ErrInvalidScope)
	case teamID != "":
		return TeamContext(teamID), nil
	case position != "":
		pos, ok := player.ParsePosition(position)
		if !ok {
			return Context{}, fmt.Errorf("%w: unsupported position %q", stats.ErrInvalidScope, position)
		}
		return PositionContext(pos), nil
	default:
		return LeagueContext(), nil
	}
}

func (c Context) String() string {
	switch c.Kind {
	case ContextTeam:
		return "team:" + c.TeamID
	case ContextPosition:
		return "position:" + string(c.Position)
	default:
		return "league"
	}
}

// Apply returns the part of a player's chronological samples the context
// keeps. A team context keeps the appearances for that team only. A
// position context keeps every sample when the latest one was played in
// that position. ok is false when nothing is kept.
func (c Context) Apply(samples []stats.Sample) ([]stats.Sample, bool) {
	if len(samples) == 0 {
		return nil, false
	}
	switch c.Kind {
	case ContextTeam:
		kept := stats.Filter(samples, func(s stats.Sample) bool { return s.TeamID == c.TeamID })
		return kept, len(kept) > 0
	case ContextPosition:
		if samples[len(samples)-1].Position != c.Position {
			return nil, false
		}
		return samples, true
	default:
		return samples, true
	}
}
