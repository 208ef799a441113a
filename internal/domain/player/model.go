package player

import (
	"fmt"
	"strings"
)

// Position is the lineup role code recorded for an appearance.
type Position string

const (
	PositionGoalkeeper Position = "ARQ"
	PositionDefender   Position = "DF"
	PositionMidfielder Position = "M"
	PositionForward    Position = "DL"
	PositionUnknown    Position = ""
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Valid reports whether p is one of the four lineup codes.
func (p Position) Valid() bool {
	_, ok := AllPositions[p]
	return ok
}

// ParsePosition accepts the lineup codes and their long English names.
func ParsePosition(v string) (Position, bool) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "ARQ", "GK", "GOALKEEPER":
		return PositionGoalkeeper, true
	case "DF", "DEF", "DEFENDER":
		return PositionDefender, true
	case "M", "MID", "MIDFIELDER":
		return PositionMidfielder, true
	case "DL", "FWD", "FORWARD":
		return PositionForward, true
	default:
		return PositionUnknown, false
	}
}

func (p Position) Label() string {
	switch p {
	case PositionGoalkeeper:
		return "Goalkeeper"
	case PositionDefender:
		return "Defender"
	case PositionMidfielder:
		return "Midfielder"
	case PositionForward:
		return "Forward"
	default:
		return "Unknown"
	}
}

// Player is identity only. Per-window numbers are always derived from appearances.
type Player struct {
	ID          string
	Name        string
	Position    Position
	ShirtNumber string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}
