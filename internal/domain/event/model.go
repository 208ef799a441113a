package event

import "strings"

type CardType string

const (
	CardYellow    CardType = "Yellow"
	CardRed       CardType = "Red"
	CardYellowRed CardType = "YellowRed"
)

// ParseCardType maps provider spellings onto the three card kinds.
func ParseCardType(v string) CardType {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(v), " ", "")) {
	case "red", "redcard":
		return CardRed
	case "yellowred", "secondyellow", "yellowredcard":
		return CardYellowRed
	default:
		return CardYellow
	}
}

const OutcomeGoal = "Goal"

// Shot is one attempt on goal.
type Shot struct {
	ID        int64
	MatchID   string
	PlayerID  string
	TeamID    string
	Minute    int
	OnTarget  bool
	Header    bool
	InsideBox bool
	Situation string
	Outcome   string
}

func (s Shot) IsGoal() bool {
	return strings.EqualFold(s.Outcome, OutcomeGoal)
}

// Card is one disciplinary action.
type Card struct {
	ID       int64
	MatchID  string
	PlayerID string
	TeamID   string
	Type     CardType
	Minute   int
}
