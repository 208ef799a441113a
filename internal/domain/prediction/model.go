package prediction

import (
	"errors"
	"fmt"
	"math"

	"github.com/riskibarqy/football-scout/internal/domain/ranking"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
)

// Framing accompanies every scenario wherever it is shown.
const Framing = "Statistical scenario indicator built from attack, defense and referee rankings. It is not a score prediction."

var (
	ErrInsufficientData = ranking.ErrInsufficientData
	ErrInvalidWeights   = errors.New("invalid prediction weights")
)

const weightTolerance = 1e-9

type Weights struct {
	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
	Referee float64 `json:"referee"`
}

func DefaultWeights() Weights {
	return Weights{Attack: 0.45, Defense: 0.35, Referee: 0.20}
}

func (w Weights) Validate() error {
	if w.Attack < 0 || w.Defense < 0 || w.Referee < 0 {
		return fmt.Errorf("%w: weights must not be negative", ErrInvalidWeights)
	}
	if w.Attack+w.Defense <= 0 {
		return fmt.Errorf("%w: attack and defense weights cannot both be zero", ErrInvalidWeights)
	}
	if sum := w.Attack + w.Defense + w.Referee; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, want 1", ErrInvalidWeights, sum)
	}
	return nil
}

// WithoutReferee hands the referee weight to attack and defense in
// proportion to their own weights.
func (w Weights) WithoutReferee() Weights {
	base := w.Attack + w.Defense
	if base <= 0 {
		return Weights{}
	}
	return Weights{Attack: w.Attack / base, Defense: w.Defense / base}
}

// Position is an entity's place on a board.
type Position struct {
	Rank       int `json:"rank"`
	Population int `json:"population"`
}

func (p Position) Known() bool {
	return p.Population > 0 && p.Rank >= 1 && p.Rank <= p.Population
}

// PositionOn looks an entity up on a board. A missing entity yields the
// zero Position.
func PositionOn(b ranking.Board, entityID string) Position {
	e, ok := b.Position(entityID)
	if !ok {
		return Position{}
	}
	return Position{Rank: e.Rank, Population: b.Population}
}

// Percentile maps rank 1 to 1 and the last rank to 0. A population of one
// gives 1.
func Percentile(p Position) (float64, error) {
	if !p.Known() {
		return 0, fmt.Errorf("%w: rank %d of %d", ErrInsufficientData, p.Rank, p.Population)
	}
	if p.Population == 1 {
		return 1, nil
	}
	v := 1 - float64(p.Rank-1)/float64(p.Population-1)
	return clamp01(v), nil
}

// SideScore is the 0..100 scenario score of one side.
func SideScore(w Weights, attack, opponentDefense, referee float64) float64 {
	return 100 * clamp01(w.Attack*attack+w.Defense*(1-opponentDefense)+w.Referee*referee)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Inputs are the board positions a scenario is computed from. Attack
// positions come from the descending "for" boards, defense positions from
// the ascending "against" boards, so rank 1 always means strongest.
type Inputs struct {
	MatchID     string
	Metric      stats.Metric
	HomeTeamID  string
	AwayTeamID  string
	HomeAttack  Position
	HomeDefense Position
	AwayAttack  Position
	AwayDefense Position
	Referee     Position
}

type Side struct {
	TeamID            string   `json:"team_id"`
	Attack            Position `json:"attack"`
	Defense           Position `json:"defense"`
	AttackPercentile  float64  `json:"attack_percentile"`
	DefensePercentile float64  `json:"defense_percentile"`
	Score             float64  `json:"score"`
}

type Scenario struct {
	MatchID           string
	Metric            stats.Metric
	Weights           Weights
	Home              Side
	Away              Side
	Referee           Position
	RefereeFactor     float64
	ReducedConfidence bool
	Framing           string
}

func (s Scenario) HomeScore() float64 { return s.Home.Score }
func (s Scenario) AwayScore() float64 { return s.Away.Score }

// Predict requires every position to be known.
func Predict(in Inputs, w Weights) (Scenario, error) {
	if err := w.Validate(); err != nil {
		return Scenario{}, err
	}
	ref, err := Percentile(in.Referee)
	if err != nil {
		return Scenario{}, fmt.Errorf("referee position: %w", err)
	}
	return score(in, w, ref, false)
}

// PredictWithFallback behaves like Predict, except that a missing referee
// position drops the referee term and marks the scenario as reduced
// confidence. Missing team positions still fail.
func PredictWithFallback(in Inputs, w Weights) (Scenario, error) {
	if err := w.Validate(); err != nil {
		return Scenario{}, err
	}
	if !in.Referee.Known() {
		return score(in, w.WithoutReferee(), 0, true)
	}
	ref, err := Percentile(in.Referee)
	if err != nil {
		return Scenario{}, fmt.Errorf("referee position: %w", err)
	}
	return score(in, w, ref, false)
}

func score(in Inputs, w Weights, ref float64, reduced bool) (Scenario, error) {
	home, err := side(in.HomeTeamID, in.HomeAttack, in.HomeDefense)
	if err != nil {
		return Scenario{}, fmt.Errorf("home team %s: %w", in.HomeTeamID, err)
	}
	away, err := side(in.AwayTeamID, in.AwayAttack, in.AwayDefense)
	if err != nil {
		return Scenario{}, fmt.Errorf("away team %s: %w", in.AwayTeamID, err)
	}

	home.Score = SideScore(w, home.AttackPercentile, away.DefensePercentile, ref)
	away.Score = SideScore(w, away.AttackPercentile, home.DefensePercentile, ref)

	return Scenario{
		MatchID:           in.MatchID,
		Metric:            in.Metric,
		Weights:           w,
		Home:              home,
		Away:              away,
		Referee:           in.Referee,
		RefereeFactor:     ref,
		ReducedConfidence: reduced,
		Framing:           Framing,
	}, nil
}

func side(teamID string, attack, defense Position) (Side, error) {
	att, err := Percentile(attack)
	if err != nil {
		return Side{}, fmt.Errorf("attack position: %w", err)
	}
	def, err := Percentile(defense)
	if err != nil {
		return Side{}, fmt.Errorf("defense position: %w", err)
	}
	return Side{
		TeamID:            teamID,
		Attack:            attack,
		Defense:           defense,
		AttackPercentile:  att,
		DefensePercentile: def,
	}, nil
}
