package stats

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidScope = errors.New("invalid scope")

// Scope is the window an entity's numbers are aggregated over.
type Scope uint8

const (
	ScopeCurrentMatch Scope = iota + 1
	ScopeLastFive
	ScopeCareer
)

// Policy is the fixed eligibility rule attached to a scope.
type Policy struct {
	// MinMinutes is exclusive: an entity needs strictly more minutes.
	MinMinutes int
	// Ranked scopes may feed a top-N list.
	Ranked bool
	// MatchLimit caps the number of most recent samples; 0 means all.
	MatchLimit int
}

// Eligible reports whether minutes clear the floor. Zero minutes never do.
func (p Policy) Eligible(minutes int) bool {
	return minutes > 0 && minutes > p.MinMinutes
}

var policies = [...]Policy{
	ScopeCurrentMatch: {MinMinutes: 0, Ranked: false, MatchLimit: 1},
	ScopeLastFive:     {MinMinutes: 150, Ranked: true, MatchLimit: 5},
	ScopeCareer:       {MinMinutes: 300, Ranked: true, MatchLimit: 0},
}

var scopeNames = [...]string{
	ScopeCurrentMatch: "match",
	ScopeLastFive:     "last5",
	ScopeCareer:       "career",
}

func (s Scope) Valid() bool {
	return s >= ScopeCurrentMatch && s <= ScopeCareer
}

func (s Scope) Policy() (Policy, bool) {
	if !s.Valid() {
		return Policy{}, false
	}
	return policies[s], true
}

func (s Scope) String() string {
	if !s.Valid() {
		return fmt.Sprintf("scope(%d)", uint8(s))
	}
	return scopeNames[s]
}

// Scopes lists every scope, narrowest first.
func Scopes() []Scope {
	return []Scope{ScopeCurrentMatch, ScopeLastFive, ScopeCareer}
}

func ParseScope(v string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "match", "current", "current-match", "current_match":
		return ScopeCurrentMatch, nil
	case "last5", "last-5", "last_5", "l5":
		return ScopeLastFive, nil
	case "career", "league", "all", "general":
		return ScopeCareer, nil
	default:
		return 0, fmt.Errorf("%w: unsupported scope %q", ErrInvalidScope, v)
	}
}
