package event

import "context"

// Repository reads in-match events in bulk for a set of matches.
type Repository interface {
	ListShotsByMatches(ctx context.Context, matchIDs []string) ([]Shot, error)
	ListCardsByMatches(ctx context.Context, matchIDs []string) ([]Card, error)
}
