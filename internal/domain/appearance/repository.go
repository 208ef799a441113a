package appearance

import "context"

// Repository reads appearance rows. Both lists are chronological and only
// include finished matches.
type Repository interface {
	ListByPlayer(ctx context.Context, playerID string) ([]Appearance, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Appearance, error)
}
