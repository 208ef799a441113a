package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	// ListFinishedByLeague returns finished matches in chronological order.
	ListFinishedByLeague(ctx context.Context, leagueID string) ([]Match, error)
}
