package referee

import "context"

// Repository describes referee persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, refereeID string) (Referee, bool, error)
	ListByIDs(ctx context.Context, refereeIDs []string) ([]Referee, error)
}
