package postgres

import (
	"context"
	"fmt"
)

// HasLeagues reports whether the schema already holds data. Bootstrap
// seeding only runs against an empty database.
func (r *ImportRepository) HasLeagues(ctx context.Context) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM leagues)`); err != nil {
		return false, fmt.Errorf("check leagues for bootstrap seed: %w", err)
	}
	return exists, nil
}
