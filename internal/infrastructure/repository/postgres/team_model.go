package postgres

import "time"

type teamTableModel struct {
	ID        string    `db:"id"`
	LeagueID  string    `db:"league_id"`
	Name      string    `db:"name"`
	Short     string    `db:"short"`
	CreatedAt time.Time `db:"created_at"`
}
