package postgres

import "time"

type playerTableModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Position    string    `db:"position"`
	ShirtNumber string    `db:"shirt_number"`
	CreatedAt   time.Time `db:"created_at"`
}

type refereeTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
