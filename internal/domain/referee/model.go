package referee

// Referee is the official assigned to a match.
type Referee struct {
	ID   string
	Name string
}
