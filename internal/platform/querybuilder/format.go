package querybuilder

import "strconv"

// Format is the bind placeholder style of the target driver.
type Format uint8

const (
	// Dollar is $1, $2... as lib/pq expects.
	Dollar Format = iota
	// Question is ? as sqlite expects.
	Question
)

func (f Format) placeholder(i int) string {
	if f == Question {
		return "?"
	}
	return "$" + strconv.Itoa(i)
}
