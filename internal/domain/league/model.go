package league

import (
	"fmt"
	"strings"
)

// League is one competition season. Rankings never cross league boundaries.
type League struct {
	ID          string
	Name        string
	CountryCode string
	Season      string
}

// Validate is applied to imported leagues. An extract without dated matches
// has no season and is rejected here.
func (l League) Validate() error {
	switch {
	case strings.TrimSpace(l.ID) == "":
		return fmt.Errorf("league id is required")
	case strings.TrimSpace(l.Name) == "":
		return fmt.Errorf("league %s: name is required", l.ID)
	case strings.TrimSpace(l.Season) == "":
		return fmt.Errorf("league %s: season is required", l.ID)
	}
	return nil
}
