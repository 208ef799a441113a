package ranking

import (
	"slices"

	"github.com/riskibarqy/football-scout/internal/domain/stats"
)

// BoardData is the serializable form of a Board, used by shared caches.
type BoardData struct {
	Scope      stats.Scope  `json:"scope"`
	Metric     stats.Metric `json:"metric"`
	Order      Order        `json:"order"`
	Population int          `json:"population"`
	Entries    []Entry      `json:"entries"`
}

func (b Board) Data() BoardData {
	return BoardData{
		Scope:      b.Scope,
		Metric:     b.Metric,
		Order:      b.Order,
		Population: b.Population,
		Entries:    slices.Clone(b.entries),
	}
}

// Board restores a board without re-ranking. Entries must already be in rank
// order.
func (d BoardData) Board() Board {
	return Board{
		Scope:      d.Scope,
		Metric:     d.Metric,
		Order:      d.Order,
		Population: d.Population,
		entries:    slices.Clone(d.Entries),
	}
}
