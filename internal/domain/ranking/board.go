package ranking

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/riskibarqy/football-scout/internal/domain/stats"
)

var ErrInsufficientData = errors.New("insufficient data")

// PlayerLimit is the size of every player leaderboard.
const PlayerLimit = 20

type Order uint8

const (
	// OrderDesc puts the highest value first.
	OrderDesc Order = iota
	// OrderAsc puts the lowest value first. Used for lower-is-better axes.
	OrderAsc
)

func (o Order) String() string {
	if o == OrderAsc {
		return "asc"
	}
	return "desc"
}

type Options struct {
	// Limit truncates the board after ranking; 0 keeps every entry.
	Limit int
	Order Order
}

// Entry is one ranked entity.
type Entry struct {
	EntityID string
	Rank     int
	Value    float64
	Matches  int
	Minutes  int
	Raw      int
}

// Board is an immutable ordered ranking for one scope and metric.
type Board struct {
	Scope  stats.Scope
	Metric stats.Metric
	Order  Order
	// Population counts every eligible entity, before truncation.
	Population int

	entries []Entry
}

func (b Board) Len() int {
	return len(b.entries)
}

// Seq yields entries in rank order. It can be ranged any number of times.
func (b Board) Seq() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range b.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Entries returns a copy of the ranked entries.
func (b Board) Entries() []Entry {
	return slices.Clone(b.entries)
}

// Top returns at most k leading entries.
func (b Board) Top(k int) []Entry {
	if k <= 0 || k > len(b.entries) {
		k = len(b.entries)
	}
	return slices.Clone(b.entries[:k])
}

// Position finds an entity on the board.
func (b Board) Position(entityID string) (Entry, bool) {
	for _, e := range b.entries {
		if e.EntityID == entityID {
			return e, true
		}
	}
	return Entry{}, false
}

// Rank orders the eligible windows of one scope by their per-90 value.
// Ties fall back to minutes, more first, then to entity id.
func Rank(scope stats.Scope, windows []stats.Window, metric stats.Metric, opts Options) (Board, error) {
	policy, ok := scope.Policy()
	if !ok || !policy.Ranked {
		return Board{}, fmt.Errorf("%w: scope %s cannot be ranked", stats.ErrInvalidScope, scope)
	}
	if !metric.Valid() {
		return Board{}, fmt.Errorf("%w: unsupported metric %s", stats.ErrInvalidScope, metric)
	}

	entries := make([]Entry, 0, len(windows))
	for _, w := range windows {
		if w.Scope != scope {
			return Board{}, fmt.Errorf("%w: window %s has scope %s, want %s", stats.ErrInvalidScope, w.EntityID, w.Scope, scope)
		}
		if !w.Eligible {
			continue
		}
		entries = append(entries, Entry{
			EntityID: w.EntityID,
			Value:    w.Value(metric),
			Matches:  w.Matches,
			Minutes:  w.Minutes,
			Raw:      w.Raw.Get(metric),
		})
	}

	return finish(Board{Scope: scope, Metric: metric, Order: opts.Order}, entries, opts, func(e Entry) int { return e.Minutes }), nil
}

// finish sorts entries, assigns 1-based ranks and truncates to opts.Limit.
func finish(b Board, entries []Entry, opts Options, secondary func(Entry) int) Board {
	slices.SortFunc(entries, func(a, c Entry) int {
		byValue := cmp.Compare(c.Value, a.Value)
		if opts.Order == OrderAsc {
			byValue = -byValue
		}
		if byValue != 0 {
			return byValue
		}
		if bySecondary := cmp.Compare(secondary(c), secondary(a)); bySecondary != 0 {
			return bySecondary
		}
		return cmp.Compare(a.EntityID, c.EntityID)
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	b.Population = len(entries)
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	b.entries = entries
	return b
}
