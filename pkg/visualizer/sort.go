package visualizer

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey names a sortable table column.
type SortKey string

const (
	SortRank  SortKey = "rank"
	SortID    SortKey = "id"
	SortScore SortKey = "score"
)

// ParseSortKey accepts a column name in any case. An empty name means rank.
func ParseSortKey(name string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(name))); k {
	case "":
		return SortRank, nil
	case SortRank, SortID, SortScore:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort column %q (want rank, id or score)", name)
	}
}

// Sort returns a copy of entries ordered by the given column. Equal keys keep
// their file order. entries itself is not reordered, so row positions used by
// Table.Percentiles stay valid.
func Sort(entries []Entry, by SortKey, desc bool) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)

	var less func(a, b Entry) bool
	switch by {
	case SortID:
		less = func(a, b Entry) bool { return a.ID < b.ID }
	case SortScore:
		less = func(a, b Entry) bool { return a.Score < b.Score }
	default:
		less = func(a, b Entry) bool { return a.Rank < b.Rank }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}
