// Package stats places single values within the distribution of a cohort.
package stats

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrEmptySample is returned when ranking against an empty sample.
	ErrEmptySample = errors.New("empty sample")

	// ErrNaN is returned when the query value is not a number.
	ErrNaN = errors.New("value is NaN")
)

// PercentRank returns the fraction of sorted that lies at or below value, in [0, 1].
//
// sorted must be in ascending order. A value equal to one or more elements
// ranks after all of them. A value between two elements is interpolated
// linearly between their positions. Values below the minimum rank 0 and values
// above the maximum rank 1.
func PercentRank(sorted []float64, value float64) (float64, error) {
	n := len(sorted)
	if n == 0 {
		return 0, ErrEmptySample
	}
	if math.IsNaN(value) {
		return 0, ErrNaN
	}

	// first element >= value
	i := sort.SearchFloat64s(sorted, value)
	if i == n {
		return 1, nil
	}

	if sorted[i] == value {
		for i < n && sorted[i] == value {
			i++
		}
		return float64(i) / float64(n), nil
	}

	if i == 0 {
		return 0, nil
	}

	lo, hi := sorted[i-1], sorted[i]
	pos := float64(i) + (value-lo)/(hi-lo)
	return pos / float64(n), nil
}
