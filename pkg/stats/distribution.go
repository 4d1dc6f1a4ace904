package stats

import (
	"sort"
)

// Distribution is one feature column of a cohort, sorted once so that any
// number of values can be ranked against it.
type Distribution struct {
	Name   string
	sorted []float64
}

// NewDistribution copies and sorts values.
func NewDistribution(name string, values []float64) *Distribution {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return &Distribution{Name: name, sorted: sorted}
}

// Len returns the cohort size.
func (d *Distribution) Len() int {
	return len(d.sorted)
}

// Min returns the smallest value, or 0 for an empty cohort.
func (d *Distribution) Min() float64 {
	if len(d.sorted) == 0 {
		return 0
	}
	return d.sorted[0]
}

// Max returns the largest value, or 0 for an empty cohort.
func (d *Distribution) Max() float64 {
	if len(d.sorted) == 0 {
		return 0
	}
	return d.sorted[len(d.sorted)-1]
}

// Values returns the sorted cohort. Callers must not modify it.
func (d *Distribution) Values() []float64 {
	return d.sorted
}

// PercentRank places value within the cohort.
func (d *Distribution) PercentRank(value float64) (float64, error) {
	return PercentRank(d.sorted, value)
}

// Histogram counts the cohort into bins equal-width bins spanning [Min, Max].
// The maximum falls into the last bin.
func (d *Distribution) Histogram(bins int) []int {
	if bins <= 0 || len(d.sorted) == 0 {
		return nil
	}
	counts := make([]int, bins)
	for _, v := range d.sorted {
		counts[d.Bin(v, bins)]++
	}
	return counts
}

// Bin returns the Histogram bin that value falls into. Values outside [Min, Max]
// are clamped to the first or last bin. It returns -1 when there are no bins.
func (d *Distribution) Bin(value float64, bins int) int {
	if bins <= 0 || len(d.sorted) == 0 {
		return -1
	}
	lo, hi := d.Min(), d.Max()
	width := (hi - lo) / float64(bins)
	if width <= 0 {
		return bins - 1
	}
	b := int((value - lo) / width)
	if b < 0 {
		return 0
	}
	if b >= bins {
		return bins - 1
	}
	return b
}
