package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentRank(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		value  float64
		want   float64
	}{
		{name: "exact match skips its run", sorted: []float64{1, 2, 3, 4, 5}, value: 3, want: 0.6},
		{name: "below all", sorted: []float64{1, 2, 3, 4, 5}, value: -10, want: 0},
		{name: "above all", sorted: []float64{1, 2, 3, 4, 5}, value: 10, want: 1},
		{name: "equal to max", sorted: []float64{1, 2, 3, 4, 5}, value: 5, want: 1},
		{name: "equal to min", sorted: []float64{1, 2, 3, 4, 5}, value: 1, want: 0.2},
		{name: "interpolated", sorted: []float64{1, 2, 3, 4}, value: 2.5, want: 0.625},
		{name: "ties", sorted: []float64{1, 2, 2, 2, 3}, value: 2, want: 0.8},
		{name: "single element", sorted: []float64{7}, value: 7, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PercentRank(tt.sorted, tt.value)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestPercentRankErrors(t *testing.T) {
	_, err := PercentRank(nil, 1)
	assert.ErrorIs(t, err, ErrEmptySample)

	_, err = PercentRank([]float64{1, 2}, math.NaN())
	assert.ErrorIs(t, err, ErrNaN)
}

func TestPercentRankMonotonic(t *testing.T) {
	sorted := []float64{-3, -1, -1, 0, 2, 2, 2, 5, 8, 13}

	prev := -1.0
	for v := -5.0; v <= 15; v += 0.125 {
		got, err := PercentRank(sorted, v)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "value %v", v)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
		prev = got
	}
}

func TestDistribution(t *testing.T) {
	values := []float64{5, 1, 4, 2, 3}
	d := NewDistribution("flux", values)

	assert.Equal(t, "flux", d.Name)
	assert.Equal(t, 5, d.Len())
	assert.Equal(t, 1.0, d.Min())
	assert.Equal(t, 5.0, d.Max())
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, d.Values())
	assert.Equal(t, []float64{5, 1, 4, 2, 3}, values, "input must not be reordered")

	got, err := d.PercentRank(3)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, got, 1e-12)
}

func TestHistogram(t *testing.T) {
	d := NewDistribution("x", []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10})
	assert.Equal(t, []int{2, 2, 2, 2, 2}, d.Histogram(5))

	flat := NewDistribution("y", []float64{3, 3, 3})
	assert.Equal(t, []int{0, 3}, flat.Histogram(2))

	assert.Nil(t, NewDistribution("z", nil).Histogram(4))
	assert.Nil(t, d.Histogram(0))
}

func TestBin(t *testing.T) {
	d := NewDistribution("x", []float64{0, 10})

	tests := []struct {
		value float64
		want  int
	}{
		{-5, 0},
		{0, 0},
		{1.99, 0},
		{2, 1},
		{9.99, 4},
		{10, 4},
		{42, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, d.Bin(tt.value, 5), "value %v", tt.value)
	}

	assert.Equal(t, -1, d.Bin(1, 0))
	assert.Equal(t, -1, NewDistribution("e", nil).Bin(1, 3))
}
