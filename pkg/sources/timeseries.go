package sources

import (
	"fmt"

	"github.com/hed1ad/doravis/pkg/config"
	dorio "github.com/hed1ad/doravis/pkg/io"
	"github.com/hed1ad/doravis/pkg/results"
)

// TimeSeries holds one numeric series per item, indexed by row position.
type TimeSeries struct {
	rows  [][]float64
	names []string
}

// NewTimeSeries reads every row from r. The reader is expected to have already
// dropped the leading index column. All series must have the same length.
func NewTimeSeries(r dorio.Reader) (*TimeSeries, error) {
	rows, err := r.Read()
	if err != nil {
		return nil, err
	}

	var dim int
	if len(rows) > 0 {
		dim = len(rows[0])
	}
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: series %d has %d steps, want %d", ErrLayout, i, len(row), dim)
		}
	}

	return &TimeSeries{rows: rows, names: indexNames(dim)}, nil
}

// Kind implements Source.
func (s *TimeSeries) Kind() config.LoaderKind {
	return config.LoaderTimeSeries
}

// FeatureNames implements Source. Steps are named by index.
func (s *TimeSeries) FeatureNames() []string {
	return s.names
}

// Len returns the number of series.
func (s *TimeSeries) Len() int {
	return len(s.rows)
}

// Resolve returns the series at position row.ID.
func (s *TimeSeries) Resolve(row results.Row) (Feature, error) {
	if err := checkID(row.ID, len(s.rows)); err != nil {
		return Feature{}, err
	}
	vec := make([]float64, len(s.rows[row.ID]))
	copy(vec, s.rows[row.ID])
	return Feature{Vector: vec}, nil
}
