package sources

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hed1ad/doravis/pkg/config"
	dorio "github.com/hed1ad/doravis/pkg/io"
	"github.com/hed1ad/doravis/pkg/results"
)

// ColumnStore holds a packed numeric block with one row per item, stored
// row-major, and the names of its columns.
type ColumnStore struct {
	values []float64
	names  []string
	rows   int
}

// NewColumnStore reads the whole block from r and checks that it is laid out
// item-major, with one column per axis name. An unreadable axis is tolerated:
// columns are then named by index.
func NewColumnStore(r dorio.BlockReader) (*ColumnStore, error) {
	block, err := r.ReadBlock()
	if err != nil {
		if block == nil || !errors.Is(err, dorio.ErrAxis) {
			return nil, err
		}
		log.Warn().Err(err).Msg("naming feature columns by index")
	}
	return newColumnStore(block)
}

func newColumnStore(block *dorio.Block) (*ColumnStore, error) {
	if len(block.Dims) != 2 {
		return nil, fmt.Errorf("%w: block has %d dimensions, want 2", ErrLayout, len(block.Dims))
	}
	rows, cols := block.Dims[0], block.Dims[1]
	if len(block.Values) != rows*cols {
		return nil, fmt.Errorf("%w: block holds %d values, shape %dx%d", ErrLayout, len(block.Values), rows, cols)
	}

	names := block.Names
	switch {
	case names == nil:
		names = indexNames(cols)
	case len(names) == cols:
	case len(names) == rows:
		return nil, fmt.Errorf("%w: axis matches the first dimension (%d), block looks feature-major", ErrLayout, rows)
	default:
		return nil, fmt.Errorf("%w: %d axis names for %d columns", ErrLayout, len(names), cols)
	}

	return &ColumnStore{values: block.Values, names: names, rows: rows}, nil
}

// Kind implements Source.
func (s *ColumnStore) Kind() config.LoaderKind {
	return config.LoaderFeatureVector
}

// FeatureNames implements Source.
func (s *ColumnStore) FeatureNames() []string {
	return s.names
}

// Len returns the number of items in the block.
func (s *ColumnStore) Len() int {
	return s.rows
}

// Resolve returns values [id*dim, (id+1)*dim) of the block.
func (s *ColumnStore) Resolve(row results.Row) (Feature, error) {
	if err := checkID(row.ID, s.rows); err != nil {
		return Feature{}, err
	}
	dim := len(s.names)
	vec := make([]float64, dim)
	copy(vec, s.values[row.ID*dim:(row.ID+1)*dim])
	return Feature{Vector: vec}, nil
}
