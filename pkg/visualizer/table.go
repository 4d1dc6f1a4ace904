package visualizer

import (
	"fmt"
	"sync"

	"github.com/hed1ad/doravis/pkg/config"
	"github.com/hed1ad/doravis/pkg/results"
	"github.com/hed1ad/doravis/pkg/sources"
	"github.com/hed1ad/doravis/pkg/stats"
)

// Entry is one result row together with its resolved payload.
type Entry struct {
	results.Row
	sources.Feature
}

// Table is the loaded output of one method.
type Table struct {
	Method       string
	Path         string
	Kind         config.LoaderKind
	FeatureNames []string
	Entries      []Entry
	// Generation identifies the load that produced the table.
	Generation uint64

	distOnce sync.Once
	dists    []*stats.Distribution
}

// Distributions returns one distribution per feature column across all
// entries of the table. It is empty for image tables.
func (t *Table) Distributions() []*stats.Distribution {
	t.distOnce.Do(func() {
		t.dists = make([]*stats.Distribution, len(t.FeatureNames))
		for c, name := range t.FeatureNames {
			column := make([]float64, 0, len(t.Entries))
			for _, e := range t.Entries {
				column = append(column, e.Vector[c])
			}
			t.dists[c] = stats.NewDistribution(name, column)
		}
	})
	return t.dists
}

// Percentiles places every feature of entry i within its column's distribution.
func (t *Table) Percentiles(i int) ([]float64, error) {
	if i < 0 || i >= len(t.Entries) {
		return nil, fmt.Errorf("%w: row %d of %d", sources.ErrIndexOutOfRange, i, len(t.Entries))
	}
	dists := t.Distributions()
	vec := t.Entries[i].Vector
	ranks := make([]float64, len(dists))
	for c, d := range dists {
		r, err := d.PercentRank(vec[c])
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", d.Name, err)
		}
		ranks[c] = r
	}
	return ranks, nil
}
