package visualizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hed1ad/doravis/pkg/config"
)

var (
	// ErrAggregateUnavailable is returned for data loaders other than images.
	ErrAggregateUnavailable = errors.New("aggregate view is only available for image data")

	// ErrRowCountMismatch is returned when methods selected different numbers of rows.
	ErrRowCountMismatch = errors.New("methods have different row counts")
)

// Cell is one method's contribution to an aggregate row.
type Cell struct {
	ImageData string
	FileName  string
}

// AggregateRow holds the item every method placed at the same position.
type AggregateRow struct {
	Rank    int
	Methods []string
	Cells   map[string]Cell
}

// MarshalJSON encodes the row as {"rank": r, "<m>": data, "<m>Name": file, ...}
// with methods in configuration order.
func (r AggregateRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"rank":`)
	fmt.Fprintf(&buf, "%d", r.Rank)
	for _, m := range r.Methods {
		c := r.Cells[m]
		for _, kv := range [][2]string{{m, c.ImageData}, {m + "Name", c.FileName}} {
			k, err := json.Marshal(kv[0])
			if err != nil {
				return nil, err
			}
			v, err := json.Marshal(kv[1])
			if err != nil {
				return nil, err
			}
			buf.WriteByte(',')
			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(v)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AggregateTable is the cross-method comparison view.
type AggregateTable struct {
	Methods    []string
	Rows       []AggregateRow
	Generation uint64
}

// Join merges per-method entry lists position by position: output row i holds
// entry i of every method and takes its rank from the first method. Rows are
// not sorted. All lists must have the same length.
func Join(methods []string, lists [][]Entry) ([]AggregateRow, error) {
	if len(methods) != len(lists) {
		return nil, fmt.Errorf("%d methods but %d result lists", len(methods), len(lists))
	}
	if len(lists) == 0 {
		return nil, nil
	}

	n := len(lists[0])
	for i, l := range lists[1:] {
		if len(l) != n {
			return nil, fmt.Errorf("%w: %s has %d rows, %s has %d",
				ErrRowCountMismatch, methods[0], n, methods[i+1], len(l))
		}
	}

	rows := make([]AggregateRow, n)
	for i := range rows {
		rows[i] = AggregateRow{
			Rank:    lists[0][i].Rank,
			Methods: methods,
			Cells:   make(map[string]Cell, len(methods)),
		}
	}
	for m, l := range lists {
		for i, e := range l {
			rows[i].Cells[methods[m]] = Cell{ImageData: e.ImageData, FileName: e.FileName}
		}
	}
	return rows, nil
}

// LoadAggregate loads every configured method concurrently and joins them.
// Each load writes only its own slot; the join runs once all loads are done.
func (s *Session) LoadAggregate(ctx context.Context) (*AggregateTable, error) {
	if s.source.Kind() != config.LoaderImage {
		return nil, fmt.Errorf("%w (loader %s)", ErrAggregateUnavailable, s.source.Kind())
	}

	ctx, cancel, gen := s.begin(ctx)
	defer cancel()

	methods := s.cfg.Methods
	names := s.cfg.MethodNames()
	slots := make([][]Entry, len(methods))

	log.Debug().Strs("methods", names).Uint64("generation", gen).Msg("loading aggregate")

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range methods {
		i, m := i, m
		g.Go(func() error {
			entries, err := s.loadEntries(gctx, m)
			if err != nil {
				return err
			}
			slots[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if s.isStale(gen) {
			return nil, ErrStale
		}
		return nil, err
	}

	rows, err := Join(names, slots)
	if err != nil {
		return nil, err
	}

	table := &AggregateTable{Methods: names, Rows: rows, Generation: gen}
	if err := s.commit(gen, func() { s.aggregate = table }); err != nil {
		log.Warn().Uint64("generation", gen).Msg("discarding stale aggregate load")
		return nil, err
	}
	return table, nil
}
