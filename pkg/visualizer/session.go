// Package visualizer assembles the tables a DORA results browser shows: one
// method's ranked selections with their payloads, and the cross-method
// aggregate view.
package visualizer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hed1ad/doravis/pkg/config"
	"github.com/hed1ad/doravis/pkg/results"
	"github.com/hed1ad/doravis/pkg/sources"
)

// ErrStale is returned by a load that was superseded by a newer one before it
// could commit its result.
var ErrStale = errors.New("load superseded")

// Session browses the results of one configuration. Loads may be issued from
// any goroutine; only the most recently started load commits.
type Session struct {
	cfg     *config.Config
	source  sources.Source
	workers int

	mu        sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	current   *Table
	aggregate *AggregateTable
}

// Option configures a Session.
type Option func(*Session)

// WithSource uses src instead of opening the configured data root.
func WithSource(src sources.Source) Option {
	return func(s *Session) {
		s.source = src
	}
}

// WithWorkers bounds how many rows of one method are resolved concurrently.
func WithWorkers(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewSession opens the configured data source.
func NewSession(cfg *config.Config, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:     cfg,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.source == nil {
		kind, err := cfg.LoaderKind()
		if err != nil {
			return nil, err
		}
		src, err := sources.Open(kind, cfg.DataToScore)
		if err != nil {
			return nil, fmt.Errorf("load %s data: %w", kind, err)
		}
		s.source = src
	}

	return s, nil
}

// Config returns the session's configuration.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Source returns the loaded data source.
func (s *Session) Source() sources.Source {
	return s.source
}

// Current returns the last committed single-method table, or nil.
func (s *Session) Current() *Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Aggregate returns the last committed aggregate table, or nil.
func (s *Session) Aggregate() *AggregateTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggregate
}

// begin starts a new generation and cancels the load of the previous one.
func (s *Session) begin(ctx context.Context) (context.Context, context.CancelFunc, uint64) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	s.cancel = cancel
	return ctx, cancel, s.gen
}

// commit runs apply under the session lock if gen is still the latest generation.
func (s *Session) commit(gen uint64, apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return ErrStale
	}
	apply()
	return nil
}

// LoadMethod loads the selections of the named method, resolves every row
// against the data source and makes the result the current table.
func (s *Session) LoadMethod(ctx context.Context, name string) (*Table, error) {
	m, ok := s.cfg.Method(name)
	if !ok {
		return nil, fmt.Errorf("unknown method %q", name)
	}

	ctx, cancel, gen := s.begin(ctx)
	defer cancel()

	log.Debug().Str("method", name).Uint64("generation", gen).Msg("loading method")

	entries, err := s.loadEntries(ctx, m)
	if err != nil {
		if s.isStale(gen) {
			return nil, ErrStale
		}
		return nil, err
	}

	table := &Table{
		Method:       name,
		Path:         results.Resolve(s.cfg.OutDir, m),
		Kind:         s.source.Kind(),
		FeatureNames: s.source.FeatureNames(),
		Entries:      entries,
		Generation:   gen,
	}
	if err := s.commit(gen, func() { s.current = table }); err != nil {
		log.Warn().Str("method", name).Uint64("generation", gen).Msg("discarding stale method load")
		return nil, err
	}
	return table, nil
}

func (s *Session) isStale(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.gen
}

// loadEntries reads a method's selection file in full, then resolves the rows.
// Entries keep file order; the first failing row aborts the load.
func (s *Session) loadEntries(ctx context.Context, m config.Method) ([]Entry, error) {
	path := results.Resolve(s.cfg.OutDir, m)
	rows, err := results.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(rows))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := s.source.Resolve(row)
			if err != nil {
				return fmt.Errorf("%s: rank %d (id %d): %w", m.Name, row.Rank, row.ID, err)
			}
			entries[i] = Entry{Row: row, Feature: f}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
