// Package sources resolves the payload of a result row against the scored
// data: image bytes for image directories and feature vectors for tabular data.
package sources

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/hed1ad/doravis/pkg/config"
	"github.com/hed1ad/doravis/pkg/io/csv"
	"github.com/hed1ad/doravis/pkg/results"
)

var (
	// ErrIndexOutOfRange is returned when a row id does not address an item of the source.
	ErrIndexOutOfRange = errors.New("id out of range")

	// ErrLayout is returned when loaded data does not have the expected shape.
	ErrLayout = errors.New("unexpected data layout")
)

// Feature is the payload of one result row. Image sources fill ImageData and
// MIMEType; vector sources fill Vector.
type Feature struct {
	ImageData string    `json:"imageData,omitempty"`
	MIMEType  string    `json:"mimeType,omitempty"`
	Vector    []float64 `json:"vector,omitempty"`
}

// DataURI returns the image payload as a data: URI, or "" for vector payloads.
func (f Feature) DataURI() string {
	if f.ImageData == "" {
		return ""
	}
	return "data:" + f.MIMEType + ";base64," + f.ImageData
}

// Source is loaded scored data that result rows can be resolved against.
type Source interface {
	// Kind reports which loader produced the source.
	Kind() config.LoaderKind

	// FeatureNames labels the entries of every Vector, nil for images.
	FeatureNames() []string

	// Resolve returns the payload for row.
	Resolve(row results.Row) (Feature, error)
}

// OpenFunc loads the data at dataRoot into a Source.
type OpenFunc func(dataRoot string) (Source, error)

var (
	openersMu sync.RWMutex
	openers   = make(map[config.LoaderKind]OpenFunc)
)

// Register makes a loader available to Open. It panics if kind is registered
// twice or open is nil.
func Register(kind config.LoaderKind, open OpenFunc) {
	openersMu.Lock()
	defer openersMu.Unlock()
	if open == nil {
		panic("sources: Register open func is nil")
	}
	if _, dup := openers[kind]; dup {
		panic("sources: Register called twice for loader " + kind.String())
	}
	openers[kind] = open
}

func init() {
	Register(config.LoaderImage, func(root string) (Source, error) {
		return NewImageSource(root), nil
	})
	Register(config.LoaderTimeSeries, func(root string) (Source, error) {
		r, err := csv.NewReader(root, csv.WithSkipColumns(1))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", root, err)
		}
		defer r.Close()
		ts, err := NewTimeSeries(r)
		if err != nil {
			return nil, err
		}
		return ts, nil
	})
}

// Open loads the data at dataRoot with the loader registered for kind.
// Tabular sources are read completely before Open returns. The feature-vector
// loader is provided by package sources/hdf5.
func Open(kind config.LoaderKind, dataRoot string) (Source, error) {
	openersMu.RLock()
	open, ok := openers[kind]
	openersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no loader registered for %v", config.ErrUnsupportedLoader, kind)
	}
	return open(dataRoot)
}

func indexNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	return names
}

func checkID(id, n int) error {
	if id < 0 || id >= n {
		return fmt.Errorf("%w: id %d, source has %d items", ErrIndexOutOfRange, id, n)
	}
	return nil
}
