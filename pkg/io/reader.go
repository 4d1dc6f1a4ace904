// Package io provides input utilities for result files and scored data sources.
package io

import "errors"

// ErrAxis is returned by a BlockReader whose values were read but whose column
// axis could not be decoded. The returned Block is still usable.
var ErrAxis = errors.New("unreadable axis")

// RecordReader yields raw delimited records in file order.
type RecordReader interface {
	// Next returns the next record, or io.EOF once the input is exhausted.
	Next() ([]string, error)

	// Line returns the 1-based line number of the record last returned by Next.
	Line() int

	// Close releases resources.
	Close() error
}

// Reader is the interface for reading a complete numeric dataset.
type Reader interface {
	// Read returns the complete dataset, one slice per row.
	Read() ([][]float64, error)

	// Close releases resources.
	Close() error
}

// Block is a dense numeric table stored as one flat slice.
type Block struct {
	// Values holds the table flattened in row-major order.
	Values []float64
	// Dims is the shape of the stored dataset.
	Dims []int
	// Names labels the columns, when the source provides them.
	Names []string
}

// BlockReader reads a packed numeric block together with its column axis.
type BlockReader interface {
	ReadBlock() (*Block, error)
	Close() error
}
