// Package csv provides delimited file reading for result lists and tabular data.
package csv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	dorio "github.com/hed1ad/doravis/pkg/io"
)

// ResultDelimiter separates fields in DORA result files.
const ResultDelimiter = ", "

// ErrEmptyRow is returned by Read for a record with no numeric columns left.
var ErrEmptyRow = errors.New("empty row")

var (
	_ dorio.Reader       = (*Reader)(nil)
	_ dorio.RecordReader = (*Reader)(nil)
)

// Reader reads records from a delimited file.
//
// Single-character delimiters are handled by encoding/csv, which also honours
// quoting. Longer delimiters, such as the ", " used by result files, are split
// literally line by line.
type Reader struct {
	file      *os.File
	csv       *csv.Reader
	scanner   *bufio.Scanner
	delimiter string
	skip      int
	line      int
}

// Option configures a CSV reader.
type Option func(*Reader)

// WithDelimiter sets the field separator. The default is ",".
func WithDelimiter(d string) Option {
	return func(r *Reader) {
		r.delimiter = d
	}
}

// WithSkipColumns drops the first n fields of every record.
func WithSkipColumns(n int) Option {
	return func(r *Reader) {
		r.skip = n
	}
}

// NewReader opens filename for reading.
func NewReader(filename string, opts ...Option) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		file:      file,
		delimiter: ",",
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.delimiter == "" {
		file.Close()
		return nil, errors.New("empty delimiter")
	}

	if utf8.RuneCountInString(r.delimiter) == 1 {
		r.csv = csv.NewReader(file)
		r.csv.Comma, _ = utf8.DecodeRuneInString(r.delimiter)
		r.csv.FieldsPerRecord = -1
	} else {
		r.scanner = bufio.NewScanner(file)
		r.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	}

	return r, nil
}

// Line returns the 1-based line number of the last record returned.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next record with skipped columns removed, or io.EOF.
func (r *Reader) Next() ([]string, error) {
	record, err := r.next()
	if err != nil {
		return nil, err
	}
	if r.skip >= len(record) {
		return []string{}, nil
	}
	return record[r.skip:], nil
}

func (r *Reader) next() ([]string, error) {
	if r.csv != nil {
		record, err := r.csv.Read()
		if err != nil {
			return nil, err
		}
		r.line, _ = r.csv.FieldPos(0)
		return record, nil
	}

	for r.scanner.Scan() {
		r.line++
		text := strings.TrimRight(r.scanner.Text(), "\r")
		if text == "" {
			continue
		}
		return strings.Split(text, r.delimiter), nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Read returns all remaining records as a 2D float slice. A field that does not
// parse as a number aborts the read.
func (r *Reader) Read() ([][]float64, error) {
	var data [][]float64

	for {
		record, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		data = append(data, row)
	}

	return data, nil
}

// Close releases resources.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// parseRow converts string slice to float slice.
func parseRow(record []string) ([]float64, error) {
	if len(record) == 0 {
		return nil, ErrEmptyRow
	}

	row := make([]float64, len(record))
	for i, val := range record {
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, err
		}
		row[i] = f
	}
	return row, nil
}
