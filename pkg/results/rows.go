package results

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/hed1ad/doravis/pkg/io/csv"
)

var (
	// ErrMalformedRow is returned when a field of a result row cannot be interpreted.
	ErrMalformedRow = errors.New("malformed result row")

	// ErrUnavailable wraps every failure to open, read or parse a selection file.
	ErrUnavailable = errors.New("results unavailable")
)

// RawRow is one uninterpreted record of a selection file.
type RawRow []string

// Row is one ranked selection: its rank within the method's output, the index
// of the item in the scored data, the item's path relative to the data root,
// and its outlier score.
type Row struct {
	Rank     int     `json:"rank"`
	ID       int     `json:"id"`
	FileName string  `json:"fileName"`
	Score    float64 `json:"score"`
}

// RowError reports the line of a selection file that failed to parse.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Parse streams path and splits every non-empty line on delimiter, keeping file
// order. Fields are not interpreted.
func Parse(ctx context.Context, path, delimiter string) ([]RawRow, error) {
	r, err := csv.NewReader(path, csv.WithDelimiter(delimiter))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var rows []RawRow
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, &RowError{Line: r.Line() + 1, Err: err}
		}
		rows = append(rows, RawRow(record))
	}
}

// ToRow interprets the first four fields as rank, id, file name and score.
// Fields beyond the fourth are ignored.
func (raw RawRow) ToRow() (Row, error) {
	if len(raw) < 4 {
		return Row{}, fmt.Errorf("%w: want 4 fields, got %d", ErrMalformedRow, len(raw))
	}

	rank, err := strconv.Atoi(raw[0])
	if err != nil {
		return Row{}, fmt.Errorf("%w: rank %q", ErrMalformedRow, raw[0])
	}
	id, err := strconv.Atoi(raw[1])
	if err != nil {
		return Row{}, fmt.Errorf("%w: id %q", ErrMalformedRow, raw[1])
	}
	score, err := strconv.ParseFloat(raw[3], 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: score %q", ErrMalformedRow, raw[3])
	}

	return Row{Rank: rank, ID: id, FileName: raw[2], Score: score}, nil
}

// Load reads every row of a selection file. The first malformed row aborts the
// load. Any failure is wrapped in ErrUnavailable.
func Load(ctx context.Context, path string) ([]Row, error) {
	raws, err := Parse(ctx, path, csv.ResultDelimiter)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, path, err)
	}

	rows := make([]Row, len(raws))
	for i, raw := range raws {
		row, err := raw.ToRow()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: row %d: %w", ErrUnavailable, path, i+1, err)
		}
		rows[i] = row
	}

	log.Debug().Str("path", path).Int("rows", len(rows)).Msg("loaded selections")
	return rows, nil
}
