// Package h5 reads packed numeric blocks from HDF5 files, such as the fixed
// format tables written by pandas.
package h5

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"gonum.org/v1/hdf5"

	dorio "github.com/hed1ad/doravis/pkg/io"
)

// DefaultKey is the frame key preferred when a file holds several groups.
const DefaultKey = "df"

// ErrNoFrame is returned when no top-level group can be read as a frame.
var ErrNoFrame = errors.New("no frame found")

// Reader reads the value block and column axis of one HDF5 file.
type Reader struct {
	file       *hdf5.File
	key        string
	valuesPath string
	axisPath   string
}

// NewReader opens filename read-only and locates the stored frame. A file with
// a single top-level group is read from that group whatever its key, matching
// how pandas reads a file without an explicit key.
func NewReader(filename string) (*Reader, error) {
	file, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}

	groups, err := topLevelGroups(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	key, err := pickKey(groups)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &Reader{
		file:       file,
		key:        key,
		valuesPath: key + "/block0_values",
		axisPath:   key + "/axis0",
	}, nil
}

// Key returns the group the frame is read from.
func (r *Reader) Key() string {
	return r.key
}

func topLevelGroups(file *hdf5.File) ([]string, error) {
	n, err := file.NumObjects()
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	var groups []string
	for i := uint(0); i < n; i++ {
		typ, err := file.ObjectTypeByIndex(i)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if typ != hdf5.H5G_GROUP {
			continue
		}
		name, err := file.ObjectNameByIndex(i)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		groups = append(groups, name)
	}
	return groups, nil
}

// pickKey selects the frame group: the only one, or DefaultKey among several.
func pickKey(groups []string) (string, error) {
	switch len(groups) {
	case 0:
		return "", ErrNoFrame
	case 1:
		return groups[0], nil
	}
	for _, g := range groups {
		if g == DefaultKey {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %d top-level groups %v and none is %q", ErrNoFrame, len(groups), groups, DefaultKey)
}

// ReadBlock loads the whole value block. Names is left nil, together with an
// error wrapping io.ErrAxis, when the axis dataset is missing or not made of
// fixed-length strings; the values are still returned in that case.
func (r *Reader) ReadBlock() (*dorio.Block, error) {
	values, dims, err := r.readValues()
	if err != nil {
		return nil, err
	}

	block := &dorio.Block{Values: values, Dims: dims}
	names, err := r.readAxis()
	if err != nil {
		return block, fmt.Errorf("%w %s: %v", dorio.ErrAxis, r.axisPath, err)
	}
	block.Names = names
	return block, nil
}

// Close releases resources.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

func (r *Reader) readValues() ([]float64, []int, error) {
	ds, err := r.file.OpenDataset(r.valuesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open dataset %s: %w", r.valuesPath, err)
	}
	defer ds.Close()

	space := ds.Space()
	defer space.Close()

	rawDims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, nil, fmt.Errorf("dataset %s: %w", r.valuesPath, err)
	}
	dims := make([]int, len(rawDims))
	for i, d := range rawDims {
		dims[i] = int(d)
	}
	n := space.SimpleExtentNPoints()

	dtype, err := ds.Datatype()
	if err != nil {
		return nil, nil, fmt.Errorf("dataset %s: %w", r.valuesPath, err)
	}
	defer dtype.Close()

	if dtype.Class() != hdf5.T_FLOAT {
		return nil, nil, fmt.Errorf("dataset %s: values are not floating point", r.valuesPath)
	}

	// Dataset.Read converts into the file's own datatype, so the buffer
	// has to match its width.
	switch dtype.Size() {
	case 8:
		values := make([]float64, n)
		if err := ds.Read(&values); err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", r.valuesPath, err)
		}
		return values, dims, nil
	case 4:
		narrow := make([]float32, n)
		if err := ds.Read(&narrow); err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", r.valuesPath, err)
		}
		values := make([]float64, n)
		for i, v := range narrow {
			values[i] = float64(v)
		}
		return values, dims, nil
	default:
		return nil, nil, fmt.Errorf("dataset %s: unsupported float width %d", r.valuesPath, dtype.Size())
	}
}

func (r *Reader) readAxis() ([]string, error) {
	ds, err := r.file.OpenDataset(r.axisPath)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	space := ds.Space()
	defer space.Close()
	n := space.SimpleExtentNPoints()

	dtype, err := ds.Datatype()
	if err != nil {
		return nil, err
	}
	defer dtype.Close()

	switch dtype.Class() {
	case hdf5.T_STRING:
		width := int(dtype.Size())
		if width <= 0 {
			return nil, errors.New("variable length strings are not supported")
		}
		buf := make([]byte, n*width)
		if err := ds.Read(&buf); err != nil {
			return nil, err
		}
		return splitFixed(buf, width), nil
	case hdf5.T_INTEGER:
		// integer column labels, as written for frames without named columns
		width := int(dtype.Size())
		buf := make([]byte, n*width)
		if err := ds.Read(&buf); err != nil {
			return nil, err
		}
		return decodeIntLabels(buf, width)
	default:
		return nil, fmt.Errorf("axis class %v", dtype.Class())
	}
}

// splitFixed cuts a buffer of fixed-width, NUL-padded strings.
func splitFixed(buf []byte, width int) []string {
	names := make([]string, 0, len(buf)/width)
	for off := 0; off+width <= len(buf); off += width {
		names = append(names, string(bytes.TrimRight(buf[off:off+width], "\x00 ")))
	}
	return names
}

func decodeIntLabels(buf []byte, width int) ([]string, error) {
	names := make([]string, 0, len(buf)/width)
	for off := 0; off+width <= len(buf); off += width {
		var v int64
		switch width {
		case 8:
			v = int64(binary.LittleEndian.Uint64(buf[off:]))
		case 4:
			v = int64(int32(binary.LittleEndian.Uint32(buf[off:])))
		default:
			return nil, fmt.Errorf("unsupported integer width %d", width)
		}
		names = append(names, fmt.Sprint(v))
	}
	return names, nil
}
