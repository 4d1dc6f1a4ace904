package h5

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/hdf5"
)

func TestPickKey(t *testing.T) {
	tests := []struct {
		name    string
		groups  []string
		want    string
		wantErr bool
	}{
		{name: "single default group", groups: []string{"df"}, want: "df"},
		{name: "single custom group", groups: []string{"catalog"}, want: "catalog"},
		{name: "default among several", groups: []string{"catalog", "df"}, want: "df"},
		{name: "several without default", groups: []string{"a", "b"}, wantErr: true},
		{name: "no groups", groups: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickKey(tt.groups)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoFrame)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// writeFrame stores a 2x3 row-major block and integer column labels under key.
func writeFrame(t *testing.T, path, key string) {
	t.Helper()
	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	require.NoError(t, err)
	defer f.Close()

	g, err := f.CreateGroup(key)
	require.NoError(t, err)
	defer g.Close()

	values := []float64{1, 2, 3, 4, 5, 6}
	space, err := hdf5.CreateSimpleDataspace([]uint{2, 3}, nil)
	require.NoError(t, err)
	defer space.Close()
	ds, err := g.CreateDataset("block0_values", hdf5.T_NATIVE_DOUBLE, space)
	require.NoError(t, err)
	defer ds.Close()
	require.NoError(t, ds.Write(&values))

	labels := []int64{0, 1, 2}
	axisSpace, err := hdf5.CreateSimpleDataspace([]uint{3}, nil)
	require.NoError(t, err)
	defer axisSpace.Close()
	axis, err := g.CreateDataset("axis0", hdf5.T_NATIVE_INT64, axisSpace)
	require.NoError(t, err)
	defer axis.Close()
	require.NoError(t, axis.Write(&labels))
}

func TestReadBlockCustomKey(t *testing.T) {
	for _, key := range []string{"df", "catalog"} {
		t.Run(key, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "frame.h5")
			writeFrame(t, path, key)

			r, err := NewReader(path)
			require.NoError(t, err)
			defer r.Close()
			assert.Equal(t, key, r.Key())

			block, err := r.ReadBlock()
			require.NoError(t, err)
			assert.Equal(t, []int{2, 3}, block.Dims)
			assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, block.Values)
			assert.Equal(t, []string{"0", "1", "2"}, block.Names)
		})
	}
}
