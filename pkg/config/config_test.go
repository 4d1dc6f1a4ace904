package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
data_loader:
  name: Image
  params:
data_to_fit: none
data_to_score: /data/images
zscore_normalization: False
out_dir: /data/out
features:
  raw_values:
top_n: None
outlier_detection:
  random:
  demud:
    k: 5
    all_dims: true
  iforest:
    n_trees: 100
    contamination: 0.1
results:
  save_scores:
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "Image", cfg.LoaderName)
	assert.Equal(t, "/data/images", cfg.DataToScore)
	assert.Equal(t, "/data/out", cfg.OutDir)
	assert.Equal(t, []string{"random", "demud", "iforest"}, cfg.MethodNames())

	demud, ok := cfg.Method("demud")
	require.True(t, ok)
	assert.Equal(t, []Param{{Key: "k", Value: "5"}, {Key: "all_dims", Value: "true"}}, demud.Params)

	random, ok := cfg.Method("random")
	require.True(t, ok)
	assert.Empty(t, random.Params)

	_, ok = cfg.Method("pca")
	assert.False(t, ok)

	kind, err := cfg.LoaderKind()
	require.NoError(t, err)
	assert.Equal(t, LoaderImage, kind)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "missing loader name",
			doc:     "data_to_score: a\nout_dir: b\noutlier_detection:\n  rx:\n",
			wantErr: ErrMissingKey,
		},
		{
			name:    "missing data_to_score",
			doc:     "data_loader:\n  name: image\nout_dir: b\noutlier_detection:\n  rx:\n",
			wantErr: ErrMissingKey,
		},
		{
			name:    "missing out_dir",
			doc:     "data_loader:\n  name: image\ndata_to_score: a\noutlier_detection:\n  rx:\n",
			wantErr: ErrMissingKey,
		},
		{
			name:    "missing outlier_detection",
			doc:     "data_loader:\n  name: image\ndata_to_score: a\nout_dir: b\n",
			wantErr: ErrMissingKey,
		},
		{
			name:    "empty outlier_detection",
			doc:     "data_loader:\n  name: image\ndata_to_score: a\nout_dir: b\noutlier_detection:\n",
			wantErr: ErrMissingKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("data_loader: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("non-mapping params", func(t *testing.T) {
		doc := "data_loader:\n  name: image\ndata_to_score: a\nout_dir: b\noutlier_detection:\n  rx: [1, 2]\n"
		_, err := Parse([]byte(doc))
		assert.Error(t, err)
	})
}

func TestParseParamValuesAreVerbatim(t *testing.T) {
	doc := `
data_loader:
  name: catalog
data_to_score: a.h5
out_dir: out
outlier_detection:
  lrx:
    k:
    alpha: 0.10
    label: ~
    flag: True
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	lrx, ok := cfg.Method("lrx")
	require.True(t, ok)
	// values keep their source text: no null rendering, no number normalisation
	assert.Equal(t, []Param{
		{Key: "k", Value: ""},
		{Key: "alpha", Value: "0.10"},
		{Key: "label", Value: "~"},
		{Key: "flag", Value: "True"},
	}, lrx.Params)
}

func TestParseLoaderKind(t *testing.T) {
	tests := []struct {
		name string
		want LoaderKind
	}{
		{"image", LoaderImage},
		{" IMAGE ", LoaderImage},
		{"image_dir", LoaderImage},
		{"Catalog", LoaderFeatureVector},
		{"feature-vector", LoaderFeatureVector},
		{"Time series", LoaderTimeSeries},
		{"timeseries", LoaderTimeSeries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLoaderKind(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLoaderKind("raster")
	assert.ErrorIs(t, err, ErrUnsupportedLoader)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dora.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Methods, 3)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	dataRoot := filepath.Join(dir, "images")
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(dataRoot, 0o755))
	require.NoError(t, os.Mkdir(outDir, 0o755))

	cfg := &Config{LoaderName: "image", DataToScore: filepath.Join(dir, "nope"), OutDir: filepath.Join(dir, "nope")}

	report := cfg.Validate()
	assert.NoError(t, report.LoaderErr)
	assert.False(t, report.DataRootFound)
	assert.False(t, report.OutDirFound)
	assert.False(t, report.OK())

	fixed := cfg.WithDataRoot(dataRoot).WithOutDir(outDir)
	assert.True(t, fixed.Validate().OK())
	assert.Equal(t, filepath.Join(dir, "nope"), cfg.DataToScore, "original config must not change")

	bad := fixed.WithDataRoot(dataRoot)
	bad.LoaderName = "raster"
	report = bad.Validate()
	assert.ErrorIs(t, report.LoaderErr, ErrUnsupportedLoader)
	assert.False(t, report.OK())
}
