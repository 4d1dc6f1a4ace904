// Package config loads DORA run configurations and checks that the paths they
// reference can be used by the visualizer.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingKey is returned when a required configuration key is absent.
	ErrMissingKey = errors.New("missing required key")

	// ErrUnsupportedLoader is returned when data_loader.name names no known loader.
	ErrUnsupportedLoader = errors.New("unsupported data loader")
)

// LoaderKind identifies how scored items are stored on disk.
type LoaderKind int

const (
	// LoaderUnknown is the zero value and never valid.
	LoaderUnknown LoaderKind = iota
	// LoaderImage reads one image file per result row from a directory.
	LoaderImage
	// LoaderFeatureVector reads a numeric block and its column axis from an HDF5 file.
	LoaderFeatureVector
	// LoaderTimeSeries reads a delimited file whose first column is a row index.
	LoaderTimeSeries
)

var loaderNames = map[string]LoaderKind{
	"image":          LoaderImage,
	"image_dir":      LoaderImage,
	"feature-vector": LoaderFeatureVector,
	"feature_vector": LoaderFeatureVector,
	"featurevector":  LoaderFeatureVector,
	"catalog":        LoaderFeatureVector,
	"time-series":    LoaderTimeSeries,
	"time_series":    LoaderTimeSeries,
	"timeseries":     LoaderTimeSeries,
	"time series":    LoaderTimeSeries,
}

// ParseLoaderKind matches name case-insensitively against the supported loaders.
func ParseLoaderKind(name string) (LoaderKind, error) {
	kind, ok := loaderNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return LoaderUnknown, fmt.Errorf("%w: %q", ErrUnsupportedLoader, name)
	}
	return kind, nil
}

// String returns the canonical loader name.
func (k LoaderKind) String() string {
	switch k {
	case LoaderImage:
		return "image"
	case LoaderFeatureVector:
		return "feature-vector"
	case LoaderTimeSeries:
		return "time-series"
	default:
		return "unknown"
	}
}

// Param is one key=value pair of a method's parameters.
type Param struct {
	Key   string
	Value string
}

// Method is one configured outlier-detection run, with parameters in file order.
type Method struct {
	Name   string
	Params []Param
}

// Config is a parsed DORA configuration. It is not modified after Load.
type Config struct {
	// LoaderName is data_loader.name exactly as written.
	LoaderName string
	// DataToScore is the data root: an image directory, an HDF5 file or a CSV file.
	DataToScore string
	// OutDir holds one result directory per method.
	OutDir string
	// Methods preserves the order of the outlier_detection mapping.
	Methods []Method
}

type rawConfig struct {
	DataLoader struct {
		Name string `yaml:"name"`
	} `yaml:"data_loader"`
	DataToScore      string    `yaml:"data_to_score"`
	OutDir           string    `yaml:"out_dir"`
	OutlierDetection yaml.Node `yaml:"outlier_detection"`
}

// Load reads and parses the YAML configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if raw.DataLoader.Name == "" {
		return nil, fmt.Errorf("%w: data_loader.name", ErrMissingKey)
	}
	if raw.DataToScore == "" {
		return nil, fmt.Errorf("%w: data_to_score", ErrMissingKey)
	}
	if raw.OutDir == "" {
		return nil, fmt.Errorf("%w: out_dir", ErrMissingKey)
	}

	methods, err := parseMethods(&raw.OutlierDetection)
	if err != nil {
		return nil, err
	}

	return &Config{
		LoaderName:  raw.DataLoader.Name,
		DataToScore: raw.DataToScore,
		OutDir:      raw.OutDir,
		Methods:     methods,
	}, nil
}

// parseMethods walks the outlier_detection mapping node so that both method
// and parameter order survive decoding.
func parseMethods(node *yaml.Node) ([]Method, error) {
	if node.Kind == 0 || len(node.Content) == 0 {
		return nil, fmt.Errorf("%w: outlier_detection", ErrMissingKey)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("outlier_detection must be a mapping (line %d)", node.Line)
	}

	methods := make([]Method, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		params, err := parseParams(name, node.Content[i+1])
		if err != nil {
			return nil, err
		}
		methods = append(methods, Method{Name: name, Params: params})
	}
	return methods, nil
}

func parseParams(method string, node *yaml.Node) ([]Param, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" || node.Value == "" {
			return nil, nil
		}
		return nil, fmt.Errorf("parameters of method %q must be a mapping (line %d)", method, node.Line)
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("parameters of method %q must be a mapping (line %d)", method, node.Line)
	}

	params := make([]Param, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("parameter %s.%s must be a scalar (line %d)", method, key.Value, val.Line)
		}
		params = append(params, Param{Key: key.Value, Value: val.Value})
	}
	return params, nil
}

// Method returns the configured method with the given name.
func (c *Config) Method(name string) (Method, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// MethodNames returns method names in configuration order.
func (c *Config) MethodNames() []string {
	names := make([]string, len(c.Methods))
	for i, m := range c.Methods {
		names[i] = m.Name
	}
	return names
}

// LoaderKind resolves LoaderName.
func (c *Config) LoaderKind() (LoaderKind, error) {
	return ParseLoaderKind(c.LoaderName)
}

// WithDataRoot returns a copy of c pointing at a different data root.
func (c *Config) WithDataRoot(path string) *Config {
	cp := *c
	cp.DataToScore = path
	return &cp
}

// WithOutDir returns a copy of c pointing at a different output directory.
func (c *Config) WithOutDir(path string) *Config {
	cp := *c
	cp.OutDir = path
	return &cp
}
