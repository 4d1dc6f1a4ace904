package config

import (
	"os"
)

// Report is the outcome of checking a Config against the local filesystem.
type Report struct {
	Loader        LoaderKind
	LoaderErr     error
	DataRootFound bool
	OutDirFound   bool
}

// OK reports whether every check passed and results can be loaded.
func (r Report) OK() bool {
	return r.LoaderErr == nil && r.DataRootFound && r.OutDirFound
}

// Validate checks that the data loader is supported and that the data root and
// output directory exist. A failed check is not an error: callers are expected
// to ask for a corrected path and validate again.
func (c *Config) Validate() Report {
	kind, err := c.LoaderKind()
	return Report{
		Loader:        kind,
		LoaderErr:     err,
		DataRootFound: exists(c.DataToScore),
		OutDirFound:   isDir(c.OutDir),
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
