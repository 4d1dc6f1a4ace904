// Package hdf5 registers the feature-vector loader, which reads a packed
// numeric block from an HDF5 file. Import it for its side effect:
//
//	import _ "github.com/hed1ad/doravis/pkg/sources/hdf5"
package hdf5

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hed1ad/doravis/pkg/config"
	"github.com/hed1ad/doravis/pkg/io/h5"
	"github.com/hed1ad/doravis/pkg/sources"
)

func init() {
	sources.Register(config.LoaderFeatureVector, Open)
}

// Open reads the frame stored in the HDF5 file at path.
func Open(path string) (sources.Source, error) {
	r, err := h5.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()
	log.Debug().Str("path", path).Str("key", r.Key()).Msg("reading frame")

	cs, err := sources.NewColumnStore(r)
	if err != nil {
		return nil, err
	}
	return cs, nil
}
