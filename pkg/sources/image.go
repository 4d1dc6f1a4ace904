package sources

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hed1ad/doravis/pkg/config"
	"github.com/hed1ad/doravis/pkg/results"
)

// ImageSource resolves rows to image files under a root directory.
type ImageSource struct {
	root string
}

// NewImageSource returns a source reading images relative to root.
func NewImageSource(root string) *ImageSource {
	return &ImageSource{root: root}
}

// Kind implements Source.
func (s *ImageSource) Kind() config.LoaderKind {
	return config.LoaderImage
}

// FeatureNames implements Source. Images carry no named features.
func (s *ImageSource) FeatureNames() []string {
	return nil
}

// Resolve reads root/row.FileName and returns it base64 encoded.
func (s *ImageSource) Resolve(row results.Row) (Feature, error) {
	data, err := os.ReadFile(filepath.Join(s.root, row.FileName))
	if err != nil {
		return Feature{}, fmt.Errorf("read image for rank %d: %w", row.Rank, err)
	}
	return Feature{
		ImageData: base64.StdEncoding.EncodeToString(data),
		MIMEType:  http.DetectContentType(data),
	}, nil
}
