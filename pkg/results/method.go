// Package results locates and parses the ranked selection files an outlier
// detection run writes for each configured method.
package results

import (
	"path/filepath"
	"strings"

	"github.com/hed1ad/doravis/pkg/config"
)

const (
	// tokenSeparator joins the method name and its key=value tokens.
	tokenSeparator = "-"
	filePrefix     = "selections-"
	fileSuffix     = ".csv"
)

// DirName derives the result directory of a method: its name followed by one
// key=value token per parameter, in configuration order, joined with "-".
func DirName(m config.Method) string {
	tokens := make([]string, 0, len(m.Params)+1)
	tokens = append(tokens, m.Name)
	for _, p := range m.Params {
		tokens = append(tokens, p.Key+"="+p.Value)
	}
	return strings.Join(tokens, tokenSeparator)
}

// FileName returns the name of the selection file written for method name.
func FileName(name string) string {
	return filePrefix + name + fileSuffix
}

// Resolve returns the path of the selection file for m under outDir. It does
// not touch the filesystem.
func Resolve(outDir string, m config.Method) string {
	return filepath.Join(outDir, DirName(m), FileName(m.Name))
}
