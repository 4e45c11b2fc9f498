// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images extracts embedded images from .docx documents. Two
// strategies implement Extractor: ArchiveExtractor copies every entry
// under word/media/ straight out of the ZIP container, and
// StructuralExtractor follows the drawing relationship ids found in the
// document's paragraphs and tables.
//
// Output files are named history_<n><ext> with n counting from zero on
// every run; files left by earlier runs are overwritten without warning.
package images

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/doc-utils/pkg/types"
)

const (
	// MediaPrefix is the archive path holding embedded media.
	MediaPrefix = "word/media/"

	filePrefix = "history_"
)

// ErrMissingInput is returned when the document does not exist.
var ErrMissingInput = errors.New("input not found")

// Extractor writes the images embedded in a document into outDir.
type Extractor interface {
	// Name returns the strategy name.
	Name() types.ExtractionStrategy

	// Extract writes images to outDir, reporting per-image progress to w.
	Extract(docPath, outDir string, w io.Writer) (Result, error)
}

// Result holds the outcome of an extraction run.
type Result struct {
	Images []types.ExtractedImage
	// Failed counts image references that could not be resolved or written.
	Failed int
}

// Count returns the number of images written.
func (r Result) Count() int {
	return len(r.Images)
}

// New returns the extractor for strategy; empty means structural.
func New(strategy types.ExtractionStrategy) (Extractor, error) {
	switch strategy {
	case types.StrategyStructural, "":
		return StructuralExtractor{}, nil
	case types.StrategyArchive:
		return ArchiveExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extraction strategy %q: use %s or %s",
			strategy, types.StrategyStructural, types.StrategyArchive)
	}
}

// FileName returns the output name for the n-th image. ext includes the
// leading dot and may be empty.
func FileName(n int, ext string) string {
	return fmt.Sprintf("%s%d%s", filePrefix, n, ext)
}

// ExtensionFor derives a file extension from a content type: the part
// after the last "/", with "jpeg" mapped to "jpg". "image/png" -> ".png".
func ExtensionFor(contentType string) string {
	ext := contentType
	if i := strings.LastIndex(ext, "/"); i >= 0 {
		ext = ext[i+1:]
	}
	if ext == "jpeg" {
		ext = "jpg"
	}
	if ext == "" {
		return ""
	}
	return "." + ext
}

// checkInput reports ErrMissingInput before anything is created on disk.
func checkInput(docPath string) error {
	if _, err := os.Stat(docPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingInput, docPath)
		}
		return fmt.Errorf("reading %s: %w", docPath, err)
	}
	return nil
}
