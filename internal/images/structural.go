// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/doc-utils/internal/ooxml"
	"github.com/pdiddy/doc-utils/pkg/types"
)

// ErrNotExtracted is returned by ArchiveIndex for a drawing whose target
// entry was not produced by the archive scan.
var ErrNotExtracted = errors.New("image not extracted")

// Sink turns a drawing's relationship id into an image file on disk.
type Sink interface {
	Save(doc *ooxml.Document, relID string) (types.ExtractedImage, error)
}

// Writer is a Sink that resolves each relationship to its part and writes
// the bytes to dir under the next sequential name. The extension comes
// from the part's content type.
type Writer struct {
	dir    string
	w      io.Writer
	images []types.ExtractedImage
}

// NewWriter returns a Writer numbering files from zero.
func NewWriter(dir string, w io.Writer) *Writer {
	return &Writer{dir: dir, w: w}
}

// Save implements Sink. The counter only advances when a file is written.
func (iw *Writer) Save(doc *ooxml.Document, relID string) (types.ExtractedImage, error) {
	part, err := doc.ResolveImage(relID)
	if err != nil {
		return types.ExtractedImage{}, err
	}

	n := len(iw.images)
	name := FileName(n, ExtensionFor(part.ContentType))
	dst := filepath.Join(iw.dir, name)
	if err := os.WriteFile(dst, part.Data, 0o644); err != nil {
		return types.ExtractedImage{}, fmt.Errorf("writing %s: %w", dst, err)
	}

	img := types.ExtractedImage{
		Index:          n,
		Name:           name,
		Path:           dst,
		Source:         part.Name,
		RelationshipID: relID,
		ContentType:    part.ContentType,
		Size:           int64(len(part.Data)),
	}
	iw.images = append(iw.images, img)
	fmt.Fprintf(iw.w, "saved image: %s (%s)\n", name, relID)
	return img, nil
}

// Images returns the images written so far.
func (iw *Writer) Images() []types.ExtractedImage {
	return iw.images
}

// ArchiveIndex is a Sink over images already copied by ArchiveExtractor:
// it maps a drawing to the file produced for its target entry and writes
// nothing itself.
type ArchiveIndex struct {
	byEntry map[string]types.ExtractedImage
}

// NewArchiveIndex indexes archive-extracted images by source entry.
func NewArchiveIndex(images []types.ExtractedImage) *ArchiveIndex {
	idx := &ArchiveIndex{byEntry: make(map[string]types.ExtractedImage, len(images))}
	for _, img := range images {
		idx.byEntry[img.Source] = img
	}
	return idx
}

// Save implements Sink.
func (a *ArchiveIndex) Save(doc *ooxml.Document, relID string) (types.ExtractedImage, error) {
	entry, err := doc.Target(relID)
	if err != nil {
		return types.ExtractedImage{}, err
	}
	img, ok := a.byEntry[entry]
	if !ok {
		return types.ExtractedImage{}, fmt.Errorf("%w: %s", ErrNotExtracted, entry)
	}
	img.RelationshipID = relID
	return img, nil
}

// StructuralExtractor walks the document's paragraphs, then its tables,
// and writes every image referenced by a drawing. A reference that cannot
// be resolved or written is reported and skipped.
type StructuralExtractor struct{}

// Name implements Extractor.
func (StructuralExtractor) Name() types.ExtractionStrategy { return types.StrategyStructural }

// Extract implements Extractor.
func (StructuralExtractor) Extract(docPath, outDir string, w io.Writer) (Result, error) {
	if err := checkInput(docPath); err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", outDir, err)
	}

	doc, err := ooxml.Open(docPath)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", docPath, err)
	}
	defer doc.Close()

	iw := NewWriter(outDir, w)
	var result Result
	for _, ref := range doc.ImageRefs() {
		if _, err := iw.Save(doc, ref); err != nil {
			fmt.Fprintf(w, "failed:  image %s (%v)\n", ref, err)
			result.Failed++
		}
	}
	result.Images = iw.Images()

	fmt.Fprintf(w, "\nExtracted %d image(s) to %s\n", result.Count(), outDir)
	return result, nil
}
