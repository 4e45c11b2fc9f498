// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"archive/zip"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc-utils/pkg/types"
)

// ArchiveExtractor treats the document as an opaque ZIP archive and copies
// every entry under word/media/, in archive order, keeping each entry's
// extension. It makes no use of paragraph structure or relationships.
type ArchiveExtractor struct{}

// Name implements Extractor.
func (ArchiveExtractor) Name() types.ExtractionStrategy { return types.StrategyArchive }

// Extract implements Extractor. Any failure to open or read the archive
// fails the whole run and the returned Result reports no images.
func (ArchiveExtractor) Extract(docPath, outDir string, w io.Writer) (Result, error) {
	if err := checkInput(docPath); err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", outDir, err)
	}

	zr, err := zip.OpenReader(docPath)
	if err != nil {
		return Result{}, fmt.Errorf("opening ZIP archive %s: %w", docPath, err)
	}
	defer zr.Close()

	var result Result
	for _, f := range zr.File {
		if !IsMediaEntry(f.Name) {
			continue
		}
		ext := path.Ext(f.Name)
		name := FileName(result.Count(), ext)
		dst := filepath.Join(outDir, name)

		size, err := copyEntry(f, dst)
		if err != nil {
			return Result{}, fmt.Errorf("extracting %s: %w", f.Name, err)
		}

		result.Images = append(result.Images, types.ExtractedImage{
			Index:       result.Count(),
			Name:        name,
			Path:        dst,
			Source:      f.Name,
			ContentType: mime.TypeByExtension(strings.ToLower(ext)),
			Size:        size,
		})
		fmt.Fprintf(w, "saved image: %s (%s)\n", name, f.Name)
	}

	fmt.Fprintf(w, "\nExtracted %d image(s) to %s\n", result.Count(), outDir)
	return result, nil
}

// IsMediaEntry reports whether an archive entry name is a file stored
// under word/media/.
func IsMediaEntry(name string) bool {
	return strings.Contains(name, MediaPrefix) && !strings.HasSuffix(name, "/")
}

func copyEntry(f *zip.File, dst string) (int64, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, rc)
	if err != nil {
		out.Close()
		return n, err
	}
	return n, out.Close()
}
