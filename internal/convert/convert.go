// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert re-encodes a directory of raster images as WebP through
// an external encoder, deleting each source once its WebP exists.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/doc-utils/pkg/types"
)

// OutputExt is the extension written next to every converted source.
const OutputExt = ".webp"

// ErrMissingInput is returned when the image directory does not exist.
var ErrMissingInput = errors.New("input not found")

// recognized lists the source extensions picked up by ScanImages (lower case).
var recognized = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
}

// Encoder re-encodes one image as WebP. encoder.Encoder satisfies it.
type Encoder interface {
	Encode(in, out string, quality int) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
	Files     []types.ImageFile
}

// Total returns the total number of images processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any image failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// IsRecognized reports whether name has one of the convertible extensions.
// The check is case-insensitive.
func IsRecognized(name string) bool {
	return recognized[strings.ToLower(filepath.Ext(name))]
}

// OutputPath returns the .webp path that corresponds to src.
func OutputPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + OutputExt
}

// ScanImages lists the convertible images directly inside dir, sorted by
// name. Subdirectories are ignored.
func ScanImages(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory %s", ErrMissingInput, dir)
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsRecognized(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ConvertImage converts the image at src to WebP. n is the 1-based position
// of src in the batch and only appears in the status line written to w.
//
// An existing .webp output means the image is skipped and src is left alone,
// without checking that the output is valid or newer. On encoder failure
// any partial output is removed and src is kept. src is deleted only after
// the encoder succeeded and the output could be read back.
func ConvertImage(enc Encoder, src string, n, quality int, w io.Writer) types.ImageFile {
	name := filepath.Base(src)
	file := types.ImageFile{
		Path:       src,
		OutputPath: OutputPath(src),
		Format:     strings.TrimPrefix(strings.ToLower(filepath.Ext(src)), "."),
	}

	if _, err := os.Stat(file.OutputPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (%s already exists)\n", name, filepath.Base(file.OutputPath))
		file.Status = types.ConversionSkipped
		return file
	}

	in, err := os.Stat(src)
	if err != nil {
		fmt.Fprintf(w, "failed:  %d. %s (%v)\n", n, name, err)
		file.Status = types.ConversionFailed
		return file
	}
	file.InputSize = in.Size()
	if width, height, err := Dimensions(src); err == nil {
		file.Width, file.Height = width, height
	}

	if err := enc.Encode(src, file.OutputPath, quality); err != nil {
		discard(file.OutputPath)
		fmt.Fprintf(w, "failed:  %d. %s (%v)\n", n, name, err)
		file.Status = types.ConversionFailed
		return file
	}

	out, err := os.Stat(file.OutputPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %d. %s (encoder produced no output)\n", n, name)
		file.Status = types.ConversionFailed
		return file
	}
	file.OutputSize = out.Size()
	file.Status = types.ConversionDone

	fmt.Fprintf(w, "converted: %d. %s (%s%s -> %s, %.0f%%)\n", n, name, sizePrefix(file),
		humanize.Bytes(uint64(file.InputSize)), humanize.Bytes(uint64(file.OutputSize)),
		file.Ratio()*100)

	if err := os.Remove(src); err != nil {
		fmt.Fprintf(w, "warning: could not remove %s: %v\n", name, err)
	}
	return file
}

// ConvertBatch converts the given images in order, printing per-file status
// to w and returning a summary. Failures never stop the batch.
func ConvertBatch(enc Encoder, paths []string, quality int, w io.Writer) BatchResult {
	var result BatchResult
	for i, p := range paths {
		file := ConvertImage(enc, p, i+1, quality, w)
		result.Files = append(result.Files, file)
		switch file.Status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertDir scans cfg.Dir and converts every recognized image in it.
// cfg.Quality is passed to the encoder as is, so 0 is a valid setting.
func ConvertDir(enc Encoder, cfg types.WebPConfig, w io.Writer) (BatchResult, error) {
	paths, err := ScanImages(cfg.Dir)
	if err != nil {
		return BatchResult{}, err
	}

	fmt.Fprintf(w, "Found %d image(s) in %s\n\n", len(paths), cfg.Dir)
	return ConvertBatch(enc, paths, cfg.Quality, w), nil
}

// sizePrefix returns "WxH, " for a source whose dimensions were decoded.
func sizePrefix(f types.ImageFile) string {
	if f.Width == 0 || f.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d, ", f.Width, f.Height)
}

func discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not remove partial output %s: %v\n", path, err)
	}
}
