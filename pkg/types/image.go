// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared records and configuration for the doc-utils
// commands: WebP batch conversion, DOCX-to-Markdown conversion, and DOCX
// image extraction.
package types

// ConversionStatus indicates the outcome of converting one image to WebP.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// ImageFile describes one raster image handled by the WebP batch converter.
type ImageFile struct {
	// Path is the source image path.
	Path string `json:"path" yaml:"path"`

	// OutputPath is the .webp path written (or found) for Path.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Format is the lower-cased source extension without the dot (e.g. "png").
	Format string `json:"format" yaml:"format"`

	// InputSize is the source size in bytes before conversion.
	InputSize int64 `json:"input_size" yaml:"input_size"`

	// OutputSize is the WebP size in bytes after conversion.
	OutputSize int64 `json:"output_size" yaml:"output_size"`

	// Width and Height are the source pixel dimensions, zero when the
	// format could not be decoded.
	Width  int `json:"width,omitempty" yaml:"width,omitempty"`
	Height int `json:"height,omitempty" yaml:"height,omitempty"`

	Status ConversionStatus `json:"status" yaml:"status"`
}

// Ratio returns OutputSize / InputSize, or 0 when the input size is unknown.
func (f ImageFile) Ratio() float64 {
	if f.InputSize <= 0 {
		return 0
	}
	return float64(f.OutputSize) / float64(f.InputSize)
}

// ExtractedImage is one image written out of a DOCX document.
type ExtractedImage struct {
	// Index is the per-run sequence number used in the file name.
	Index int `json:"index" yaml:"index"`

	// Name is the output file name (e.g. "history_0.png").
	Name string `json:"name" yaml:"name"`

	// Path is the full output path.
	Path string `json:"path" yaml:"path"`

	// Source is the archive entry the bytes came from (e.g. "word/media/image1.png").
	Source string `json:"source" yaml:"source"`

	// RelationshipID is the r:embed id that referenced the image, empty for
	// images found by scanning the archive.
	RelationshipID string `json:"relationship_id,omitempty" yaml:"relationship_id,omitempty"`

	// ContentType is the declared content type of the source part.
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`

	// Size is the number of bytes written.
	Size int64 `json:"size" yaml:"size"`
}
