// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// EncoderBackend identifies the external WebP encoder.
type EncoderBackend string

const (
	// EncoderAuto picks the first available backend (ffmpeg, then cwebp).
	EncoderAuto   EncoderBackend = ""
	EncoderFFmpeg EncoderBackend = "ffmpeg"
	EncoderCWebP  EncoderBackend = "cwebp"
)

// DefaultQuality is the WebP quality the CLI uses when none is configured.
const DefaultQuality = 80

// WebPConfig holds settings for the WebP batch converter.
type WebPConfig struct {
	// Dir is the directory scanned for images (default "public/pic").
	Dir string `json:"dir" yaml:"dir"`

	// Quality is the encoder quality, 0-100 (default 80).
	Quality int `json:"quality" yaml:"quality"`

	// Encoder selects the backend; empty means auto-detect.
	Encoder EncoderBackend `json:"encoder" yaml:"encoder"`
}

// Validate checks the converter settings.
func (c WebPConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Quality, validation.Min(0), validation.Max(100)),
		validation.Field(&c.Encoder, validation.In(EncoderFFmpeg, EncoderCWebP)),
	)
}

// ExtractionStrategy selects how images are pulled out of a DOCX.
type ExtractionStrategy string

const (
	// StrategyStructural follows drawing relationship ids paragraph by paragraph.
	StrategyStructural ExtractionStrategy = "structural"
	// StrategyArchive copies every word/media/ entry of the ZIP container.
	StrategyArchive ExtractionStrategy = "archive"
)

// DefaultLinkPrefix is the relative directory used in Markdown image links.
const DefaultLinkPrefix = "pic"

// DocxConfig holds settings for DOCX-to-Markdown conversion.
type DocxConfig struct {
	// Document is the input .docx path.
	Document string `json:"document" yaml:"document"`

	// MarkdownPath is the output Markdown file.
	MarkdownPath string `json:"markdown_path" yaml:"markdown_path"`

	// ImagesDir is the directory extracted images are written to.
	ImagesDir string `json:"images_dir" yaml:"images_dir"`

	// LinkPrefix is prepended to image file names in Markdown links (default "pic").
	LinkPrefix string `json:"link_prefix" yaml:"link_prefix"`

	// Strategy chooses where image bytes come from (default structural).
	Strategy ExtractionStrategy `json:"strategy" yaml:"strategy"`

	// Manifest, when set, receives a YAML list of the extracted images.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`
}

// Validate checks the conversion settings.
func (c DocxConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Document, validation.Required),
		validation.Field(&c.MarkdownPath, validation.Required),
		validation.Field(&c.ImagesDir, validation.Required),
		validation.Field(&c.Strategy, validation.In(StrategyStructural, StrategyArchive)),
	)
}

// ImagesConfig holds settings for image-only extraction.
type ImagesConfig struct {
	Document  string             `json:"document" yaml:"document"`
	ImagesDir string             `json:"images_dir" yaml:"images_dir"`
	Strategy  ExtractionStrategy `json:"strategy" yaml:"strategy"`
	Manifest  string             `json:"manifest,omitempty" yaml:"manifest,omitempty"`
}

// Validate checks the extraction settings.
func (c ImagesConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Document, validation.Required),
		validation.Field(&c.ImagesDir, validation.Required),
		validation.Field(&c.Strategy, validation.In(StrategyStructural, StrategyArchive)),
	)
}
