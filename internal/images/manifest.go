// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"archive/zip"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-utils/pkg/types"
)

// Manifest records one extraction run.
type Manifest struct {
	Document string                   `json:"document" yaml:"document"`
	Strategy types.ExtractionStrategy `json:"strategy" yaml:"strategy"`
	Images   []types.ExtractedImage   `json:"images" yaml:"images"`
}

// WriteManifest writes m as YAML to file, creating parent directories.
func WriteManifest(file string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	return os.WriteFile(file, data, 0o644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(file string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(file)
	if err != nil {
		return m, err
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing %s: %w", file, err)
	}
	return m, nil
}

// MediaEntry describes one word/media/ entry of a document archive.
type MediaEntry struct {
	Name           string
	ContentType    string
	Size           uint64
	CompressedSize uint64
}

// ListMedia returns the media entries of the document in archive order.
func ListMedia(docPath string) ([]MediaEntry, error) {
	if err := checkInput(docPath); err != nil {
		return nil, err
	}
	zr, err := zip.OpenReader(docPath)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive %s: %w", docPath, err)
	}
	defer zr.Close()

	var entries []MediaEntry
	for _, f := range zr.File {
		if !IsMediaEntry(f.Name) {
			continue
		}
		entries = append(entries, MediaEntry{
			Name:           f.Name,
			ContentType:    mime.TypeByExtension(strings.ToLower(path.Ext(f.Name))),
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
		})
	}
	return entries, nil
}
