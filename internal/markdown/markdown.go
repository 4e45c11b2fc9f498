// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown converts .docx documents into Markdown. Top-level
// paragraphs are rendered first, then table cells; embedded images are
// written next to the Markdown and linked inline.
package markdown

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/doc-utils/internal/images"
	"github.com/pdiddy/doc-utils/internal/ooxml"
	"github.com/pdiddy/doc-utils/pkg/types"
)

// ErrMissingInput is returned when the document does not exist.
var ErrMissingInput = errors.New("input not found")

const (
	headingPrefix = "Heading"
	listBullet    = "List Bullet"
	listNumber    = "List Number"
)

// HeadingLevel returns the Markdown heading level for a style name that
// starts with "Heading": the number the name ends with ("Heading 2" and
// "Heading2" both give 2), or 1 when there is none.
func HeadingLevel(style string) int {
	style = strings.TrimRightFunc(style, unicode.IsSpace)
	i := strings.LastIndexFunc(style, func(r rune) bool { return !unicode.IsDigit(r) })
	n, err := strconv.Atoi(style[i+1:])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// FormatParagraph renders one paragraph's text under its style. It returns
// "" when the text is blank.
func FormatParagraph(style, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(style, headingPrefix):
		return strings.Repeat("#", HeadingLevel(style)) + " " + text
	case style == listBullet:
		return "- " + text
	case style == listNumber:
		// Ordinals are not tracked; renderers renumber "1." items.
		return "1. " + text
	default:
		return text
	}
}

// ImageLink returns the Markdown image line for a written file.
func ImageLink(prefix, name string) string {
	if prefix == "" {
		return fmt.Sprintf("![image](%s)", name)
	}
	return fmt.Sprintf("![image](%s)", path.Join(prefix, name))
}

// Join assembles blocks into a Markdown document: each block on its own
// line, blocks separated by a blank line, with a trailing newline.
func Join(blocks []string) string {
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// Renderer walks an open document and produces Markdown blocks. Images are
// handed to Sink; a drawing the sink rejects is logged to Log and left out.
type Renderer struct {
	Sink       images.Sink
	LinkPrefix string
	Log        io.Writer

	blocks   []string
	images   []types.ExtractedImage
	failures int
}

// Render returns the blocks for doc in walk order.
func (r *Renderer) Render(doc *ooxml.Document) []string {
	if r.Log == nil {
		r.Log = io.Discard
	}
	r.blocks = nil
	r.images = nil
	r.failures = 0

	for _, p := range doc.Paragraphs() {
		r.paragraph(doc, p, true)
	}
	for _, t := range doc.Tables() {
		for _, row := range t.Rows {
			for _, cell := range row.Cells {
				for _, p := range cell.Paragraphs {
					r.paragraph(doc, p, false)
				}
			}
		}
	}
	return r.blocks
}

// Images returns the images linked by the last Render.
func (r *Renderer) Images() []types.ExtractedImage {
	return r.images
}

// Failures returns how many drawings the last Render could not link.
func (r *Renderer) Failures() int {
	return r.failures
}

func (r *Renderer) paragraph(doc *ooxml.Document, p ooxml.Paragraph, styled bool) {
	style := p.Style
	if !styled {
		style = ""
	}
	if line := FormatParagraph(style, p.Text); line != "" {
		r.blocks = append(r.blocks, line)
	}

	for _, ref := range p.Images {
		img, err := r.Sink.Save(doc, ref)
		if err != nil {
			fmt.Fprintf(r.Log, "failed:  image %s (%v)\n", ref, err)
			r.failures++
			continue
		}
		r.images = append(r.images, img)
		r.blocks = append(r.blocks, ImageLink(r.LinkPrefix, img.Name))
	}
}

// Result holds the outcome of converting one document.
type Result struct {
	MarkdownPath string
	Blocks       []string
	Images       []types.ExtractedImage
	// ImageFailures counts drawings that produced no image.
	ImageFailures int
}

// ConvertFile converts cfg.Document into cfg.MarkdownPath, writing images
// into cfg.ImagesDir. Nothing is created when the document is missing.
func ConvertFile(cfg types.DocxConfig, w io.Writer) (Result, error) {
	if w == nil {
		w = io.Discard
	}
	if _, err := os.Stat(cfg.Document); err != nil {
		if os.IsNotExist(err) {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingInput, cfg.Document)
		}
		return Result{}, fmt.Errorf("reading %s: %w", cfg.Document, err)
	}
	switch cfg.Strategy {
	case types.StrategyStructural, types.StrategyArchive, "":
	default:
		return Result{}, fmt.Errorf("unknown extraction strategy %q", cfg.Strategy)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.MarkdownPath), 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.MkdirAll(cfg.ImagesDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating images directory: %w", err)
	}

	var sink images.Sink = images.NewWriter(cfg.ImagesDir, w)
	if cfg.Strategy == types.StrategyArchive {
		extracted, err := images.ArchiveExtractor{}.Extract(cfg.Document, cfg.ImagesDir, w)
		if err != nil {
			return Result{}, err
		}
		sink = images.NewArchiveIndex(extracted.Images)
	}

	doc, err := ooxml.Open(cfg.Document)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", cfg.Document, err)
	}
	defer doc.Close()

	prefix := cfg.LinkPrefix
	if prefix == "" {
		prefix = types.DefaultLinkPrefix
	}
	r := &Renderer{Sink: sink, LinkPrefix: prefix, Log: w}
	blocks := r.Render(doc)

	if err := os.WriteFile(cfg.MarkdownPath, []byte(Join(blocks)), 0o644); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", cfg.MarkdownPath, err)
	}

	result := Result{
		MarkdownPath:  cfg.MarkdownPath,
		Blocks:        blocks,
		Images:        r.Images(),
		ImageFailures: r.Failures(),
	}
	fmt.Fprintf(w, "\nMarkdown written: %s (%d block(s))\n", result.MarkdownPath, len(blocks))
	fmt.Fprintf(w, "Extracted %d image(s) to %s\n", len(result.Images), cfg.ImagesDir)

	if cfg.Manifest != "" {
		m := images.Manifest{Document: cfg.Document, Strategy: cfg.Strategy, Images: result.Images}
		if m.Strategy == "" {
			m.Strategy = types.StrategyStructural
		}
		if err := images.WriteManifest(cfg.Manifest, m); err != nil {
			return result, fmt.Errorf("writing manifest: %w", err)
		}
	}
	return result, nil
}
