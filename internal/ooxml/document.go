// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ooxml reads the parts of a WordprocessingML (.docx) package that
// the Markdown converter needs: paragraphs and tables of the main document,
// paragraph style names, and image parts referenced by relationship id.
package ooxml

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

const (
	contentTypesPart = "[Content_Types].xml"
	packageRelsPart  = "_rels/.rels"
	defaultMainPart  = "word/document.xml"
	stylesPart       = "word/styles.xml"

	// defaultStyleName is used for paragraphs without w:pStyle when
	// styles.xml declares no default paragraph style.
	defaultStyleName = "Normal"
)

var (
	// ErrNotDocument is returned when the archive has no main document part.
	ErrNotDocument = errors.New("not a wordprocessing document")

	// ErrRelationshipNotFound is returned for an r:embed id missing from
	// the main part's relationship table.
	ErrRelationshipNotFound = errors.New("relationship not found")

	// ErrExternalTarget is returned when a relationship points outside the package.
	ErrExternalTarget = errors.New("relationship target is external")

	// ErrPartNotFound is returned when a relationship target is not in the archive.
	ErrPartNotFound = errors.New("part not found")
)

// Document is an open .docx package.
type Document struct {
	zr         *zip.ReadCloser
	files      map[string]*zip.File
	mainPart   string
	types      contentTypesXML
	rels       map[string]relationshipXML
	styleNames map[string]string
	defStyle   string
	body       bodyXML
}

// Part is a resolved package part.
type Part struct {
	// Name is the archive entry name, without a leading slash.
	Name        string
	ContentType string
	Data        []byte
}

// Open opens the .docx at filename and parses its main document,
// relationships, content types and styles. styles.xml is optional.
func Open(filename string) (*Document, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	d := &Document{
		zr:         zr,
		files:      make(map[string]*zip.File, len(zr.File)),
		rels:       map[string]relationshipXML{},
		styleNames: map[string]string{},
		defStyle:   defaultStyleName,
	}
	for _, f := range zr.File {
		d.files[f.Name] = f
	}

	if err := d.load(); err != nil {
		zr.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the underlying archive.
func (d *Document) Close() error {
	if d.zr == nil {
		return nil
	}
	err := d.zr.Close()
	d.zr = nil
	return err
}

func (d *Document) load() error {
	d.mainPart = d.findMainPart()
	if _, ok := d.files[d.mainPart]; !ok {
		return fmt.Errorf("%w: missing %s", ErrNotDocument, d.mainPart)
	}

	if data, err := d.read(contentTypesPart); err == nil {
		if err := xml.Unmarshal(data, &d.types); err != nil {
			return fmt.Errorf("parsing %s: %w", contentTypesPart, err)
		}
	}

	// Relationships are optional: a document without images has none.
	if data, err := d.read(relsPartFor(d.mainPart)); err == nil {
		var rels relationshipsXML
		if err := xml.Unmarshal(data, &rels); err != nil {
			return fmt.Errorf("parsing relationships: %w", err)
		}
		for _, r := range rels.Relationships {
			d.rels[r.ID] = r
		}
	}

	if data, err := d.read(stylesPart); err == nil {
		var styles stylesXML
		if xml.Unmarshal(data, &styles) == nil {
			d.indexStyles(styles)
		}
	}

	data, err := d.read(d.mainPart)
	if err != nil {
		return fmt.Errorf("reading %s: %w", d.mainPart, err)
	}
	var doc documentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", d.mainPart, err)
	}
	d.body = doc.Body
	return nil
}

// findMainPart follows the package officeDocument relationship and falls
// back to word/document.xml.
func (d *Document) findMainPart() string {
	data, err := d.read(packageRelsPart)
	if err != nil {
		return defaultMainPart
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return defaultMainPart
	}
	for _, r := range rels.Relationships {
		if r.Type == relTypeOfficeDocument && r.TargetMode != "External" {
			return resolveTarget("", r.Target)
		}
	}
	return defaultMainPart
}

func (d *Document) indexStyles(styles stylesXML) {
	for _, s := range styles.Styles {
		if s.Type != "" && s.Type != "paragraph" {
			continue
		}
		name := uiStyleName(s.Name.Val)
		if name == "" {
			name = s.StyleID
		}
		d.styleNames[s.StyleID] = name
		if s.Default == "1" || s.Default == "true" {
			d.defStyle = name
		}
	}
}

// uiStyleName maps the lower-case names Word stores for some built-in
// styles ("heading 1") to the names shown in the UI ("Heading 1").
func uiStyleName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "heading"),
		lower == "caption", lower == "header", lower == "footer", lower == "title":
		if name == lower {
			return strings.ToUpper(name[:1]) + name[1:]
		}
	}
	return name
}

// styleName returns the display name of a paragraph style id.
func (d *Document) styleName(id string) string {
	if id == "" {
		return d.defStyle
	}
	if name, ok := d.styleNames[id]; ok {
		return name
	}
	return id
}

func (d *Document) read(name string) ([]byte, error) {
	f, ok := d.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Target returns the archive entry name a relationship id points to.
func (d *Document) Target(relID string) (string, error) {
	rel, ok := d.rels[relID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRelationshipNotFound, relID)
	}
	if strings.EqualFold(rel.TargetMode, "External") {
		return "", fmt.Errorf("%w: %s -> %s", ErrExternalTarget, relID, rel.Target)
	}
	return resolveTarget(path.Dir(d.mainPart), rel.Target), nil
}

// ResolveImage returns the part referenced by relID together with its
// bytes and declared content type.
func (d *Document) ResolveImage(relID string) (Part, error) {
	name, err := d.Target(relID)
	if err != nil {
		return Part{}, err
	}
	data, err := d.read(name)
	if err != nil {
		return Part{}, err
	}
	return Part{
		Name:        name,
		ContentType: d.ContentType(name),
		Data:        data,
	}, nil
}

// ContentType returns the content type declared for the part name: an
// Override entry wins over a Default entry for the extension. Parts with
// neither get "image/<ext>".
func (d *Document) ContentType(name string) string {
	partName := "/" + strings.TrimPrefix(name, "/")
	for _, o := range d.types.Overrides {
		if strings.EqualFold(o.PartName, partName) {
			return o.ContentType
		}
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	for _, def := range d.types.Defaults {
		if strings.EqualFold(def.Extension, ext) {
			return def.ContentType
		}
	}
	return "image/" + ext
}

// relsPartFor returns the relationships part of a part, e.g.
// word/document.xml -> word/_rels/document.xml.rels.
func relsPartFor(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// resolveTarget resolves a relationship target against the directory of
// the source part. Targets starting with "/" are package-absolute.
func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Clean(path.Join(baseDir, target)), "/")
}
