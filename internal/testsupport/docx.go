// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package testsupport builds on-disk fixtures shared by package tests.
package testsupport

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
 xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"
 xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
 xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
 xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"
 xmlns:wpg="http://schemas.microsoft.com/office/word/2010/wordprocessingGroup"
 xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"
 xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"
 xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">
<w:body>`

const documentFooter = `</w:body>
</w:document>`

type relationship struct {
	id, target, mode string
}

type entry struct {
	name string
	data []byte
}

// DocxBuilder assembles a minimal .docx package for tests.
type DocxBuilder struct {
	t         testing.TB
	body      []string
	styles    map[string]string
	styleIDs  []string
	rels      []relationship
	overrides map[string]string
	entries   []entry
	noRels    bool
}

// NewDocx starts an empty document.
func NewDocx(t testing.TB) *DocxBuilder {
	t.Helper()
	return &DocxBuilder{
		t:         t,
		styles:    map[string]string{},
		overrides: map[string]string{},
	}
}

// Body appends raw body XML fragments (see P, Img and Tbl).
func (b *DocxBuilder) Body(fragments ...string) *DocxBuilder {
	b.body = append(b.body, fragments...)
	return b
}

// Style declares a paragraph style id with its stored name.
func (b *DocxBuilder) Style(id, name string) *DocxBuilder {
	if _, ok := b.styles[id]; !ok {
		b.styleIDs = append(b.styleIDs, id)
	}
	b.styles[id] = name
	return b
}

// Image stores data at word/media/<name>, declares its content type and
// returns the relationship id that references it.
func (b *DocxBuilder) Image(name, contentType string, data []byte) string {
	b.Media(name, data)
	if contentType != "" {
		b.overrides["/word/media/"+name] = contentType
	}
	id := fmt.Sprintf("rId%d", len(b.rels)+100)
	b.rels = append(b.rels, relationship{id: id, target: "media/" + name})
	return id
}

// Media stores data at word/media/<name> without any relationship.
func (b *DocxBuilder) Media(name string, data []byte) *DocxBuilder {
	b.entries = append(b.entries, entry{name: "word/media/" + name, data: data})
	return b
}

// Relationship adds a raw relationship; mode may be "External".
func (b *DocxBuilder) Relationship(id, target, mode string) *DocxBuilder {
	b.rels = append(b.rels, relationship{id: id, target: target, mode: mode})
	return b
}

// Entry adds an arbitrary archive entry.
func (b *DocxBuilder) Entry(name string, data []byte) *DocxBuilder {
	b.entries = append(b.entries, entry{name: name, data: data})
	return b
}

// WithoutRelationships omits word/_rels/document.xml.rels.
func (b *DocxBuilder) WithoutRelationships() *DocxBuilder {
	b.noRels = true
	return b
}

// Build writes the package into a temp directory and returns its path.
func (b *DocxBuilder) Build() string {
	b.t.Helper()
	path := filepath.Join(b.t.TempDir(), "test.docx")
	b.WriteTo(path)
	return path
}

// WriteTo writes the package to path.
func (b *DocxBuilder) WriteTo(path string) {
	b.t.Helper()

	f, err := os.Create(path)
	if err != nil {
		b.t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	write := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			b.t.Fatalf("creating entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			b.t.Fatalf("writing entry %s: %v", name, err)
		}
	}

	write("[Content_Types].xml", b.contentTypes())
	write("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)
	write("word/document.xml", documentHeader+strings.Join(b.body, "\n")+documentFooter)
	if !b.noRels {
		write("word/_rels/document.xml.rels", b.relationships())
	}
	if len(b.styleIDs) > 0 {
		write("word/styles.xml", b.stylesXML())
	}
	for _, e := range b.entries {
		write(e.name, string(e.data))
	}

	if err := zw.Close(); err != nil {
		b.t.Fatalf("closing zip: %v", err)
	}
}

func (b *DocxBuilder) contentTypes() string {
	var s strings.Builder
	s.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Default Extension="png" ContentType="image/png"/>
  <Default Extension="jpeg" ContentType="image/jpeg"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
`)
	for part, ct := range b.overrides {
		fmt.Fprintf(&s, "  <Override PartName=%q ContentType=%q/>\n", part, ct)
	}
	s.WriteString(`</Types>`)
	return s.String()
}

func (b *DocxBuilder) relationships() string {
	var s strings.Builder
	s.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
`)
	for _, r := range b.rels {
		mode := ""
		if r.mode != "" {
			mode = fmt.Sprintf(" TargetMode=%q", r.mode)
		}
		fmt.Fprintf(&s, `  <Relationship Id=%q Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target=%q%s/>`+"\n",
			r.id, r.target, mode)
	}
	s.WriteString(`</Relationships>`)
	return s.String()
}

func (b *DocxBuilder) stylesXML() string {
	var s strings.Builder
	s.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
`)
	for _, id := range b.styleIDs {
		fmt.Fprintf(&s, `  <w:style w:type="paragraph" w:styleId=%q><w:name w:val=%q/></w:style>`+"\n", id, b.styles[id])
	}
	s.WriteString(`</w:styles>`)
	return s.String()
}

// P returns a paragraph with an optional style id, one text run, and one
// drawing run per relationship id.
func P(styleID, text string, relIDs ...string) string {
	var s strings.Builder
	s.WriteString("<w:p>")
	if styleID != "" {
		fmt.Fprintf(&s, `<w:pPr><w:pStyle w:val=%q/></w:pPr>`, styleID)
	}
	if text != "" {
		fmt.Fprintf(&s, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, escape(text))
	}
	for _, id := range relIDs {
		s.WriteString("<w:r>" + Drawing(id) + "</w:r>")
	}
	s.WriteString("</w:p>")
	return s.String()
}

// Drawing returns an inline <w:drawing> referencing relID.
func Drawing(relID string) string {
	return `<w:drawing><wp:inline><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">` +
		`<pic:pic><pic:blipFill><a:blip r:embed="` + relID + `"/></pic:blipFill></pic:pic>` +
		`</a:graphicData></a:graphic></wp:inline></w:drawing>`
}

// AnchoredGroup returns a floating <w:drawing> whose pictures sit inside a
// group shape, one per relationship id.
func AnchoredGroup(relIDs ...string) string {
	var s strings.Builder
	s.WriteString(`<w:drawing><wp:anchor><a:graphic><a:graphicData uri="http://schemas.microsoft.com/office/word/2010/wordprocessingGroup"><wpg:wgp>`)
	for _, id := range relIDs {
		s.WriteString(`<pic:pic><pic:blipFill><a:blip r:embed="` + id + `"/></pic:blipFill></pic:pic>`)
	}
	s.WriteString(`</wpg:wgp></a:graphicData></a:graphic></wp:anchor></w:drawing>`)
	return s.String()
}

// ShapeFill returns an inline <w:drawing> of a shape filled with the
// picture referenced by relID.
func ShapeFill(relID string) string {
	return `<w:drawing><wp:inline><a:graphic><a:graphicData uri="http://schemas.microsoft.com/office/word/2010/wordprocessingShape">` +
		`<wps:wsp><wps:spPr><a:blipFill><a:blip r:embed="` + relID + `"/></a:blipFill></wps:spPr></wps:wsp>` +
		`</a:graphicData></a:graphic></wp:inline></w:drawing>`
}

// Tbl returns a table whose cells each contain the given body XML.
func Tbl(rows ...[]string) string {
	var s strings.Builder
	s.WriteString("<w:tbl>")
	for _, row := range rows {
		s.WriteString("<w:tr>")
		for _, cell := range row {
			s.WriteString("<w:tc>" + cell + "</w:tc>")
		}
		s.WriteString("</w:tr>")
	}
	s.WriteString("</w:tbl>")
	return s.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
