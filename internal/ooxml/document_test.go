// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ooxml

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-utils/internal/testsupport"
)

func TestOpen_NotADocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("hello.txt")
	require.NoError(t, err)
	_, _ = w.Write([]byte("hi"))
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotDocument)
}

func TestOpen_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening ZIP archive")
}

func TestParagraphs(t *testing.T) {
	b := testsupport.NewDocx(t).
		Style("Heading2", "heading 2").
		Style("ListBullet", "List Bullet").
		Style("Normal", "Normal")
	b.Body(
		testsupport.P("Heading2", "Intro"),
		testsupport.P("ListBullet", "Buy milk"),
		testsupport.P("", "plain"),
		testsupport.P("Unknown", "custom"),
	)

	doc, err := Open(b.Build())
	require.NoError(t, err)
	defer doc.Close()

	paras := doc.Paragraphs()
	require.Len(t, paras, 4)
	assert.Equal(t, Paragraph{Style: "Heading 2", Text: "Intro"}, paras[0])
	assert.Equal(t, "List Bullet", paras[1].Style)
	assert.Equal(t, "Normal", paras[2].Style)
	assert.Equal(t, "Unknown", paras[3].Style)
}

func TestParagraphs_RunContent(t *testing.T) {
	body := `<w:p>
  <w:r><w:t>Hello</w:t><w:tab/><w:t>tab</w:t></w:r>
  <w:hyperlink r:id="rIdLink"><w:r><w:t xml:space="preserve"> linked </w:t></w:r></w:hyperlink>
  <w:r><w:br/><w:t>next</w:t></w:r>
</w:p>`
	doc, err := Open(testsupport.NewDocx(t).Body(body).Build())
	require.NoError(t, err)
	defer doc.Close()

	paras := doc.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "Hello\ttab linked \nnext", paras[0].Text)
}

func TestParagraphs_NormalizesText(t *testing.T) {
	// "e" followed by a combining acute accent composes to U+00E9.
	doc, err := Open(testsupport.NewDocx(t).Body(testsupport.P("", "cafe\u0301")).Build())
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, "caf\u00e9", doc.Paragraphs()[0].Text)
}

func TestImageRefs_Order(t *testing.T) {
	b := testsupport.NewDocx(t)
	a := b.Image("a.png", "image/png", []byte("A"))
	c := b.Image("c.png", "image/png", []byte("C"))
	d := b.Image("d.jpeg", "image/jpeg", []byte("D"))
	alt := `<w:p><w:r><mc:AlternateContent><mc:Choice Requires="wps">` + testsupport.Drawing(d) +
		`</mc:Choice><mc:Fallback><w:pict/></mc:Fallback></mc:AlternateContent></w:r></w:p>`
	b.Body(
		testsupport.Tbl([]string{testsupport.P("", "cell", c)}),
		testsupport.P("", "first", a),
		alt,
	)

	doc, err := Open(b.Build())
	require.NoError(t, err)
	defer doc.Close()

	// Paragraphs come before tables regardless of source order.
	assert.Equal(t, []string{a, d, c}, doc.ImageRefs())

	tables := doc.Tables()
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Rows, 1)
	require.Len(t, tables[0].Rows[0].Cells, 1)
	assert.Equal(t, "cell", tables[0].Rows[0].Cells[0].Paragraphs[0].Text)
}

func TestImageRefs_NestedDrawings(t *testing.T) {
	b := testsupport.NewDocx(t)
	first := b.Image("a.png", "image/png", []byte("A"))
	second := b.Image("b.png", "image/png", []byte("B"))
	filled := b.Image("c.png", "image/png", []byte("C"))
	b.Body(
		`<w:p><w:r><w:t>group</w:t></w:r><w:r>`+testsupport.AnchoredGroup(first, second)+`</w:r></w:p>`,
		`<w:p><w:r>`+testsupport.ShapeFill(filled)+`</w:r></w:p>`,
	)

	doc, err := Open(b.Build())
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, []string{first, second, filled}, doc.ImageRefs())
	paras := doc.Paragraphs()
	require.Len(t, paras, 2)
	assert.Equal(t, "group", paras[0].Text)
	assert.Equal(t, []string{first, second}, paras[0].Images)
}

func TestParagraphs_SkipsMath(t *testing.T) {
	doc, err := Open(testsupport.NewDocx(t).Body(
		`<w:p><w:r><w:t xml:space="preserve">Energy: </w:t></w:r>` +
			`<m:oMath><m:r><m:t>E = mc2</m:t></m:r></m:oMath></w:p>`,
	).Build())
	require.NoError(t, err)
	defer doc.Close()

	paras := doc.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "Energy: ", paras[0].Text)
}

func TestResolveImage(t *testing.T) {
	b := testsupport.NewDocx(t)
	png := b.Image("image1.png", "image/png", []byte("PNGDATA"))
	jpg := b.Image("image2.jpeg", "", []byte("JPGDATA"))
	b.Relationship("rIdExt", "https://example.com/x.png", "External")
	b.Relationship("rIdGone", "media/missing.png", "")

	doc, err := Open(b.Build())
	require.NoError(t, err)
	defer doc.Close()

	part, err := doc.ResolveImage(png)
	require.NoError(t, err)
	assert.Equal(t, Part{Name: "word/media/image1.png", ContentType: "image/png", Data: []byte("PNGDATA")}, part)

	// No override: the Default entry for the extension applies.
	part, err = doc.ResolveImage(jpg)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", part.ContentType)

	_, err = doc.ResolveImage("rIdNope")
	assert.ErrorIs(t, err, ErrRelationshipNotFound)

	_, err = doc.ResolveImage("rIdExt")
	assert.ErrorIs(t, err, ErrExternalTarget)

	_, err = doc.ResolveImage("rIdGone")
	assert.ErrorIs(t, err, ErrPartNotFound)
}

func TestContentType_Fallback(t *testing.T) {
	doc, err := Open(testsupport.NewDocx(t).Build())
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, "image/gif", doc.ContentType("word/media/anim.gif"))
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		base, target, want string
	}{
		{"word", "media/image1.png", "word/media/image1.png"},
		{"word", "../media/image1.png", "media/image1.png"},
		{"word", "/word/media/x.png", "word/media/x.png"},
		{"", "word/document.xml", "word/document.xml"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveTarget(tt.base, tt.target), "%s + %s", tt.base, tt.target)
	}
}

func TestUIStyleName(t *testing.T) {
	assert.Equal(t, "Heading 1", uiStyleName("heading 1"))
	assert.Equal(t, "Heading 3", uiStyleName("Heading 3"))
	assert.Equal(t, "Caption", uiStyleName("caption"))
	assert.Equal(t, "List Number", uiStyleName("List Number"))
	assert.Equal(t, "", uiStyleName(""))
}
