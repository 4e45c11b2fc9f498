// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-utils/internal/images"
	"github.com/pdiddy/doc-utils/internal/testsupport"
	"github.com/pdiddy/doc-utils/pkg/types"
)

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Heading 1", 1},
		{"Heading 2", 2},
		{"Heading 6", 6},
		{"Heading", 1},
		{"Heading Custom", 1},
		{"Heading 0", 1},
		{"Heading2", 2},
		{"Heading 10", 10},
		{"Heading 3 ", 3},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			assert.Equal(t, tt.want, HeadingLevel(tt.style))
		})
	}
}

func TestFormatParagraph(t *testing.T) {
	tests := []struct {
		name  string
		style string
		text  string
		want  string
	}{
		{"heading 2", "Heading 2", "Intro", "## Intro"},
		{"bare heading", "Heading", "Top", "# Top"},
		{"bullet", "List Bullet", "Buy milk", "- Buy milk"},
		{"number", "List Number", "Step", "1. Step"},
		{"normal", "Normal", "Plain text", "Plain text"},
		{"trimmed", "Normal", "  padded \t", "padded"},
		{"blank", "Heading 1", " \n\t ", ""},
		{"title is not a heading", "Title", "Cover", "Cover"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatParagraph(tt.style, tt.text))
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "", Join(nil))
	assert.Equal(t, "a\n", Join([]string{"a"}))
	assert.Equal(t, "# A\n\nb\n\n- c\n", Join([]string{"# A", "b", "- c"}))
}

func TestImageLink(t *testing.T) {
	assert.Equal(t, "![image](pic/history_0.png)", ImageLink("pic", "history_0.png"))
	assert.Equal(t, "![image](../pic/history_1.jpg)", ImageLink("../pic/", "history_1.jpg"))
	assert.Equal(t, "![image](history_2.gif)", ImageLink("", "history_2.gif"))
}

func newConfig(t *testing.T, doc string) types.DocxConfig {
	t.Helper()
	dir := t.TempDir()
	return types.DocxConfig{
		Document:     doc,
		MarkdownPath: filepath.Join(dir, "docs", "out.md"),
		ImagesDir:    filepath.Join(dir, "public", "pic"),
		LinkPrefix:   "pic",
	}
}

func TestConvertFile(t *testing.T) {
	b := testsupport.NewDocx(t).
		Style("Heading2", "heading 2").
		Style("ListBullet", "List Bullet").
		Style("ListNumber", "List Number")
	png := b.Image("image1.png", "image/png", []byte("PNG"))
	jpg := b.Image("image2.jpeg", "image/jpeg", []byte("JPEG"))
	b.Body(
		testsupport.P("Heading2", "Intro"),
		testsupport.P("", "   "),
		testsupport.P("ListBullet", "Buy milk"),
		testsupport.P("ListNumber", "Step one", png),
		testsupport.Tbl(
			[]string{testsupport.P("Heading2", "Cell A"), testsupport.P("", "Cell B")},
			[]string{testsupport.P("", "", jpg)},
		),
	)
	cfg := newConfig(t, b.Build())

	var log bytes.Buffer
	result, err := ConvertFile(cfg, &log)
	require.NoError(t, err)

	want := "## Intro\n\n" +
		"- Buy milk\n\n" +
		"1. Step one\n\n" +
		"![image](pic/history_0.png)\n\n" +
		"Cell A\n\n" +
		"Cell B\n\n" +
		"![image](pic/history_1.jpg)\n"
	data, err := os.ReadFile(cfg.MarkdownPath)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))

	require.Len(t, result.Images, 2)
	assert.Equal(t, 0, result.ImageFailures)
	assert.FileExists(t, filepath.Join(cfg.ImagesDir, "history_0.png"))
	assert.FileExists(t, filepath.Join(cfg.ImagesDir, "history_1.jpg"))
	assert.Contains(t, log.String(), "Extracted 2 image(s)")
}

func TestConvertFile_AnchoredGroupPicture(t *testing.T) {
	b := testsupport.NewDocx(t)
	id := b.Image("image1.png", "image/png", []byte("PNG"))
	b.Body(
		testsupport.P("", "No styles"),
		`<w:p><w:r>`+testsupport.AnchoredGroup(id)+`</w:r></w:p>`,
	)
	cfg := newConfig(t, b.Build())

	result, err := ConvertFile(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ImageFailures)
	require.Len(t, result.Images, 1)

	data, err := os.ReadFile(cfg.MarkdownPath)
	require.NoError(t, err)
	assert.Equal(t, "No styles\n\n![image](pic/history_0.png)\n", string(data))
	assert.FileExists(t, filepath.Join(cfg.ImagesDir, "history_0.png"))
}

func TestConvertFile_BrokenImageSkipped(t *testing.T) {
	b := testsupport.NewDocx(t)
	good := b.Image("image1.png", "image/png", []byte("PNG"))
	b.Relationship("rIdExt", "https://example.com/a.png", "External")
	b.Relationship("rIdGone", "media/gone.png", "")
	b.Body(
		testsupport.P("", "one", "rIdExt"),
		testsupport.P("", "two", "rIdGone"),
		testsupport.P("", "three", "rIdUnknown", good),
	)
	cfg := newConfig(t, b.Build())

	var log bytes.Buffer
	result, err := ConvertFile(cfg, &log)
	require.NoError(t, err)

	assert.Equal(t, 3, result.ImageFailures)
	require.Len(t, result.Images, 1)
	assert.Equal(t, "history_0.png", result.Images[0].Name)

	data, err := os.ReadFile(cfg.MarkdownPath)
	require.NoError(t, err)
	assert.Equal(t, "one\n\ntwo\n\nthree\n\n![image](pic/history_0.png)\n", string(data))
	assert.Contains(t, log.String(), "failed:  image rIdExt")
	assert.Contains(t, log.String(), "failed:  image rIdGone")
}

func TestConvertFile_ArchiveStrategy(t *testing.T) {
	b := testsupport.NewDocx(t)
	b.Media("unused.gif", []byte("GIF"))
	first := b.Image("image1.jpeg", "image/jpeg", []byte("JPEG"))
	b.Body(testsupport.P("", "caption", first))
	cfg := newConfig(t, b.Build())
	cfg.Strategy = types.StrategyArchive
	cfg.Manifest = filepath.Join(t.TempDir(), "manifest.yaml")

	result, err := ConvertFile(cfg, &bytes.Buffer{})
	require.NoError(t, err)

	// The archive scan numbers entries in archive order and keeps their
	// extensions, so the drawing links the second file.
	data, err := os.ReadFile(cfg.MarkdownPath)
	require.NoError(t, err)
	assert.Equal(t, "caption\n\n![image](pic/history_1.jpeg)\n", string(data))
	assert.FileExists(t, filepath.Join(cfg.ImagesDir, "history_0.gif"))

	require.Len(t, result.Images, 1)
	assert.Equal(t, first, result.Images[0].RelationshipID)

	m, err := images.ReadManifest(cfg.Manifest)
	require.NoError(t, err)
	assert.Equal(t, types.StrategyArchive, m.Strategy)
	require.Len(t, m.Images, 1)
	assert.Equal(t, "word/media/image1.jpeg", m.Images[0].Source)
}

func TestConvertFile_NoContent(t *testing.T) {
	cfg := newConfig(t, testsupport.NewDocx(t).Build())

	result, err := ConvertFile(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, result.Blocks)

	data, err := os.ReadFile(cfg.MarkdownPath)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestConvertFile_MissingInput(t *testing.T) {
	cfg := newConfig(t, filepath.Join(t.TempDir(), "missing.docx"))

	_, err := ConvertFile(cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.NoDirExists(t, filepath.Dir(cfg.MarkdownPath))
	assert.NoDirExists(t, cfg.ImagesDir)
}

func TestConvertFile_NotADocument(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "fake.docx")
	require.NoError(t, os.WriteFile(doc, []byte("plain text"), 0o644))
	cfg := newConfig(t, doc)

	_, err := ConvertFile(cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.NoFileExists(t, cfg.MarkdownPath)
}

func TestConvertFile_UnknownStrategy(t *testing.T) {
	cfg := newConfig(t, testsupport.NewDocx(t).Build())
	cfg.Strategy = "ocr"

	_, err := ConvertFile(cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown extraction strategy")
}
