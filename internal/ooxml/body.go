// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ooxml

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Paragraph is a <w:p> with its text flattened and image references
// collected in run order.
type Paragraph struct {
	// Style is the paragraph style display name (e.g. "Heading 2").
	Style string

	// Text is the concatenated run text, NFC-normalized, untrimmed.
	Text string

	// Images lists the r:embed relationship ids of the drawings found in
	// the paragraph's runs.
	Images []string
}

// Table is a <w:tbl> as rows of cells of paragraphs.
type Table struct {
	Rows []Row
}

// Row is one <w:tr>.
type Row struct {
	Cells []Cell
}

// Cell is one <w:tc>.
type Cell struct {
	Paragraphs []Paragraph
}

// Paragraphs returns the top-level body paragraphs in document order.
// Paragraphs inside tables are not included.
func (d *Document) Paragraphs() []Paragraph {
	out := make([]Paragraph, 0, len(d.body.Paragraphs))
	for _, p := range d.body.Paragraphs {
		out = append(out, d.paragraph(p))
	}
	return out
}

// Tables returns the top-level body tables in document order.
func (d *Document) Tables() []Table {
	out := make([]Table, 0, len(d.body.Tables))
	for _, t := range d.body.Tables {
		var table Table
		for _, r := range t.Rows {
			var row Row
			for _, c := range r.Cells {
				var cell Cell
				for _, p := range c.Paragraphs {
					cell.Paragraphs = append(cell.Paragraphs, d.paragraph(p))
				}
				row.Cells = append(row.Cells, cell)
			}
			table.Rows = append(table.Rows, row)
		}
		out = append(out, table)
	}
	return out
}

// ImageRefs returns every image relationship id in walk order: top-level
// paragraphs first, then table cells row by row.
func (d *Document) ImageRefs() []string {
	var refs []string
	for _, p := range d.Paragraphs() {
		refs = append(refs, p.Images...)
	}
	for _, t := range d.Tables() {
		for _, r := range t.Rows {
			for _, c := range r.Cells {
				for _, p := range c.Paragraphs {
					refs = append(refs, p.Images...)
				}
			}
		}
	}
	return refs
}

func (d *Document) paragraph(p paragraphXML) Paragraph {
	out := Paragraph{Style: d.styleName(p.Properties.Style.Val)}

	var text strings.Builder
	for _, child := range p.Children {
		if child.XMLName.Space == nsMath {
			continue
		}
		if child.XMLName.Local == "r" {
			collectRun(child.Content, &text, &out.Images)
			continue
		}
		// hyperlink, ins, smartTag and similar wrappers hold runs.
		for _, r := range child.Runs {
			collectRun(r.Content, &text, &out.Images)
		}
	}
	out.Text = norm.NFC.String(text.String())
	return out
}

func collectRun(items []runItemXML, text *strings.Builder, images *[]string) {
	for _, item := range items {
		switch item.XMLName.Local {
		case "t":
			text.WriteString(item.Text)
		case "tab":
			text.WriteByte('\t')
		case "br", "cr":
			text.WriteByte('\n')
		case "drawing":
			collectDrawing(item, images)
		case "AlternateContent":
			for _, choice := range item.Choices {
				for _, drawing := range choice.Drawings {
					collectDrawing(drawing, images)
				}
			}
		}
	}
}

// collectDrawing appends the r:embed id of every blip under the drawing,
// in document order. Pictures nested in groups, canvases or shape fills
// are found as well as plain inline and anchored pictures.
func collectDrawing(item runItemXML, images *[]string) {
	for _, n := range item.Nodes {
		collectBlips(n, images)
	}
}

func collectBlips(n nodeXML, images *[]string) {
	if n.XMLName.Local == "blip" && n.Embed != "" {
		*images = append(*images, n.Embed)
	}
	for _, c := range n.Children {
		collectBlips(c, images)
	}
}
