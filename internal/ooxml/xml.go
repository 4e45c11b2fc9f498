// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ooxml

import "encoding/xml"

// nsMath is the Office Math namespace; its runs are not paragraph text.
const nsMath = "http://schemas.openxmlformats.org/officeDocument/2006/math"

const relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"

// contentTypesXML represents [Content_Types].xml.
type contentTypesXML struct {
	XMLName   xml.Name      `xml:"Types"`
	Defaults  []defaultXML  `xml:"Default"`
	Overrides []overrideXML `xml:"Override"`
}

type defaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// relationshipsXML represents a *.rels part.
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"` // "External" for links outside the package
}

// stylesXML represents word/styles.xml. Only names are needed.
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

type styleDefXML struct {
	Type    string  `xml:"type,attr"`
	StyleID string  `xml:"styleId,attr"`
	Default string  `xml:"default,attr"`
	Name    valAttr `xml:"name"`
}

type valAttr struct {
	Val string `xml:"val,attr"`
}

// documentXML represents the main document part (<w:document>).
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

// bodyXML collects top-level paragraphs and tables into separate slices;
// their relative order in the source is not kept.
type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
	Tables     []tableXML     `xml:"tbl"`
}

// paragraphXML represents <w:p>. Children other than pPr are kept in
// source order so runs inside hyperlinks interleave correctly.
type paragraphXML struct {
	Properties paragraphPropsXML `xml:"pPr"`
	Children   []inlineXML       `xml:",any"`
}

type paragraphPropsXML struct {
	Style valAttr `xml:"pStyle"`
}

// inlineXML is a paragraph child: either a run (<w:r>) whose content lands
// in Content, or a wrapper such as <w:hyperlink> or <w:ins> whose runs land
// in Runs.
type inlineXML struct {
	XMLName xml.Name
	Runs    []runXML     `xml:"r"`
	Content []runItemXML `xml:",any"`
}

// runXML represents <w:r> nested in a wrapper element.
type runXML struct {
	Content []runItemXML `xml:",any"`
}

// runItemXML is one child of a run: text, tab, break, drawing or
// markup-compatibility wrapper. Nodes holds the element subtree, which is
// searched for blips when the item is a drawing.
type runItemXML struct {
	XMLName xml.Name
	Text    string         `xml:",chardata"`
	Choices []alternateXML `xml:"Choice"`
	Nodes   []nodeXML      `xml:",any"`
}

// alternateXML represents <mc:Choice>, which may wrap a drawing.
type alternateXML struct {
	Drawings []runItemXML `xml:"drawing"`
}

// nodeXML is a generic element inside a drawing. Embed carries the
// r:embed attribute when the element is an <a:blip>.
type nodeXML struct {
	XMLName  xml.Name
	Embed    string    `xml:"embed,attr"`
	Children []nodeXML `xml:",any"`
}

// tableXML represents <w:tbl>.
type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

type tableCellXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}
