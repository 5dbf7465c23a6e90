package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
)

const (
	wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	bulletNumID   = 1
	tableColWidth = 3000
)

// xmlNode is a prefixed element tree; names carry their "w:" prefix and the
// namespaces are declared once on the part's root start tag.
type xmlNode struct {
	Name     string
	Attr     []xml.Attr
	Children []*xmlNode
	Text     string
	IsText   bool
}

func el(name string, attrs ...string) *xmlNode {
	n := &xmlNode{Name: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, xml.Attr{Name: xml.Name{Local: attrs[i]}, Value: attrs[i+1]})
	}
	return n
}

func (n *xmlNode) add(children ...*xmlNode) *xmlNode {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func textNode(text string) *xmlNode {
	return &xmlNode{IsText: true, Text: text}
}

func encodeXMLNode(encoder *xml.Encoder, node *xmlNode) error {
	if node.IsText {
		return encoder.EncodeToken(xml.CharData([]byte(node.Text)))
	}
	start := xml.StartElement{Name: xml.Name{Local: node.Name}, Attr: node.Attr}
	if err := encoder.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := encodeXMLNode(encoder, child); err != nil {
			return err
		}
	}
	return encoder.EncodeToken(start.End())
}

// encodeXMLPart writes a complete part: declaration, raw root start tag with
// namespace declarations, the encoded children and the root end tag.
func encodeXMLPart(rootStart, rootEnd string, children ...*xmlNode) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(rootStart)
	encoder := xml.NewEncoder(&buf)
	for _, child := range children {
		if err := encodeXMLNode(encoder, child); err != nil {
			return nil, err
		}
	}
	if err := encoder.Flush(); err != nil {
		return nil, err
	}
	buf.WriteString(rootEnd)
	return buf.Bytes(), nil
}

func writeDOCX(w io.Writer, doc Document) error {
	documentXML, err := documentPart(doc)
	if err != nil {
		return err
	}
	numberingXML, err := numberingPart(countNumberedLists(doc))
	if err != nil {
		return err
	}
	coreXML, err := corePropertiesPart(doc.Title)
	if err != nil {
		return err
	}

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"docProps/core.xml", coreXML},
		{"word/document.xml", documentXML},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/numbering.xml", numberingXML},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
	}

	writer := zip.NewWriter(w)
	for _, part := range parts {
		dst, err := writer.Create(part.name)
		if err != nil {
			return err
		}
		if _, err := dst.Write(part.content); err != nil {
			return err
		}
	}
	return writer.Close()
}

func documentPart(doc Document) ([]byte, error) {
	body := el("w:body")
	for _, b := range doc.Blocks {
		switch block := b.(type) {
		case Heading:
			body.add(headingParagraph(block))
		case Paragraph:
			body.add(bodyParagraph(block))
		case Table:
			body.add(tableNode(block))
		}
	}
	body.add(el("w:sectPr").add(
		el("w:pgSz", "w:w", "12240", "w:h", "15840"),
		el("w:pgMar", "w:top", "1440", "w:right", "1440", "w:bottom", "1440", "w:left", "1440",
			"w:header", "720", "w:footer", "720", "w:gutter", "0"),
	))

	rootStart := `<w:document xmlns:w="` + wmlNamespace + `" xmlns:r="` + relNamespace + `">`
	return encodeXMLPart(rootStart, `</w:document>`, body)
}

func headingParagraph(h Heading) *xmlNode {
	level := h.Level
	if level < 1 || level > 3 {
		level = 3
	}
	return el("w:p").add(
		el("w:pPr").add(el("w:pStyle", "w:val", "Heading"+strconv.Itoa(level))),
		runNode(Run{Text: h.Text}),
	)
}

func bodyParagraph(p Paragraph) *xmlNode {
	node := el("w:p")
	switch p.Style {
	case StyleBullet:
		node.add(el("w:pPr").add(
			el("w:pStyle", "w:val", "ListBullet"),
			numPr(bulletNumID),
		))
	case StyleNumber:
		node.add(el("w:pPr").add(
			el("w:pStyle", "w:val", "ListNumber"),
			numPr(bulletNumID+p.ListID),
		))
	}
	for _, r := range p.Runs {
		node.add(runNode(r))
	}
	return node
}

func numPr(numID int) *xmlNode {
	return el("w:numPr").add(
		el("w:ilvl", "w:val", "0"),
		el("w:numId", "w:val", strconv.Itoa(numID)),
	)
}

func runNode(r Run) *xmlNode {
	run := el("w:r")
	if props := runProperties(r.Style); props != nil {
		run.add(props)
	}
	return run.add(el("w:t", "xml:space", "preserve").add(textNode(r.Text)))
}

func runProperties(style RunStyle) *xmlNode {
	if style.IsZero() {
		return nil
	}
	props := el("w:rPr")
	if style.Bold {
		props.add(el("w:b"))
	}
	if style.Italic {
		props.add(el("w:i"))
	}
	if style.Color != "" {
		props.add(el("w:color", "w:val", style.Color))
	}
	if style.Size > 0 {
		props.add(el("w:sz", "w:val", strconv.Itoa(style.Size)))
	}
	return props
}

func tableNode(t Table) *xmlNode {
	cols := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	grid := el("w:tblGrid")
	for i := 0; i < cols; i++ {
		grid.add(el("w:gridCol", "w:w", strconv.Itoa(tableColWidth)))
	}

	tbl := el("w:tbl").add(
		el("w:tblPr").add(
			el("w:tblStyle", "w:val", "TableGrid"),
			el("w:tblW", "w:w", "0", "w:type", "auto"),
			el("w:tblLook", "w:val", "04A0", "w:firstRow", "1", "w:lastRow", "0",
				"w:firstColumn", "1", "w:lastColumn", "0", "w:noHBand", "0", "w:noVBand", "1"),
		),
		grid,
	)
	if len(t.Header) > 0 {
		tbl.add(tableRow(t.Header, cols))
	}
	for _, row := range t.Rows {
		tbl.add(tableRow(row, cols))
	}
	return tbl
}

func tableRow(cells []Cell, cols int) *xmlNode {
	tr := el("w:tr")
	for i := 0; i < cols; i++ {
		var cell Cell
		if i < len(cells) {
			cell = cells[i]
		}
		p := el("w:p")
		for _, r := range cell.Runs {
			p.add(runNode(r))
		}
		tr.add(el("w:tc").add(
			el("w:tcPr").add(el("w:tcW", "w:w", strconv.Itoa(tableColWidth), "w:type", "dxa")),
			p,
		))
	}
	return tr
}

func countNumberedLists(doc Document) int {
	lists := 0
	for _, p := range doc.Paragraphs(StyleNumber) {
		if p.ListID > lists {
			lists = p.ListID
		}
	}
	return lists
}

// numberingPart declares one bullet list and one restarting decimal list per
// coaching focus.
func numberingPart(numberedLists int) ([]byte, error) {
	bullet := el("w:abstractNum", "w:abstractNumId", "0").add(
		el("w:multiLevelType", "w:val", "singleLevel"),
		el("w:lvl", "w:ilvl", "0").add(
			el("w:start", "w:val", "1"),
			el("w:numFmt", "w:val", "bullet"),
			el("w:lvlText", "w:val", "•"),
			el("w:lvlJc", "w:val", "left"),
			el("w:pPr").add(el("w:ind", "w:left", "720", "w:hanging", "360")),
		),
	)
	decimal := el("w:abstractNum", "w:abstractNumId", "1").add(
		el("w:multiLevelType", "w:val", "singleLevel"),
		el("w:lvl", "w:ilvl", "0").add(
			el("w:start", "w:val", "1"),
			el("w:numFmt", "w:val", "decimal"),
			el("w:lvlText", "w:val", "%1."),
			el("w:lvlJc", "w:val", "left"),
			el("w:pPr").add(el("w:ind", "w:left", "720", "w:hanging", "360")),
		),
	)

	nodes := []*xmlNode{bullet, decimal,
		el("w:num", "w:numId", strconv.Itoa(bulletNumID)).add(el("w:abstractNumId", "w:val", "0")),
	}
	for i := 1; i <= numberedLists; i++ {
		nodes = append(nodes, el("w:num", "w:numId", strconv.Itoa(bulletNumID+i)).add(
			el("w:abstractNumId", "w:val", "1"),
			el("w:lvlOverride", "w:ilvl", "0").add(el("w:startOverride", "w:val", "1")),
		))
	}

	rootStart := `<w:numbering xmlns:w="` + wmlNamespace + `">`
	return encodeXMLPart(rootStart, `</w:numbering>`, nodes...)
}

func corePropertiesPart(title string) ([]byte, error) {
	rootStart := `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/">`
	return encodeXMLPart(rootStart, `</cp:coreProperties>`,
		el("dc:title").add(textNode(title)),
		el("dc:creator").add(textNode("qa-report")),
	)
}
