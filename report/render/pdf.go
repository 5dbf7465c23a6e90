package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 5.5
	pdfListIndent = 6.0
	pdfCellPad    = 1.5
)

// ErrUnencodableText means a character has no glyph in the built-in PDF font,
// which covers Windows-1252 only.
var ErrUnencodableText = errors.New("text not encodable in pdf font")

type pdfWriter struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	counters map[int]int
	err      error
}

func writePDF(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("qa-report", true)
	pdf.AddPage()

	pw := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pw.setStyle(RunStyle{})

	for _, b := range doc.Blocks {
		switch block := b.(type) {
		case Heading:
			pw.heading(block)
		case Paragraph:
			pw.paragraph(block)
		case Table:
			pw.table(block)
		}
		if pw.err != nil {
			return pw.err
		}
		if pdf.Err() {
			return fmt.Errorf("build pdf: %w", pdf.Error())
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// setStyle applies font weight, size (half points) and colour.
func (pw *pdfWriter) setStyle(style RunStyle) {
	fontStyle := ""
	if style.Bold {
		fontStyle += "B"
	}
	if style.Italic {
		fontStyle += "I"
	}
	size := style.Size
	if size <= 0 {
		size = BodySize
	}
	pw.pdf.SetFont(pdfFont, fontStyle, float64(size)/2)
	r, g, b := rgb(style.Color)
	pw.pdf.SetTextColor(r, g, b)
}

func (pw *pdfWriter) heading(h Heading) {
	pw.pdf.Ln(3)
	pw.setStyle(headingStyle(h.Level))
	pw.pdf.MultiCell(0, pdfLineHeight+1, pw.text(h.Text), "", "L", false)
	pw.pdf.Ln(1)
	pw.setStyle(RunStyle{})
}

func (pw *pdfWriter) paragraph(p Paragraph) {
	left, _, _, _ := pw.pdf.GetMargins()
	switch p.Style {
	case StyleBullet:
		pw.setStyle(RunStyle{})
		pw.pdf.SetX(left + pdfListIndent)
		pw.pdf.Write(pdfLineHeight, pw.tr("•")+" ")
	case StyleNumber:
		pw.setStyle(RunStyle{})
		pw.pdf.SetX(left + pdfListIndent)
		pw.pdf.Write(pdfLineHeight, strconv.Itoa(pw.listPosition(p))+". ")
	}
	for _, r := range p.Runs {
		pw.setStyle(r.Style)
		pw.pdf.Write(pdfLineHeight, pw.text(r.Text))
	}
	pw.setStyle(RunStyle{})
	pw.pdf.Ln(pdfLineHeight + 1)
}

func (pw *pdfWriter) table(t Table) {
	cols := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}

	pageW, _ := pw.pdf.GetPageSize()
	left, _, right, _ := pw.pdf.GetMargins()
	colW := (pageW - left - right) / float64(cols)

	pw.pdf.Ln(1)
	if len(t.Header) > 0 {
		pw.tableRow(t.Header, cols, colW)
	}
	for _, row := range t.Rows {
		pw.tableRow(row, cols, colW)
	}
	pw.pdf.Ln(2)
	pw.setStyle(RunStyle{})
}

// tableRow draws one row with every cell stretched to the tallest cell. A row
// that cannot fit on a page is continued on the next one, each part boxed
// separately.
func (pw *pdfWriter) tableRow(cells []Cell, cols int, colW float64) {
	lines := make([][]string, cols)
	styles := make([]RunStyle, cols)
	total := 1
	for i := 0; i < cols; i++ {
		text := ""
		if i < len(cells) {
			text = pw.text(Text(cells[i].Runs))
			if len(cells[i].Runs) > 0 {
				styles[i] = cells[i].Runs[0].Style
			}
		}
		pw.setStyle(styles[i])
		for _, line := range pw.pdf.SplitLines([]byte(text), colW-2*pdfCellPad) {
			lines[i] = append(lines[i], string(line))
		}
		if len(lines[i]) > total {
			total = len(lines[i])
		}
	}

	_, pageH := pw.pdf.GetPageSize()
	_, top, _, bottom := pw.pdf.GetMargins()
	pageLines := rowLinesFitting(pageH-bottom-top)
	if total <= pageLines && rowLinesFitting(pageH-bottom-pw.pdf.GetY()) < total {
		pw.pdf.AddPage()
	}

	for done := 0; done < total; {
		n := min(total-done, rowLinesFitting(pageH-bottom-pw.pdf.GetY()))
		if n < 1 {
			pw.pdf.AddPage()
			continue
		}
		rowH := float64(n)*pdfLineHeight + 2*pdfCellPad
		x, y := pw.pdf.GetXY()
		for i := 0; i < cols; i++ {
			cx := x + float64(i)*colW
			pw.pdf.Rect(cx, y, colW, rowH, "D")
			if done >= len(lines[i]) {
				continue
			}
			part := lines[i][done:min(done+n, len(lines[i]))]
			pw.pdf.SetXY(cx+pdfCellPad, y+pdfCellPad)
			pw.setStyle(styles[i])
			pw.pdf.MultiCell(colW-2*pdfCellPad, pdfLineHeight, strings.Join(part, "\n"), "", "L", false)
		}
		pw.pdf.SetXY(x, y+rowH)
		done += n
		if done < total {
			pw.pdf.AddPage()
		}
	}
}

// rowLinesFitting returns how many text lines of a padded cell fit in height.
func rowLinesFitting(height float64) int {
	return int((height - 2*pdfCellPad) / pdfLineHeight)
}

// text translates s to the font encoding and records the first character the
// font cannot represent.
func (pw *pdfWriter) text(s string) string {
	out := pw.tr(s)
	if pw.err != nil || !strings.Contains(out, ".") {
		return out
	}
	for _, r := range s {
		if r != '.' && pw.tr(string(r)) == "." {
			pw.err = fmt.Errorf("%w: %q (U+%04X) in %q", ErrUnencodableText, r, r, s)
			break
		}
	}
	return out
}

// listPosition returns the 1-based position of p within its numbered list.
func (pw *pdfWriter) listPosition(p Paragraph) int {
	if pw.counters == nil {
		pw.counters = map[int]int{}
	}
	pw.counters[p.ListID]++
	return pw.counters[p.ListID]
}
