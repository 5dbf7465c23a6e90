package render

import (
	"strconv"
	"strings"

	"qa-report/report/model"
)

const notAvailable = "N/A"

// Section headings and labels of the coaching report.
const (
	TitlePrefix          = "Performance Trend Analysis & Coaching Report: "
	StrengthsHeading     = "Key Strengths & Consistent Positive Performance"
	DevelopmentHeading   = "Areas for Development & Recurring Challenges"
	CoachingHeading      = "Consolidated Coaching & Development Plan"
	QualityPointsHeading = "Detailed Quality Point Analysis"
	ActionsLeadIn        = "Actionable Recommendations:"
	DefaultFocusArea     = "Focus Area"
)

// QualityPointColumns is the header row of the quality point table.
var QualityPointColumns = []string{"Quality Point", "Trend Observation", "Coaching Recommendation"}

// ParagraphStyle selects the list behaviour of a paragraph.
type ParagraphStyle int

const (
	StyleNormal ParagraphStyle = iota
	StyleBullet
	StyleNumber
)

// Run is a span of text with one formatting.
type Run struct {
	Text  string
	Style RunStyle
}

// Block is one element of a flattened document.
type Block interface {
	block()
}

// Heading is a section title.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a body paragraph, optionally a list item. ListID groups
// numbered items so each coaching focus restarts at 1.
type Paragraph struct {
	Style  ParagraphStyle
	ListID int
	Runs   []Run
}

// Cell is one table cell.
type Cell struct {
	Runs []Run
}

// Table is a grid with a header row.
type Table struct {
	Header []Cell
	Rows   [][]Cell
}

func (Heading) block()   {}
func (Paragraph) block() {}
func (Table) block()     {}

// Document is the linear layout of a report, independent of output format.
type Document struct {
	Title  string
	Blocks []Block
}

// Layout flattens a report into document blocks.
func Layout(report model.Report) Document {
	header := report.Header
	title := TitlePrefix + presentOr(header.AgentName, notAvailable)
	doc := Document{Title: title}

	doc.add(Heading{Level: 1, Text: title})

	count := notAvailable
	if header.ReportsAnalyzed != nil {
		count = strconv.Itoa(*header.ReportsAnalyzed)
	}
	doc.add(Paragraph{Runs: []Run{
		textRun("Analysis based on " + count + " calls. Period: " + presentOr(header.PeriodNote, notAvailable)),
	}})

	summary := report.Summary
	if len(summary.Strengths) > 0 {
		doc.add(Heading{Level: 2, Text: StrengthsHeading})
		for _, item := range summary.Strengths {
			doc.add(Paragraph{Style: StyleBullet, Runs: []Run{textRun(item)}})
		}
	}

	if len(summary.DevelopmentAreas) > 0 {
		doc.add(Heading{Level: 2, Text: DevelopmentHeading})
		for _, item := range summary.DevelopmentAreas {
			doc.add(Paragraph{Style: StyleBullet, Runs: []Run{textRun(item)}})
		}
	}

	if len(summary.CoachingFocus) > 0 {
		doc.add(Heading{Level: 2, Text: CoachingHeading})
		listID := 0
		for _, focus := range summary.CoachingFocus {
			doc.add(Heading{Level: 3, Text: presentOr(focus.Area, DefaultFocusArea)})
			if len(focus.Actions) == 0 {
				continue
			}
			listID++
			doc.add(Paragraph{Runs: []Run{{Text: ActionsLeadIn, Style: RunStyle{Bold: true}}}})
			for _, action := range focus.Actions {
				doc.add(Paragraph{Style: StyleNumber, ListID: listID, Runs: []Run{textRun(action)}})
			}
		}
	}

	if len(report.QualityPoints) > 0 {
		doc.add(Heading{Level: 2, Text: QualityPointsHeading})
		table := Table{Header: make([]Cell, 0, len(QualityPointColumns))}
		for _, col := range QualityPointColumns {
			table.Header = append(table.Header, Cell{Runs: []Run{{Text: col, Style: RunStyle{Bold: true}}}})
		}
		for _, item := range report.QualityPoints {
			table.Rows = append(table.Rows, []Cell{
				textCell(item.QualityPoint),
				textCell(item.TrendObservation),
				textCell(item.CoachingRecommendation),
			})
		}
		doc.add(table)
	}

	return doc
}

func (d *Document) add(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// textRun builds a plain run, styled when the text is itself a finding.
func textRun(text string) Run {
	return Run{Text: text, Style: FindingStyle(text)}
}

func textCell(value string) Cell {
	return Cell{Runs: []Run{textRun(presentOr(value, notAvailable))}}
}

// presentOr returns value, or fallback when value is blank.
func presentOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// Text joins the run texts of a paragraph or cell.
func Text(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Paragraphs returns the paragraphs of the given style in order.
func (d Document) Paragraphs(style ParagraphStyle) []Paragraph {
	var out []Paragraph
	for _, b := range d.Blocks {
		if p, ok := b.(Paragraph); ok && p.Style == style {
			out = append(out, p)
		}
	}
	return out
}
