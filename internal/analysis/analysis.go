// Package analysis implements the element inspector: it walks a document's
// paragraphs and produces a read-only snapshot of their classification and
// run-level formatting. The snapshot's JSON field names are a stable
// contract consumed by plan sources and other tools.
package analysis

import (
	"strconv"
	"strings"

	"github.com/smartdoc-io/smartdoc/internal/doc"
)

// ElementType classifies a paragraph.
type ElementType string

const (
	ElementHeading   ElementType = "heading"
	ElementParagraph ElementType = "paragraph"
)

// RunDetail is the per-run formatting snapshot. Nil fields mean the
// attribute is inherited from the style.
type RunDetail struct {
	Text      string   `json:"text"`
	FontName  *string  `json:"font_name"`
	FontSize  *float64 `json:"font_size"`
	Bold      *bool    `json:"bold"`
	Italic    *bool    `json:"italic"`
	Underline *bool    `json:"underline"`
}

// Record is the per-paragraph snapshot. ParagraphIndex matches the live
// document position at analysis time; callers must re-analyze after any
// mutation that inserts or removes paragraphs.
type Record struct {
	ParagraphIndex int         `json:"paragraph_index"`
	Type           ElementType `json:"type"`
	Level          *int        `json:"level,omitempty"`
	Text           string      `json:"text"`
	StyleName      string      `json:"style_name"`
	Alignment      *string     `json:"alignment"`
	Runs           []RunDetail `json:"runs"`
}

// Analysis is the inspector output, one record per paragraph in document
// order.
type Analysis struct {
	Elements []Record `json:"elements"`
}

// Analyze inspects every paragraph of the document. It has no side effects
// and never fails: malformed heading styles degrade to body paragraphs.
func Analyze(d *doc.Document) *Analysis {
	a := &Analysis{Elements: make([]Record, 0)}
	for i, p := range d.Paragraphs() {
		a.Elements = append(a.Elements, inspectParagraph(p, i))
	}
	return a
}

func inspectParagraph(p *doc.Paragraph, index int) Record {
	rec := Record{
		ParagraphIndex: index,
		Text:           p.Text(),
		StyleName:      p.StyleName,
		Runs:           make([]RunDetail, 0, len(p.Runs)),
	}
	if p.Alignment != doc.AlignUnset {
		rec.Alignment = doc.Ptr(string(p.Alignment))
	}
	for _, r := range p.Runs {
		rec.Runs = append(rec.Runs, RunDetail{
			Text:      r.Text,
			FontName:  r.FontName,
			FontSize:  r.SizePt,
			Bold:      r.Bold,
			Italic:    r.Italic,
			Underline: r.Underline,
		})
	}
	rec.Type, rec.Level = Classify(p.StyleName)
	return rec
}

// Classify maps a style name to an element type and heading level.
// "Title" is a level-0 heading. "Heading N" with a non-negative numeric
// suffix is a heading of level N. A "Heading"-prefixed style whose suffix
// does not parse degrades to a body paragraph with level 0. Anything else
// is a body paragraph with no level.
func Classify(styleName string) (ElementType, *int) {
	if styleName == "Title" {
		return ElementHeading, doc.Ptr(0)
	}
	if strings.HasPrefix(styleName, "Heading") {
		fields := strings.Fields(styleName)
		level, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil || level < 0 {
			return ElementParagraph, doc.Ptr(0)
		}
		return ElementHeading, doc.Ptr(level)
	}
	return ElementParagraph, nil
}
