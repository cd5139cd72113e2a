package doc

import "strings"

// Alignment is a paragraph alignment value. The zero value means the
// alignment is inherited from the style and has not been set explicitly.
type Alignment string

const (
	AlignUnset   Alignment = ""
	AlignLeft    Alignment = "LEFT"
	AlignCenter  Alignment = "CENTER"
	AlignRight   Alignment = "RIGHT"
	AlignJustify Alignment = "JUSTIFY"
)

// ParseAlignment parses a case-insensitive alignment name. The second return
// value is false for unrecognized values.
func ParseAlignment(s string) (Alignment, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LEFT":
		return AlignLeft, true
	case "CENTER":
		return AlignCenter, true
	case "RIGHT":
		return AlignRight, true
	case "JUSTIFY":
		return AlignJustify, true
	default:
		return AlignUnset, false
	}
}

// Paragraph is an ordered sequence of styled text runs with paragraph-level
// formatting. Paragraphs are mutated in place by the engine and never
// deleted.
type Paragraph struct {
	StyleName string
	Alignment Alignment
	Runs      []*Run
	Format    ParagraphFormat
}

// ParagraphFormat holds paragraph spacing. Nil fields are inherited from the
// style and left untouched by the codec and the engine.
type ParagraphFormat struct {
	SpaceBefore *float64 // points
	SpaceAfter  *float64 // points
	LineSpacing *float64 // multiplier, e.g. 1.0, 1.15, 1.5, 2.0
}

// Run is a contiguous span of text sharing one set of font attributes.
// Nil attribute fields are inherited from the paragraph style; for the
// bold/italic/underline tri-states, nil (inherit) is distinct from an
// explicit false.
type Run struct {
	Text      string
	FontName  *string
	SizePt    *float64
	Bold      *bool
	Italic    *bool
	Underline *bool
}

// NewParagraph creates a paragraph with a single unstyled run holding text.
// An empty text yields a paragraph with no runs.
func NewParagraph(text string) *Paragraph {
	p := &Paragraph{Runs: make([]*Run, 0)}
	if text != "" {
		p.AddRun(text)
	}
	return p
}

// AddRun appends an unstyled run and returns it for further styling.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text}
	p.Runs = append(p.Runs, r)
	return r
}

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// SetText replaces the paragraph content with a single unstyled run.
// Existing run handles become invalid.
func (p *Paragraph) SetText(text string) {
	p.Runs = []*Run{{Text: text}}
}

// IsEmpty returns true if the paragraph has no text content.
func (p *Paragraph) IsEmpty() bool {
	return p.Text() == ""
}
