package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smartdoc-io/smartdoc/internal/doc"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	docOpen   = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`

	defaultSectPr = `<w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>`

	// Total printable width in twips for a letter page with 1" margins,
	// used to size table grid columns.
	printableWidthTwips = 9360
)

// renderDocument serializes the model back into word/document.xml.
func (f *File) renderDocument() []byte {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(docOpen)
	sb.WriteString("<w:body>")

	for _, b := range f.Doc.Blocks {
		switch b.Type {
		case doc.BlockParagraph:
			if b.Paragraph != nil {
				writeParagraph(&sb, b.Paragraph)
			}
		case doc.BlockTable:
			if b.Table != nil {
				writeTable(&sb, b.Table)
			}
		}
	}

	sectPr := f.sectPr
	if sectPr == "" {
		sectPr = defaultSectPr
	}
	sb.WriteString("<w:sectPr>")
	sb.WriteString(sectPr)
	sb.WriteString("</w:sectPr>")

	sb.WriteString("</w:body></w:document>")
	return []byte(sb.String())
}

func writeParagraph(sb *strings.Builder, p *doc.Paragraph) {
	sb.WriteString("<w:p>")
	writeParagraphProps(sb, p)
	for _, r := range p.Runs {
		writeRun(sb, r)
	}
	sb.WriteString("</w:p>")
}

func writeParagraphProps(sb *strings.Builder, p *doc.Paragraph) {
	var props strings.Builder

	if id := styleID(p.StyleName); id != "" {
		fmt.Fprintf(&props, `<w:pStyle w:val="%s"/>`, escapeAttr(id))
	}
	if fmtSpacing := spacingAttrs(p.Format); fmtSpacing != "" {
		fmt.Fprintf(&props, "<w:spacing%s/>", fmtSpacing)
	}
	if jc := jcFromAlignment(p.Alignment); jc != "" {
		fmt.Fprintf(&props, `<w:jc w:val="%s"/>`, jc)
	}

	if props.Len() > 0 {
		sb.WriteString("<w:pPr>")
		sb.WriteString(props.String())
		sb.WriteString("</w:pPr>")
	}
}

func spacingAttrs(f doc.ParagraphFormat) string {
	var sb strings.Builder
	if f.SpaceBefore != nil {
		fmt.Fprintf(&sb, ` w:before="%d"`, int(*f.SpaceBefore*20+0.5))
	}
	if f.SpaceAfter != nil {
		fmt.Fprintf(&sb, ` w:after="%d"`, int(*f.SpaceAfter*20+0.5))
	}
	if f.LineSpacing != nil {
		fmt.Fprintf(&sb, ` w:line="%d" w:lineRule="auto"`, int(*f.LineSpacing*240+0.5))
	}
	return sb.String()
}

func writeRun(sb *strings.Builder, r *doc.Run) {
	sb.WriteString("<w:r>")

	var props strings.Builder
	if r.FontName != nil {
		name := escapeAttr(*r.FontName)
		fmt.Fprintf(&props, `<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`, name, name)
	}
	writeOnOff(&props, "w:b", r.Bold)
	writeOnOff(&props, "w:i", r.Italic)
	if r.Underline != nil {
		if *r.Underline {
			props.WriteString(`<w:u w:val="single"/>`)
		} else {
			props.WriteString(`<w:u w:val="none"/>`)
		}
	}
	if r.SizePt != nil {
		fmt.Fprintf(&props, `<w:sz w:val="%s"/>`, formatHalfPoints(*r.SizePt))
	}
	if props.Len() > 0 {
		sb.WriteString("<w:rPr>")
		sb.WriteString(props.String())
		sb.WriteString("</w:rPr>")
	}

	sb.WriteString(`<w:t xml:space="preserve">`)
	sb.WriteString(escapeText(r.Text))
	sb.WriteString("</w:t></w:r>")
}

// writeOnOff emits an OOXML on/off toggle. nil means inherit (omit), true is
// the bare element, false carries an explicit val="0".
func writeOnOff(sb *strings.Builder, tag string, v *bool) {
	if v == nil {
		return
	}
	if *v {
		fmt.Fprintf(sb, "<%s/>", tag)
	} else {
		fmt.Fprintf(sb, `<%s w:val="0"/>`, tag)
	}
}

func formatHalfPoints(pt float64) string {
	return strconv.FormatFloat(pt*2, 'f', -1, 64)
}

func writeTable(sb *strings.Builder, t *doc.Table) {
	sb.WriteString("<w:tbl><w:tblPr>")
	if t.Style != "" {
		fmt.Fprintf(sb, `<w:tblStyle w:val="%s"/>`, escapeAttr(styleID(t.Style)))
	}
	sb.WriteString(`<w:tblW w:w="0" w:type="auto"/></w:tblPr>`)

	sb.WriteString("<w:tblGrid>")
	colWidth := printableWidthTwips / t.Cols
	for c := 0; c < t.Cols; c++ {
		fmt.Fprintf(sb, `<w:gridCol w:w="%d"/>`, colWidth)
	}
	sb.WriteString("</w:tblGrid>")

	anchors := cellAnchors(t)

	for r := 0; r < t.Rows; r++ {
		sb.WriteString("<w:tr>")
		for c := 0; c < t.Cols; {
			cell, _ := t.Cell(r, c)
			a := anchors[cell]
			if c != a[1] {
				// Horizontal continuation, covered by the anchor's gridSpan.
				c++
				continue
			}
			writeCell(sb, cell, r == a[0])
			c += cell.ColSpan
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
}

// cellAnchors maps every distinct cell to its top-left grid coordinate.
func cellAnchors(t *doc.Table) map[*doc.Cell][2]int {
	anchors := make(map[*doc.Cell][2]int)
	for r := 0; r < t.Rows; r++ {
		for c := 0; c < t.Cols; c++ {
			cell, _ := t.Cell(r, c)
			if _, seen := anchors[cell]; !seen {
				anchors[cell] = [2]int{r, c}
			}
		}
	}
	return anchors
}

func writeCell(sb *strings.Builder, cell *doc.Cell, isAnchorRow bool) {
	sb.WriteString("<w:tc>")

	var props strings.Builder
	props.WriteString(`<w:tcW w:w="0" w:type="auto"/>`)
	if cell.ColSpan > 1 {
		fmt.Fprintf(&props, `<w:gridSpan w:val="%d"/>`, cell.ColSpan)
	}
	if cell.RowSpan > 1 {
		if isAnchorRow {
			props.WriteString(`<w:vMerge w:val="restart"/>`)
		} else {
			props.WriteString(`<w:vMerge/>`)
		}
	}
	if cell.Shading != "" && isAnchorRow {
		fmt.Fprintf(&props, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, escapeAttr(cell.Shading))
	}
	sb.WriteString("<w:tcPr>")
	sb.WriteString(props.String())
	sb.WriteString("</w:tcPr>")

	if isAnchorRow {
		for _, p := range cell.Paragraphs {
			writeParagraph(sb, p)
		}
		if len(cell.Paragraphs) == 0 {
			sb.WriteString("<w:p/>")
		}
	} else {
		// Continuation cells must still carry a paragraph.
		sb.WriteString("<w:p/>")
	}

	sb.WriteString("</w:tc>")
}

func jcFromAlignment(a doc.Alignment) string {
	switch a {
	case doc.AlignLeft:
		return "left"
	case doc.AlignCenter:
		return "center"
	case doc.AlignRight:
		return "right"
	case doc.AlignJustify:
		return "both"
	default:
		return ""
	}
}

// styleID converts a display style name to its style ID: built-in IDs are
// the name with spaces removed.
func styleID(name string) string {
	if name == "" || name == "Normal" {
		return ""
	}
	return strings.ReplaceAll(name, " ", "")
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
