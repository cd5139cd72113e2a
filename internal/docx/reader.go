package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/smartdoc-io/smartdoc/internal/doc"
)

var headingNameRe = regexp.MustCompile(`^heading ([0-9]+)$`)

// parseStyleNames extracts the style ID -> display name mapping from
// word/styles.xml. Built-in heading names are stored lowercase in the XML
// ("heading 1") but exposed capitalized, matching what users see.
func parseStyleNames(data []byte) map[string]string {
	names := make(map[string]string)
	var styles stylesXML
	if err := xml.Unmarshal(data, &styles); err != nil {
		return names
	}
	for _, s := range styles.Styles {
		if s.ID == "" || s.Name == nil || s.Name.Val == "" {
			continue
		}
		names[s.ID] = normalizeStyleName(s.Name.Val)
	}
	return names
}

func normalizeStyleName(name string) string {
	if m := headingNameRe.FindStringSubmatch(strings.ToLower(name)); m != nil {
		return "Heading " + m[1]
	}
	if strings.EqualFold(name, "title") {
		return "Title"
	}
	return name
}

// styleNameForID translates a style ID to its display name, falling back to
// a heuristic for packages without a styles part.
func (f *File) styleNameForID(id string) string {
	if id == "" {
		return ""
	}
	if name, ok := f.styleNames[id]; ok {
		return name
	}
	// "Heading1" -> "Heading 1", "Title" stays.
	if strings.HasPrefix(id, "Heading") {
		if _, err := strconv.Atoi(strings.TrimPrefix(id, "Heading")); err == nil {
			return "Heading " + strings.TrimPrefix(id, "Heading")
		}
	}
	return id
}

// parseDocument walks the body of word/document.xml, preserving the
// paragraph/table order, and builds the model.
func (f *File) parseDocument(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	inBody := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("xml parse error: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "body":
				inBody = true
			case "p":
				if !inBody {
					continue
				}
				var px paragraphXML
				if err := dec.DecodeElement(&px, &t); err != nil {
					return fmt.Errorf("failed to decode paragraph: %w", err)
				}
				f.Doc.AddParagraph(f.convertParagraph(px))
			case "tbl":
				if !inBody {
					continue
				}
				var tx tableXML
				if err := dec.DecodeElement(&tx, &t); err != nil {
					return fmt.Errorf("failed to decode table: %w", err)
				}
				if tbl := f.convertTable(tx); tbl != nil {
					f.Doc.AddTable(tbl)
				}
			case "sectPr":
				if !inBody {
					continue
				}
				var raw struct {
					Inner string `xml:",innerxml"`
				}
				if err := dec.DecodeElement(&raw, &t); err != nil {
					return fmt.Errorf("failed to decode section properties: %w", err)
				}
				f.sectPr = raw.Inner
			default:
				// Other body children (bookmarks, sdt wrappers) are skipped.
			}
		case xml.EndElement:
			if t.Name.Local == "body" {
				inBody = false
			}
		}
	}
	return nil
}

func (f *File) convertParagraph(px paragraphXML) *doc.Paragraph {
	p := doc.NewParagraph("")

	if pr := px.Properties; pr != nil {
		if pr.Style != nil {
			p.StyleName = f.styleNameForID(pr.Style.Val)
		}
		if pr.Justify != nil {
			p.Alignment = alignmentFromJc(pr.Justify.Val)
		}
		if pr.Spacing != nil {
			if v, ok := parseTwips(pr.Spacing.Before); ok {
				p.Format.SpaceBefore = doc.Ptr(v)
			}
			if v, ok := parseTwips(pr.Spacing.After); ok {
				p.Format.SpaceAfter = doc.Ptr(v)
			}
			if pr.Spacing.Line != "" && (pr.Spacing.LineRule == "" || pr.Spacing.LineRule == "auto") {
				if line, err := strconv.ParseFloat(pr.Spacing.Line, 64); err == nil && line > 0 {
					p.Format.LineSpacing = doc.Ptr(line / 240)
				}
			}
		}
	}

	for _, rx := range px.Runs {
		r := p.AddRun(runText(rx))
		if rp := rx.Properties; rp != nil {
			if rp.Fonts != nil {
				name := rp.Fonts.ASCII
				if name == "" {
					name = rp.Fonts.HAnsi
				}
				if name != "" {
					r.FontName = doc.Ptr(name)
				}
			}
			if rp.Size != nil {
				if half, err := strconv.ParseFloat(rp.Size.Val, 64); err == nil && half > 0 {
					r.SizePt = doc.Ptr(half / 2)
				}
			}
			if rp.Bold != nil {
				r.Bold = doc.Ptr(onOffValue(rp.Bold.Val))
			}
			if rp.Italic != nil {
				r.Italic = doc.Ptr(onOffValue(rp.Italic.Val))
			}
			if rp.Underline != nil {
				r.Underline = doc.Ptr(rp.Underline.Val != "none" && rp.Underline.Val != "0")
			}
		}
	}
	return p
}

func runText(rx runXML) string {
	var sb strings.Builder
	for _, t := range rx.Text {
		sb.WriteString(t.Value)
	}
	return sb.String()
}

// onOffValue interprets an OOXML on/off attribute: an empty value means the
// element's presence turns the property on.
func onOffValue(v string) bool {
	switch v {
	case "0", "false", "off", "none":
		return false
	default:
		return true
	}
}

func alignmentFromJc(val string) doc.Alignment {
	switch val {
	case "left", "start":
		return doc.AlignLeft
	case "center":
		return doc.AlignCenter
	case "right", "end":
		return doc.AlignRight
	case "both", "justify", "distribute":
		return doc.AlignJustify
	default:
		return doc.AlignUnset
	}
}

func parseTwips(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v / 20, true
}

// cellSlot records where a source cell landed in the logical grid during
// table reconstruction.
type cellSlot struct {
	row, col int
	span     int
	cont     bool // vertical-merge continuation
	src      *tableCellXML
}

func (f *File) convertTable(tx tableXML) *doc.Table {
	rows := len(tx.Rows)
	if rows == 0 {
		return nil
	}

	cols := len(tx.Grid.Cols)
	var slots []cellSlot
	for r := range tx.Rows {
		colIdx := 0
		for i := range tx.Rows[r].Cells {
			cx := &tx.Rows[r].Cells[i]
			span := 1
			cont := false
			if cx.Properties != nil {
				if cx.Properties.GridSpan != nil {
					if n, err := strconv.Atoi(cx.Properties.GridSpan.Val); err == nil && n > 1 {
						span = n
					}
				}
				if vm := cx.Properties.VMerge; vm != nil && vm.Val != "restart" {
					cont = true
				}
			}
			slots = append(slots, cellSlot{row: r, col: colIdx, span: span, cont: cont, src: cx})
			colIdx += span
		}
		if colIdx > cols {
			cols = colIdx
		}
	}
	if cols == 0 {
		return nil
	}

	t := doc.NewTable(rows, cols)
	if tx.Properties.Style != nil {
		t.Style = f.styleNameForID(tx.Properties.Style.Val)
	}

	// Vertical extents: a continuation at (r,c) stretches the rectangle
	// anchored in an earlier row at the same column.
	extent := make(map[[2]int]int) // anchor (row,col) -> last row
	anchorAt := make(map[[2]int][2]int)
	for _, s := range slots {
		key := [2]int{s.row, s.col}
		if !s.cont {
			anchorAt[key] = key
			extent[key] = s.row
			continue
		}
		above, ok := anchorAt[[2]int{s.row - 1, s.col}]
		if !ok {
			// Dangling continuation; treat as a fresh cell.
			anchorAt[key] = key
			extent[key] = s.row
			continue
		}
		anchorAt[key] = above
		if s.row > extent[above] {
			extent[above] = s.row
		}
	}

	for _, s := range slots {
		if s.cont {
			continue
		}
		endRow := extent[[2]int{s.row, s.col}]
		endCol := s.col + s.span - 1
		if endCol >= cols {
			endCol = cols - 1
		}
		if endRow > s.row || endCol > s.col {
			// Reconstructing a stored merge cannot fail; the bounds came
			// from the same grid.
			_ = t.Merge(s.row, s.col, endRow, endCol)
		}
	}

	for _, s := range slots {
		if s.cont {
			continue
		}
		cell, ok := t.Cell(s.row, s.col)
		if !ok {
			continue
		}
		paras := make([]*doc.Paragraph, 0, len(s.src.Paragraphs))
		for _, px := range s.src.Paragraphs {
			paras = append(paras, f.convertParagraph(px))
		}
		if len(paras) == 0 {
			paras = append(paras, doc.NewParagraph(""))
		}
		cell.Paragraphs = paras
		if s.src.Properties != nil && s.src.Properties.Shading != nil {
			if fill := s.src.Properties.Shading.Fill; fill != "" && fill != "auto" {
				cell.Shading = strings.ToUpper(fill)
			}
		}
	}

	return t
}
