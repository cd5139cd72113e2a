package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/smartdoc-io/smartdoc/internal/doc"
)

// knownTableStyles are the built-in Word table style names the codec can
// reference by ID. Style application is cosmetic and best-effort: an
// unknown name falls back to the document default with a warning.
var knownTableStyles = map[string]bool{
	"Table Grid":             true,
	"Table Normal":           true,
	"Light Shading":          true,
	"Light Shading Accent 1": true,
	"Light Shading Accent 2": true,
	"Light Shading Accent 3": true,
	"Light List":             true,
	"Light List Accent 1":    true,
	"Light Grid":             true,
	"Light Grid Accent 1":    true,
	"Medium Shading 1":       true,
}

// CreateTable appends a rows × cols table to the document, optionally
// populated from row-major data and styled. Data beyond the table bounds is
// silently dropped; missing data leaves cells empty. Non-positive
// dimensions are an input error.
func (e *Engine) CreateTable(d *doc.Document, rows, cols int, data [][]string, style string) (*doc.Table, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid table dimensions %dx%d: rows and cols must be positive", rows, cols)
	}

	t := doc.NewTable(rows, cols)

	if style != "" {
		if knownTableStyles[style] {
			t.Style = style
		} else {
			e.log.Warn("unknown table style, using document default", zap.String("style", style))
		}
	}

	for i := 0; i < rows && i < len(data); i++ {
		row := data[i]
		for j := 0; j < cols && j < len(row); j++ {
			t.SetCellText(i, j, row[j])
		}
	}

	d.AddTable(t)
	return t, nil
}

// CellFormat describes the formatting FormatCell applies. Nil fields are
// untouched.
type CellFormat struct {
	Text      *string
	FontName  *string
	Size      *float64
	Bold      *bool
	Italic    *bool
	Underline *bool
	Alignment string
	Shading   string // hex fill, e.g. "C0C0C0"
}

// FormatCell formats a single cell. Text replacement happens first and
// invalidates prior run handles, so font and alignment are applied to the
// cell's first paragraph afterwards.
func (e *Engine) FormatCell(t *doc.Table, row, col int, f CellFormat) error {
	cell, ok := t.Cell(row, col)
	if !ok {
		return fmt.Errorf("%w: (%d,%d) in %dx%d table", doc.ErrOutOfBounds, row, col, t.Rows, t.Cols)
	}

	if f.Text != nil {
		cell.SetText(*f.Text)
	}

	para := cell.FirstParagraph()
	if len(para.Runs) == 0 {
		para.AddRun("")
	}
	attrs := fontAttrs{name: f.FontName, size: f.Size, bold: f.Bold, italic: f.Italic, underline: f.Underline}
	for _, r := range para.Runs {
		e.setRunFont(r, attrs)
	}

	if f.Alignment != "" {
		if align, ok := doc.ParseAlignment(f.Alignment); ok {
			para.Alignment = align
		} else {
			e.log.Warn("unrecognized cell alignment", zap.String("alignment", f.Alignment))
		}
	}

	if f.Shading != "" {
		cell.Shading = normalizeHex(f.Shading)
	}

	return nil
}

// MergeCells merges the rectangular region between the two coordinate pairs
// inclusive. Interior cells lose independent addressing: reads from
// merged-over coordinates alias the top-left cell afterwards.
func (e *Engine) MergeCells(t *doc.Table, startRow, startCol, endRow, endCol int) error {
	if err := t.Merge(startRow, startCol, endRow, endCol); err != nil {
		e.log.Warn("cell merge rejected", zap.Error(err))
		return err
	}
	return nil
}

func normalizeHex(s string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#"))
}
