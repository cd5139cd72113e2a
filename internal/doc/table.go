package doc

import (
	"errors"
	"fmt"
	"strings"
)

// Table addressing errors. Callers branch on these with errors.Is.
var (
	ErrOutOfBounds = errors.New("cell index out of bounds")
	ErrBadRegion   = errors.New("merge region is not a valid rectangle")
)

// Table is a grid of rows × cols cells. After a merge, every coordinate
// inside the merged rectangle resolves to the same top-left cell, so grid
// addressing stays valid but is no longer injective.
type Table struct {
	Rows  int
	Cols  int
	Style string

	grid [][]*Cell
}

// Cell holds one or more paragraphs plus cell-level decoration. RowSpan and
// ColSpan are 1 for unmerged cells.
type Cell struct {
	Paragraphs []*Paragraph
	Shading    string // background fill as a hex string, e.g. "C0C0C0"
	RowSpan    int
	ColSpan    int
}

// NewTable creates a table with the given dimensions. Every cell starts with
// a single empty paragraph, matching what word processors produce. Returns
// nil for non-positive dimensions.
func NewTable(rows, cols int) *Table {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	grid := make([][]*Cell, rows)
	for i := range grid {
		grid[i] = make([]*Cell, cols)
		for j := range grid[i] {
			grid[i][j] = &Cell{
				Paragraphs: []*Paragraph{NewParagraph("")},
				RowSpan:    1,
				ColSpan:    1,
			}
		}
	}
	return &Table{Rows: rows, Cols: cols, grid: grid}
}

// Cell returns the cell at (row, col). Coordinates inside a merged region
// all return the merge's top-left cell.
func (t *Table) Cell(row, col int) (*Cell, bool) {
	if row < 0 || row >= t.Rows || col < 0 || col >= t.Cols {
		return nil, false
	}
	return t.grid[row][col], true
}

// Anchor returns the top-left coordinate at which the cell occupying
// (row, col) first appears in the grid.
func (t *Table) Anchor(row, col int) (int, int, bool) {
	c, ok := t.Cell(row, col)
	if !ok {
		return 0, 0, false
	}
	for r := 0; r < t.Rows; r++ {
		for cc := 0; cc < t.Cols; cc++ {
			if t.grid[r][cc] == c {
				return r, cc, true
			}
		}
	}
	return row, col, true
}

// Merge merges the rectangular region from (startRow, startCol) through
// (endRow, endCol) inclusive. Content of merged-over cells moves into the
// top-left cell. On a violated precondition the table is left unchanged.
func (t *Table) Merge(startRow, startCol, endRow, endCol int) error {
	if startRow < 0 || startCol < 0 || endRow >= t.Rows || endCol >= t.Cols {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d) in %dx%d table",
			ErrOutOfBounds, startRow, startCol, endRow, endCol, t.Rows, t.Cols)
	}
	if startRow > endRow || startCol > endCol {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d)", ErrBadRegion, startRow, startCol, endRow, endCol)
	}

	target := t.grid[startRow][startCol]

	// Collect content of distinct merged-over cells; a cell already spanning
	// several coordinates contributes once.
	seen := map[*Cell]bool{target: true}
	for r := startRow; r <= endRow; r++ {
		for c := startCol; c <= endCol; c++ {
			cell := t.grid[r][c]
			if seen[cell] {
				continue
			}
			seen[cell] = true
			for _, p := range cell.Paragraphs {
				if !p.IsEmpty() {
					target.Paragraphs = append(target.Paragraphs, p)
				}
			}
		}
	}

	for r := startRow; r <= endRow; r++ {
		for c := startCol; c <= endCol; c++ {
			t.grid[r][c] = target
		}
	}
	target.RowSpan = endRow - startRow + 1
	target.ColSpan = endCol - startCol + 1
	return nil
}

// SetCellText sets the text of the cell at (row, col), ignoring
// out-of-bounds coordinates.
func (t *Table) SetCellText(row, col int, text string) {
	if cell, ok := t.Cell(row, col); ok {
		cell.SetText(text)
	}
}

// Text returns the concatenated text of the cell's paragraphs, one line per
// paragraph.
func (c *Cell) Text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, p.Text())
	}
	return strings.TrimRight(strings.Join(parts, "\n"), "\n")
}

// SetText replaces the cell content with a single paragraph holding a single
// unstyled run. Run handles obtained before the call become invalid.
func (c *Cell) SetText(text string) {
	c.Paragraphs = []*Paragraph{NewParagraph(text)}
	if text == "" {
		c.Paragraphs = []*Paragraph{NewParagraph("")}
	}
}

// FirstParagraph returns the cell's first paragraph, creating one if the
// cell is somehow empty.
func (c *Cell) FirstParagraph() *Paragraph {
	if len(c.Paragraphs) == 0 {
		c.Paragraphs = []*Paragraph{NewParagraph("")}
	}
	return c.Paragraphs[0]
}
