package ui

import (
	"gridedit/internal/grid"
	"gridedit/internal/session"

	"github.com/charmbracelet/lipgloss"
)

// GridView renders the cell matrix with the cursor and picked-up cell.
type GridView struct {
	Cells  []session.CellValue
	Cursor grid.Position
	Picked *grid.Position
}

// NewGridView creates a view of cells.
func NewGridView(cells []session.CellValue, cursor grid.Position, picked *grid.Position) GridView {
	return GridView{Cells: cells, Cursor: cursor, Picked: picked}
}

// Rows returns the number of rows in the view.
func (v GridView) Rows() int {
	return (len(v.Cells) + grid.Columns - 1) / grid.Columns
}

// Key identifies everything that affects the rendered output.
func (v GridView) Key(styles Styles) uint64 {
	vals := make([]int, len(v.Cells))
	for i, c := range v.Cells {
		vals[i] = int(c.Value)
	}
	pickedRow, pickedCol := -1, -1
	if v.Picked != nil {
		pickedRow, pickedCol = v.Picked.Row, v.Picked.Col
	}
	return ComputeKey(vals, v.Cursor.Row, v.Cursor.Col, pickedRow, pickedCol, styles.Theme.IsDark)
}

// View renders the grid using the provided styles and palette.
func (v GridView) View(styles Styles, palette *Palette) string {
	if len(v.Cells) == 0 {
		return ""
	}

	rows := make([]string, 0, v.Rows())
	line := make([]string, 0, grid.Columns)
	for _, c := range v.Cells {
		line = append(line, v.renderCell(styles, palette, c))
		if len(line) == grid.Columns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line = line[:0]
		}
	}
	if len(line) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v GridView) renderCell(styles Styles, palette *Palette, c session.CellValue) string {
	p := grid.Position{Row: c.Row, Col: c.Col}

	var style lipgloss.Style
	switch {
	case v.Picked != nil && *v.Picked == p:
		style = styles.CellPicked
	case v.Cursor == p:
		style = styles.CellCursor
	case c.Value.IsEmpty():
		style = styles.CellEmpty
	default:
		style = styles.Cell
	}

	text := c.Value.String()
	if c.Value.IsEmpty() {
		text = "·"
	} else if palette != nil {
		col := palette.Color(c.Value)
		style = style.Background(col.Background).Foreground(col.Foreground)
	}
	return style.Render(text)
}
