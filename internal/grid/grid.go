// Package grid holds the authoritative cell matrix of the editor.
//
// A Grid is fixed at Columns cells per row and keeps between MinRows and
// MaxRows rows. The first MinRows rows are the initial rows; only rows
// appended after them can be removed. Values are plain integers and the
// grid never knows about colors or rendering.
package grid

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/google/uuid"
)

// Grid bounds.
const (
	Columns = 3
	MinRows = 3
	MaxRows = 10
)

// Value is a single cell value. Empty marks a cell whose value was moved away.
type Value int

// Empty is the zero Value. Generated and initial values are always positive.
const Empty Value = 0

// String renders the value as text; empty cells render as "".
func (v Value) String() string {
	if v == Empty {
		return ""
	}
	return strconv.Itoa(int(v))
}

// IsEmpty reports whether the cell holds no value.
func (v Value) IsEmpty() bool { return v == Empty }

// RowID identifies a row instance across structural changes.
type RowID string

// NewRowID mints a fresh row identity.
func NewRowID() RowID {
	return RowID(uuid.New().String())
}

// Row is an ordered group of exactly Columns cells.
type Row struct {
	ID    RowID
	Cells [Columns]Value
}

// Position addresses a single cell.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Snapshot is the row-major flattened sequence of every cell value.
// It carries no row identities.
type Snapshot []Value

// Rows returns how many full rows the snapshot describes.
func (s Snapshot) Rows() int { return len(s) / Columns }

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot { return slices.Clone(s) }

// Initial is the canonical starting layout.
var Initial = [MinRows][Columns]Value{
	{100, 200, 300},
	{400, 500, 600},
	{700, 800, 900},
}

// Grid is the matrix of rows. The zero value is an empty grid outside the
// row bounds; call New for the initial layout.
type Grid struct {
	rows []Row
}

// New returns a grid holding the canonical initial layout.
func New() *Grid {
	g := &Grid{}
	g.rows = initialRows()
	return g
}

func initialRows() []Row {
	rows := make([]Row, 0, MaxRows)
	for _, cells := range Initial {
		rows = append(rows, Row{ID: NewRowID(), Cells: cells})
	}
	return rows
}

// Len returns the current row count.
func (g *Grid) Len() int { return len(g.rows) }

// Slots returns the total number of cells.
func (g *Grid) Slots() int { return len(g.rows) * Columns }

// Row returns a copy of row i.
func (g *Grid) Row(i int) (Row, bool) {
	if i < 0 || i >= len(g.rows) {
		return Row{}, false
	}
	return g.rows[i], true
}

// Last returns a copy of the last row.
func (g *Grid) Last() (Row, bool) {
	return g.Row(len(g.rows) - 1)
}

// Rows returns a copy of every row.
func (g *Grid) Rows() []Row {
	return slices.Clone(g.rows)
}

// Contains reports whether p addresses a cell of the grid.
func (g *Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < len(g.rows) && p.Col >= 0 && p.Col < Columns
}

// Value returns the value at p.
func (g *Grid) Value(p Position) (Value, error) {
	if !g.Contains(p) {
		return Empty, fmt.Errorf("%w: position %s outside %dx%d grid", ErrInvalidGesture, p, len(g.rows), Columns)
	}
	return g.rows[p.Row].Cells[p.Col], nil
}

// Max returns the largest value in the grid, never less than zero.
func (g *Grid) Max() Value {
	top := Empty
	for _, r := range g.rows {
		for _, v := range r.Cells {
			top = max(top, v)
		}
	}
	return top
}

// Swap exchanges the values at a and b. When b is empty the value at a
// moves to b and a is left empty.
func (g *Grid) Swap(a, b Position) error {
	if !g.Contains(a) {
		return fmt.Errorf("%w: source %s outside grid", ErrInvalidGesture, a)
	}
	if !g.Contains(b) {
		return fmt.Errorf("%w: target %s outside grid", ErrInvalidGesture, b)
	}
	src := &g.rows[a.Row].Cells[a.Col]
	dst := &g.rows[b.Row].Cells[b.Col]
	if dst.IsEmpty() {
		*dst, *src = *src, Empty
		return nil
	}
	*src, *dst = *dst, *src
	return nil
}

// AddRow appends a new row with the given values.
func (g *Grid) AddRow(values [Columns]Value) (Row, error) {
	row := Row{ID: NewRowID(), Cells: values}
	if err := g.AppendRow(row); err != nil {
		return Row{}, err
	}
	return row, nil
}

// AppendRow appends an existing row instance, keeping its identity.
func (g *Grid) AppendRow(row Row) error {
	if len(g.rows) >= MaxRows {
		return fmt.Errorf("%w: %d rows", ErrCapacityExceeded, MaxRows)
	}
	g.rows = append(g.rows, row)
	return nil
}

// RemoveLastRow removes and returns the last row.
func (g *Grid) RemoveLastRow() (Row, error) {
	if len(g.rows) <= MinRows {
		return Row{}, fmt.Errorf("%w: %d rows", ErrMinimumRows, MinRows)
	}
	last := g.rows[len(g.rows)-1]
	g.rows = g.rows[:len(g.rows)-1]
	return last, nil
}

// Reset replaces the grid with the canonical initial layout and returns
// the rows that were dropped.
func (g *Grid) Reset() []Row {
	dropped := g.rows
	g.rows = initialRows()
	return dropped
}

// Flatten captures every value in row-major order.
func (g *Grid) Flatten() Snapshot {
	snap := make(Snapshot, 0, g.Slots())
	for _, r := range g.rows {
		snap = append(snap, r.Cells[:]...)
	}
	return snap
}

// Restore overwrites every cell positionally from snap. The grid is left
// untouched when the slot counts differ.
func (g *Grid) Restore(snap Snapshot) error {
	if len(snap) != g.Slots() {
		return fmt.Errorf("%w: snapshot has %d slots, grid has %d", ErrSnapshotSizeMismatch, len(snap), g.Slots())
	}
	for i := range g.rows {
		copy(g.rows[i].Cells[:], snap[i*Columns:(i+1)*Columns])
	}
	return nil
}

// Cell is one addressed value of the read-only view.
type Cell struct {
	Position
	Value Value
}

// Cells returns every cell in row-major order.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Slots())
	for r, row := range g.rows {
		for c, v := range row.Cells {
			cells = append(cells, Cell{Position: Position{Row: r, Col: c}, Value: v})
		}
	}
	return cells
}
