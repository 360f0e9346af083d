package grid

// Step is the spacing between generated values.
const Step Value = 100

// Generator derives new cell values from what the grid currently shows.
//
// Within one add-row operation (started with Begin) each call to Next
// returns max(grid) + n*Step for n = 1, 2, 3... Nothing is remembered
// between operations, so the result stays unique after undo or redo
// changes the grid maximum.
type Generator struct {
	calls int
}

// Begin starts a new add-row operation.
func (gen *Generator) Begin() {
	gen.calls = 0
}

// Next returns the next value for the current operation.
func (gen *Generator) Next(g *Grid) Value {
	gen.calls++
	return g.Max() + Value(gen.calls)*Step
}

// Row generates a full row of values for one add-row operation.
func (gen *Generator) Row(g *Grid) [Columns]Value {
	gen.Begin()
	var values [Columns]Value
	for i := range values {
		values[i] = gen.Next(g)
	}
	return values
}
