package ui

import (
	"testing"

	"gridedit/internal/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalette_StablePerValue(t *testing.T) {
	p := NewPalette(42)

	first := p.Color(grid.Value(100))
	again := p.Color(grid.Value(100))
	assert.Equal(t, first, again)
	assert.Equal(t, 1, p.Len())
	assert.True(t, p.Seeded())
}

func TestPalette_UniqueColors(t *testing.T) {
	p := NewPalette(7)

	seen := make(map[CellColor]grid.Value)
	for i := 1; i <= grid.MaxRows*grid.Columns*4; i++ {
		v := grid.Value(i * 100)
		c := p.Color(v)
		if other, dup := seen[c]; dup {
			t.Fatalf("values %d and %d share color %v", other, v, c)
		}
		seen[c] = v
	}
}

func TestPalette_SeedIsReproducible(t *testing.T) {
	vals := []grid.Value{100, 200, 300, 400}

	a := NewPalette(99)
	b := NewPalette(99)
	a.Assign(vals)
	b.Assign(vals)
	for _, v := range vals {
		assert.Equal(t, a.Color(v), b.Color(v), "value %d", v)
	}
}

func TestPalette_AssignSkipsEmpty(t *testing.T) {
	p := NewPalette(1)
	p.Assign([]grid.Value{grid.Empty, 100, grid.Empty, 200})
	assert.Equal(t, 2, p.Len())
}

func TestPalette_ColorsAreHex(t *testing.T) {
	p := NewPalette(3)
	c := p.Color(grid.Value(500))
	require.Len(t, string(c.Background), 7)
	assert.Equal(t, byte('#'), string(c.Background)[0])
	assert.NotEmpty(t, c.Foreground)
}

func TestPalette_RandomSeed(t *testing.T) {
	p := NewPalette(0)
	assert.False(t, p.Seeded())
	p.Color(grid.Value(100))
	assert.Equal(t, 1, p.Len())
}
