package ui

import (
	"math/rand/v2"
	"sync"

	"gridedit/internal/grid"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// HSL bounds for generated cell colors.
const (
	hueSpan        = 360 // 0-359
	saturationMin  = 80
	saturationSpan = 20 // 80-99%
	lightnessMin   = 30
	lightnessSpan  = 30 // 30-59%

	// Text on backgrounds darker than this is drawn light.
	darkTextThreshold = 45
)

// CellColor is the color pair assigned to one value.
type CellColor struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
}

type hsl struct{ h, s, l int }

// Palette assigns every value a random color the first time it is seen and
// keeps it for the rest of the session. No two values share a color.
type Palette struct {
	mu     sync.Mutex
	rng    *rand.Rand
	byVal  map[grid.Value]CellColor
	used   map[string]bool
	seeded bool
}

// NewPalette creates a palette. Seed 0 picks a random seed.
func NewPalette(seed int64) *Palette {
	p := &Palette{
		byVal: make(map[grid.Value]CellColor),
		used:  make(map[string]bool),
	}
	if seed == 0 {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		p.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
		p.seeded = true
	}
	return p
}

// Color returns the color of v, assigning one on first use.
func (p *Palette) Color(v grid.Value) CellColor {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.byVal[v]; ok {
		return c
	}
	// Neighbouring HSL triples can round to the same RGB, so uniqueness is
	// checked on the hex form.
	var (
		pick hsl
		hex  string
	)
	for {
		pick = hsl{
			h: p.rng.IntN(hueSpan),
			s: saturationMin + p.rng.IntN(saturationSpan),
			l: lightnessMin + p.rng.IntN(lightnessSpan),
		}
		hex = colorful.Hsl(float64(pick.h), float64(pick.s)/100, float64(pick.l)/100).Clamped().Hex()
		if !p.used[hex] {
			break
		}
	}
	p.used[hex] = true

	fg := lipgloss.Color("#101F38")
	if pick.l < darkTextThreshold {
		fg = lipgloss.Color("#f2f2f2")
	}
	c := CellColor{Background: lipgloss.Color(hex), Foreground: fg}
	p.byVal[v] = c
	return c
}

// Assign colors every value in vals that has none yet, in order.
func (p *Palette) Assign(vals []grid.Value) {
	for _, v := range vals {
		if !v.IsEmpty() {
			p.Color(v)
		}
	}
}

// Len returns how many values have a color.
func (p *Palette) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byVal)
}

// Seeded reports whether the palette is reproducible.
func (p *Palette) Seeded() bool { return p.seeded }
