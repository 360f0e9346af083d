// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants
const (
	// Grid cells
	CellWidth   = 8 // fits "10000" with padding
	CellHeight  = 3 // value line plus top and bottom border
	CellBorders = 2

	// Control areas
	HeaderHeight    = 2
	FooterHeight    = 2
	StatusBarHeight = 1

	// Responsive breakpoints
	CompactModeWidth = 60
	HelpWrapMargin   = 4
	MinHelpWidth     = 40
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width > 0 && width < CompactModeWidth,
	}
}

// GridWidth returns the rendered width of a grid with cols columns.
func GridWidth(cols int) int {
	return cols * (CellWidth + CellBorders)
}

// HelpWidth returns the word-wrap width for the help overlay.
func (l LayoutConfig) HelpWidth() int {
	if l.TerminalWidth == 0 {
		return 80
	}
	return max(l.TerminalWidth-HelpWrapMargin, MinHelpWidth)
}
