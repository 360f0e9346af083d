package ui

import (
	"fmt"

	"gridedit/internal/grid"

	"github.com/charmbracelet/glamour"
)

var cheatSheet = fmt.Sprintf(`# gridedit

Rearrange the values of a %d-column grid, grow it to %d rows and step
back and forth through every change.

## Moving values

| Key | Action |
|-----|--------|
| arrows / hjkl | move the cursor |
| space / enter | pick up the value under the cursor, press again to drop it |
| esc | put the picked-up value back |

Dropping onto another value swaps the two. Dropping onto an empty cell
moves the value there and leaves its old cell empty.

## Rows

| Key | Action |
|-----|--------|
| a | append a row of three new values |
| x / d | remove the last row (the first %d rows stay) |
| r | reset to the starting grid |

## History

| Key | Action |
|-----|--------|
| ctrl+z / u | undo |
| ctrl+y / ctrl+r | redo |

Making a change after undoing discards everything you could have redone.

Press **?** to close this help.
`, grid.Columns, grid.MaxRows, grid.MinRows)

// RenderHelp renders the cheat sheet for the given width and theme.
func RenderHelp(width int, dark bool) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create help renderer: %w", err)
	}
	out, err := r.Render(cheatSheet)
	if err != nil {
		return "", fmt.Errorf("failed to render help: %w", err)
	}
	return out, nil
}
