package ui

import (
	"fmt"
	"strings"

	"gridedit/internal/grid"

	"github.com/charmbracelet/lipgloss"
)

// gridLeft is the left margin of the grid in columns.
const gridLeft = 1

// View implements tea.Model.
func (m Model) View() string {
	if m.overlay {
		return m.renderOverlay()
	}

	sections := []string{
		m.renderHeader(),
		m.renderGrid(),
		"",
		m.renderStatus(),
		m.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("gridedit")
	info := fmt.Sprintf(" %d×%d", m.session.Rows(), grid.Columns)
	if !m.layout.IsCompact {
		info += fmt.Sprintf("  rows %d-%d", grid.MinRows, grid.MaxRows)
	}
	width := m.width
	if width == 0 {
		width = GridWidth(grid.Columns) + gridLeft
	}
	// HeaderHeight lines: title and divider.
	return title + m.styles.Muted.Render(info) + "\n" + m.styles.RenderDivider(width)
}

func (m Model) renderGrid() string {
	var picked *grid.Position
	if p, ok := m.session.Dragging(); ok {
		picked = &p
	}
	view := NewGridView(m.session.CurrentValues(), m.cursor, picked)
	out := m.cache.GetOrCompute(view.Key(m.styles), func() string {
		return view.View(m.styles, m.palette)
	})
	return lipgloss.NewStyle().PaddingLeft(gridLeft).Render(out)
}

func (m Model) renderStatus() string {
	switch m.statusKind {
	case statusInfo:
		return m.styles.Status.Inherit(m.styles.Info).Render(m.status)
	case statusWarn:
		return m.styles.Status.Inherit(m.styles.Warning).Render(m.status)
	case statusError:
		return m.styles.Status.Inherit(m.styles.Error).Render(m.status)
	}
	if e, ok := m.session.Auditor().Last(); ok {
		return m.styles.Status.Inherit(m.styles.Muted).Render("last: " + e.Action)
	}
	return ""
}

func (m Model) renderFooter() string {
	h := m.session.History()
	badge := func(label string, on bool) string {
		if on {
			return m.styles.Badge.Render(label)
		}
		return m.styles.Muted.Render(" " + label + " ")
	}
	avail := badge("undo", h.CanUndo) + " " + badge("redo", h.CanRedo) +
		m.styles.Muted.Render(fmt.Sprintf("  %d/%d", h.Cursor+1, h.Len))

	if !m.hints {
		return m.styles.Footer.Render(avail)
	}
	return m.styles.Footer.Render(avail + "\n" + m.help.View(m.keys))
}

func (m Model) renderOverlay() string {
	if m.helpText == "" {
		full := m.help
		full.ShowAll = true
		return full.View(m.keys)
	}
	return m.helpText
}
