package ui

import (
	"errors"

	"gridedit/internal/grid"
	"gridedit/internal/session"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 0)
		m.height = max(msg.Height, 0)
		m.layout = NewLayoutConfig(m.width, m.height)
		m.help.Width = m.width
		m.helpText = ""
		return m, nil

	case ConfigChangedMsg:
		m.applyConfig(msg.Config)
		m.setStatus(statusInfo, "Configuration reloaded.")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.overlay {
		if key.Matches(msg, m.keys.Help, m.keys.Cancel) {
			m.overlay = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.overlay = true
		if m.helpText == "" {
			text, err := RenderHelp(m.layout.HelpWidth(), m.styles.Theme.IsDark)
			if err != nil {
				m.logger.Warn("Help render failed", zap.Error(err))
			}
			m.helpText = text
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)

	case key.Matches(msg, m.keys.Pick):
		return m.pick(m.cursor)

	case key.Matches(msg, m.keys.Cancel):
		if _, ok := m.session.Dragging(); ok {
			m.session.CancelDrag()
			m.setStatus(statusInfo, "Put it back.")
		}

	case key.Matches(msg, m.keys.AddRow):
		return m.result(m.session.AddRow())
	case key.Matches(msg, m.keys.RemoveRow):
		return m.result(m.session.RemoveRow())
	case key.Matches(msg, m.keys.Reset):
		return m.result(m.session.Reset())

	case key.Matches(msg, m.keys.Undo):
		changed, err := m.session.Undo()
		if err == nil && !changed {
			m.setStatus(statusWarn, "Nothing to undo.")
			return m, nil
		}
		return m.result(err)
	case key.Matches(msg, m.keys.Redo):
		changed, err := m.session.Redo()
		if err == nil && !changed {
			m.setStatus(statusWarn, "Nothing to redo.")
			return m, nil
		}
		return m.result(err)
	}
	return m, nil
}

func (m *Model) moveCursor(dRow, dCol int) {
	rows := m.session.Rows()
	m.cursor.Row = min(max(m.cursor.Row+dRow, 0), rows-1)
	m.cursor.Col = min(max(m.cursor.Col+dCol, 0), grid.Columns-1)
}

// pick starts a drag at p, or drops the current one there.
func (m Model) pick(p grid.Position) (tea.Model, tea.Cmd) {
	if _, ok := m.session.Dragging(); ok {
		return m.result(m.session.Drop(p))
	}
	if err := m.session.DragStart(p); err != nil {
		return m.result(err)
	}
	m.setStatus(statusInfo, "Picked up "+p.String()+".")
	return m, nil
}

// result turns the outcome of a session call into status text. A faulted
// session ends the program.
func (m Model) result(err error) (tea.Model, tea.Cmd) {
	m.clampCursor()
	m.palette.Assign(m.session.Snapshot())

	switch {
	case err == nil:
		m.clearStatus()
		return m, nil
	case errors.Is(err, session.ErrFaulted):
		m.fault = err
		m.logger.Error("Session faulted, quitting", zap.Error(err))
		return m, tea.Quit
	case errors.Is(err, grid.ErrCapacityExceeded):
		m.setStatus(statusWarn, session.MsgCapacity)
	case errors.Is(err, grid.ErrMinimumRows):
		m.setStatus(statusWarn, session.MsgMinimum)
	case errors.Is(err, grid.ErrInvalidGesture):
		m.setStatus(statusWarn, MsgEmptyCell)
	default:
		m.setStatus(statusError, err.Error())
	}
	m.logger.Debug("Gesture refused", zap.Error(err))
	return m, nil
}
