// Package history implements the linear undo/redo timeline.
//
// The Manager stores grid snapshots and a cursor pointing at the snapshot
// that is currently applied. Saving after an undo discards the redo branch;
// there is never more than one timeline.
package history

import (
	"fmt"

	"gridedit/internal/grid"
)

// State is the lifecycle state of a Manager.
type State int

const (
	// StateEmpty means nothing was saved yet (cursor -1).
	StateEmpty State = iota
	// StateActive means the cursor points at a saved snapshot.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Target receives the snapshot an undo or redo moves to.
// Apply must leave the target showing exactly that snapshot.
type Target interface {
	Apply(snap grid.Snapshot) error
}

// TargetFunc adapts a function to Target.
type TargetFunc func(snap grid.Snapshot) error

// Apply calls f(snap).
func (f TargetFunc) Apply(snap grid.Snapshot) error { return f(snap) }

// Availability is the undo/redo enablement recomputed after every transition.
type Availability struct {
	CanUndo bool
	CanRedo bool
	Cursor  int
	Len     int
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxDepth bounds the number of stored snapshots. Zero means unlimited.
func WithMaxDepth(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxDepth = n
		}
	}
}

// WithObserver registers a callback invoked after every save, undo and redo.
func WithObserver(fn func(Availability)) Option {
	return func(m *Manager) {
		m.observer = fn
	}
}

// Manager is the snapshot stack with its cursor.
type Manager struct {
	snapshots []grid.Snapshot
	cursor    int
	maxDepth  int
	observer  func(Availability)
}

// NewManager returns an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{cursor: -1}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save records snap as the newest state. Any snapshots after the cursor
// are dropped first.
func (m *Manager) Save(snap grid.Snapshot) {
	if m.cursor < len(m.snapshots)-1 {
		m.snapshots = m.snapshots[:m.cursor+1]
	}
	m.snapshots = append(m.snapshots, snap.Clone())
	m.cursor = len(m.snapshots) - 1

	if m.maxDepth > 0 && len(m.snapshots) > m.maxDepth {
		drop := len(m.snapshots) - m.maxDepth
		m.snapshots = append([]grid.Snapshot(nil), m.snapshots[drop:]...)
		m.cursor -= drop
	}
	m.notify()
}

// Undo steps the cursor back and applies that snapshot to t.
// It reports false without touching t when there is nothing to undo.
// If Apply fails the cursor is left where it was.
func (m *Manager) Undo(t Target) (bool, error) {
	if !m.CanUndo() {
		return false, nil
	}
	return m.move(t, m.cursor-1)
}

// Redo steps the cursor forward and applies that snapshot to t.
func (m *Manager) Redo(t Target) (bool, error) {
	if !m.CanRedo() {
		return false, nil
	}
	return m.move(t, m.cursor+1)
}

func (m *Manager) move(t Target, to int) (bool, error) {
	from := m.cursor
	m.cursor = to
	if err := t.Apply(m.snapshots[to].Clone()); err != nil {
		m.cursor = from
		m.notify()
		return false, fmt.Errorf("apply snapshot %d: %w", to, err)
	}
	m.notify()
	return true, nil
}

// CanUndo reports whether an earlier snapshot exists.
func (m *Manager) CanUndo() bool { return m.cursor > 0 }

// CanRedo reports whether a later snapshot exists.
func (m *Manager) CanRedo() bool { return m.cursor >= 0 && m.cursor < len(m.snapshots)-1 }

// Len returns the number of stored snapshots.
func (m *Manager) Len() int { return len(m.snapshots) }

// Cursor returns the index of the applied snapshot, or -1 when empty.
func (m *Manager) Cursor() int { return m.cursor }

// State returns the lifecycle state.
func (m *Manager) State() State {
	if m.cursor < 0 {
		return StateEmpty
	}
	return StateActive
}

// Current returns a copy of the applied snapshot.
func (m *Manager) Current() (grid.Snapshot, bool) {
	if m.cursor < 0 {
		return nil, false
	}
	return m.snapshots[m.cursor].Clone(), true
}

// Availability returns the current undo/redo enablement.
func (m *Manager) Availability() Availability {
	return Availability{
		CanUndo: m.CanUndo(),
		CanRedo: m.CanRedo(),
		Cursor:  m.cursor,
		Len:     len(m.snapshots),
	}
}

func (m *Manager) notify() {
	if m.observer != nil {
		m.observer(m.Availability())
	}
}
