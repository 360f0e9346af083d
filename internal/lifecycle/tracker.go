// Package lifecycle keeps structural row changes consistent with history.
//
// Snapshots only carry values, so before a snapshot with a different slot
// count can be restored the grid has to grow or shrink by whole rows. The
// Tracker remembers which rows were appended after the initial rows (the
// added-row log) and which rows reconciliation took away (the retired
// stack) so that a redo re-appends the same row identities an undo removed.
package lifecycle

import (
	"errors"
	"fmt"

	"gridedit/internal/grid"

	"go.uber.org/zap"
)

// ErrRowLogEmpty is returned when a shrink is needed but no appended row is
// on record. It always arrives wrapped in grid.ErrSnapshotSizeMismatch.
var ErrRowLogEmpty = errors.New("added-row log is empty")

// Rows is the part of the grid reconciliation mutates.
type Rows interface {
	Len() int
	Last() (grid.Row, bool)
	AppendRow(row grid.Row) error
	RemoveLastRow() (grid.Row, error)
}

// Tracker is the added-row log plus the retired-row stack.
type Tracker struct {
	log     []grid.RowID
	retired []grid.Row
	logger  *zap.Logger
}

// NewTracker returns an empty tracker. A nil logger disables logging.
func NewTracker(logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{logger: logger}
}

// Track records a row appended by add-row.
func (t *Tracker) Track(id grid.RowID) {
	t.log = append(t.log, id)
}

// Release pops the log for a row removed by remove-row.
func (t *Tracker) Release(id grid.RowID) error {
	top, err := t.pop()
	if err != nil {
		return err
	}
	if top != id {
		return fmt.Errorf("released row %s but log top is %s", id, top)
	}
	return nil
}

// Clear empties the log after a reset dropped every appended row.
func (t *Tracker) Clear() {
	t.log = t.log[:0]
}

// DropRetired forgets rows kept for a redo branch that no longer exists.
func (t *Tracker) DropRetired() {
	t.retired = t.retired[:0]
}

// Added returns the ids of appended rows, oldest first.
func (t *Tracker) Added() []grid.RowID {
	return append([]grid.RowID(nil), t.log...)
}

// Retired returns how many rows are held for a possible redo.
func (t *Tracker) Retired() int { return len(t.retired) }

// Reconcile grows or shrinks rows until it holds slots cells. Rows are
// removed from or appended to the end only.
func (t *Tracker) Reconcile(rows Rows, slots int) error {
	if slots%grid.Columns != 0 || slots < grid.MinRows*grid.Columns || slots > grid.MaxRows*grid.Columns {
		return fmt.Errorf("%w: %d slots cannot form a %d-column grid", grid.ErrSnapshotSizeMismatch, slots, grid.Columns)
	}
	want := slots / grid.Columns
	have := rows.Len()
	if want == have {
		return nil
	}
	t.logger.Debug("Reconciling row count",
		zap.Int("have", have),
		zap.Int("want", want),
		zap.Int("logged", len(t.log)),
		zap.Int("retired", len(t.retired)))

	for rows.Len() > want {
		if err := t.shrink(rows); err != nil {
			return fmt.Errorf("%w: %w", grid.ErrSnapshotSizeMismatch, err)
		}
	}
	for rows.Len() < want {
		if err := t.grow(rows); err != nil {
			return fmt.Errorf("%w: %w", grid.ErrSnapshotSizeMismatch, err)
		}
	}
	return nil
}

func (t *Tracker) shrink(rows Rows) error {
	id, err := t.pop()
	if err != nil {
		return err
	}
	last, ok := rows.Last()
	if !ok || last.ID != id {
		t.log = append(t.log, id)
		return fmt.Errorf("last row is %s, log expects %s", last.ID, id)
	}
	removed, err := rows.RemoveLastRow()
	if err != nil {
		t.log = append(t.log, id)
		return err
	}
	t.retired = append(t.retired, removed)
	return nil
}

func (t *Tracker) grow(rows Rows) error {
	var row grid.Row
	if n := len(t.retired); n > 0 {
		row = t.retired[n-1]
		t.retired = t.retired[:n-1]
	} else {
		// Values are overwritten by the restore that follows.
		row = grid.Row{ID: grid.NewRowID()}
	}
	if err := rows.AppendRow(row); err != nil {
		t.retired = append(t.retired, row)
		return err
	}
	t.log = append(t.log, row.ID)
	return nil
}

func (t *Tracker) pop() (grid.RowID, error) {
	n := len(t.log)
	if n == 0 {
		return "", ErrRowLogEmpty
	}
	id := t.log[n-1]
	t.log = t.log[:n-1]
	return id, nil
}
