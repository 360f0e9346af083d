// Package session is the interaction controller of the grid editor.
//
// A Session owns one grid, its value generator, the undo/redo history and
// the row lifecycle tracker. Every public method is serialized by a mutex,
// so the terminal UI, script replay and tests may call it from any
// goroutine. A mutation either completes and records exactly one history
// entry, or is rejected and leaves everything untouched.
package session

import (
	"errors"
	"fmt"
	"sync"

	"gridedit/internal/grid"
	"gridedit/internal/history"
	"gridedit/internal/lifecycle"
	"gridedit/internal/logging"

	"go.uber.org/zap"
)

// ErrFaulted is returned by every mutation after an undo or redo failed to
// restore a snapshot. It wraps the original cause.
var ErrFaulted = errors.New("session faulted")

// User-facing refusals.
const (
	MsgCapacity = "You can't add more than 10 rows!"
	MsgMinimum  = "You can't remove the initial 3 rows!"
)

// CellValue is one cell of the read-only view.
type CellValue struct {
	Row   int
	Col   int
	Value grid.Value
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the category loggers.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) { s.logs = l }
}

// WithAuditor records every gesture to a.
func WithAuditor(a *logging.Auditor) Option {
	return func(s *Session) { s.auditor = a }
}

// WithMaxDepth bounds the history. Zero means unlimited.
func WithMaxDepth(n int) Option {
	return func(s *Session) { s.maxDepth = n }
}

// WithObserver is told the undo/redo availability after every transition.
// It runs with the session locked and must not call back into the Session.
func WithObserver(fn func(history.Availability)) Option {
	return func(s *Session) { s.observer = fn }
}

// Session is the interaction controller.
type Session struct {
	mu sync.Mutex

	grid    *grid.Grid
	gen     grid.Generator
	history *history.Manager
	tracker *lifecycle.Tracker

	logs     *logging.Logger
	log      *zap.Logger
	auditor  *logging.Auditor
	maxDepth int
	observer func(history.Availability)

	drag  *grid.Position
	fault error
}

// New creates a session showing the initial grid, with that grid saved as
// the first history entry.
func New(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logs == nil {
		s.logs = logging.Nop()
	}
	if s.auditor == nil {
		s.auditor = logging.NewAuditor(0, s.logs.Get(logging.CategoryAudit))
	}
	s.log = s.logs.Get(logging.CategorySession)

	hopts := []history.Option{history.WithMaxDepth(s.maxDepth)}
	if s.observer != nil {
		hopts = append(hopts, history.WithObserver(s.observer))
	}
	s.grid = grid.New()
	s.history = history.NewManager(hopts...)
	s.tracker = lifecycle.NewTracker(s.logs.Get(logging.CategoryLifecycle))

	s.save()
	s.auditor.Record(logging.AuditEvent{
		EventType: logging.AuditSessionStart,
		Action:    "start",
		Success:   true,
		Rows:      s.grid.Len(),
		Cursor:    s.history.Cursor(),
	})
	s.log.Debug("Session started", zap.Int("rows", s.grid.Len()))
	return s
}

// =============================================================================
// GESTURES
// =============================================================================

// DragStart picks up the value at p.
func (s *Session) DragStart(p grid.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkFault(); err != nil {
		return err
	}
	return s.dragStart(p)
}

func (s *Session) dragStart(p grid.Position) error {
	v, err := s.grid.Value(p)
	if err != nil {
		return err
	}
	if v.IsEmpty() {
		return fmt.Errorf("%w: cell %s is empty", grid.ErrInvalidGesture, p)
	}
	s.drag = &p
	return nil
}

// Drop releases the picked-up value onto p. Dropping onto the cell it was
// picked from cancels the drag and records nothing.
func (s *Session) Drop(p grid.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkFault(); err != nil {
		return err
	}
	return s.drop(p)
}

func (s *Session) drop(p grid.Position) error {
	if s.drag == nil {
		return s.reject("drop "+positionArg(p), fmt.Errorf("%w: no drag in progress", grid.ErrInvalidGesture))
	}
	from := *s.drag
	s.drag = nil

	action := Command{Kind: CommandSwap, From: from, To: p}.String()
	if from == p {
		s.log.Debug("Drop on origin cancels drag", zap.Stringer("cell", p))
		return nil
	}
	if err := s.grid.Swap(from, p); err != nil {
		return s.reject(action, err)
	}
	s.save()
	s.applied(action)
	return nil
}

// CancelDrag abandons the current drag, if any.
func (s *Session) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag = nil
}

// Swap exchanges the values at a and b, as a drag from a dropped on b.
func (s *Session) Swap(a, b grid.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkFault(); err != nil {
		return err
	}
	s.drag = nil
	if err := s.dragStart(a); err != nil {
		return s.reject(Command{Kind: CommandSwap, From: a, To: b}.String(), err)
	}
	return s.drop(b)
}

// AddRow appends a row of three generated values.
func (s *Session) AddRow() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkFault(); err != nil {
		return err
	}
	s.drag = nil

	action := CommandAddRow.String()
	if s.grid.Len() >= grid.MaxRows {
		return s.reject(action, fmt.Errorf("%w: %s", grid.ErrCapacityExceeded, MsgCapacity))
	}
	row, err := s.grid.AddRow(s.gen.Row(s.grid))
	if err != nil {
		return s.reject(action, err)
	}
	s.tracker.Track(row.ID)
	s.save()
	s.applied(action)
	return nil
}

// RemoveRow removes the last row. The initial rows are never removed.
func (s *Session) RemoveRow() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkFault(); err != nil {
		return err
	}
	s.drag = nil

	action := CommandRemoveRow.String()
	if s.grid.Len() <= grid.MinRows {
		return s.reject(action, fmt.Errorf("%w: %s", grid.ErrMinimumRows, MsgMinimum))
	}
	row, err := s.grid.RemoveLastRow()
	if err != nil {
		return s.reject(action, err)
	}
	if err := s.tracker.Release(row.ID); err != nil {
		return s.faulted(action, err)
	}
	s.save()
	s.applied(action)
	return nil
}

// Reset restores the canonical 3x3 grid as a new history entry.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkFault(); err != nil {
		return err
	}
	s.drag = nil

	dropped := s.grid.Reset()
	s.tracker.Clear()
	s.save()
	s.log.Debug("Grid reset", zap.Int("dropped_rows", len(dropped)))
	s.applied(CommandReset.String())
	return nil
}

// Undo moves one step back in history. It reports whether anything changed.
func (s *Session) Undo() (bool, error) {
	return s.step(CommandUndo)
}

// Redo moves one step forward in history. It reports whether anything changed.
func (s *Session) Redo() (bool, error) {
	return s.step(CommandRedo)
}

func (s *Session) step(kind CommandKind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkFault(); err != nil {
		return false, err
	}
	s.drag = nil

	target := history.TargetFunc(s.restore)
	var (
		changed bool
		err     error
		event   = logging.AuditUndo
	)
	if kind == CommandUndo {
		changed, err = s.history.Undo(target)
	} else {
		changed, err = s.history.Redo(target)
		event = logging.AuditRedo
	}
	if err != nil {
		return false, s.faulted(kind.String(), err)
	}

	e := logging.AuditEvent{
		EventType: event,
		Action:    kind.String(),
		Success:   changed,
		Rows:      s.grid.Len(),
		Cursor:    s.history.Cursor(),
	}
	if !changed {
		e.Message = "nothing to " + kind.String()
	}
	s.auditor.Record(e)
	return changed, nil
}

// restore shows snap, growing or shrinking the grid first when the slot
// counts differ.
func (s *Session) restore(snap grid.Snapshot) error {
	if err := s.tracker.Reconcile(s.grid, len(snap)); err != nil {
		return err
	}
	return s.grid.Restore(snap)
}

// Apply dispatches one command of the command stream.
func (s *Session) Apply(cmd Command) error {
	switch cmd.Kind {
	case CommandSwap:
		return s.Swap(cmd.From, cmd.To)
	case CommandAddRow:
		return s.AddRow()
	case CommandRemoveRow:
		return s.RemoveRow()
	case CommandReset:
		return s.Reset()
	case CommandUndo:
		_, err := s.Undo()
		return err
	case CommandRedo:
		_, err := s.Redo()
		return err
	default:
		return fmt.Errorf("%w: unknown command %s", grid.ErrInvalidGesture, cmd.Kind)
	}
}

// =============================================================================
// READ SIDE
// =============================================================================

// CurrentValues returns every cell in row-major order.
func (s *Session) CurrentValues() []CellValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells := s.grid.Cells()
	out := make([]CellValue, len(cells))
	for i, c := range cells {
		out[i] = CellValue{Row: c.Row, Col: c.Col, Value: c.Value}
	}
	return out
}

// Snapshot returns the flattened values.
func (s *Session) Snapshot() grid.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Flatten()
}

// Rows returns the current row count.
func (s *Session) Rows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Len()
}

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fault == nil && s.history.CanUndo()
}

// CanRedo reports whether Redo would change anything.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fault == nil && s.history.CanRedo()
}

// History returns the undo/redo availability.
func (s *Session) History() history.Availability {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Availability()
}

// Dragging returns the picked-up cell, if any.
func (s *Session) Dragging() (grid.Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil {
		return grid.Position{}, false
	}
	return *s.drag, true
}

// Fault returns the error that faulted the session, or nil.
func (s *Session) Fault() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fault
}

// Auditor returns the audit trail.
func (s *Session) Auditor() *logging.Auditor { return s.auditor }

// =============================================================================
// INTERNALS
// =============================================================================

func (s *Session) save() {
	s.history.Save(s.grid.Flatten())
	s.tracker.DropRetired()
}

func (s *Session) checkFault() error {
	if s.fault != nil {
		return fmt.Errorf("%w: %w", ErrFaulted, s.fault)
	}
	return nil
}

func (s *Session) applied(action string) {
	s.log.Debug("Gesture applied",
		zap.String("action", action),
		zap.Int("rows", s.grid.Len()),
		zap.Int("cursor", s.history.Cursor()))
	s.auditor.Record(logging.AuditEvent{
		EventType: logging.AuditGestureApplied,
		Action:    action,
		Success:   true,
		Rows:      s.grid.Len(),
		Cursor:    s.history.Cursor(),
	})
}

func (s *Session) reject(action string, err error) error {
	s.log.Debug("Gesture rejected", zap.String("action", action), zap.Error(err))
	s.auditor.Record(logging.AuditEvent{
		EventType: logging.AuditGestureRejected,
		Action:    action,
		Rows:      s.grid.Len(),
		Cursor:    s.history.Cursor(),
		Error:     err.Error(),
	})
	return err
}

func (s *Session) faulted(action string, err error) error {
	s.fault = err
	s.log.Error("Session faulted",
		zap.String("action", action),
		zap.Int("rows", s.grid.Len()),
		zap.Int("cursor", s.history.Cursor()),
		zap.Error(err))
	s.auditor.Record(logging.AuditEvent{
		EventType: logging.AuditFault,
		Action:    action,
		Rows:      s.grid.Len(),
		Cursor:    s.history.Cursor(),
		Error:     err.Error(),
	})
	return fmt.Errorf("%w: %w", ErrFaulted, err)
}

func positionArg(p grid.Position) string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}
