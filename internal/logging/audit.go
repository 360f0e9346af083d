package logging

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// =============================================================================
// AUDIT EVENT TYPES
// =============================================================================

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	AuditSessionStart    AuditEventType = "session_start"    // Session created with the initial grid
	AuditGestureApplied  AuditEventType = "gesture_applied"  // Swap, add, remove or reset took effect
	AuditGestureRejected AuditEventType = "gesture_rejected" // Capacity, minimum or invalid gesture
	AuditUndo            AuditEventType = "undo"             // Cursor moved back
	AuditRedo            AuditEventType = "redo"             // Cursor moved forward
	AuditFault           AuditEventType = "fault"            // Unrecoverable history mismatch
)

// =============================================================================
// AUDIT EVENT STRUCTURE
// =============================================================================

// AuditEvent is one entry of the audit trail.
type AuditEvent struct {
	Seq       int64          `json:"seq"`
	Timestamp time.Time      `json:"ts"`
	EventType AuditEventType `json:"event"`
	Action    string         `json:"action"`  // Gesture in command form, e.g. "swap 0,0 1,1"
	Success   bool           `json:"success"` // Operation changed state
	Rows      int            `json:"rows"`    // Row count afterwards
	Cursor    int            `json:"cursor"`  // History cursor afterwards
	Error     string         `json:"error,omitempty"`
	Message   string         `json:"msg,omitempty"`
}

// MarshalLogObject lets zap encode the event as structured fields.
func (e AuditEvent) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("seq", e.Seq)
	enc.AddString("event", string(e.EventType))
	enc.AddString("action", e.Action)
	enc.AddBool("success", e.Success)
	enc.AddInt("rows", e.Rows)
	enc.AddInt("cursor", e.Cursor)
	if e.Error != "" {
		enc.AddString("error", e.Error)
	}
	if e.Message != "" {
		enc.AddString("msg", e.Message)
	}
	return nil
}

// String renders the event as a single predicate-style line:
// event(seq, "action", success, rows, cursor).
func (e AuditEvent) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%d, %s, %v, %d, %d", e.EventType, e.Seq, strconv.Quote(e.Action), e.Success, e.Rows, e.Cursor)
	if e.Error != "" {
		b.WriteString(", ")
		b.WriteString(strconv.Quote(e.Error))
	}
	b.WriteString(").")
	return b.String()
}

// =============================================================================
// AUDITOR
// =============================================================================

// DefaultAuditSize is the ring capacity used when none is given.
const DefaultAuditSize = 256

// Auditor keeps the most recent audit events in a ring and mirrors every
// event to zap.
type Auditor struct {
	mu     sync.Mutex
	events []AuditEvent
	next   int
	full   bool
	seq    int64
	logger *zap.Logger
	now    func() time.Time
}

// NewAuditor creates an auditor holding up to size events. A nil logger
// disables mirroring.
func NewAuditor(size int, logger *zap.Logger) *Auditor {
	if size <= 0 {
		size = DefaultAuditSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auditor{
		events: make([]AuditEvent, size),
		logger: logger,
		now:    time.Now,
	}
}

// Record stamps the event with a sequence number and time, stores it and
// returns the stored copy.
func (a *Auditor) Record(event AuditEvent) AuditEvent {
	a.mu.Lock()
	a.seq++
	event.Seq = a.seq
	if event.Timestamp.IsZero() {
		event.Timestamp = a.now()
	}
	a.events[a.next] = event
	a.next = (a.next + 1) % len(a.events)
	if a.next == 0 {
		a.full = true
	}
	a.mu.Unlock()

	switch event.EventType {
	case AuditFault:
		a.logger.Error("Audit", zap.Object("audit", event))
	case AuditGestureRejected:
		a.logger.Warn("Audit", zap.Object("audit", event))
	default:
		a.logger.Info("Audit", zap.Object("audit", event))
	}
	return event
}

// Events returns the retained events, oldest first.
func (a *Auditor) Events() []AuditEvent {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.full {
		return append([]AuditEvent(nil), a.events[:a.next]...)
	}
	out := make([]AuditEvent, 0, len(a.events))
	out = append(out, a.events[a.next:]...)
	return append(out, a.events[:a.next]...)
}

// Last returns the most recent event.
func (a *Auditor) Last() (AuditEvent, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.seq == 0 {
		return AuditEvent{}, false
	}
	i := (a.next - 1 + len(a.events)) % len(a.events)
	return a.events[i], true
}

// Len returns how many events are retained.
func (a *Auditor) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.full {
		return len(a.events)
	}
	return a.next
}

// Total returns how many events were ever recorded.
func (a *Auditor) Total() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seq
}
