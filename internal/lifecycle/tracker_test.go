package lifecycle

import (
	"errors"
	"testing"

	"gridedit/internal/grid"

	"github.com/google/go-cmp/cmp"
)

func addRows(t *testing.T, g *grid.Grid, tr *Tracker, n int) []grid.RowID {
	t.Helper()
	var gen grid.Generator
	var ids []grid.RowID
	for i := 0; i < n; i++ {
		row, err := g.AddRow(gen.Row(g))
		if err != nil {
			t.Fatalf("AddRow failed: %v", err)
		}
		tr.Track(row.ID)
		ids = append(ids, row.ID)
	}
	return ids
}

func tailIDs(g *grid.Grid) []grid.RowID {
	var ids []grid.RowID
	for _, r := range g.Rows()[grid.MinRows:] {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestTracker_ReleaseMatchesLastRow(t *testing.T) {
	g := grid.New()
	tr := NewTracker(nil)
	ids := addRows(t, g, tr, 2)

	removed, err := g.RemoveLastRow()
	if err != nil {
		t.Fatalf("RemoveLastRow failed: %v", err)
	}
	if err := tr.Release(removed.ID); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if diff := cmp.Diff(ids[:1], tr.Added()); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestTracker_ReleaseWrongRow(t *testing.T) {
	tr := NewTracker(nil)
	tr.Track("a")
	if err := tr.Release("b"); err == nil {
		t.Fatal("expected mismatch error")
	}
	if err := tr.Release("c"); !errors.Is(err, ErrRowLogEmpty) {
		t.Errorf("expected ErrRowLogEmpty, got %v", err)
	}
}

func TestTracker_ShrinkThenGrowKeepsIdentity(t *testing.T) {
	g := grid.New()
	tr := NewTracker(nil)
	ids := addRows(t, g, tr, 2)

	if err := tr.Reconcile(g, 9); err != nil {
		t.Fatalf("shrink failed: %v", err)
	}
	if g.Len() != grid.MinRows || len(tr.Added()) != 0 {
		t.Fatalf("expected 3 rows and empty log, got %d/%v", g.Len(), tr.Added())
	}
	if tr.Retired() != 2 {
		t.Errorf("expected 2 retired rows, got %d", tr.Retired())
	}

	if err := tr.Reconcile(g, 15); err != nil {
		t.Fatalf("grow failed: %v", err)
	}
	if diff := cmp.Diff(ids, tailIDs(g)); diff != "" {
		t.Errorf("regrown rows lost identity (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ids, tr.Added()); diff != "" {
		t.Errorf("log mismatch after grow (-want +got):\n%s", diff)
	}
}

func TestTracker_GrowMintsRowsWhenNothingRetired(t *testing.T) {
	g := grid.New()
	tr := NewTracker(nil)

	if err := tr.Reconcile(g, 18); err != nil {
		t.Fatalf("grow failed: %v", err)
	}
	if g.Len() != 6 {
		t.Fatalf("expected 6 rows, got %d", g.Len())
	}
	if diff := cmp.Diff(tailIDs(g), tr.Added()); diff != "" {
		t.Errorf("log must mirror appended rows (-want +got):\n%s", diff)
	}
}

func TestTracker_ShrinkWithEmptyLog(t *testing.T) {
	g := grid.New()
	if _, err := g.AddRow([grid.Columns]grid.Value{1, 2, 3}); err != nil {
		t.Fatalf("AddRow failed: %v", err)
	}
	tr := NewTracker(nil)

	err := tr.Reconcile(g, 9)
	if !errors.Is(err, grid.ErrSnapshotSizeMismatch) || !errors.Is(err, ErrRowLogEmpty) {
		t.Fatalf("expected size mismatch wrapping ErrRowLogEmpty, got %v", err)
	}
	if g.Len() != 4 {
		t.Errorf("grid must not shrink without a logged row, got %d rows", g.Len())
	}
}

func TestTracker_ShrinkWithForeignLastRow(t *testing.T) {
	g := grid.New()
	if _, err := g.AddRow([grid.Columns]grid.Value{1, 2, 3}); err != nil {
		t.Fatalf("AddRow failed: %v", err)
	}
	tr := NewTracker(nil)
	tr.Track("someone-else")

	err := tr.Reconcile(g, 9)
	if !errors.Is(err, grid.ErrSnapshotSizeMismatch) {
		t.Fatalf("expected size mismatch, got %v", err)
	}
	if diff := cmp.Diff([]grid.RowID{"someone-else"}, tr.Added()); diff != "" {
		t.Errorf("log must be restored on failure:\n%s", diff)
	}
}

func TestTracker_InvalidSlotCounts(t *testing.T) {
	tests := []struct {
		name  string
		slots int
	}{
		{"not a multiple", 10},
		{"below minimum", 6},
		{"above maximum", 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.New()
			tr := NewTracker(nil)
			if err := tr.Reconcile(g, tt.slots); !errors.Is(err, grid.ErrSnapshotSizeMismatch) {
				t.Errorf("expected ErrSnapshotSizeMismatch, got %v", err)
			}
			if g.Len() != grid.MinRows {
				t.Errorf("grid changed to %d rows", g.Len())
			}
		})
	}
}

func TestTracker_ClearAndDropRetired(t *testing.T) {
	g := grid.New()
	tr := NewTracker(nil)
	addRows(t, g, tr, 3)

	if err := tr.Reconcile(g, 12); err != nil {
		t.Fatalf("shrink failed: %v", err)
	}
	tr.DropRetired()
	if tr.Retired() != 0 {
		t.Errorf("expected no retired rows, got %d", tr.Retired())
	}

	g.Reset()
	tr.Clear()
	if len(tr.Added()) != 0 {
		t.Errorf("expected empty log after clear, got %v", tr.Added())
	}
}
