package ui

import (
	"testing"
)

func TestComputeHash(t *testing.T) {
	h1 := ComputeKey(123)
	h2 := ComputeKey(123)
	if h1 != h2 {
		t.Errorf("expected same hash for same int, got %d != %d", h1, h2)
	}

	m1 := ComputeKey("test", 123, int64(7), true, []int{1, 2})
	m2 := ComputeKey("test", 123, int64(7), true, []int{1, 2})
	if m1 != m2 {
		t.Errorf("expected same hash for same mixed inputs, got %d != %d", m1, m2)
	}

	// String boundaries must not collide.
	if ComputeKey("ab", "c") == ComputeKey("a", "bc") {
		t.Error("expected different hash for shifted string boundary")
	}

	// Slice length is part of the key.
	if ComputeKey([]int{1}, []int{2}) == ComputeKey([]int{1, 2}, []int{}) {
		t.Error("expected different hash for shifted slice boundary")
	}

	if ComputeKey(true) == ComputeKey(false) {
		t.Error("expected different hash for bool values")
	}
}

func TestRenderCache_GetSet(t *testing.T) {
	rc := NewRenderCache(4)

	if _, ok := rc.Get(1); ok {
		t.Fatal("expected miss on empty cache")
	}
	rc.Set(1, "one")
	got, ok := rc.Get(1)
	if !ok || got != "one" {
		t.Fatalf("expected hit with %q, got %q (ok=%v)", "one", got, ok)
	}

	hits, misses := rc.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
}

func TestRenderCache_EvictsWhenFull(t *testing.T) {
	rc := NewRenderCache(2)
	rc.Set(1, "a")
	rc.Set(2, "b")
	rc.Set(3, "c")

	if rc.Len() != 1 {
		t.Fatalf("expected cache to restart with 1 entry, got %d", rc.Len())
	}
	if _, ok := rc.Get(1); ok {
		t.Error("expected evicted entry to be gone")
	}
}

func TestRenderCache_GetOrCompute(t *testing.T) {
	rc := NewRenderCache(0)
	calls := 0
	compute := func() string {
		calls++
		return "rendered"
	}

	for i := 0; i < 3; i++ {
		if got := rc.GetOrCompute(42, compute); got != "rendered" {
			t.Fatalf("unexpected content %q", got)
		}
	}
	if calls != 1 {
		t.Errorf("expected compute to run once, ran %d times", calls)
	}

	rc.Clear()
	rc.GetOrCompute(42, compute)
	if calls != 2 {
		t.Errorf("expected compute after Clear, ran %d times", calls)
	}
}
