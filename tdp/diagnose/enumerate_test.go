package diagnose

import (
	"testing"

	"github.com/example/tdp-finder/tdp/domain"
)

func TestUniverseIsSortedUnion(t *testing.T) {
	conflicts := []domain.Conflict{
		{Components: domain.NewElementSet("b", "a")},
		{Components: domain.NewElementSet("c", "a")},
	}
	got := Universe(conflicts)
	want := []domain.ElementID{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Universe() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Universe()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEnumerateFindsSizeOneHittingSet(t *testing.T) {
	// "a" hits both conflicts, so a singleton diagnosis should be found
	// at size 1 without needing to try size 2.
	conflicts := []domain.Conflict{
		{Components: domain.NewElementSet("a", "b")},
		{Components: domain.NewElementSet("a", "c")},
	}
	cfg := domain.DefaultConfig()

	sets, exhausted := Enumerate(conflicts, cfg)
	if exhausted {
		t.Fatal("Enumerate() exhausted = true, want false (a size-1 hitting set exists)")
	}
	found := false
	for _, s := range sets {
		if s.Equal(domain.NewElementSet("a")) {
			found = true
		}
		if len(s) != 1 {
			t.Errorf("Enumerate() returned a size-%d set before exhausting size 1: %v", len(s), s.Sorted())
		}
	}
	if !found {
		t.Errorf("Enumerate() = %v, want a set including {a}", sets)
	}
}

func TestEnumerateRequiresLargerSetWhenNoSingletonHits(t *testing.T) {
	// No single element hits both conflicts; {a,c} or {b,c} (size 2) does.
	conflicts := []domain.Conflict{
		{Components: domain.NewElementSet("a", "b")},
		{Components: domain.NewElementSet("c")},
	}
	cfg := domain.DefaultConfig()
	cfg.MaxSetSize = 3

	sets, exhausted := Enumerate(conflicts, cfg)
	if exhausted {
		t.Fatal("Enumerate() exhausted = true, want false")
	}
	for _, s := range sets {
		if len(s) != 2 {
			t.Errorf("Enumerate() set size = %d, want 2", len(s))
		}
	}
}

func TestEnumerateExhaustsToUniverseFallback(t *testing.T) {
	// Two disjoint conflicts each larger than MaxSetSize force the
	// universe fallback.
	conflicts := []domain.Conflict{
		{Components: domain.NewElementSet("a", "b")},
		{Components: domain.NewElementSet("c", "d")},
	}
	cfg := domain.DefaultConfig()
	cfg.MaxSetSize = 1

	sets, exhausted := Enumerate(conflicts, cfg)
	if !exhausted {
		t.Fatal("Enumerate() exhausted = false, want true")
	}
	if len(sets) != 1 {
		t.Fatalf("Enumerate() fallback len = %d, want 1", len(sets))
	}
	want := domain.NewElementSet("a", "b", "c", "d")
	if !sets[0].Equal(want) {
		t.Errorf("Enumerate() fallback set = %v, want %v", sets[0].Sorted(), want.Sorted())
	}
}

func TestEnumerateRespectsMaxDiagnoses(t *testing.T) {
	// Every element hits the single conflict, so size 1 yields 4 sets;
	// MaxDiagnoses caps the result.
	conflicts := []domain.Conflict{
		{Components: domain.NewElementSet("a", "b", "c", "d")},
	}
	cfg := domain.DefaultConfig()
	cfg.MaxDiagnoses = 2

	sets, exhausted := Enumerate(conflicts, cfg)
	if exhausted {
		t.Fatal("Enumerate() exhausted = true, want false")
	}
	if len(sets) != 2 {
		t.Errorf("Enumerate() len = %d, want 2 (capped by MaxDiagnoses)", len(sets))
	}
}

func TestEnumerateNoConflictsReturnsNothing(t *testing.T) {
	sets, exhausted := Enumerate(nil, domain.DefaultConfig())
	if sets != nil || exhausted {
		t.Errorf("Enumerate(nil) = (%v, %v), want (nil, false)", sets, exhausted)
	}
}
