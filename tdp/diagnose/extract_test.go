package diagnose

import (
	"testing"

	"github.com/example/tdp-finder/tdp/domain"
)

func mustSpectrum(t *testing.T, elements []domain.ElementID, tests []domain.TestCase, coverage [][]bool) *domain.Spectrum {
	t.Helper()
	s, err := domain.NewSpectrum(elements, tests, coverage)
	if err != nil {
		t.Fatalf("NewSpectrum() error = %v", err)
	}
	return s
}

func TestExtractConflictsOnePerFailedTest(t *testing.T) {
	s := mustSpectrum(t,
		[]domain.ElementID{"a", "b"},
		[]domain.TestCase{
			{Name: "t1", Failed: true},
			{Name: "t2", Failed: false},
			{Name: "t3", Failed: true},
		},
		[][]bool{
			{true, false},
			{false, true},
			{true, true},
		},
	)

	conflicts := ExtractConflicts(s)
	if len(conflicts) != 2 {
		t.Fatalf("ExtractConflicts() len = %d, want 2", len(conflicts))
	}
	if conflicts[0].TestName != "t1" || conflicts[1].TestName != "t3" {
		t.Errorf("ExtractConflicts() order = [%s, %s], want [t1, t3]", conflicts[0].TestName, conflicts[1].TestName)
	}
	if !conflicts[0].Components.Equal(domain.NewElementSet("a")) {
		t.Errorf("t1 conflict components = %v, want [a]", conflicts[0].Components.Sorted())
	}
	if !conflicts[1].Components.Equal(domain.NewElementSet("a", "b")) {
		t.Errorf("t3 conflict components = %v, want [a b]", conflicts[1].Components.Sorted())
	}
}

func TestExtractConflictsSkipsEmptyTraces(t *testing.T) {
	s := mustSpectrum(t,
		[]domain.ElementID{"a"},
		[]domain.TestCase{{Name: "t1", Failed: true}},
		[][]bool{{false}},
	)

	conflicts := ExtractConflicts(s)
	if len(conflicts) != 0 {
		t.Errorf("ExtractConflicts() = %v, want none for an empty trace", conflicts)
	}
}

func TestExtractConflictsNoFailedTests(t *testing.T) {
	s := mustSpectrum(t,
		[]domain.ElementID{"a"},
		[]domain.TestCase{{Name: "t1", Failed: false}},
		[][]bool{{true}},
	)

	conflicts := ExtractConflicts(s)
	if len(conflicts) != 0 {
		t.Errorf("ExtractConflicts() = %v, want none when nothing failed", conflicts)
	}
}
