package diagnose

import (
	"errors"
	"testing"

	"github.com/example/tdp-finder/tdp/domain"
)

func TestRunNoFailedTestsReturnsEmptyConflictsError(t *testing.T) {
	s := mustSpectrum(t,
		[]domain.ElementID{"a"},
		[]domain.TestCase{{Name: "t1", Failed: false}},
		[][]bool{{true}},
	)

	_, err := Run(s, domain.DefaultConfig())
	if !errors.Is(err, domain.ErrEmptyConflicts) {
		t.Fatalf("Run() error = %v, want ErrEmptyConflicts", err)
	}
}

func TestRunProducesRankedDiagnoses(t *testing.T) {
	s := mustSpectrum(t,
		[]domain.ElementID{"a", "b"},
		[]domain.TestCase{
			{Name: "t1", Failed: true},
			{Name: "t2", Failed: false},
		},
		[][]bool{
			{true, false},
			{false, true},
		},
	)

	result, err := Run(s, domain.DefaultConfig())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.FilterFallback {
		t.Error("FilterFallback = true, want false")
	}
	if len(result.Diagnoses) == 0 {
		t.Fatal("Run() produced no diagnoses")
	}
	if len(result.Conflicts) != 1 {
		t.Errorf("Conflicts len = %d, want 1", len(result.Conflicts))
	}
}

func TestRunFallsBackWhenEveryConflictFilteredEmpty(t *testing.T) {
	s := mustSpectrum(t,
		[]domain.ElementID{"Foo#<init>"},
		[]domain.TestCase{{Name: "t1", Failed: true}},
		[][]bool{{true}},
	)

	result, err := Run(s, domain.DefaultConfig())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.FilterFallback {
		t.Error("FilterFallback = false, want true (every conflict filtered to empty)")
	}
	if len(result.Diagnoses) != 1 {
		t.Fatalf("Diagnoses len = %d, want 1 (universe fallback for all-constructor conflict)", len(result.Diagnoses))
	}
	if got := result.Diagnoses[0].Probability; got != 1 {
		t.Errorf("Diagnoses[0].Probability = %v, want 1", got)
	}
	if !result.Diagnoses[0].Components.Contains("Foo#<init>") {
		t.Errorf("Diagnoses[0].Components = %v, want to contain Foo#<init>", result.Diagnoses[0].Components.Sorted())
	}
}
