package plan

import (
	"math"
	"testing"

	"github.com/example/tdp-finder/tdp/domain"
)

func TestEntropyUniformTwoWay(t *testing.T) {
	diagnoses := []domain.Diagnosis{
		{Probability: 0.5},
		{Probability: 0.5},
	}
	want := math.Log(2)
	if got := Entropy(diagnoses); math.Abs(got-want) > 1e-9 {
		t.Errorf("Entropy() = %v, want %v", got, want)
	}
}

func TestEntropyCertainDistributionIsZero(t *testing.T) {
	diagnoses := []domain.Diagnosis{{Probability: 1}}
	if got := Entropy(diagnoses); got != 0 {
		t.Errorf("Entropy() = %v, want 0", got)
	}
}

func TestEntropyIgnoresZeroProbabilityTerms(t *testing.T) {
	diagnoses := []domain.Diagnosis{
		{Probability: 1},
		{Probability: 0},
	}
	if got := Entropy(diagnoses); got != 0 {
		t.Errorf("Entropy() = %v, want 0 (0*ln(0) treated as 0)", got)
	}
}

func TestEntropyEmpty(t *testing.T) {
	if got := Entropy(nil); got != 0 {
		t.Errorf("Entropy(nil) = %v, want 0", got)
	}
}
