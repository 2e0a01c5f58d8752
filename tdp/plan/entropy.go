// Package plan implements the entropy-based test planner: Shannon
// entropy, the parametric likelihood model, expected information gain,
// candidate selection, and Bayesian belief updates (spec §4.6).
package plan

import (
	"math"

	"github.com/example/tdp-finder/tdp/domain"
)

// Entropy computes H(Ω) = -Σ p(Δ) ln p(Δ), with 0*ln(0) defined as 0.
func Entropy(diagnoses []domain.Diagnosis) float64 {
	var h float64
	for _, d := range diagnoses {
		if d.Probability <= 0 {
			continue
		}
		h -= d.Probability * math.Log(d.Probability)
	}
	return h
}
