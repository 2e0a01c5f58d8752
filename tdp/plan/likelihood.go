package plan

import "github.com/example/tdp-finder/tdp/domain"

// Likelihood model constants, named per spec §9: these are deliberate,
// documented parameters, not magic numbers.
const (
	// passNoOverlap is P(t passes | Δ) when the candidate's estimated
	// trace does not intersect Δ at all.
	passNoOverlap = 0.9
	// failNoOverlap is P(t fails | Δ) under the same condition.
	failNoOverlap = 0.1
	// passOverlapBase defines
	// P(t passes | Δ) = max(clampMin, passOverlapBase - o(t,Δ)) when there
	// is overlap.
	passOverlapBase = 0.8
	// failOverlapBase defines
	// P(t fails | Δ) = min(clampMax, failOverlapBase + o(t,Δ)) when there
	// is overlap.
	failOverlapBase = 0.2

	clampMin = 0.1
	clampMax = 0.9
)

// clamp restricts v to [clampMin, clampMax], preventing degenerate
// beliefs from ever reaching 0 or 1.
func clamp(v float64) float64 {
	if v < clampMin {
		return clampMin
	}
	if v > clampMax {
		return clampMax
	}
	return v
}

// Overlap computes o(t, Δ) = |T ∩ Δ| / |Δ|.
func Overlap(trace domain.ElementSet, components domain.ElementSet) float64 {
	if len(components) == 0 {
		return 0
	}
	return float64(len(trace.Intersect(components))) / float64(len(components))
}

// PPass computes P(t passes | Δ), clamped to [0.1, 0.9].
func PPass(trace domain.ElementSet, d domain.Diagnosis) float64 {
	if len(trace.Intersect(d.Components)) == 0 {
		return passNoOverlap
	}
	o := Overlap(trace, d.Components)
	v := passOverlapBase - o
	if v < clampMin {
		v = clampMin
	}
	return clamp(v)
}

// PFail computes P(t fails | Δ), clamped to [0.1, 0.9].
func PFail(trace domain.ElementSet, d domain.Diagnosis) float64 {
	if len(trace.Intersect(d.Components)) == 0 {
		return failNoOverlap
	}
	o := Overlap(trace, d.Components)
	v := failOverlapBase + o
	if v > clampMax {
		v = clampMax
	}
	return clamp(v)
}

// PredictedPass computes P(t passes) = Σ_Δ p(Δ) P(t passes | Δ), clamped
// to [0.1, 0.9].
func PredictedPass(diagnoses []domain.Diagnosis, trace domain.ElementSet) float64 {
	var sum float64
	for _, d := range diagnoses {
		sum += d.Probability * PPass(trace, d)
	}
	return clamp(sum)
}

// UpdateBeliefs applies Bayes' rule for outcome passed to every diagnosis:
// p'(Δ) ∝ p(Δ) * P(t=v|Δ); diagnoses whose unnormalized weight falls
// below minWeight are dropped; the result is renormalized. If every
// weight is zero (or everything was pruned), the prior is returned
// unchanged.
func UpdateBeliefs(diagnoses []domain.Diagnosis, trace domain.ElementSet, passed bool, minWeight float64) []domain.Diagnosis {
	weights := make([]float64, len(diagnoses))
	var total float64
	for i, d := range diagnoses {
		var likelihood float64
		if passed {
			likelihood = PPass(trace, d)
		} else {
			likelihood = PFail(trace, d)
		}
		weights[i] = d.Probability * likelihood
		total += weights[i]
	}
	if total == 0 {
		return diagnoses
	}

	type survivor struct {
		components domain.ElementSet
		weight     float64
	}
	kept := make([]survivor, 0, len(diagnoses))
	var keptTotal float64
	for i, d := range diagnoses {
		if weights[i] < minWeight {
			continue
		}
		kept = append(kept, survivor{components: d.Components, weight: weights[i]})
		keptTotal += weights[i]
	}
	if keptTotal == 0 {
		return diagnoses
	}

	updated := make([]domain.Diagnosis, len(kept))
	for i, s := range kept {
		updated[i] = domain.Diagnosis{
			Components:  s.components,
			Probability: s.weight / keptTotal,
		}
	}
	return updated
}
