package diagnose

import (
	"math"
	"sort"

	"github.com/example/tdp-finder/tdp/domain"
	"github.com/example/tdp-finder/tdp/formula"
)

// scoreElement applies score to one element's current counter, using the
// spec §4.1 calling convention score(np, nf, ep, ef).
func scoreElement(id domain.ElementID, spectrum *domain.Spectrum, score formula.ScoreFunc) float64 {
	c := spectrum.Counter(id)
	return score(float64(c.NP), float64(c.NF), float64(c.EP), float64(c.EF))
}

// avgScore computes the mean suspiciousness over a diagnosis's components.
func avgScore(components domain.ElementSet, spectrum *domain.Spectrum, score formula.ScoreFunc) float64 {
	if len(components) == 0 {
		return 0
	}
	var sum float64
	for id := range components {
		sum += scoreElement(id, spectrum, score)
	}
	return sum / float64(len(components))
}

// AssignProbabilities implements spec §4.5: for each candidate set, apply
// the avg-suspiciousness x size-penalty raw weight, then normalize across
// all sets so probabilities sum to 1. If every raw weight is zero, the
// uniform distribution is assigned instead.
func AssignProbabilities(sets []domain.ElementSet, spectrum *domain.Spectrum, cfg domain.Config, score formula.ScoreFunc) []domain.Diagnosis {
	if len(sets) == 0 {
		return nil
	}

	raw := make([]float64, len(sets))
	var total float64
	for i, s := range sets {
		size := len(s)
		penalty := math.Pow(cfg.SizePenalty, float64(size-1))
		raw[i] = avgScore(s, spectrum, score) * penalty
		total += raw[i]
	}

	diagnoses := make([]domain.Diagnosis, len(sets))
	if total == 0 {
		uniform := 1.0 / float64(len(sets))
		for i, s := range sets {
			diagnoses[i] = domain.Diagnosis{Components: s, Probability: uniform}
		}
		return diagnoses
	}

	for i, s := range sets {
		diagnoses[i] = domain.Diagnosis{Components: s, Probability: raw[i] / total}
	}
	return diagnoses
}

// FallbackDiagnoses implements the §4.3 fallback: when every conflict's
// filtered component set is empty, return the top-K unfiltered,
// non-constructor elements by suspiciousness as singleton diagnoses,
// uniformly weighted. If the universe is all constructors, there is no
// non-constructor element to rank, so §4.3's "unfiltered" meaning takes
// over and the whole universe becomes a single diagnosis, same as the
// §4.4 enumeration-exhausted fallback.
func FallbackDiagnoses(conflicts []domain.Conflict, spectrum *domain.Spectrum, cfg domain.Config, score formula.ScoreFunc) []domain.Diagnosis {
	universe := Universe(conflicts)

	type scored struct {
		id    domain.ElementID
		value float64
	}
	var candidates []scored
	for _, id := range universe {
		if IsConstructor(id, cfg.ConstructorSigils) {
			continue
		}
		candidates = append(candidates, scored{id: id, value: scoreElement(id, spectrum, score)})
	}

	if len(candidates) == 0 {
		if len(universe) == 0 {
			return nil
		}
		return []domain.Diagnosis{{
			Components:  domain.NewElementSet(universe...),
			Probability: 1,
		}}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].value != candidates[j].value {
			return candidates[i].value > candidates[j].value
		}
		return candidates[i].id < candidates[j].id
	})

	k := cfg.FallbackTopK
	if k > len(candidates) {
		k = len(candidates)
	}
	if k == 0 {
		return nil
	}

	uniform := 1.0 / float64(k)
	diagnoses := make([]domain.Diagnosis, k)
	for i := 0; i < k; i++ {
		diagnoses[i] = domain.Diagnosis{
			Components:  domain.NewElementSet(candidates[i].id),
			Probability: uniform,
		}
	}
	return diagnoses
}
