package plan

import "github.com/example/tdp-finder/tdp/domain"

// InformationGain computes IG(t) = H(Ω) - [P(pass)*H(Ω|pass) +
// P(fail)*H(Ω|fail)], clamped to >= 0 to guard against floating-point
// drift.
func InformationGain(diagnoses []domain.Diagnosis, t domain.AvailableTest, minWeight float64) float64 {
	prior := Entropy(diagnoses)
	pPass := PredictedPass(diagnoses, t.EstimatedTrace)

	afterPass := UpdateBeliefs(diagnoses, t.EstimatedTrace, true, minWeight)
	afterFail := UpdateBeliefs(diagnoses, t.EstimatedTrace, false, minWeight)

	expected := pPass*Entropy(afterPass) + (1-pPass)*Entropy(afterFail)
	ig := prior - expected
	if ig < 0 {
		return 0
	}
	return ig
}

// Selection is the planner's chosen next test and its expected
// information gain.
type Selection struct {
	Test            domain.AvailableTest
	InformationGain float64
}

// SelectBestTest picks the candidate with maximum IG(t), tie-broken by
// test name lexicographically. It returns ok=false (PlannerStarved)
// when the candidate pool is empty or |Ω| <= 1, per spec §4.6.
func SelectBestTest(diagnoses []domain.Diagnosis, candidates []domain.AvailableTest, minWeight float64) (Selection, bool) {
	if len(candidates) == 0 || len(diagnoses) <= 1 {
		return Selection{}, false
	}

	var best Selection
	haveBest := false
	for _, t := range candidates {
		ig := InformationGain(diagnoses, t, minWeight)
		switch {
		case !haveBest:
			best = Selection{Test: t, InformationGain: ig}
			haveBest = true
		case ig > best.InformationGain:
			best = Selection{Test: t, InformationGain: ig}
		case ig == best.InformationGain && t.Name < best.Test.Name:
			best = Selection{Test: t, InformationGain: ig}
		}
	}
	return best, true
}
