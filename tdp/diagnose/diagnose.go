package diagnose

import (
	"github.com/example/tdp-finder/tdp/domain"
	"github.com/example/tdp-finder/tdp/formula"
)

// Result is the output of one Diagnosing pass: the diagnosis set, the
// unfiltered conflicts it was derived from, and whether the §4.3/§4.4
// fallback paths were taken.
type Result struct {
	Diagnoses        []domain.Diagnosis
	Conflicts        []domain.Conflict
	FilterFallback   bool // every conflict was filtered to empty
	EnumExhausted    bool // enumeration found nothing within MaxSetSize
}

// Run executes conflict extraction, the component filter, the hitting-set
// enumerator, and the probability assigner against the current spectrum
// state: the Diagnosing half of the controller's loop body (spec §4.7).
// Returns domain.ErrEmptyConflicts, unwrapped, when there are no failed
// tests at all.
func Run(spectrum *domain.Spectrum, cfg domain.Config) (Result, error) {
	conflicts := ExtractConflicts(spectrum)
	if len(conflicts) == 0 {
		return Result{}, domain.ErrEmptyConflicts
	}

	score := formula.ByName(string(cfg.Formula))
	filtered := FilterConflicts(conflicts, spectrum, cfg)

	if len(filtered) == 0 {
		diagnoses := FallbackDiagnoses(conflicts, spectrum, cfg, score)
		return Result{
			Diagnoses:      diagnoses,
			Conflicts:      conflicts,
			FilterFallback: true,
		}, nil
	}

	sets, exhausted := Enumerate(filtered, cfg)
	diagnoses := AssignProbabilities(sets, spectrum, cfg, score)
	return Result{
		Diagnoses:     diagnoses,
		Conflicts:     conflicts,
		EnumExhausted: exhausted,
	}, nil
}
