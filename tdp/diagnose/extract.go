// Package diagnose implements conflict extraction, the component filter,
// the minimal hitting-set enumerator, and the probability assigner: the
// Diagnosing half of the TDP loop (spec §4.2-§4.5).
package diagnose

import "github.com/example/tdp-finder/tdp/domain"

// ExtractConflicts builds one Conflict per failed test from its covered-
// elements row. Tests with an empty trace are skipped; they convey no
// localization information. Output order follows the spectrum's test
// order, so it is deterministic in the spectrum's element order.
func ExtractConflicts(spectrum *domain.Spectrum) []domain.Conflict {
	tests := spectrum.Tests()
	var conflicts []domain.Conflict
	for i, t := range tests {
		if !t.Failed {
			continue
		}
		trace := spectrum.TraceOf(i)
		if len(trace) == 0 {
			continue
		}
		conflicts = append(conflicts, domain.Conflict{
			Components: trace,
			TestName:   t.Name,
		})
	}
	return conflicts
}
