package diagnose

import (
	"regexp"
	"strings"

	"github.com/example/tdp-finder/tdp/domain"
)

// constructorHeuristic matches "Class#UpperCaseMethod()" anywhere in an
// element id, capturing the simple class name and the method name;
// IsConstructor treats it as implicit initialization only when the two
// are equal, per spec §4.3 rule 1.
var constructorHeuristic = regexp.MustCompile(`([^.#$]+)#([A-Z][a-zA-Z]*)\(\)`)

// IsConstructor reports whether id matches any configured constructor
// sigil, or the heuristic of an uppercase method named after its class.
func IsConstructor(id string, sigils []string) bool {
	for _, sigil := range sigils {
		if strings.Contains(id, sigil) {
			return true
		}
	}
	m := constructorHeuristic.FindStringSubmatch(id)
	return m != nil && m[1] == m[2]
}

// IsUniversallyCovered reports whether an element's coverage ratio exceeds
// the configured threshold, per spec §4.3 rule 2.
func IsUniversallyCovered(counter domain.Counter, threshold float64) bool {
	return counter.CoverageRatio() > threshold
}

// IsFrameworkMethod reports whether id contains any configured
// infrastructure-method substring, per spec §4.3 rule 3.
func IsFrameworkMethod(id string, blocklist []string) bool {
	for _, substr := range blocklist {
		if strings.Contains(id, substr) {
			return true
		}
	}
	return false
}

// IsZeroIncrimination reports whether an element was never covered by a
// failing test, per spec §4.3 rule 4.
func IsZeroIncrimination(counter domain.Counter) bool {
	return counter.EF == 0
}

// ShouldInclude decides whether id belongs in a diagnosis, applying the
// four exclusion rules of spec §4.3 in order; the first match wins, but
// for the purposes of inclusion any match excludes the element.
func ShouldInclude(id string, counter domain.Counter, cfg domain.Config) bool {
	if IsConstructor(id, cfg.ConstructorSigils) {
		return false
	}
	if IsUniversallyCovered(counter, cfg.CoverageThreshold) {
		return false
	}
	if IsFrameworkMethod(id, cfg.FrameworkBlocklist) {
		return false
	}
	if IsZeroIncrimination(counter) {
		return false
	}
	return true
}

// FilterConflict applies ShouldInclude to every component of c, returning
// the filtered conflict and whether anything survived.
func FilterConflict(c domain.Conflict, spectrum *domain.Spectrum, cfg domain.Config) (domain.Conflict, bool) {
	filtered := make(domain.ElementSet, len(c.Components))
	for id := range c.Components {
		if ShouldInclude(id, spectrum.Counter(id), cfg) {
			filtered.Add(id)
		}
	}
	if len(filtered) == 0 {
		return domain.Conflict{}, false
	}
	return domain.Conflict{Components: filtered, TestName: c.TestName}, true
}

// FilterConflicts applies FilterConflict to every conflict, dropping any
// whose filtered component set is empty.
func FilterConflicts(conflicts []domain.Conflict, spectrum *domain.Spectrum, cfg domain.Config) []domain.Conflict {
	out := make([]domain.Conflict, 0, len(conflicts))
	for _, c := range conflicts {
		if filtered, ok := FilterConflict(c, spectrum, cfg); ok {
			out = append(out, filtered)
		}
	}
	return out
}
