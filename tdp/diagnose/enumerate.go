package diagnose

import "github.com/example/tdp-finder/tdp/domain"

// Universe returns the sorted union of every conflict's components.
func Universe(conflicts []domain.Conflict) []domain.ElementID {
	u := make(domain.ElementSet)
	for _, c := range conflicts {
		for id := range c.Components {
			u.Add(id)
		}
	}
	return u.Sorted()
}

// isHittingSet reports whether candidate intersects every conflict,
// bailing out on the first miss.
func isHittingSet(candidate []domain.ElementID, conflicts []domain.Conflict) bool {
	for _, c := range conflicts {
		hit := false
		for _, id := range candidate {
			if c.Components.Contains(id) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Enumerate implements the layered minimal hitting-set search of spec
// §4.4: it tries sizes 1..MaxSetSize in order, stopping at the first size
// that yields any hitting set and returning at most MaxDiagnoses of them
// in lexicographic order. If no hitting set exists within MaxSetSize, it
// returns a single fallback set equal to the full universe.
//
// The second return value reports whether enumeration was exhausted
// (no hitting set found at any size <= MaxSetSize, so the universe
// fallback was used); the caller surfaces this as ErrEnumerationExhausted.
func Enumerate(conflicts []domain.Conflict, cfg domain.Config) ([]domain.ElementSet, bool) {
	universe := Universe(conflicts)
	if len(universe) == 0 {
		return nil, false
	}

	maxSize := cfg.MaxSetSize
	if maxSize > len(universe) {
		maxSize = len(universe)
	}
	for size := 1; size <= maxSize; size++ {
		found := enumerateSize(universe, size, conflicts, cfg.MaxDiagnoses)
		if len(found) > 0 {
			return found, false
		}
	}

	return []domain.ElementSet{domain.NewElementSet(universe...)}, true
}

// enumerateSize walks every size-subset of universe in lexicographic
// order of index, collecting up to limit hitting sets. Lexicographic
// index order implies lexicographic id order because universe is sorted.
func enumerateSize(universe []domain.ElementID, size int, conflicts []domain.Conflict, limit int) []domain.ElementSet {
	var results []domain.ElementSet
	combo := make([]int, size)

	var recurse func(start, depth int) bool
	recurse = func(start, depth int) bool {
		if depth == size {
			candidate := make([]domain.ElementID, size)
			for i, idx := range combo {
				candidate[i] = universe[idx]
			}
			if isHittingSet(candidate, conflicts) {
				results = append(results, domain.NewElementSet(candidate...))
				if len(results) >= limit {
					return true
				}
			}
			return false
		}
		for i := start; i < len(universe); i++ {
			combo[depth] = i
			if recurse(i+1, depth+1) {
				return true
			}
		}
		return false
	}

	recurse(0, 0)
	return results
}
