package domain

import "fmt"

// Counter tallies one element's (covered vs. not) x (failed vs. passed)
// relationship to the test suite: ef/ep/nf/np per spec §3.
type Counter struct {
	EF int // covered by a failing test
	EP int // covered by a passing test
	NF int // not covered, test failed
	NP int // not covered, test passed
}

// CoverageRatio returns (ef+ep)/(ef+ep+nf+np), the fraction of tests that
// covered this element at all. Used by the universal-coverage filter rule.
func (c Counter) CoverageRatio() float64 {
	total := c.EF + c.EP + c.NF + c.NP
	if total == 0 {
		return 0
	}
	return float64(c.EF+c.EP) / float64(total)
}

// TestCase is one test in the spectrum: its name and verdict. The
// elements it covered are its row of the coverage matrix (see TraceOf).
type TestCase struct {
	Name   string
	Failed bool
}

// Spectrum is the in-memory fault-localization dataset: an ordered list of
// elements, an ordered list of tests, and a coverage bitmap M[i][j] meaning
// "test i covered element j". The TDP controller owns the only mutable
// Spectrum in a session; every other component receives a read-only view.
type Spectrum struct {
	elements []ElementID
	index    map[ElementID]int
	tests    []TestCase
	coverage [][]bool // coverage[i][j]: test i covers element j
	counters []Counter
}

// NewSpectrum validates and builds a Spectrum from loader output. Per
// spec §6: dimensions must match, element ids must be unique, and there
// must be at least one test.
func NewSpectrum(elements []ElementID, tests []TestCase, coverage [][]bool) (*Spectrum, error) {
	if len(tests) == 0 {
		return nil, fmt.Errorf("%w: spectrum has no tests", ErrLoad)
	}
	if len(coverage) != len(tests) {
		return nil, fmt.Errorf("%w: coverage has %d rows, want %d (one per test)",
			ErrLoad, len(coverage), len(tests))
	}
	index := make(map[ElementID]int, len(elements))
	for j, id := range elements {
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate element id %q", ErrLoad, id)
		}
		index[id] = j
	}
	for i, row := range coverage {
		if len(row) != len(elements) {
			return nil, fmt.Errorf("%w: coverage row %d has %d columns, want %d (one per element)",
				ErrLoad, i, len(row), len(elements))
		}
	}

	s := &Spectrum{
		elements: append([]ElementID(nil), elements...),
		index:    index,
		tests:    append([]TestCase(nil), tests...),
		coverage: coverage,
	}
	s.recompute()
	return s, nil
}

// Elements returns the spectrum's elements in their fixed load-time order.
func (s *Spectrum) Elements() []ElementID {
	return append([]ElementID(nil), s.elements...)
}

// Tests returns the spectrum's tests in their fixed order.
func (s *Spectrum) Tests() []TestCase {
	return append([]TestCase(nil), s.tests...)
}

// FailedTests returns the indices of tests whose verdict is failed.
func (s *Spectrum) FailedTests() []int {
	var out []int
	for i, t := range s.tests {
		if t.Failed {
			out = append(out, i)
		}
	}
	return out
}

// TraceOf returns the set of elements covered by the test at testIdx.
func (s *Spectrum) TraceOf(testIdx int) ElementSet {
	trace := make(ElementSet)
	for j, covered := range s.coverage[testIdx] {
		if covered {
			trace.Add(s.elements[j])
		}
	}
	return trace
}

// Counter returns the current counter for the element with the given id.
// The zero Counter is returned for an unknown id.
func (s *Spectrum) Counter(id ElementID) Counter {
	j, ok := s.index[id]
	if !ok {
		return Counter{}
	}
	return s.counters[j]
}

// HasElement reports whether id is part of the spectrum's element universe.
func (s *Spectrum) HasElement(id ElementID) bool {
	_, ok := s.index[id]
	return ok
}

// AppendTest extends the coverage matrix with a new row for a freshly
// executed test and recomputes every element's counters. This is the only
// mutation the controller performs on a Spectrum outside construction.
func (s *Spectrum) AppendTest(name string, failed bool, trace ElementSet) {
	row := make([]bool, len(s.elements))
	for j, id := range s.elements {
		row[j] = trace.Contains(id)
	}
	s.tests = append(s.tests, TestCase{Name: name, Failed: failed})
	s.coverage = append(s.coverage, row)
	s.recompute()
}

// recompute rebuilds every element's counter from scratch against the
// current coverage matrix and verdict vector. Per spec §3 this must run
// on any mutation of M or a test's verdict.
func (s *Spectrum) recompute() {
	counters := make([]Counter, len(s.elements))
	for i, t := range s.tests {
		row := s.coverage[i]
		for j := range s.elements {
			covered := row[j]
			switch {
			case covered && t.Failed:
				counters[j].EF++
			case covered && !t.Failed:
				counters[j].EP++
			case !covered && t.Failed:
				counters[j].NF++
			default:
				counters[j].NP++
			}
		}
	}
	s.counters = counters
}

// Snapshot is a serializable copy of a Spectrum's state, used only by the
// CLI session layer to persist working state across invocations. The core
// never reads a Snapshot back into a running loop (spec §1 Non-goals).
type Snapshot struct {
	Elements []ElementID  `json:"elements"`
	Tests    []TestCase   `json:"tests"`
	Coverage [][]bool     `json:"coverage"`
}

// Snapshot captures s's current state.
func (s *Spectrum) Snapshot() Snapshot {
	coverage := make([][]bool, len(s.coverage))
	for i, row := range s.coverage {
		coverage[i] = append([]bool(nil), row...)
	}
	return Snapshot{
		Elements: s.Elements(),
		Tests:    s.Tests(),
		Coverage: coverage,
	}
}

// Restore rebuilds a Spectrum from a Snapshot.
func Restore(snap Snapshot) (*Spectrum, error) {
	return NewSpectrum(snap.Elements, snap.Tests, snap.Coverage)
}
