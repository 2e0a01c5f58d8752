// Package ports declares the interfaces the TDP controller depends on but
// does not implement: loading a spectrum, sourcing candidate tests, and
// executing a test against the system under test. Concrete adapters live
// under adapters/.
package ports

import (
	"context"

	"github.com/example/tdp-finder/tdp/domain"
)

// SpectraLoader supplies the initial Spectrum for a TDP session. Per spec
// §6 its output must satisfy domain.NewSpectrum's validity contract:
// dimensions match, element ids are unique, and there is at least one
// test.
type SpectraLoader interface {
	Load(ctx context.Context) (*domain.Spectrum, error)
}

// CandidateTestSource supplies the pool of as-yet-unexecuted tests the
// planner chooses from. Every AvailableTest's estimated trace must only
// reference elements present in the spectrum's universe.
type CandidateTestSource interface {
	Candidates(ctx context.Context) ([]domain.AvailableTest, error)
}

// TestExecutor runs one AvailableTest against the system under test and
// reports its actual outcome. A returned error is treated as recoverable
// (domain.ErrExecutor): the controller drops the candidate and continues.
type TestExecutor interface {
	Execute(ctx context.Context, t domain.AvailableTest) (domain.TestResult, error)
}
