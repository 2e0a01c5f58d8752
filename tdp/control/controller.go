package control

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/example/tdp-finder/tdp/diagnose"
	"github.com/example/tdp-finder/tdp/domain"
	"github.com/example/tdp-finder/tdp/plan"
	"github.com/example/tdp-finder/tdp/ports"
)

// Controller drives one TDP session. It is the sole writer of its
// Spectrum (spec §3 Ownership; spec §5 single-threaded, cooperative) and
// carries no package-level state: every tunable lives in its Config.
type Controller struct {
	spectrum *domain.Spectrum
	cfg      domain.Config
	source   ports.CandidateTestSource
	executor ports.TestExecutor

	state          State
	reason         Reason
	candidates     []domain.AvailableTest
	diagnoses      []domain.Diagnosis
	pending        *domain.AvailableTest
	pendingResult  *domain.TestResult
	iteration      int
	lastSelection  plan.Selection
	hasSelection   bool
	executorErrors int
}

// New constructs a Controller ready to run. The spectrum must already be
// loaded (via a ports.SpectraLoader); New does not load it.
func New(spectrum *domain.Spectrum, cfg domain.Config, source ports.CandidateTestSource, executor ports.TestExecutor) *Controller {
	return &Controller{
		spectrum: spectrum,
		cfg:      cfg.WithDefaults(),
		source:   source,
		executor: executor,
		state:    StateInitializing,
	}
}

// State returns the controller's current state.
func (c *Controller) State() State {
	return c.state
}

// Diagnoses returns the controller's current diagnosis set Ω.
func (c *Controller) Diagnoses() []domain.Diagnosis {
	return c.diagnoses
}

// Iteration returns the number of test-update iterations run so far.
func (c *Controller) Iteration() int {
	return c.iteration
}

// Reason returns why the controller reached StateTerminated. The zero
// Reason is returned if it has not terminated yet.
func (c *Controller) Reason() Reason {
	return c.reason
}

// LastSelection returns the planner's most recent choice of test, if
// StatePlanning has run at least once.
func (c *Controller) LastSelection() (plan.Selection, bool) {
	return c.lastSelection, c.hasSelection
}

// ExecutorErrors returns the number of recoverable executor errors seen
// so far (spec §5: the executor is the one operation allowed to fail
// without terminating the session).
func (c *Controller) ExecutorErrors() int {
	return c.executorErrors
}

// Run drives Step to Terminated, honoring ctx cancellation at each
// transition (spec §5 Cancellation). It returns the terminal Report.
func (c *Controller) Run(ctx context.Context) (*Report, error) {
	for c.state != StateTerminated {
		if err := ctx.Err(); err != nil {
			c.reason = ReasonCancelled
			c.state = StateTerminated
			break
		}
		if _, err := c.Step(ctx); err != nil {
			return nil, err
		}
	}

	return &Report{
		Reason:     c.reason,
		Diagnoses:  c.diagnoses,
		Iterations: c.iteration,
	}, nil
}

// Step executes exactly one state transition.
func (c *Controller) Step(ctx context.Context) (State, error) {
	switch c.state {
	case StateInitializing:
		candidates, err := c.source.Candidates(ctx)
		if err != nil {
			return c.state, fmt.Errorf("control: loading candidates: %w", err)
		}
		c.candidates = candidates
		c.state = StateDiagnosing

	case StateDiagnosing:
		c.stepDiagnosing()

	case StatePlanning:
		c.stepPlanning()

	case StateExecuting:
		if err := c.stepExecuting(ctx); err != nil {
			return c.state, err
		}

	case StateUpdating:
		c.stepUpdating()

	case StateTerminated:
		// no-op; callers should stop driving once Terminated.

	default:
		return c.state, fmt.Errorf("control: %w: %v", domain.ErrInvalidState, c.state)
	}
	return c.state, nil
}

func (c *Controller) stepDiagnosing() {
	result, err := diagnose.Run(c.spectrum, c.cfg)
	if errors.Is(err, domain.ErrEmptyConflicts) {
		c.diagnoses = nil
		c.reason = ReasonNoFailure
		c.state = StateTerminated
		return
	}

	c.diagnoses = result.Diagnoses
	if result.FilterFallback {
		log.Printf("control: every conflict filtered to empty, using fallback diagnosis set")
	}
	if result.EnumExhausted {
		log.Printf("control: %v: enumeration exhausted, falling back to full universe", domain.ErrEnumerationExhausted)
	}

	if c.terminationPredicateHolds() {
		c.reason = ReasonSolved
		c.state = StateTerminated
		return
	}
	if c.iteration >= c.cfg.MaxIterations {
		c.reason = ReasonExhausted
		c.state = StateTerminated
		return
	}
	c.state = StatePlanning
}

func (c *Controller) terminationPredicateHolds() bool {
	if len(c.diagnoses) == 1 {
		return true
	}
	return Top(c.diagnoses).Probability > 0.9
}

func (c *Controller) stepPlanning() {
	selection, ok := plan.SelectBestTest(c.diagnoses, c.candidates, c.cfg.MinWeight)
	if !ok {
		log.Printf("control: %v", domain.ErrPlannerStarved)
		c.reason = ReasonExhausted
		c.state = StateTerminated
		return
	}
	c.lastSelection = selection
	c.hasSelection = true
	t := selection.Test
	c.pending = &t
	c.state = StateExecuting
}

func (c *Controller) stepExecuting(ctx context.Context) error {
	t := *c.pending
	result, err := c.executor.Execute(ctx, t)
	if err != nil {
		log.Printf("control: %v: %q: %v", domain.ErrExecutor, t.Name, err)
		c.executorErrors++
		c.removeCandidate(t.Name)
		c.pending = nil
		c.state = StateDiagnosing
		return nil
	}
	c.pendingResult = &result
	c.state = StateUpdating
	return nil
}

func (c *Controller) stepUpdating() {
	t := *c.pending
	result := *c.pendingResult
	c.spectrum.AppendTest(t.Name, !result.Passed, result.ActualTrace)
	c.removeCandidate(t.Name)
	c.iteration++
	c.pending = nil
	c.pendingResult = nil
	c.state = StateDiagnosing
}

func (c *Controller) removeCandidate(name string) {
	out := c.candidates[:0]
	for _, t := range c.candidates {
		if t.Name != name {
			out = append(out, t)
		}
	}
	c.candidates = out
}
