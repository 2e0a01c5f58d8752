package domain

import "errors"

var (
	// ErrLoad is returned when a spectrum fails to load due to malformed input.
	ErrLoad = errors.New("spectrum load error")

	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidState is returned when a state transition is not allowed.
	ErrInvalidState = errors.New("invalid state transition")

	// ErrExecutor is returned when a TestExecutor fails for one candidate.
	// Recoverable: the candidate is dropped and the loop continues.
	ErrExecutor = errors.New("test executor failed")

	// ErrEmptyConflicts is not a failure; it signals the loop should
	// terminate with no_failure because there are no failed tests.
	ErrEmptyConflicts = errors.New("no failed tests")

	// ErrEnumerationExhausted signals no hitting set was found within S_max.
	ErrEnumerationExhausted = errors.New("no hitting set within size bound")

	// ErrPlannerStarved signals the planner had no candidates or |Ω| <= 1.
	ErrPlannerStarved = errors.New("planner starved")
)
