package domain

import "fmt"

// Formula names a supported suspiciousness formula.
type Formula string

const (
	FormulaOchiai    Formula = "ochiai"
	FormulaTarantula Formula = "tarantula"
	FormulaBarinel   Formula = "barinel"
)

// Config holds every tunable of the TDP loop. There is no package-level
// mutable state anywhere in tdp/: every session carries its own Config so
// multiple sessions can run with different parameters concurrently.
type Config struct {
	// Formula selects the suspiciousness formula used by the probability
	// assigner and by the ranking of the filter fallback diagnoses.
	// Default: Barinel.
	Formula Formula

	// MaxSetSize is S_max, the largest hitting-set size the enumerator
	// will try before giving up and returning the fallback diagnosis.
	// Default: 3.
	MaxSetSize int

	// MaxDiagnoses is N, the cap on the number of hitting sets returned
	// at the first size that yields any.
	// Default: 20.
	MaxDiagnoses int

	// SizePenalty is α, the Occam's-razor exponent base applied to
	// diagnoses of size > 1.
	// Default: 0.5.
	SizePenalty float64

	// MinWeight is ε, the prune threshold applied to unnormalized
	// posterior weights during a Bayesian belief update.
	// Default: 1e-3.
	MinWeight float64

	// MaxIterations is iter_max, the loop bound on the controller.
	// Default: 10.
	MaxIterations int

	// CoverageThreshold is the universal-coverage cutoff in the component
	// filter's rule 2.
	// Default: 0.8.
	CoverageThreshold float64

	// ConstructorSigils are substrings/suffixes that trigger filter rule 1.
	// Default: see DefaultConfig.
	ConstructorSigils []string

	// FrameworkBlocklist are substrings that trigger filter rule 3.
	// Default: see DefaultConfig.
	FrameworkBlocklist []string

	// FallbackTopK bounds the fallback diagnosis set produced when every
	// conflict is filtered to empty (§4.3).
	// Default: 3.
	FallbackTopK int
}

// DefaultConfig returns the configuration described in spec §6.
func DefaultConfig() Config {
	return Config{
		Formula:           FormulaBarinel,
		MaxSetSize:        3,
		MaxDiagnoses:      20,
		SizePenalty:       0.5,
		MinWeight:         1e-3,
		MaxIterations:     10,
		CoverageThreshold: 0.8,
		ConstructorSigils: []string{"#<init>", "#<clinit>", "#Constructor"},
		FrameworkBlocklist: []string{
			"#toString", "#equals", "#hashCode", "#clone",
			"java.lang.", "junit.",
		},
		FallbackTopK: 3,
	}
}

// WithDefaults returns a copy of c with zero-valued fields replaced by
// DefaultConfig's values.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Formula == "" {
		c.Formula = d.Formula
	}
	if c.MaxSetSize == 0 {
		c.MaxSetSize = d.MaxSetSize
	}
	if c.MaxDiagnoses == 0 {
		c.MaxDiagnoses = d.MaxDiagnoses
	}
	if c.SizePenalty == 0 {
		c.SizePenalty = d.SizePenalty
	}
	if c.MinWeight == 0 {
		c.MinWeight = d.MinWeight
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = d.MaxIterations
	}
	if c.CoverageThreshold == 0 {
		c.CoverageThreshold = d.CoverageThreshold
	}
	if c.ConstructorSigils == nil {
		c.ConstructorSigils = d.ConstructorSigils
	}
	if c.FrameworkBlocklist == nil {
		c.FrameworkBlocklist = d.FrameworkBlocklist
	}
	if c.FallbackTopK == 0 {
		c.FallbackTopK = d.FallbackTopK
	}
	return c
}

// Validate checks that the configuration is self-consistent.
func (c Config) Validate() error {
	switch c.Formula {
	case FormulaOchiai, FormulaTarantula, FormulaBarinel:
	default:
		return fmt.Errorf("%w: unknown formula %q", ErrInvalidConfig, c.Formula)
	}
	if c.MaxSetSize < 1 {
		return fmt.Errorf("%w: MaxSetSize must be at least 1, got %d", ErrInvalidConfig, c.MaxSetSize)
	}
	if c.MaxDiagnoses < 1 {
		return fmt.Errorf("%w: MaxDiagnoses must be at least 1, got %d", ErrInvalidConfig, c.MaxDiagnoses)
	}
	if c.SizePenalty <= 0 || c.SizePenalty > 1 {
		return fmt.Errorf("%w: SizePenalty must be in (0, 1], got %f", ErrInvalidConfig, c.SizePenalty)
	}
	if c.MinWeight < 0 || c.MinWeight >= 1 {
		return fmt.Errorf("%w: MinWeight must be in [0, 1), got %f", ErrInvalidConfig, c.MinWeight)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: MaxIterations must be at least 1, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	if c.CoverageThreshold <= 0 || c.CoverageThreshold > 1 {
		return fmt.Errorf("%w: CoverageThreshold must be in (0, 1], got %f", ErrInvalidConfig, c.CoverageThreshold)
	}
	if c.FallbackTopK < 1 {
		return fmt.Errorf("%w: FallbackTopK must be at least 1, got %d", ErrInvalidConfig, c.FallbackTopK)
	}
	return nil
}
