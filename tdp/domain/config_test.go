package domain

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestWithDefaultsFillsOnlyZeroFields(t *testing.T) {
	c := Config{Formula: FormulaOchiai, MaxSetSize: 5}
	got := c.WithDefaults()

	if got.Formula != FormulaOchiai {
		t.Errorf("Formula = %q, want unchanged %q", got.Formula, FormulaOchiai)
	}
	if got.MaxSetSize != 5 {
		t.Errorf("MaxSetSize = %d, want unchanged 5", got.MaxSetSize)
	}
	d := DefaultConfig()
	if got.MaxDiagnoses != d.MaxDiagnoses {
		t.Errorf("MaxDiagnoses = %d, want default %d", got.MaxDiagnoses, d.MaxDiagnoses)
	}
	if got.FallbackTopK != d.FallbackTopK {
		t.Errorf("FallbackTopK = %d, want default %d", got.FallbackTopK, d.FallbackTopK)
	}
}

func TestConfigValidate(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(c Config) Config
		wantErr bool
	}{
		{"valid default", func(c Config) Config { return c }, false},
		{"unknown formula", func(c Config) Config { c.Formula = "made-up"; return c }, true},
		{"zero max set size", func(c Config) Config { c.MaxSetSize = 0; return c }, true},
		{"negative max set size", func(c Config) Config { c.MaxSetSize = -1; return c }, true},
		{"zero max diagnoses", func(c Config) Config { c.MaxDiagnoses = 0; return c }, true},
		{"size penalty zero", func(c Config) Config { c.SizePenalty = 0; return c }, true},
		{"size penalty above one", func(c Config) Config { c.SizePenalty = 1.5; return c }, true},
		{"size penalty at boundary one", func(c Config) Config { c.SizePenalty = 1; return c }, false},
		{"min weight negative", func(c Config) Config { c.MinWeight = -0.1; return c }, true},
		{"min weight at boundary one", func(c Config) Config { c.MinWeight = 1; return c }, true},
		{"min weight zero is allowed", func(c Config) Config { c.MinWeight = 0; return c }, false},
		{"zero max iterations", func(c Config) Config { c.MaxIterations = 0; return c }, true},
		{"coverage threshold zero", func(c Config) Config { c.CoverageThreshold = 0; return c }, true},
		{"coverage threshold above one", func(c Config) Config { c.CoverageThreshold = 1.1; return c }, true},
		{"zero fallback top k", func(c Config) Config { c.FallbackTopK = 0; return c }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.mutate(base).Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want wrapping ErrInvalidConfig", err)
			}
		})
	}
}
