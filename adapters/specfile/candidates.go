package specfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/example/tdp-finder/tdp/domain"
)

// candidateRecord is the on-disk shape of one manifest entry.
type candidateRecord struct {
	Name           string   `json:"name"`
	EstimatedTrace []string `json:"estimated_trace"`
}

// CandidateSource is a ports.CandidateTestSource reading a declarative
// JSON manifest of not-yet-executed tests and their predicted traces.
// Static source analysis to produce this manifest is out of scope for
// this repository (spec §1); the manifest is expected to be supplied by
// an external collaborator.
type CandidateSource struct {
	Path string
}

// NewCandidateSource returns a CandidateSource reading path.
func NewCandidateSource(path string) *CandidateSource {
	return &CandidateSource{Path: path}
}

// Candidates implements ports.CandidateTestSource.
func (s *CandidateSource) Candidates(ctx context.Context) ([]domain.AvailableTest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading candidate manifest: %v", domain.ErrLoad, err)
	}

	var records []candidateRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parsing candidate manifest: %v", domain.ErrLoad, err)
	}

	out := make([]domain.AvailableTest, len(records))
	for i, r := range records {
		out[i] = domain.AvailableTest{
			Name:           r.Name,
			EstimatedTrace: domain.NewElementSet(r.EstimatedTrace...),
		}
	}
	return out, nil
}
