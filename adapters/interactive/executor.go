// Package interactive implements a TestExecutor that prompts a human for
// a test's pass/fail verdict over stdin, using the test's estimated
// trace as a stand-in for its actual trace.
package interactive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/tdp-finder/tdp/domain"
)

// Executor prompts on Out and reads a verdict from In.
type Executor struct {
	In  io.Reader
	Out io.Writer
}

// New returns an Executor prompting over the given streams.
func New(in io.Reader, out io.Writer) *Executor {
	return &Executor{In: in, Out: out}
}

// Execute implements ports.TestExecutor. It is the only inherently
// blocking operation in the core's dependency graph (spec §5).
func (e *Executor) Execute(ctx context.Context, t domain.AvailableTest) (domain.TestResult, error) {
	fmt.Fprintf(e.Out, "run test %q, estimated trace %v; pass or fail? [p/f]: ", t.Name, t.EstimatedTrace.Sorted())

	reader := bufio.NewReader(e.In)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return domain.TestResult{}, fmt.Errorf("%w: reading verdict for %q: %v", domain.ErrExecutor, t.Name, err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	passed := !strings.HasPrefix(answer, "f")

	return domain.TestResult{
		Name:        t.Name,
		Passed:      passed,
		ActualTrace: t.EstimatedTrace.Clone(),
	}, nil
}
