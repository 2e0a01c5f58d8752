// Package shellexec runs a configured shell command as a TestExecutor,
// reading the elements it actually covered from a trace file the command
// is expected to write.
package shellexec

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/example/tdp-finder/tdp/domain"
)

// Executor runs Command in a shell for every AvailableTest, expecting it
// to write the set of covered element ids (one per line) to TraceFile.
type Executor struct {
	// Command is a shell command template; "{{test}}" is replaced with
	// the candidate test's name before execution.
	Command string

	// TraceFile is the path the command is expected to write its actual
	// coverage trace to, one element id per line.
	TraceFile string
}

// New returns an Executor running command, reading its trace from
// traceFile after every invocation.
func New(command, traceFile string) *Executor {
	return &Executor{Command: command, TraceFile: traceFile}
}

// Execute implements ports.TestExecutor.
func (e *Executor) Execute(ctx context.Context, t domain.AvailableTest) (domain.TestResult, error) {
	shell, shellArg := "sh", "-c"
	if runtime.GOOS == "windows" {
		shell, shellArg = "cmd", "/C"
	}

	command := substituteTestName(e.Command, t.Name)
	cmd := exec.CommandContext(ctx, shell, shellArg, command)
	cmd.Env = append(os.Environ(), fmt.Sprintf("TDP_TEST_NAME=%s", t.Name))

	_, runErr := cmd.CombinedOutput() // exit status alone carries the verdict
	passed := runErr == nil

	trace, err := readTraceFile(e.TraceFile)
	if err != nil {
		return domain.TestResult{}, fmt.Errorf("%w: reading trace file for %q: %v", domain.ErrExecutor, t.Name, err)
	}

	return domain.TestResult{
		Name:        t.Name,
		Passed:      passed,
		ActualTrace: trace,
	}, nil
}

func substituteTestName(command, name string) string {
	const placeholder = "{{test}}"
	out := make([]byte, 0, len(command))
	for i := 0; i < len(command); {
		if i+len(placeholder) <= len(command) && command[i:i+len(placeholder)] == placeholder {
			out = append(out, name...)
			i += len(placeholder)
			continue
		}
		out = append(out, command[i])
		i++
	}
	return string(out)
}

func readTraceFile(path string) (domain.ElementSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewElementSet(), nil
		}
		return nil, err
	}
	defer f.Close()

	trace := make(domain.ElementSet)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		trace.Add(line)
	}
	return trace, scanner.Err()
}
