package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/example/tdp-finder/adapters/interactive"
	"github.com/example/tdp-finder/adapters/shellexec"
	"github.com/example/tdp-finder/adapters/specfile"
	"github.com/example/tdp-finder/cmd/tdp/internal/session"
	"github.com/example/tdp-finder/cmd/tdp/internal/ui"
	"github.com/example/tdp-finder/internal/observability"
	"github.com/example/tdp-finder/internal/store"
	"github.com/example/tdp-finder/tdp/control"
	"github.com/example/tdp-finder/tdp/domain"
	"github.com/example/tdp-finder/tdp/plan"
	"github.com/example/tdp-finder/tdp/ports"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive the active TDP session to completion",
	Long: `Run the active test/diagnose/plan loop.

At each iteration this prints the current diagnosis set and the test the
planner selected to run next. The loop stops when a single diagnosis
remains, the top diagnosis crosses p>0.9, the iteration bound is hit, or
the planner runs out of candidate tests. Progress is saved when the loop
stops, including when it is interrupted with Ctrl+C, so an interrupted
loop can be resumed later with the same command.

EXAMPLES:
  # Drive the loop
  tdp run`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		ui.PrintWarning("\nInterrupted! Saving progress...")
		cancel()
	}()

	dir, err := workDir()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	sess, err := session.Load(dir)
	if err != nil {
		return err
	}
	if sess.Status == "completed" {
		ui.PrintWarning("Session already completed!")
		return runStatus(cmd, args)
	}

	spectrum, err := loadSpectrum(ctx, sess)
	if err != nil {
		return fmt.Errorf("loading spectrum: %w", err)
	}

	source := specfile.NewCandidateSource(sess.CandidatesPath)
	var executor ports.TestExecutor
	if sess.Interactive {
		executor = interactive.New(os.Stdin, os.Stdout)
	} else {
		executor = shellexec.New(sess.TestCommand, sess.TraceFile)
	}

	ui.PrintHeader("Running TDP Session")
	ui.PrintInfo(fmt.Sprintf("Session: %s", sess.ID))
	ui.PrintInfo(fmt.Sprintf("Spectra: %s", sess.SpectraDir))
	ui.PrintInfo("")

	ctrl := control.New(spectrum, sess.Config, source, executor)
	sess.Status = "running"
	_ = sess.Save(dir)

	startTime := time.Now()
	report, err := driveLoop(ctx, ctrl, nil)
	if err != nil {
		sess.Status = "failed"
		_ = sess.Save(dir)
		return fmt.Errorf("control: %w", err)
	}

	elapsed := time.Since(startTime)

	snap := spectrum.Snapshot()
	sess.Spectrum = &snap
	sess.Diagnoses = session.ToRecords(report.Diagnoses)
	sess.Iterations = report.Iterations
	sess.Entropy = plan.Entropy(report.Diagnoses)
	sess.Reason = string(report.Reason)
	if report.Reason == control.ReasonCancelled {
		sess.Status = "running"
	} else {
		sess.Status = "completed"
	}
	if err := sess.Save(dir); err != nil {
		ui.PrintWarning(fmt.Sprintf("Warning: failed to save session: %v", err))
	}

	if err := recordHistory(ctx, dir, sess.ID, report); err != nil {
		ui.PrintWarning(fmt.Sprintf("Warning: failed to record history: %v", err))
	}

	if report.Reason == control.ReasonCancelled {
		ui.PrintInfo("Progress saved. Run 'tdp run' again to resume.")
		return nil
	}

	ui.PrintInfo("")
	ui.PrintHeader("Results")
	ui.PrintInfo(fmt.Sprintf("Time elapsed: %s", ui.FormatDuration(elapsed)))
	ui.PrintInfo(fmt.Sprintf("Iterations: %d", report.Iterations))
	ui.PrintInfo(fmt.Sprintf("Reason: %s", report.Reason))
	ui.PrintInfo("")
	ui.PrintDiagnoses(report.Diagnoses)
	ui.PrintInfo("")
	ui.PrintInfo("Use 'tdp reset' to clean up and start a new session")

	return nil
}

// driveLoop steps ctrl to StateTerminated (or to ctx cancellation),
// optionally recording per-step durations, information gain, executor
// errors, and the current entropy/iteration counters into metrics.
// metrics may be nil.
func driveLoop(ctx context.Context, ctrl *control.Controller, metrics *observability.Metrics) (*control.Report, error) {
	iteration := -1
	lastExecutorErrors := 0
	var state control.State
	for state != control.StateTerminated {
		if err := ctx.Err(); err != nil {
			break
		}

		stepStart := time.Now()
		prev := state
		var err error
		state, err = ctrl.Step(ctx)
		if err != nil {
			return nil, err
		}

		if metrics != nil {
			switch prev {
			case control.StateDiagnosing:
				metrics.EnumeratorDuration().Observe(time.Since(stepStart))
				metrics.HittingSetsFound().Observe(time.Duration(len(ctrl.Diagnoses())) * time.Microsecond)
			case control.StatePlanning:
				metrics.PlannerDuration().Observe(time.Since(stepStart))
				if selection, ok := ctrl.LastSelection(); ok {
					metrics.InformationGain().Observe(time.Duration(selection.InformationGain * float64(time.Microsecond)))
				}
			case control.StateExecuting:
				if n := ctrl.ExecutorErrors(); n > lastExecutorErrors {
					metrics.ExecutorErrors().Add(int64(n - lastExecutorErrors))
					lastExecutorErrors = n
				}
			}
		}

		if state == control.StateDiagnosing && ctrl.Iteration() != iteration {
			iteration = ctrl.Iteration()
			diagnoses := ctrl.Diagnoses()
			if len(diagnoses) > 0 {
				entropy := plan.Entropy(diagnoses)
				ui.PrintStep(fmt.Sprintf("iteration=%d entropy=%.4f diagnoses=%d", iteration, entropy, len(diagnoses)))
				if metrics != nil {
					metrics.Entropy().Set(entropy)
					metrics.Iterations().Add(1)
				}
			}
		}
	}

	reason := control.ReasonCancelled
	if state == control.StateTerminated {
		reason = ctrl.Reason()
	}
	return &control.Report{Reason: reason, Diagnoses: ctrl.Diagnoses(), Iterations: ctrl.Iteration()}, nil
}

// loadSpectrum restores a previously-saved spectrum snapshot, or loads
// fresh from disk on a session's first run.
func loadSpectrum(ctx context.Context, sess *session.Session) (*domain.Spectrum, error) {
	if sess.Spectrum != nil {
		return domain.Restore(*sess.Spectrum)
	}
	loader := specfile.New(sess.SpectraDir)
	return loader.Load(ctx)
}

func recordHistory(ctx context.Context, dir, sessionID string, report *control.Report) error {
	st, err := store.Open(ctx, filepath.Join(session.GetSessionDir(dir), "history.db"))
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Record(ctx, sessionID, report)
}
