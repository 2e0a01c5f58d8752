package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/tdp-finder/adapters/interactive"
	"github.com/example/tdp-finder/adapters/shellexec"
	"github.com/example/tdp-finder/adapters/specfile"
	"github.com/example/tdp-finder/cmd/tdp/internal/session"
	"github.com/example/tdp-finder/cmd/tdp/internal/ui"
	"github.com/example/tdp-finder/internal/observability"
	"github.com/example/tdp-finder/tdp/control"
	"github.com/example/tdp-finder/tdp/plan"
	"github.com/example/tdp-finder/tdp/ports"
	"github.com/spf13/cobra"
)

var metricsAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Drive the active session while exposing live metrics over HTTP",
	Long: `Like "tdp run", but also starts an HTTP server exposing
/metrics (enumerator and planner step durations, current entropy, and
iteration and executor-error counters) as JSON for the duration of the
run.

EXAMPLES:
  # Drive the loop with metrics on :6060
  tdp serve

  # Use a different address
  tdp serve --metrics-addr :9100`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":6060", "address to serve /metrics on")
}

func runServe(cmd *cobra.Command, args []string) error {
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

	metrics := observability.NewMetrics()

	httpServer := &http.Server{Addr: metricsAddr, Handler: metricsMux(metrics)}
	go func() {
		ui.PrintInfo(fmt.Sprintf("Serving metrics on %s/metrics", metricsAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	defer httpServer.Close()

	ui.PrintHeader("Running TDP Session (with metrics)")
	ui.PrintInfo(fmt.Sprintf("Session: %s", sess.ID))

	ctrl := control.New(spectrum, sess.Config, source, executor)
	sess.Status = "running"
	_ = sess.Save(dir)

	report, err := driveLoop(ctx, ctrl, metrics)
	if err != nil {
		sess.Status = "failed"
		_ = sess.Save(dir)
		return fmt.Errorf("control: %w", err)
	}

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

	ui.PrintInfo("")
	ui.PrintInfo(fmt.Sprintf("Reason: %s", report.Reason))
	ui.PrintDiagnoses(report.Diagnoses)

	return nil
}

func metricsMux(m *observability.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m)
	return mux
}
