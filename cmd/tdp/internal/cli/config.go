package cli

import (
	"fmt"

	"github.com/example/tdp-finder/cmd/tdp/internal/session"
	"github.com/example/tdp-finder/cmd/tdp/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active session's effective configuration",
	Long: `Display the configuration of the active session.

Shows every parameter controlling the suspiciousness formula, the
component filter, the enumerator, and the planner.

EXAMPLES:
  # Show configuration
  tdp config`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	sess, err := session.Load(dir)
	if err != nil {
		return err
	}

	cfg := sess.Config

	ui.PrintHeader("Configuration")

	ui.PrintInfo("Session:")
	ui.PrintInfo(fmt.Sprintf("  Spectra directory: %s", sess.SpectraDir))
	ui.PrintInfo(fmt.Sprintf("  Candidates manifest: %s", sess.CandidatesPath))
	if !sess.Interactive {
		ui.PrintInfo(fmt.Sprintf("  Test command: %s", sess.TestCommand))
		ui.PrintInfo(fmt.Sprintf("  Trace file: %s", sess.TraceFile))
	} else {
		ui.PrintInfo("  Execution: interactive")
	}
	ui.PrintInfo("")

	ui.PrintInfo("Suspiciousness:")
	ui.PrintInfo(fmt.Sprintf("  Formula: %s", cfg.Formula))
	ui.PrintInfo(fmt.Sprintf("  Coverage threshold: %.2f", cfg.CoverageThreshold))
	ui.PrintInfo("")

	ui.PrintInfo("Enumeration:")
	ui.PrintInfo(fmt.Sprintf("  Max set size: %d", cfg.MaxSetSize))
	ui.PrintInfo(fmt.Sprintf("  Max diagnoses: %d", cfg.MaxDiagnoses))
	ui.PrintInfo(fmt.Sprintf("  Size penalty: %.2f", cfg.SizePenalty))
	ui.PrintInfo(fmt.Sprintf("  Fallback top-K: %d", cfg.FallbackTopK))
	ui.PrintInfo("")

	ui.PrintInfo("Planner:")
	ui.PrintInfo(fmt.Sprintf("  Min weight (ε): %g", cfg.MinWeight))
	ui.PrintInfo(fmt.Sprintf("  Max iterations: %d", cfg.MaxIterations))
	ui.PrintInfo("")

	ui.PrintInfo("Component filter:")
	ui.PrintInfo(fmt.Sprintf("  Constructor sigils: %v", cfg.ConstructorSigils))
	ui.PrintInfo(fmt.Sprintf("  Framework blocklist: %v", cfg.FrameworkBlocklist))

	return nil
}
