package cli

import (
	"fmt"
	"sort"

	"github.com/example/tdp-finder/cmd/tdp/internal/session"
	"github.com/example/tdp-finder/cmd/tdp/internal/ui"
	"github.com/spf13/cobra"
)

var statusVerbose bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of the current session",
	Long: `Display the current status of the active TDP session.

Shows the iteration count, current entropy, and the ranked diagnosis set
from the most recent run.

EXAMPLES:
  # Show status
  tdp status

  # Show every diagnosis, not just the top ones
  tdp status --verbose`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusVerbose, "verbose", "v", false, "show every diagnosis")
}

func runStatus(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	sess, err := session.Load(dir)
	if err != nil {
		return err
	}

	ui.PrintHeader("TDP Session Status")

	ui.PrintInfo(fmt.Sprintf("Session ID: %s", sess.ID))
	ui.PrintInfo(fmt.Sprintf("Created: %s", sess.CreatedAt.Format("2006-01-02 15:04:05")))
	ui.PrintInfo(fmt.Sprintf("Updated: %s", sess.UpdatedAt.Format("2006-01-02 15:04:05")))
	ui.PrintInfo("")

	ui.PrintInfo(fmt.Sprintf("Spectra directory: %s", sess.SpectraDir))
	if sess.Interactive {
		ui.PrintInfo("Execution: interactive")
	} else {
		ui.PrintInfo(fmt.Sprintf("Test command: %s", sess.TestCommand))
	}
	ui.PrintInfo("")

	ui.PrintSummary(sess.Iterations, sess.Config.MaxIterations, sess.Entropy, sess.Status)
	if sess.Reason != "" {
		ui.PrintInfo(fmt.Sprintf("Terminated because: %s", sess.Reason))
	}

	diagnoses := session.FromRecords(sess.Diagnoses)
	sort.SliceStable(diagnoses, func(i, j int) bool { return diagnoses[i].Probability > diagnoses[j].Probability })
	if len(diagnoses) > 0 {
		ui.PrintInfo("")
		ui.PrintHeader("Diagnoses")
		limit := len(diagnoses)
		if !statusVerbose && limit > 5 {
			limit = 5
		}
		ui.PrintDiagnoses(diagnoses[:limit])
		if limit < len(diagnoses) {
			ui.PrintInfo(fmt.Sprintf("... and %d more (use --verbose to show all)", len(diagnoses)-limit))
		}
	}

	ui.PrintInfo("")
	ui.PrintHeader("Next Steps")
	switch sess.Status {
	case "initialized":
		ui.PrintInfo("Run 'tdp run' to start the loop")
	case "running":
		ui.PrintInfo("The loop was interrupted mid-run")
		ui.PrintInfo("Run 'tdp run' to resume")
	case "completed":
		ui.PrintInfo("Loop complete! Review the diagnoses above")
		ui.PrintInfo("Run 'tdp reset' to start a new session")
	case "failed":
		ui.PrintError("Loop failed!")
		ui.PrintInfo("Check the error messages and try 'tdp run' again, or 'tdp reset' to start over")
	}

	return nil
}
