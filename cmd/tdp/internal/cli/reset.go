package cli

import (
	"fmt"
	"os"

	"github.com/example/tdp-finder/cmd/tdp/internal/session"
	"github.com/example/tdp-finder/cmd/tdp/internal/ui"
	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset and clean up the current session",
	Long: `Reset the current TDP session and clean up all data.

This removes the session file and the run-history database. Use this to
start a fresh session or clean up after completion.

WARNING: This cannot be undone! The diagnosis set will be lost.

EXAMPLES:
  # Reset with confirmation prompt
  tdp reset

  # Force reset without confirmation
  tdp reset --force`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	if !session.Exists(dir) {
		ui.PrintInfo("No active session found")
		return nil
	}

	sess, err := session.Load(dir)
	if err != nil {
		ui.PrintWarning("Warning: could not load session details")
	} else {
		ui.PrintInfo(fmt.Sprintf("Session: %s", sess.ID))
		ui.PrintInfo(fmt.Sprintf("Status: %s", sess.Status))
		ui.PrintInfo(fmt.Sprintf("Iterations: %d", sess.Iterations))
		ui.PrintInfo("")
	}

	if !resetForce {
		if !ui.Confirm("Are you sure you want to reset? The diagnosis set will be lost.") {
			ui.PrintInfo("Reset cancelled")
			return nil
		}
	}

	ui.PrintStep("Removing session data")
	sessionDir := session.GetSessionDir(dir)
	if err := os.RemoveAll(sessionDir); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session directory: %w", err)
		}
	}

	ui.PrintSuccess("Session reset complete")
	ui.PrintInfo("")
	ui.PrintInfo("You can now start a new session with 'tdp init'")

	return nil
}
