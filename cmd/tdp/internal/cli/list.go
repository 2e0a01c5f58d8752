package cli

import (
	"context"
	"fmt"

	"github.com/example/tdp-finder/cmd/tdp/internal/session"
	"github.com/example/tdp-finder/cmd/tdp/internal/ui"
	"github.com/example/tdp-finder/internal/store"
	"github.com/spf13/cobra"
)

var listHistory bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current diagnosis set, or past run history",
	Long: `Display the full ranked diagnosis set Ω from the most recent run.

With --history, list past completed runs recorded in this session's
history database instead.

EXAMPLES:
  # List the current diagnosis set
  tdp list

  # List past runs
  tdp list --history`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listHistory, "history", false, "list past runs instead of the current diagnosis set")
}

func runList(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	sess, err := session.Load(dir)
	if err != nil {
		return err
	}

	if listHistory {
		return listRunHistory(dir)
	}

	diagnoses := session.FromRecords(sess.Diagnoses)
	ui.PrintHeader(fmt.Sprintf("Diagnosis Set (%d candidates)", len(diagnoses)))
	if len(diagnoses) == 0 {
		ui.PrintInfo("No diagnoses yet, run 'tdp run' first")
		return nil
	}
	ui.PrintDiagnoses(diagnoses)
	return nil
}

func listRunHistory(dir string) error {
	ctx := context.Background()
	st, err := store.Open(ctx, session.GetSessionDir(dir)+"/history.db")
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer st.Close()

	runs, err := st.List(ctx, 20)
	if err != nil {
		return fmt.Errorf("listing run history: %w", err)
	}

	ui.PrintHeader("Run History")
	if len(runs) == 0 {
		ui.PrintInfo("No recorded runs yet")
		return nil
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			r.ID,
			string(r.Reason),
			fmt.Sprintf("%d", r.Iterations),
			fmt.Sprintf("%d", len(r.Diagnoses)),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	ui.PrintTable([]string{"ID", "Reason", "Iterations", "Diagnoses", "Created"}, rows)
	return nil
}
