package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediasim/internal/journal"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int
	var outcomesFlag bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent curation runs from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg.JournalPath())
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					strconv.FormatInt(run.ID, 10),
					run.Dataset,
					run.StartedAt,
					strconv.Itoa(run.Items),
					strconv.Itoa(run.Processed),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Failed),
					yesNo(run.FilterFallback),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Dataset", "Started", "Items", "Processed", "Skipped", "Failed", "Fallback"},
				rows,
				1, 4, 5, 6, 7,
			))

			if !outcomesFlag {
				return nil
			}
			for _, run := range runs {
				outcomes, err := store.RunOutcomes(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				for _, o := range outcomes {
					fmt.Fprintf(out, "run %d: %s %s %s: %s\n", run.ID, o.Status, o.Item, o.Profile, o.Detail)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 10, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&outcomesFlag, "outcomes", false, "Also list recorded per-job failures")
	return cmd
}
