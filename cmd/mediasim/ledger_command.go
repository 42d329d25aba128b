package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediasim/internal/ledger"
	"mediasim/internal/profiles"
)

func newLedgerCommand() *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:         "ledger",
		Short:       "Metadata ledger utilities",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}
	ledgerCmd.AddCommand(newLedgerVerifyCommand())
	return ledgerCmd
}

func newLedgerVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <csv>",
		Short: "Check a ledger's header and one-hot row encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := ledger.Verify(args[0])
			if err != nil {
				return fmt.Errorf("ledger verification failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ledger OK: %d rows\n", report.Rows)
			if report.Rows == 0 {
				return nil
			}
			rows := make([][]string, 0, len(report.PerProfile))
			for _, name := range profiles.Names() {
				if count := report.PerProfile[name]; count > 0 {
					rows = append(rows, []string{name, strconv.Itoa(count)})
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Profile", "Rows"},
				rows,
				2,
			))
			return nil
		},
	}
}
