package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediasim/internal/curation"
)

func newScratchCommand(ctx *commandContext) *cobra.Command {
	scratchCmd := &cobra.Command{
		Use:   "scratch",
		Short: "Scratch directory utilities",
	}

	scratchCmd.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "Remove scratch directories left behind by interrupted runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			removed, err := curation.SweepScratch(cfg.Paths.ScratchDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d scratch directories\n", removed)
			return nil
		},
	})

	return scratchCmd
}
