package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediasim/internal/profiles"
)

func newProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "profiles",
		Short:       "List the simulation profile catalog",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(profiles.Catalog()))
			for _, prof := range profiles.Catalog() {
				rows = append(rows, []string{
					prof.Name,
					prof.Applies.String(),
					prof.OutputDir(),
					imageSummary(prof),
					videoSummary(prof),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Profile", "Media", "Output", "Image", "Video"},
				rows,
			))
			return nil
		},
	}
}

func imageSummary(prof profiles.Profile) string {
	if prof.IsDocument() || prof.IsOriginal() {
		return "passthrough"
	}
	rule := resizeSummary(prof.Resize)
	if prof.JPEGQuality > 0 {
		rule += ", q" + strconv.Itoa(prof.JPEGQuality)
	}
	return rule
}

func resizeSummary(rule profiles.ResizeRule) string {
	switch rule.Kind {
	case profiles.ResizeMaxEdge:
		return fmt.Sprintf("max edge %d", rule.MaxEdge)
	case profiles.ResizeAspectClampWidth:
		return fmt.Sprintf("aspect %.2f-%.2f, width %d", rule.MinAspect, rule.MaxAspect, rule.Width)
	case profiles.ResizeFillBox:
		return fmt.Sprintf("fill %dx%d", rule.Width, rule.Height)
	case profiles.ResizeFitPad:
		return fmt.Sprintf("fit+pad %dx%d", rule.Width, rule.Height)
	default:
		return "keep size"
	}
}

func videoSummary(prof profiles.Profile) string {
	if prof.IsDocument() || prof.IsOriginal() {
		return "passthrough"
	}
	if prof.Video.Bitrate == "" {
		return "-"
	}
	return prof.Video.Bitrate
}
