package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"mediasim/internal/config"
	"mediasim/internal/curation"
	"mediasim/internal/journal"
	"mediasim/internal/ledger"
	"mediasim/internal/logging"
	"mediasim/internal/media"
	"mediasim/internal/profiles"
	"mediasim/internal/source"
	"mediasim/internal/transform"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var profilesFlag []string
	var targetFlag int
	var seedFlag int64
	var workersFlag int
	var destinationFlag string

	cmd := &cobra.Command{
		Use:   "run <dataset>",
		Short: "Sample a configured dataset and fan it out across the profile catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			datasetName := args[0]
			ds, ok := cfg.Datasets[datasetName]
			if !ok {
				return fmt.Errorf("dataset %q is not configured; add a [datasets.%s] section", datasetName, datasetName)
			}

			if destinationFlag != "" {
				dest, err := config.ExpandPath(destinationFlag)
				if err != nil {
					return err
				}
				cfg.Paths.DestinationDir = dest
				cfg.Paths.ScratchDir = filepath.Join(dest, ".scratch")
				if err := cfg.EnsureDirectories(); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("target") {
				cfg.Sampling.TargetPerGroup = targetFlag
			}
			if cmd.Flags().Changed("seed") {
				cfg.Sampling.Seed = seedFlag
			}
			if cmd.Flags().Changed("workers") {
				cfg.Curation.Workers = workersFlag
			}

			// The flag wins over the configured list; both empty means the
			// full catalog.
			profileNames := profilesFlag
			if len(profileNames) == 0 {
				profileNames = cfg.Curation.Profiles
			}
			profs, err := profiles.Resolve(profileNames)
			if err != nil {
				return err
			}

			logger, err := logging.NewFromValues(cfg.Logging.Level, cfg.Logging.Format, cfg.Paths.LogDir)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sampler := source.NewSampler(cfg.Sampling.Seed, logger)
			var items []media.Item
			switch ds.Layout {
			case config.LayoutFlat:
				items, err = sampler.Flat(source.NewLocal(datasetName, ds.Root, ds.Authenticity))
			case config.LayoutGrouped:
				items, err = sampler.Grouped(source.NewLocal(datasetName, ds.Root, ds.Authenticity), cfg.Sampling.TargetPerGroup)
			case config.LayoutHub:
				return fmt.Errorf("dataset %q uses the hub layout; no hub acquisition provider is built in", datasetName)
			default:
				return fmt.Errorf("dataset %q has unknown layout %q", datasetName, ds.Layout)
			}
			if err != nil {
				return curation.Wrap(curation.ErrSourceUnavailable, datasetName, "sample", "enumerate dataset", err)
			}
			if len(items) == 0 {
				return curation.Wrap(curation.ErrSourceUnavailable, datasetName, "sample", "dataset yielded no items", nil)
			}

			led, err := ledger.Open(filepath.Join(cfg.Paths.DestinationDir, datasetName+"_metadata.csv"))
			if err != nil {
				return err
			}
			defer led.Close()

			store, err := journal.Open(cfg.JournalPath())
			if err != nil {
				return err
			}
			defer store.Close()

			engine := transform.NewEngine(cfg.FFmpegBinary(), time.Duration(cfg.FFmpeg.TimeoutSeconds)*time.Second, logger)
			orch := curation.New(cfg, engine, led, store, logger)

			var bar *progressbar.ProgressBar
			if isatty.IsTerminal(os.Stderr.Fd()) {
				var barOnce sync.Once
				orch.SetProgress(func(done, total int) {
					barOnce.Do(func() {
						bar = progressbar.NewOptions(total,
							progressbar.OptionSetDescription("curating"),
							progressbar.OptionSetWriter(os.Stderr),
							progressbar.OptionShowCount(),
							progressbar.OptionClearOnFinish(),
						)
					})
					_ = bar.Set(done)
				})
			}

			summary, err := orch.Run(runCtx, curation.Request{
				Dataset:  datasetName,
				Items:    items,
				Profiles: profs,
			})
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}

			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&profilesFlag, "profiles", nil, "Restrict the run to these catalog profiles")
	cmd.Flags().IntVar(&targetFlag, "target", 0, "Override the per-group sampling target")
	cmd.Flags().Int64Var(&seedFlag, "seed", 0, "Override the sampling seed")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Override the worker count")
	cmd.Flags().StringVar(&destinationFlag, "destination", "", "Override the destination directory")

	return cmd
}

func printSummary(cmd *cobra.Command, summary *curation.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Dataset %s: %d items, %d jobs in %s\n",
		summary.Dataset, summary.Items, summary.Jobs, summary.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "Processed %d, skipped %d existing, failed %d\n",
		summary.Processed, summary.SkippedExisting, summary.Failed)
	if summary.FilterFallback {
		fmt.Fprintln(out, "Class filter fell back to the full population; see the run journal")
	}
	if len(summary.PerProfile) == 0 {
		return
	}

	names := make([]string, 0, len(summary.PerProfile))
	for name := range summary.PerProfile {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		counts := summary.PerProfile[name]
		rows = append(rows, []string{
			name,
			strconv.Itoa(counts.Processed),
			strconv.Itoa(counts.Skipped),
			strconv.Itoa(counts.Failed),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Profile", "Processed", "Skipped", "Failed"},
		rows,
		2, 3, 4,
	))
}
