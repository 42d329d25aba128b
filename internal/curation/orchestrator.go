package curation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"mediasim/internal/config"
	"mediasim/internal/fileutil"
	"mediasim/internal/journal"
	"mediasim/internal/ledger"
	"mediasim/internal/logging"
	"mediasim/internal/media"
	"mediasim/internal/profiles"
	"mediasim/internal/transform"
)

const lockFileName = ".mediasim.lock"

// Progress is invoked after each completed job with the running totals.
type Progress func(done, total int)

// Request describes one curation run.
type Request struct {
	// Dataset is the configured dataset name, used for logging and the
	// run journal.
	Dataset string
	// Items is the sampled population to fan out.
	Items []media.Item
	// Profiles restricts the catalog; empty means every profile.
	Profiles []profiles.Profile
	// FilterFallback records that hub sampling fell back to the full
	// population. Carried into the journal for later audit.
	FilterFallback bool
}

// ProfileCounts breaks one profile's job outcomes down.
type ProfileCounts struct {
	Processed int
	Skipped   int
	Failed    int
}

// Summary reports the outcome of a run.
type Summary struct {
	Dataset         string
	Items           int
	Jobs            int
	Processed       int
	SkippedExisting int
	Failed          int
	PerProfile      map[string]ProfileCounts
	FilterFallback  bool
	Duration        time.Duration
}

// Orchestrator drives the fan-out of items across profiles. It owns
// idempotency checks, scratch management, and ledger writes; the transform
// engine stays a pure per-job function.
type Orchestrator struct {
	cfg      *config.Config
	engine   *transform.Engine
	ledger   *ledger.Ledger
	journal  *journal.Store
	log      *slog.Logger
	progress Progress
}

// New assembles an orchestrator. The journal store may be nil; progress
// reporting is optional and set separately.
func New(cfg *config.Config, engine *transform.Engine, led *ledger.Ledger, store *journal.Store, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		cfg:     cfg,
		engine:  engine,
		ledger:  led,
		journal: store,
		log:     logger.With(logging.String("component", "curation")),
	}
}

// SetProgress installs a per-job completion callback.
func (o *Orchestrator) SetProgress(fn Progress) {
	o.progress = fn
}

type job struct {
	item int
	prof profiles.Profile
}

// itemState materializes an in-memory payload to scratch at most once per
// item, no matter how many profile jobs share it.
type itemState struct {
	once sync.Once
	path string
	err  error
}

type runState struct {
	items  []media.Item
	states []itemState
	jobs   int

	mu              sync.Mutex
	done            int
	processed       int
	skippedExisting int
	failed          int
	perProfile      map[string]ProfileCounts

	fatalOnce sync.Once
	fatalErr  error
	cancel    context.CancelFunc
}

func (r *runState) fatal(err error) {
	r.fatalOnce.Do(func() {
		r.fatalErr = err
		r.cancel()
	})
}

// Run fans req.Items out across req.Profiles. It is safe to rerun with the
// same request: existing artifacts are skipped and the ledger only gains
// rows for newly produced files.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Summary, error) {
	start := time.Now()

	profs := req.Profiles
	if len(profs) == 0 {
		profs = profiles.Catalog()
	}

	lock := flock.New(filepath.Join(o.cfg.Paths.DestinationDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, Wrap(ErrLocked, req.Dataset, "lock", "acquire destination lock", err)
	}
	if !locked {
		return nil, Wrap(ErrLocked, req.Dataset, "lock", "another run owns this destination", nil)
	}
	defer func() { _ = lock.Unlock() }()

	jobs := buildJobs(req.Items, profs)

	var runID int64
	if o.journal != nil {
		names := make([]string, len(profs))
		for i, p := range profs {
			names[i] = p.Name
		}
		runID, err = o.journal.StartRun(ctx, req.Dataset, names)
		if err != nil {
			return nil, err
		}
		if req.FilterFallback {
			if err := o.journal.MarkFilterFallback(ctx, runID); err != nil {
				return nil, err
			}
		}
	}

	scratchRoot := filepath.Join(o.cfg.Paths.ScratchDir, "run-"+uuid.NewString())
	for _, sub := range []string{"inputs", "outputs"} {
		if err := os.MkdirAll(filepath.Join(scratchRoot, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create scratch directory: %w", err)
		}
	}
	defer o.removeScratch(scratchRoot)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	run := &runState{
		items:      req.Items,
		states:     make([]itemState, len(req.Items)),
		jobs:       len(jobs),
		perProfile: make(map[string]ProfileCounts, len(profs)),
		cancel:     cancel,
	}

	o.log.Info("run started",
		logging.String("dataset", req.Dataset),
		logging.Int("items", len(req.Items)),
		logging.Int("jobs", len(jobs)),
		logging.Int("profiles", len(profs)))

	workers := o.cfg.Curation.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) && len(jobs) > 0 {
		workers = len(jobs)
	}

	feed := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jb := range feed {
				o.process(runCtx, jb, runID, scratchRoot, run)
				o.advance(run)
			}
		}()
	}

dispatch:
	for _, jb := range jobs {
		select {
		case feed <- jb:
		case <-runCtx.Done():
			break dispatch
		}
	}
	close(feed)
	wg.Wait()

	summary := &Summary{
		Dataset:         req.Dataset,
		Items:           len(req.Items),
		Jobs:            len(jobs),
		Processed:       run.processed,
		SkippedExisting: run.skippedExisting,
		Failed:          run.failed,
		PerProfile:      run.perProfile,
		FilterFallback:  req.FilterFallback,
		Duration:        time.Since(start),
	}

	if o.journal != nil {
		finishCtx := context.WithoutCancel(ctx)
		if err := o.journal.FinishRun(finishCtx, runID, summary.Items, summary.Processed, summary.SkippedExisting, summary.Failed); err != nil {
			o.log.Warn("journal finish failed", logging.Error(err))
		}
	}

	if run.fatalErr != nil {
		return summary, run.fatalErr
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	o.log.Info("run finished",
		logging.String("dataset", req.Dataset),
		logging.Int("processed", summary.Processed),
		logging.Int("skipped", summary.SkippedExisting),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Duration))
	return summary, nil
}

// buildJobs pairs each item with every profile that accepts its kind.
// Unknown kinds produce no jobs.
func buildJobs(items []media.Item, profs []profiles.Profile) []job {
	jobs := make([]job, 0, len(items)*len(profs))
	for i, it := range items {
		kind := it.Kind()
		for _, p := range profs {
			if p.Applies.Accepts(kind) {
				jobs = append(jobs, job{item: i, prof: p})
			}
		}
	}
	return jobs
}

func (o *Orchestrator) process(ctx context.Context, jb job, runID int64, scratchRoot string, run *runState) {
	if ctx.Err() != nil {
		return
	}
	it := run.items[jb.item]

	final := FinalPath(o.cfg.Paths.DestinationDir, jb.prof, it)
	if _, err := os.Stat(final); err == nil {
		o.log.Debug("artifact exists, skipping",
			logging.String("item", it.RelPath),
			logging.String("profile", jb.prof.Name))
		run.mu.Lock()
		run.skippedExisting++
		counts := run.perProfile[jb.prof.Name]
		counts.Skipped++
		run.perProfile[jb.prof.Name] = counts
		run.mu.Unlock()
		return
	}

	workItem, err := o.materialize(it, &run.states[jb.item], scratchRoot)
	if err != nil {
		o.recordFailure(ctx, runID, run, it, jb.prof,
			Wrap(ErrItemMetadata, it.RelPath, jb.prof.Name, "materialize payload", err))
		return
	}

	scratchOut := filepath.Join(scratchRoot, "outputs", uuid.NewString()+jb.prof.OutputExt(it.Ext()))
	if err := o.engine.Apply(ctx, jb.prof, workItem, scratchOut); err != nil {
		if ctx.Err() != nil {
			return
		}
		o.recordFailure(ctx, runID, run, it, jb.prof,
			Wrap(ErrTransform, it.RelPath, jb.prof.Name, "apply profile", err))
		return
	}

	if err := fileutil.MoveFile(scratchOut, final); err != nil {
		o.recordFailure(ctx, runID, run, it, jb.prof,
			Wrap(ErrTransform, it.RelPath, jb.prof.Name, "promote artifact", err))
		return
	}

	row := ledger.Row{
		OriginalPath:       it.SourcePath,
		OriginalFilename:   it.Filename(),
		MediaType:          string(it.Kind()),
		Authenticity:       it.Authenticity,
		SourceModel:        it.Group,
		SourceModelDetails: it.GroupDetail,
		ProcessedFilename:  filepath.Base(final),
		ProcessedPath:      final,
		Profile:            jb.prof.Name,
	}
	if err := o.ledger.Append(row); err != nil {
		run.fatal(Wrap(ErrLedgerWrite, it.RelPath, jb.prof.Name, "append ledger row", err))
		return
	}

	run.mu.Lock()
	run.processed++
	counts := run.perProfile[jb.prof.Name]
	counts.Processed++
	run.perProfile[jb.prof.Name] = counts
	run.mu.Unlock()
}

// materialize ensures the item is backed by a file on disk, writing
// in-memory payloads to the run's scratch inputs exactly once per item.
// The returned item keeps the original's identity fields so ledger rows
// reference the source, not the scratch copy.
func (o *Orchestrator) materialize(it media.Item, st *itemState, scratchRoot string) (media.Item, error) {
	if !it.InMemory() {
		return it, nil
	}
	st.once.Do(func() {
		reader, err := it.Open()
		if err != nil {
			st.err = err
			return
		}
		defer reader.Close()
		target := filepath.Join(scratchRoot, "inputs", uuid.NewString()+it.Ext())
		if err := fileutil.WriteFromReader(target, reader); err != nil {
			st.err = err
			return
		}
		st.path = target
	})
	if st.err != nil {
		return media.Item{}, st.err
	}
	return media.NewFileItem(it.Dataset, st.path, it.RelPath, it.Authenticity), nil
}

func (o *Orchestrator) recordFailure(ctx context.Context, runID int64, run *runState, it media.Item, prof profiles.Profile, err error) {
	o.log.Warn("job failed",
		logging.String("item", it.RelPath),
		logging.String("profile", prof.Name),
		logging.Error(err))
	if o.journal != nil {
		if jerr := o.journal.RecordOutcome(context.WithoutCancel(ctx), runID, it.RelPath, prof.Name, "failed", err.Error()); jerr != nil {
			o.log.Warn("journal outcome failed", logging.Error(jerr))
		}
	}
	run.mu.Lock()
	run.failed++
	counts := run.perProfile[prof.Name]
	counts.Failed++
	run.perProfile[prof.Name] = counts
	run.mu.Unlock()
}

func (o *Orchestrator) advance(run *runState) {
	run.mu.Lock()
	run.done++
	done := run.done
	run.mu.Unlock()
	if o.progress != nil {
		o.progress(done, run.jobs)
	}
}
