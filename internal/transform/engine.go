package transform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mediasim/internal/logging"
	"mediasim/internal/media"
	"mediasim/internal/profiles"
)

// Engine applies catalog profiles to media items. It assumes the caller has
// already decided the output path is free; idempotency checks live in the
// orchestrator.
type Engine struct {
	ffmpegBinary  string
	ffmpegTimeout time.Duration
	log           *slog.Logger
}

// NewEngine constructs an engine around the configured ffmpeg binary.
func NewEngine(ffmpegBinary string, ffmpegTimeout time.Duration, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		ffmpegBinary:  ffmpegBinary,
		ffmpegTimeout: ffmpegTimeout,
		log:           logger.With(logging.String("component", "transform")),
	}
}

// Apply runs one profile against one item, writing the artifact to outPath.
// On any error the output path is left absent. Video items must be backed
// by a file on disk; the orchestrator materializes in-memory payloads
// before fan-out.
func (e *Engine) Apply(ctx context.Context, prof profiles.Profile, item media.Item, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	kind := item.Kind()
	if !prof.Applies.Accepts(kind) {
		return fmt.Errorf("profile %q does not apply to %s item %q", prof.Name, kind, item.RelPath)
	}

	switch {
	case prof.IsDocument() || prof.IsOriginal():
		return e.applyDocument(item, outPath)
	case kind == media.KindImage:
		return e.applyImage(prof, item, outPath)
	case kind == media.KindVideo:
		return e.applyVideo(ctx, prof, item, outPath)
	default:
		return fmt.Errorf("unsupported media kind %q for %q", kind, item.RelPath)
	}
}
