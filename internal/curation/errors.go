package curation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnavailable marks failures enumerating or reading a
	// dataset source. These are fatal; a run without a population has
	// nothing to do.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrItemMetadata marks per-item payload or metadata failures. The
	// item is skipped; the run continues.
	ErrItemMetadata = errors.New("item metadata error")
	// ErrTransform marks per-(item, profile) transform failures.
	ErrTransform = errors.New("transform error")
	// ErrLedgerWrite marks ledger append failures. These abort the run;
	// an artifact without a ledger row would be invisible downstream.
	ErrLedgerWrite = errors.New("ledger write error")
	// ErrLocked is returned when another run owns the destination.
	ErrLocked = errors.New("destination locked")
)

// Wrap builds an error message that includes run context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransform
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "curation failure"
	}
	return strings.Join(parts, ": ")
}
