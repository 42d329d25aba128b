package curation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mediasim/internal/logging"
)

// removeScratch deletes one run's scratch tree. Failures are logged rather
// than surfaced; leftover scratch never corrupts the destination and a
// later sweep collects it.
func (o *Orchestrator) removeScratch(root string) {
	if err := os.RemoveAll(root); err != nil {
		o.log.Warn("scratch cleanup failed",
			logging.String("path", root),
			logging.Error(err))
	}
}

// SweepScratch removes every run-scoped scratch directory under dir,
// collecting leftovers from crashed or killed runs. It returns the number
// of directories removed.
func SweepScratch(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read scratch directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "run-") {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
