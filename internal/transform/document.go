package transform

import (
	"fmt"
	"os"

	"mediasim/internal/fileutil"
	"mediasim/internal/media"
)

// applyDocument copies the item's bytes verbatim. Document uploads (and
// the original profile) never re-encode, so metadata survives intact.
func (e *Engine) applyDocument(item media.Item, outPath string) error {
	in, err := item.Open()
	if err != nil {
		return fmt.Errorf("open %q: %w", item.RelPath, err)
	}
	defer in.Close()

	if err := fileutil.WriteFromReader(outPath, in); err != nil {
		_ = os.Remove(outPath)
		return fmt.Errorf("copy %q: %w", item.RelPath, err)
	}
	return nil
}
