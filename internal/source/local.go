package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mediasim/internal/media"
)

// Local is a MediaSource backed by a directory tree on disk.
type Local struct {
	dataset      string
	root         string
	authenticity string
}

// NewLocal builds a directory-backed source for the named dataset.
func NewLocal(dataset, root, authenticity string) *Local {
	return &Local{dataset: dataset, root: root, authenticity: authenticity}
}

// Dataset returns the configured dataset name.
func (l *Local) Dataset() string { return l.dataset }

// Root returns the dataset root directory.
func (l *Local) Root() string { return l.root }

// Items recursively enumerates every file under the root whose extension is
// on the image allow-list, in walk (lexical) order.
func (l *Local) Items() ([]media.Item, error) {
	return l.scan(l.root)
}

// Groups returns the top-level subdirectories of the root in sorted order.
// Each one is a "model group" for grouped sampling.
func (l *Local) Groups() ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("read dataset root %q: %w", l.root, err)
	}
	var groups []string
	for _, entry := range entries {
		if entry.IsDir() {
			groups = append(groups, entry.Name())
		}
	}
	sort.Strings(groups)
	return groups, nil
}

// GroupItems enumerates the allow-listed files under one group directory.
func (l *Local) GroupItems(group string) ([]media.Item, error) {
	return l.scan(filepath.Join(l.root, group))
}

func (l *Local) scan(dir string) ([]media.Item, error) {
	var items []media.Item
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if _, ok := media.ImageExtensions[ext]; !ok {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		items = append(items, media.NewFileItem(l.dataset, path, rel, l.authenticity))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", dir, err)
	}
	return items, nil
}
