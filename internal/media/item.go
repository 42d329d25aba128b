package media

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind classifies an item's media type.
type Kind string

const (
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindUnknown Kind = "unknown"
)

// Authenticity labels whether an item was captured or generated.
const (
	AuthenticityAuthentic = "authentic"
	AuthenticitySynthetic = "synthetic"
	AuthenticityUnknown   = "unknown"
)

// ImageExtensions is the case-insensitive allow-list used for filesystem
// discovery. Keys include the leading dot.
var ImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".tiff": {},
	".heic": {},
}

// VideoExtensions covers the container formats the video profiles accept.
var VideoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".avi":  {},
	".mkv":  {},
	".webm": {},
}

// Item identifies one media file within a dataset. Identity is the
// (Dataset, RelPath) pair for directory-backed sources, or (Dataset,
// HubIndex) for hub-backed sources. Payload bytes are resolved on demand
// through Open.
type Item struct {
	// Dataset is the configured dataset name the item belongs to.
	Dataset string
	// SourcePath is the absolute on-disk path for directory-backed items,
	// or a synthetic name for hub-backed items.
	SourcePath string
	// RelPath is the path relative to the dataset root, always with
	// forward slashes. For hub items it equals the synthetic name.
	RelPath string
	// HubIndex is the index within a hub dataset, -1 otherwise.
	HubIndex int
	// Authenticity is "authentic" or "synthetic".
	Authenticity string
	// Group is the first path segment under the dataset root (the
	// generative model for multi-model corpora), empty when flat.
	Group string
	// GroupDetail holds the remaining intermediate path segments.
	GroupDetail string

	payload []byte
}

// NewFileItem builds an item backed by a file on disk. relPath must be
// relative to the dataset root.
func NewFileItem(dataset, absPath, relPath, authenticity string) Item {
	rel := filepath.ToSlash(relPath)
	item := Item{
		Dataset:      dataset,
		SourcePath:   absPath,
		RelPath:      rel,
		HubIndex:     -1,
		Authenticity: authenticity,
	}
	if segments := strings.Split(rel, "/"); len(segments) > 1 {
		item.Group = segments[0]
		if len(segments) > 2 {
			item.GroupDetail = strings.Join(segments[1:len(segments)-1], "/")
		}
	}
	return item
}

// NewHubItem builds an item backed by in-memory payload bytes decoded from a
// dataset hub. name is the synthetic per-item filename (e.g. "val_102.jpg").
func NewHubItem(dataset, name string, index int, authenticity string, payload []byte) Item {
	return Item{
		Dataset:      dataset,
		SourcePath:   name,
		RelPath:      name,
		HubIndex:     index,
		Authenticity: authenticity,
		payload:      payload,
	}
}

// Filename returns the item's leaf filename.
func (it Item) Filename() string {
	return filepath.Base(filepath.FromSlash(it.RelPath))
}

// Ext returns the lower-cased extension including the leading dot.
func (it Item) Ext() string {
	return strings.ToLower(filepath.Ext(it.RelPath))
}

// Kind classifies the item by extension.
func (it Item) Kind() Kind {
	return KindForExt(it.Ext())
}

// InMemory reports whether the payload is held in memory rather than on disk.
func (it Item) InMemory() bool {
	return it.payload != nil
}

// Open returns a reader over the item's payload bytes.
func (it Item) Open() (io.ReadCloser, error) {
	if it.payload != nil {
		return io.NopCloser(bytes.NewReader(it.payload)), nil
	}
	if strings.TrimSpace(it.SourcePath) == "" {
		return nil, errors.New("media item has no payload source")
	}
	return os.Open(it.SourcePath)
}

// KindForExt maps a file extension (with leading dot, any case) to a Kind.
func KindForExt(ext string) Kind {
	ext = strings.ToLower(ext)
	if _, ok := ImageExtensions[ext]; ok {
		return KindImage
	}
	if _, ok := VideoExtensions[ext]; ok {
		return KindVideo
	}
	return KindUnknown
}
