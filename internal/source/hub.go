package source

import (
	"context"
	"errors"

	"mediasim/internal/media"
)

// ErrFilterUnsupported is returned from Hub.Labels by providers that carry
// no categorical labels. The sampler treats it as recoverable and falls
// back to the full population.
var ErrFilterUnsupported = errors.New("class filter unsupported")

// Hub is the contract the acquisition layer provides for remote dataset
// hubs: indexed random access to decoded items plus a per-item categorical
// label set. The core never talks to a hub directly.
type Hub interface {
	// Dataset returns the configured dataset name.
	Dataset() string
	// Len returns the number of items in the selected split.
	Len() int
	// Labels returns the categorical labels attached to the item at index.
	Labels(index int) ([]string, error)
	// Item materializes the item at index with its payload in memory.
	Item(ctx context.Context, index int) (media.Item, error)
}
