// Package media defines the item model shared by sources, the transform
// engine, and the curation orchestrator: item identity (dataset + relative
// path or hub index), lazily resolvable payload bytes, and media-kind
// classification by extension.
package media
