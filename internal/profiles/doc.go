// Package profiles holds the fixed, ordered catalog of social-platform
// simulation profiles. Each profile is an immutable parameter bundle
// (applicability, resize rule, quality or bitrate, color and metadata
// policy, container policy) reverse-engineered from real re-upload
// pipelines. The catalog is the single source of truth for transform
// behavior and for the ledger's one-hot column vocabulary; its order never
// changes between runs.
package profiles
