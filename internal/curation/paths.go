package curation

import (
	"path"
	"path/filepath"
	"strings"

	"mediasim/internal/media"
	"mediasim/internal/profiles"
)

// UniqueBase derives a flat base name from an item's dataset-relative path.
// Directory separators fold into "__" so files named identically under
// different model subdirectories stay distinct in the flat per-profile
// output directories. The fold is not injective: "a/b.jpg" and a file
// literally named "a__b.jpg" produce the same base. Only the
// same-leaf-different-directory guarantee is relied on.
func UniqueBase(item media.Item) string {
	rel := strings.TrimSuffix(item.RelPath, path.Ext(item.RelPath))
	return strings.ReplaceAll(rel, "/", "__")
}

// ArtifactName returns the filename for one (item, profile) artifact.
func ArtifactName(prof profiles.Profile, item media.Item) string {
	return UniqueBase(item) + "_" + prof.Name + prof.OutputExt(item.Ext())
}

// FinalPath returns the destination path for one (item, profile) artifact.
// Existence of this path is what makes reruns idempotent.
func FinalPath(destinationDir string, prof profiles.Profile, item media.Item) string {
	return filepath.Join(destinationDir, prof.OutputDir(), ArtifactName(prof, item))
}
