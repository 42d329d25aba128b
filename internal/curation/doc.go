// Package curation fans media items out across the profile catalog and
// records every produced artifact in the dataset ledger. Runs are
// idempotent: an artifact whose final path already exists is skipped, so an
// interrupted run resumes by rerunning it. Work happens in per-run scratch
// directories and artifacts reach their final paths by rename, so partial
// output never lands in the destination tree.
package curation
