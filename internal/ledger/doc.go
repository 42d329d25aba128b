// Package ledger maintains the append-only provenance record of a curation
// run: one CSV row per produced artifact, identity columns followed by a
// one-hot vector over the full profile catalog in fixed order. The header
// is written only when the file does not exist yet, so repeated invocations
// accumulate into one self-describing table.
package ledger
