// Package journal persists run history in SQLite: one row per curation run
// with its outcome counts, plus per-(item, profile) outcome rows for
// failures and fallbacks. The journal is observational only; resumption is
// driven by artifact existence on disk, never by journal state.
package journal
