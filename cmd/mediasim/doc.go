// Package main hosts the mediasim CLI entrypoint and command graph.
//
// The Cobra-based command tree wires terminal invocations to the internal
// packages: dataset sampling and curation runs, catalog inspection, ledger
// verification, run-journal queries, and configuration scaffolding. It
// centralizes configuration resolution and logger setup so subcommands can
// focus on user experience instead of wiring.
package main
