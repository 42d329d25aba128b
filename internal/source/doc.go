// Package source provides access to dataset corpora and the deterministic
// sampler that selects bounded subsets of them. Local directory trees are
// scanned against the image extension allow-list; dataset-hub corpora are
// reached through the Hub contract, which the acquisition layer implements.
package source
