// Package config loads, defaults, normalizes, and validates the TOML
// configuration for the curation pipeline: dataset descriptors, sampling
// parameters, curation fan-out settings, the ffmpeg binary, and logging.
package config
