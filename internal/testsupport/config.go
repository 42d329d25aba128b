package testsupport

import (
	"path/filepath"
	"testing"

	"mediasim/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DestinationDir = filepath.Join(base, "curated")
	cfg.Paths.ScratchDir = filepath.Join(base, "curated", ".scratch")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Curation.Workers = 2
	cfg.FFmpeg.TimeoutSeconds = 30

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithDataset registers a dataset entry on the test config.
func WithDataset(name string, ds config.Dataset) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Datasets[name] = ds
	}
}

// WithWorkers overrides the curation worker count.
func WithWorkers(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Curation.Workers = n
	}
}
