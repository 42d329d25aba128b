package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidatesAfterNormalize(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Paths.ScratchDir != filepath.Join(cfg.Paths.DestinationDir, ".scratch") {
		t.Fatalf("scratch dir not derived from destination: %q", cfg.Paths.ScratchDir)
	}
}

func TestLoadParsesDatasets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
destination_dir = "` + filepath.Join(dir, "curated") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[datasets.SAFE]
root = "` + filepath.Join(dir, "safe") + `"
layout = "Grouped"
authenticity = "synthetic"

[datasets.COCO]
layout = "hub"
hub_name = "detection-datasets/coco"
hub_class = "person"
authenticity = "authentic"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected config to resolve, exists=%v resolved=%q", exists, resolved)
	}

	safe := cfg.Datasets["SAFE"]
	if safe.Layout != LayoutGrouped {
		t.Fatalf("layout not normalized: %q", safe.Layout)
	}
	coco := cfg.Datasets["COCO"]
	if coco.HubSplit != "val" {
		t.Fatalf("hub split default missing: %q", coco.HubSplit)
	}
	if cfg.Sampling.Seed != 42 || cfg.Sampling.TargetPerGroup != 2000 {
		t.Fatalf("sampling defaults missing: %+v", cfg.Sampling)
	}
}

func TestLoadRejectsBadDataset(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantSub string
	}{
		{
			"missing root",
			"[datasets.X]\nlayout = \"grouped\"\nauthenticity = \"synthetic\"\n",
			"root must be set",
		},
		{
			"bad layout",
			"[datasets.X]\nroot = \"/tmp/x\"\nlayout = \"spiral\"\nauthenticity = \"synthetic\"\n",
			"layout must be one of",
		},
		{
			"bad authenticity",
			"[datasets.X]\nroot = \"/tmp/x\"\nlayout = \"flat\"\nauthenticity = \"maybe\"\n",
			"authenticity must be",
		},
		{
			"hub without name",
			"[datasets.X]\nlayout = \"hub\"\nauthenticity = \"authentic\"\n",
			"hub_name must be set",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not contain %q", err, tc.wantSub)
			}
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, _, exists, err := Load(filepath.Join(dir, "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("file should not exist")
	}
	if cfg.Curation.Workers != 4 {
		t.Fatalf("default workers: got %d", cfg.Curation.Workers)
	}
	if cfg.FFmpegBinary() != "ffmpeg" {
		t.Fatalf("default ffmpeg binary: got %q", cfg.FFmpegBinary())
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
}
