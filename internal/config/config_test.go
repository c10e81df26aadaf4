package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("expected defaults for missing file, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[selection]\nmax_per_scene = 5\n\n[quality]\nsharpness_threshold = 120.0\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Selection.MaxPerScene != 5 {
		t.Fatalf("expected max_per_scene override, got %d", cfg.Selection.MaxPerScene)
	}
	if cfg.Quality.SharpnessThreshold != 120.0 {
		t.Fatalf("expected sharpness override, got %v", cfg.Quality.SharpnessThreshold)
	}
	// Untouched sections keep defaults.
	if cfg.Audio.SampleRate != Default().Audio.SampleRate {
		t.Fatalf("expected default sample rate, got %d", cfg.Audio.SampleRate)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[selection]\nmin_per_scene = 4\nmax_per_scene = 2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for min > max")
	} else if !strings.Contains(err.Error(), "min_per_scene") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCatalogsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Audio.HopLength = 0
	cfg.Clustering.Eps = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation failure")
	}
	for _, fragment := range []string{"hop_length", "eps"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in error, got: %v", fragment, err)
		}
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if cfg.Selection.MaxPerScene != Default().Selection.MaxPerScene {
		t.Fatalf("sample config drifted from defaults: %+v", cfg.Selection)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error overwriting existing config")
	}
}
