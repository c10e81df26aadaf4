package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Sampling controls candidate timestamp planning per scene.
type Sampling struct {
	IntervalSeconds      float64 `toml:"interval_seconds"`
	MinSceneSeconds      float64 `toml:"min_scene_seconds"`
	LongSceneSeconds     float64 `toml:"long_scene_seconds"`
	TransitionSkipFrames int     `toml:"transition_skip_frames"`
}

// Quality controls the sharpness gate.
type Quality struct {
	SharpnessThreshold float64 `toml:"sharpness_threshold"`
}

// Audio controls audio feature extraction and classification.
type Audio struct {
	SampleRate        int     `toml:"sample_rate"`
	HopLength         int     `toml:"hop_length"`
	FrameLength       int     `toml:"frame_length"`
	SmoothingWindow   int     `toml:"smoothing_window"`
	PeakThreshold     float64 `toml:"peak_threshold"`
	PeakWindowSeconds float64 `toml:"peak_window_seconds"`
	PeakMinDistance   float64 `toml:"peak_min_distance_seconds"`
}

// Clustering controls face identity clustering.
type Clustering struct {
	Eps        float64 `toml:"eps"`
	MinSamples int     `toml:"min_samples"`
}

// Selection controls the per-scene variety selector.
type Selection struct {
	MinPerScene      int     `toml:"min_per_scene"`
	MaxPerScene      int     `toml:"max_per_scene"`
	MinTimestampGap  float64 `toml:"min_timestamp_gap_seconds"`
	SelectVariety    bool    `toml:"select_variety"`
	CropAspectRatios bool    `toml:"crop_aspect_ratios"`
}

// Logging controls log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the full framepick configuration.
type Config struct {
	Sampling   Sampling   `toml:"sampling"`
	Quality    Quality    `toml:"quality"`
	Audio      Audio      `toml:"audio"`
	Clustering Clustering `toml:"clustering"`
	Selection  Selection  `toml:"selection"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the standard location for the config file.
func DefaultConfigPath() string {
	return "~/.config/framepick/config.toml"
}

// ExpandPath resolves a leading ~ against the user's home directory.
func ExpandPath(path string) string {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return clean
	}
	if clean == "~" || strings.HasPrefix(clean, "~/") {
		home, err := os.UserHomeDir()
		if err == nil && home != "" {
			return filepath.Join(home, strings.TrimPrefix(clean, "~"))
		}
	}
	return clean
}

// Load reads the config at path, falling back to defaults when the file
// does not exist. A present but malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	resolved := ExpandPath(path)
	if resolved == "" {
		resolved = ExpandPath(DefaultConfigPath())
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", resolved, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", resolved, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WriteSample writes the embedded sample configuration to path.
func WriteSample(path string) error {
	resolved := ExpandPath(path)
	if resolved == "" {
		return fmt.Errorf("write sample config: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	if _, err := os.Stat(resolved); err == nil {
		return fmt.Errorf("write sample config: %s already exists", resolved)
	}
	if err := os.WriteFile(resolved, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
