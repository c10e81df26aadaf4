package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration values for internal consistency.
func (c *Config) Validate() error {
	var problems []string

	if c.Sampling.IntervalSeconds <= 0 {
		problems = append(problems, "sampling.interval_seconds must be positive")
	}
	if c.Sampling.MinSceneSeconds < 0 {
		problems = append(problems, "sampling.min_scene_seconds must not be negative")
	}
	if c.Sampling.TransitionSkipFrames < 0 {
		problems = append(problems, "sampling.transition_skip_frames must not be negative")
	}
	if c.Quality.SharpnessThreshold < 0 {
		problems = append(problems, "quality.sharpness_threshold must not be negative")
	}
	if c.Audio.SampleRate <= 0 {
		problems = append(problems, "audio.sample_rate must be positive")
	}
	if c.Audio.HopLength <= 0 {
		problems = append(problems, "audio.hop_length must be positive")
	}
	if c.Audio.FrameLength <= 0 || c.Audio.FrameLength < c.Audio.HopLength {
		problems = append(problems, "audio.frame_length must be positive and at least audio.hop_length")
	}
	if c.Audio.SmoothingWindow <= 0 {
		problems = append(problems, "audio.smoothing_window must be positive")
	}
	if c.Audio.PeakThreshold < 0 || c.Audio.PeakThreshold > 1 {
		problems = append(problems, "audio.peak_threshold must be within [0, 1]")
	}
	if c.Clustering.Eps <= 0 {
		problems = append(problems, "clustering.eps must be positive")
	}
	if c.Clustering.MinSamples < 1 {
		problems = append(problems, "clustering.min_samples must be at least 1")
	}
	if c.Selection.MinPerScene < 0 {
		problems = append(problems, "selection.min_per_scene must not be negative")
	}
	if c.Selection.MaxPerScene < 1 {
		problems = append(problems, "selection.max_per_scene must be at least 1")
	}
	if c.Selection.MinPerScene > c.Selection.MaxPerScene {
		problems = append(problems, "selection.min_per_scene must not exceed selection.max_per_scene")
	}
	if c.Selection.MinTimestampGap < 0 {
		problems = append(problems, "selection.min_timestamp_gap_seconds must not be negative")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not supported", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
