package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"framepick/internal/frames"
)

// Report is the serializable result of one analysis run.
type Report struct {
	Video         string               `json:"video"`
	RunID         string               `json:"run_id"`
	ProcessedAt   time.Time            `json:"processed_at"`
	TotalScenes   int                  `json:"total_scenes"`
	TotalAnalyzed int                  `json:"total_analyzed"`
	TotalSelected int                  `json:"total_selected"`
	AudioEvents   []frames.AudioEvent  `json:"audio_events"`
	Candidates    []*frames.Candidate  `json:"candidates"`
}

// Write serializes the report as indented JSON to path.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ReadReport loads a previously written report.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &report, nil
}
