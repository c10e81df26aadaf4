package main

import (
	"strings"
	"testing"

	"framepick/internal/frames"
	"framepick/internal/pipeline"
)

func TestRenderSummaryEmpty(t *testing.T) {
	report := &pipeline.Report{Video: "clip.mov"}
	out := renderSummary(report, false)
	if !strings.Contains(out, "no frames selected") {
		t.Fatalf("empty report summary wrong:\n%s", out)
	}
}

func TestRenderSummaryTable(t *testing.T) {
	report := &pipeline.Report{
		Video:         "wedding.mp4",
		TotalScenes:   2,
		TotalAnalyzed: 10,
		TotalSelected: 1,
		Candidates: []*frames.Candidate{
			{
				SceneIndex:       0,
				FrameNumber:      45,
				Timestamp:        1.5,
				FrameCategory:    frames.CategoryPeopleFace,
				Composition:      frames.CompositionMedium,
				SharpnessScore:   312.5,
				SelectionReasons: []string{"best_people_face", "score:0.72"},
			},
		},
	}

	out := renderSummary(report, false)
	for _, want := range []string{
		"selected 1 of 10 analyzed frames across 2 scenes",
		"people_face",
		"1.50s",
		"best_people_face, score:0.72",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, ansiBlue) {
		t.Fatal("colorless render must not emit ANSI codes")
	}

	colored := renderSummary(report, true)
	if !strings.Contains(colored, ansiBlue) {
		t.Fatal("colorized render should emit ANSI codes")
	}
}
