package frames

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSceneDuration(t *testing.T) {
	s := Scene{Index: 0, StartFrame: 30, EndFrame: 120}
	if s.FrameCount() != 90 {
		t.Fatalf("frame count: got %d, want 90", s.FrameCount())
	}
	if got := s.Duration(30); got != 3.0 {
		t.Fatalf("duration at 30fps: got %v, want 3.0", got)
	}
	if got := s.Duration(0); got != 0 {
		t.Fatalf("zero fps should yield zero duration, got %v", got)
	}
}

func TestFaceAreaAndCenter(t *testing.T) {
	f := Face{BBox: [4]float64{100, 200, 300, 400}}
	if f.Area() != 40000 {
		t.Fatalf("area: got %v, want 40000", f.Area())
	}
	x, y := f.Center()
	if x != 200 || y != 300 {
		t.Fatalf("center: got (%v, %v), want (200, 300)", x, y)
	}

	inverted := Face{BBox: [4]float64{300, 400, 100, 200}}
	if inverted.Area() != 0 {
		t.Fatalf("degenerate bbox should have zero area, got %v", inverted.Area())
	}
}

func TestAudioEventContains(t *testing.T) {
	e := AudioEvent{StartTime: 2.0, EndTime: 5.0}
	for _, tc := range []struct {
		t    float64
		want bool
	}{
		{2.0, true}, {3.5, true}, {5.0, true}, {1.9, false}, {5.1, false},
	} {
		if got := e.Contains(tc.t); got != tc.want {
			t.Fatalf("Contains(%v): got %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestCandidateHelpers(t *testing.T) {
	c := &Candidate{
		Faces: []Face{
			{BBox: [4]float64{0, 0, 100, 100}, SmileScore: 0.3},
			{BBox: [4]float64{0, 0, 200, 200}, SmileScore: 0.7},
			{SmileScore: 0.1}, // zero-area bbox
		},
		ClusterLabels: map[int]int{0: 2, 1: 2, 2: -1},
	}

	if got := c.MaxSmileScore(); got != 0.7 {
		t.Fatalf("max smile: got %v, want 0.7", got)
	}

	clusters := c.FaceClusters()
	if len(clusters) != 1 {
		t.Fatalf("unclustered label must be excluded: %v", clusters)
	}
	if _, ok := clusters[2]; !ok {
		t.Fatalf("cluster 2 missing: %v", clusters)
	}

	// Mean over the two valid boxes: (10000 + 40000) / 2.
	if got := c.MeanFaceArea(); got != 25000 {
		t.Fatalf("mean face area: got %v, want 25000", got)
	}

	empty := &Candidate{}
	if empty.MaxSmileScore() != 0 || empty.MeanFaceArea() != 0 {
		t.Fatal("empty candidate helpers should return zero")
	}
}

func TestCandidateJSONFieldNames(t *testing.T) {
	c := &Candidate{FrameNumber: 45, Timestamp: 1.5, SharpnessScore: 210.5}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"frame_number":45`, `"timestamp":1.5`, `"sharpness_score":210.5`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("encoded candidate missing %s: %s", key, data)
		}
	}
}
