package crop

import (
	"testing"

	"framepick/internal/frames"
)

func TestPlanCentersOnFaces(t *testing.T) {
	faces := []frames.Face{
		{BBox: [4]float64{1400, 200, 1600, 400}}, // center (1500, 300)
	}
	crops := Plan(1920, 1080, faces, nil, DefaultAspectRatios())

	square, ok := crops["1:1"]
	if !ok {
		t.Fatalf("missing 1:1 crop: %v", crops)
	}
	if square.Width != 1080 || square.Height != 1080 {
		t.Fatalf("1:1 crop on 1080p should be 1080x1080, got %dx%d", square.Width, square.Height)
	}
	// Center x 1500 minus half width 540 is 960; but 960+1080 exceeds the
	// right edge so the crop clamps to x1=840.
	if square.X1 != 840 || square.X2 != 1920 {
		t.Fatalf("unexpected 1:1 placement: %+v", square)
	}
	if square.Y1 != 0 || square.Y2 != 1080 {
		t.Fatalf("1:1 crop should span full height: %+v", square)
	}
}

func TestPlanClampsAtEdges(t *testing.T) {
	// Subject hugging the right edge: the crop must clamp, not overflow.
	faces := []frames.Face{{BBox: [4]float64{1820, 900, 1920, 1080}}}
	crops := Plan(1920, 1080, faces, nil, DefaultAspectRatios())

	for label, c := range crops {
		if c.X1 < 0 || c.Y1 < 0 || c.X2 > 1920 || c.Y2 > 1080 {
			t.Fatalf("%s crop out of bounds: %+v", label, c)
		}
		if c.X2-c.X1 != c.Width || c.Y2-c.Y1 != c.Height {
			t.Fatalf("%s crop dimensions inconsistent: %+v", label, c)
		}
	}

	vertical := crops["9:16"]
	// 9:16 of 1080 tall is 607 wide; clamped flush to the right edge.
	if vertical.X2 != 1920 {
		t.Fatalf("vertical crop should clamp to the right edge, got %+v", vertical)
	}
}

func TestPlanSubjectFallbacks(t *testing.T) {
	subject := &SubjectBox{X1: 0, Y1: 0, X2: 400, Y2: 400}
	crops := Plan(1920, 1080, nil, subject, []AspectRatio{{Label: "1:1", Width: 1, Height: 1}})
	c := crops["1:1"]
	// Subject center (200, 200) clamps the crop to the top-left corner.
	if c.X1 != 0 || c.Y1 != 0 {
		t.Fatalf("subject-box crop should clamp to origin, got %+v", c)
	}

	crops = Plan(1920, 1080, nil, nil, []AspectRatio{{Label: "1:1", Width: 1, Height: 1}})
	c = crops["1:1"]
	if c.X1 != 420 { // (1920/2) - 540
		t.Fatalf("frame-center fallback misplaced: %+v", c)
	}
}

func TestPlanWiderThanSource(t *testing.T) {
	crops := Plan(1080, 1920, nil, nil, []AspectRatio{{Label: "16:9", Width: 16, Height: 9}})
	c := crops["16:9"]
	if c.Width != 1080 {
		t.Fatalf("wide crop of portrait source should span full width, got %+v", c)
	}
	ratio := 16.0 / 9.0
	if c.Height != int(1080/ratio) {
		t.Fatalf("unexpected crop height: %+v", c)
	}
}

func TestPlanDegenerateInputs(t *testing.T) {
	if got := Plan(0, 1080, nil, nil, DefaultAspectRatios()); got != nil {
		t.Fatalf("zero-width image should yield nil, got %v", got)
	}
	if got := Plan(1920, 1080, nil, nil, nil); got != nil {
		t.Fatalf("no ratios should yield nil, got %v", got)
	}
	crops := Plan(1920, 1080, nil, nil, []AspectRatio{{Label: "bad", Width: 0, Height: 9}})
	if len(crops) != 0 {
		t.Fatalf("invalid ratio should be skipped, got %v", crops)
	}
}
