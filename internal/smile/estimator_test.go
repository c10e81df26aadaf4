package smile

import "testing"

// make106 builds a flat 106-point landmark set with the key mouth and
// eye points placed explicitly.
func make106(leftCorner, rightCorner, upperLip, lowerLip, leftEye, rightEye []float64) [][]float64 {
	landmarks := make([][]float64, 106)
	for i := range landmarks {
		landmarks[i] = []float64{0, 0}
	}
	landmarks[idxLeftMouthCorner] = leftCorner
	landmarks[idxRightMouthCorner] = rightCorner
	landmarks[idxUpperLipCenter] = upperLip
	landmarks[idxLowerLipCenter] = lowerLip
	landmarks[idxLeftEyeCenter] = leftEye
	landmarks[idxRightEyeCenter] = rightEye
	return landmarks
}

func TestScoreNeutralVsSmiling(t *testing.T) {
	// Eyes 100px apart. Neutral: narrow flat mouth. Smiling: wide
	// mouth with lifted corners and slight opening.
	neutral := make106(
		[]float64{80, 160}, []float64{120, 160},
		[]float64{100, 158}, []float64{100, 162},
		[]float64{70, 100}, []float64{170, 100},
	)
	smiling := make106(
		[]float64{65, 152}, []float64{175, 152},
		[]float64{120, 156}, []float64{120, 170},
		[]float64{70, 100}, []float64{170, 100},
	)

	neutralScore := Score(neutral)
	smilingScore := Score(smiling)
	if smilingScore <= neutralScore {
		t.Fatalf("smiling (%v) should outscore neutral (%v)", smilingScore, neutralScore)
	}
	if smilingScore <= 0.5 {
		t.Fatalf("clear smile should score above 0.5, got %v", smilingScore)
	}
}

func TestScoreWidthMonotonicity(t *testing.T) {
	// Widening the mouth while eye distance stays fixed never lowers
	// the score contribution from width.
	prev := -1.0
	for width := 60.0; width <= 140; width += 10 {
		landmarks := make106(
			[]float64{120 - width/2, 160}, []float64{120 + width/2, 160},
			[]float64{120, 160}, []float64{120, 160},
			[]float64{70, 100}, []float64{170, 100},
		)
		score := Score(landmarks)
		if score < prev {
			t.Fatalf("score decreased from %v to %v at width %v", prev, score, width)
		}
		prev = score
	}
}

func TestScoreBounds(t *testing.T) {
	// Extreme geometry still stays within [0, 1].
	extreme := make106(
		[]float64{0, 0}, []float64{10000, 0},
		[]float64{5000, -5000}, []float64{5000, 5000},
		[]float64{4999, 0}, []float64{5001, 0},
	)
	if s := Score(extreme); s < 0 || s > 1 {
		t.Fatalf("score %v outside [0,1]", s)
	}
}

func TestScoreFivePointFallback(t *testing.T) {
	narrow := [][]float64{{70, 100}, {170, 100}, {120, 130}, {100, 160}, {140, 160}}
	wide := [][]float64{{70, 100}, {170, 100}, {120, 130}, {80, 160}, {160, 160}}

	if Score(wide) <= Score(narrow) {
		t.Fatalf("wider mouth should outscore narrower: %v vs %v", Score(wide), Score(narrow))
	}
	// mouth/eye ratio 0.4 scores exactly 0.
	if s := Score(narrow); s != 0 {
		t.Fatalf("ratio at lower bound should score 0, got %v", s)
	}
}

func TestScoreMalformedLandmarksNeverPanics(t *testing.T) {
	cases := [][][]float64{
		nil,
		{},
		{{1, 2}, {3, 4}},             // too few points
		make([][]float64, 106),       // nil inner slices
		append(make([][]float64, 5)), // nil inner slices, 5pt path
	}
	for i, landmarks := range cases {
		if s := Score(landmarks); s != 0 {
			t.Fatalf("case %d: malformed landmarks should score 0, got %v", i, s)
		}
	}
}

func TestScoreZeroEyeDistance(t *testing.T) {
	landmarks := make106(
		[]float64{80, 160}, []float64{120, 160},
		[]float64{100, 158}, []float64{100, 162},
		[]float64{100, 100}, []float64{100, 100},
	)
	if s := Score(landmarks); s < 0 || s > 1 {
		t.Fatalf("degenerate eyes should still score within bounds, got %v", s)
	}
}
