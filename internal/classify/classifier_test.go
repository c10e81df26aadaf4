package classify

import (
	"testing"

	"framepick/internal/frames"
)

func newTestClassifier() *Classifier {
	return New(DefaultKeywords(), 1920, 1080)
}

func faceWithArea(side float64) frames.Face {
	return frames.Face{BBox: [4]float64{0, 0, side, side}, Confidence: 0.99}
}

func TestCategoryVisibleFaceWins(t *testing.T) {
	c := newTestClassifier()
	// 150x150 face on 1080p is ~1.1% of the frame, above the 0.5% bar.
	face := faceWithArea(150)
	got := c.Category([]frames.Face{face}, []string{"cake", "flowers"})
	if got != frames.CategoryPeopleFace {
		t.Fatalf("visible face should win over detail tags, got %s", got)
	}
}

func TestCategoryTinyFaceFallsThroughToTags(t *testing.T) {
	c := newTestClassifier()
	// 50x50 face is ~0.12% of the frame, below the visibility bar.
	face := faceWithArea(50)
	got := c.Category([]frames.Face{face}, []string{"wedding cake"})
	if got != frames.CategoryDetail {
		t.Fatalf("tiny face should defer to detail tags, got %s", got)
	}
}

func TestCategoryKeywordPriority(t *testing.T) {
	c := newTestClassifier()
	cases := []struct {
		tags []string
		want frames.Category
	}{
		{[]string{"bouquet", "crowd", "sky"}, frames.CategoryDetail},   // detail beats people and broll
		{[]string{"silhouette", "sunset"}, frames.CategoryPeopleRoll},  // people beats broll
		{[]string{"architecture", "garden"}, frames.CategoryBroll},     // scenic
		{[]string{"unrecognized", "nothing"}, frames.CategoryBroll},    // default
		{nil, frames.CategoryBroll},                                    // empty tags
	}
	for _, tc := range cases {
		if got := c.Category(nil, tc.tags); got != tc.want {
			t.Fatalf("tags %v: got %s, want %s", tc.tags, got, tc.want)
		}
	}
}

func TestCompositionFromFaceArea(t *testing.T) {
	c := newTestClassifier()
	cases := []struct {
		side float64
		want frames.Composition
	}{
		{350, frames.CompositionClose},  // 122500 px² > 100000
		{200, frames.CompositionMedium}, // 40000 px² in (30000, 100000]
		{100, frames.CompositionWide},   // 10000 px² <= 30000
	}
	for _, tc := range cases {
		got := c.Composition([]frames.Face{faceWithArea(tc.side)}, nil)
		if got != tc.want {
			t.Fatalf("face side %v: got %s, want %s", tc.side, got, tc.want)
		}
	}
}

func TestCompositionThresholdsScaleWithResolution(t *testing.T) {
	// A 200px face is a medium shot at 1080p but a close-up at 960x540,
	// where it covers four times the relative area.
	hd := New(DefaultKeywords(), 1920, 1080)
	quarter := New(DefaultKeywords(), 960, 540)
	face := []frames.Face{faceWithArea(200)}

	if got := hd.Composition(face, nil); got != frames.CompositionMedium {
		t.Fatalf("1080p: got %s, want medium", got)
	}
	if got := quarter.Composition(face, nil); got != frames.CompositionClose {
		t.Fatalf("960x540: got %s, want close", got)
	}
}

func TestCompositionFromTags(t *testing.T) {
	c := newTestClassifier()
	cases := []struct {
		tags []string
		want frames.Composition
	}{
		{[]string{"venue", "people"}, frames.CompositionWide},
		{[]string{"flower", "macro"}, frames.CompositionClose},
		{[]string{"portrait"}, frames.CompositionMedium},
	}
	for _, tc := range cases {
		if got := c.Composition(nil, tc.tags); got != tc.want {
			t.Fatalf("tags %v: got %s, want %s", tc.tags, got, tc.want)
		}
	}
}

func TestIsBroll(t *testing.T) {
	if !IsBroll(frames.CategoryBroll) || !IsBroll(frames.CategoryDetail) {
		t.Fatal("broll and detail both count as b-roll")
	}
	if IsBroll(frames.CategoryPeopleFace) || IsBroll(frames.CategoryPeopleRoll) {
		t.Fatal("people categories are not b-roll")
	}
}
