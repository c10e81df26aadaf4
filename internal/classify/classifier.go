// Package classify assigns each frame a subject category
// (people_face / people_roll / detail / broll) and a composition bucket
// (close / medium / wide) from face geometry and tag keywords.
package classify

import (
	"strings"

	"framepick/internal/frames"
)

// visibleFacePercent is the minimum mean face area, as a percentage of
// frame area, for a face to count as clearly visible.
const visibleFacePercent = 0.5

// Composition thresholds as fractions of frame area. The source values
// were calibrated as absolute pixel areas on 1080p frames
// (100000 px² and 30000 px²); expressing them as fractions keeps the
// buckets stable across resolutions.
const (
	closeFaceAreaFraction  = 100000.0 / (1920.0 * 1080.0)
	mediumFaceAreaFraction = 30000.0 / (1920.0 * 1080.0)
)

// Classifier categorizes frames using a swappable keyword table.
type Classifier struct {
	keywords    KeywordTable
	frameWidth  int
	frameHeight int
}

// New builds a Classifier for frames of the given dimensions. Zero
// dimensions fall back to 1080p.
func New(keywords KeywordTable, frameWidth, frameHeight int) *Classifier {
	if frameWidth <= 0 || frameHeight <= 0 {
		frameWidth, frameHeight = 1920, 1080
	}
	return &Classifier{keywords: keywords, frameWidth: frameWidth, frameHeight: frameHeight}
}

// Category assigns one of the four frame categories. Clear faces win;
// otherwise the tag keyword tables are tried in priority order
// detail > people_roll > broll, defaulting to broll.
func (c *Classifier) Category(faces []frames.Face, tags []string) frames.Category {
	if c.hasVisibleFace(faces) {
		return frames.CategoryPeopleFace
	}

	tagStr := joinedTags(tags)
	if containsAny(tagStr, c.keywords.Detail) {
		return frames.CategoryDetail
	}
	if containsAny(tagStr, c.keywords.People) {
		return frames.CategoryPeopleRoll
	}
	if containsAny(tagStr, c.keywords.Broll) {
		return frames.CategoryBroll
	}
	return frames.CategoryBroll
}

// Composition buckets the frame by shot distance. Frames with faces use
// the mean face area relative to the frame; frames without faces fall
// back to tag hints.
func (c *Classifier) Composition(faces []frames.Face, tags []string) frames.Composition {
	if len(faces) == 0 {
		tagStr := joinedTags(tags)
		if containsAny(tagStr, compositionWideHints) {
			return frames.CompositionWide
		}
		if containsAny(tagStr, compositionCloseHints) {
			return frames.CompositionClose
		}
		return frames.CompositionMedium
	}

	total := 0.0
	for _, f := range faces {
		total += f.Area()
	}
	meanArea := total / float64(len(faces))
	frameArea := float64(c.frameWidth) * float64(c.frameHeight)

	switch fraction := meanArea / frameArea; {
	case fraction > closeFaceAreaFraction:
		return frames.CompositionClose
	case fraction > mediumFaceAreaFraction:
		return frames.CompositionMedium
	default:
		return frames.CompositionWide
	}
}

// IsBroll reports whether the category counts as b-roll for selection
// purposes (scenic shots and detail close-ups both do).
func IsBroll(category frames.Category) bool {
	return category == frames.CategoryBroll || category == frames.CategoryDetail
}

func (c *Classifier) hasVisibleFace(faces []frames.Face) bool {
	total := 0.0
	valid := 0
	for _, f := range faces {
		if area := f.Area(); area > 0 {
			total += area
			valid++
		}
	}
	if valid == 0 {
		return false
	}
	frameArea := float64(c.frameWidth) * float64(c.frameHeight)
	meanPercent := (total / float64(valid)) / frameArea * 100
	return meanPercent >= visibleFacePercent
}

func joinedTags(tags []string) string {
	lowered := make([]string, len(tags))
	for i, tag := range tags {
		lowered[i] = strings.ToLower(tag)
	}
	return strings.Join(lowered, " ")
}

func containsAny(haystack string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}
