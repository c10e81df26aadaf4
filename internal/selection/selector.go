// Package selection picks a bounded, diverse subset of candidate
// frames per scene. It is a greedy heuristic, not an optimizer: within
// each scene candidates are scored, sorted, and accepted one per
// category in priority order, with a minimum timestamp gap between
// accepted frames from the same scene.
package selection

import (
	"fmt"
	"log/slog"
	"sort"

	"framepick/internal/frames"
	"framepick/internal/logging"
)

// Scoring and predicate thresholds, calibrated against wedding footage.
const (
	sharpnessFloor      = 50.0
	sharpnessCeil       = 500.0
	highSmileThreshold  = 0.6
	verySharpThreshold  = 500.0
	audioMomentMinLevel = 0.5
	brollOverlapLimit   = 0.5
	audioPeakBoost      = 0.2
	faceBoostStep       = 0.05
	faceBoostCap        = 0.15
)

// categoryPriority orders categories by how much a human picking
// highlights would want them.
var categoryPriority = []frames.Category{
	frames.CategoryPeopleFace,
	frames.CategoryPeopleRoll,
	frames.CategoryDetail,
	frames.CategoryBroll,
}

// Options configures a Selector.
type Options struct {
	MinPerScene     int
	MaxPerScene     int
	MinTimestampGap float64
}

// Selector holds per-run diversity state. Construct one per pipeline
// run; it is not safe for concurrent use.
type Selector struct {
	opts   Options
	logger *slog.Logger

	seenFaces        map[int]struct{}
	seenCompositions map[int]map[frames.Composition]struct{}
}

// New returns a Selector with fresh per-run state.
func New(opts Options, logger *slog.Logger) *Selector {
	if opts.MinPerScene < 0 {
		opts.MinPerScene = 0
	}
	if opts.MaxPerScene < 1 {
		opts.MaxPerScene = 1
	}
	if opts.MinTimestampGap <= 0 {
		opts.MinTimestampGap = 1.0
	}
	return &Selector{
		opts:             opts,
		logger:           logging.NewComponentLogger(logger, "variety-selector"),
		seenFaces:        make(map[int]struct{}),
		seenCompositions: make(map[int]map[frames.Composition]struct{}),
	}
}

// QualityScore combines sharpness, smiles, audio significance and face
// count into a single 0-ish to 1-ish rank value.
func (s *Selector) QualityScore(c *frames.Candidate) float64 {
	sharpNorm := (c.SharpnessScore - sharpnessFloor) / (sharpnessCeil - sharpnessFloor)
	if sharpNorm < 0 {
		sharpNorm = 0
	}
	if sharpNorm > 1 {
		sharpNorm = 1
	}

	score := sharpNorm*0.4 + c.MaxSmileScore()*0.3
	if c.IsAudioPeak {
		score += audioPeakBoost
	}
	if n := len(c.Faces); n > 0 {
		boost := float64(n) * faceBoostStep
		if boost > faceBoostCap {
			boost = faceBoostCap
		}
		score += boost
	}
	return score
}

// Select runs the batch per-scene pass over all candidates and returns
// the accepted subset with selection reasons attached. Scenes are
// processed in ascending index order so the result is deterministic and
// later scenes observe the face/composition state of earlier ones.
func (s *Selector) Select(candidates []*frames.Candidate) []*frames.Candidate {
	if len(candidates) == 0 {
		return []*frames.Candidate{}
	}

	byScene := make(map[int][]*frames.Candidate)
	for _, c := range candidates {
		byScene[c.SceneIndex] = append(byScene[c.SceneIndex], c)
	}
	sceneOrder := make([]int, 0, len(byScene))
	for idx := range byScene {
		sceneOrder = append(sceneOrder, idx)
	}
	sort.Ints(sceneOrder)

	var selected []*frames.Candidate
	for _, sceneIdx := range sceneOrder {
		picked := s.selectScene(byScene[sceneIdx])
		for _, c := range picked {
			s.UpdateState(c)
		}
		selected = append(selected, picked...)
	}

	counts := make(map[frames.Category]int)
	for _, c := range selected {
		counts[c.FrameCategory]++
	}
	s.logger.Info("variety selection complete",
		slog.Int("selected", len(selected)),
		slog.Int("analyzed", len(candidates)),
		slog.Int("scenes", len(byScene)),
		slog.Any("by_category", counts),
	)
	return selected
}

func (s *Selector) selectScene(sceneCandidates []*frames.Candidate) []*frames.Candidate {
	scores := make(map[*frames.Candidate]float64, len(sceneCandidates))
	for _, c := range sceneCandidates {
		scores[c] = s.QualityScore(c)
	}

	ranked := append([]*frames.Candidate(nil), sceneCandidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	byCategory := make(map[frames.Category][]*frames.Candidate)
	for _, c := range ranked {
		byCategory[c.FrameCategory] = append(byCategory[c.FrameCategory], c)
	}

	var picked []*frames.Candidate
	var timestamps []float64

	// One candidate per category present, best score first.
	for _, category := range categoryPriority {
		if len(picked) >= s.opts.MaxPerScene {
			break
		}
		for _, c := range byCategory[category] {
			if s.tooClose(c.Timestamp, timestamps) {
				continue
			}
			c.SelectionReasons = []string{
				fmt.Sprintf("best_%s", category),
				fmt.Sprintf("score:%.2f", scores[c]),
			}
			picked = append(picked, c)
			timestamps = append(timestamps, c.Timestamp)
			break
		}
	}

	// Minimum-fill pass: relax the category constraint but keep spacing.
	if len(picked) < s.opts.MinPerScene {
		for _, c := range ranked {
			if len(picked) >= s.opts.MinPerScene {
				break
			}
			if containsCandidate(picked, c) || s.tooClose(c.Timestamp, timestamps) {
				continue
			}
			c.SelectionReasons = []string{"scene_coverage"}
			picked = append(picked, c)
			timestamps = append(timestamps, c.Timestamp)
		}
	}
	return picked
}

func (s *Selector) tooClose(timestamp float64, accepted []float64) bool {
	for _, t := range accepted {
		if abs(timestamp-t) < s.opts.MinTimestampGap {
			return true
		}
	}
	return false
}

// ShouldKeep reports whether a candidate is independently interesting
// given what has already been selected, along with the reasons. It is
// the incremental counterpart to the batch Select pass and keys off the
// same signals. A candidate too close in time to an already-selected
// frame from its scene is rejected outright.
func (s *Selector) ShouldKeep(c *frames.Candidate, selected []*frames.Candidate) (bool, []string) {
	for _, prev := range selected {
		if prev.SceneIndex == c.SceneIndex && abs(c.Timestamp-prev.Timestamp) < s.opts.MinTimestampGap {
			return false, []string{"too_close_to_existing"}
		}
	}

	var reasons []string

	if newFaces := s.newFaceClusters(c); len(newFaces) > 0 {
		reasons = append(reasons, fmt.Sprintf("new_faces:%v", newFaces))
	}

	if c.Composition != "" {
		if _, seen := s.seenCompositions[c.SceneIndex][c.Composition]; !seen {
			reasons = append(reasons, fmt.Sprintf("new_composition:%s", c.Composition))
		}
	}

	if smile := c.MaxSmileScore(); smile > highSmileThreshold {
		reasons = append(reasons, fmt.Sprintf("high_smile:%.2f", smile))
	}

	if c.IsAudioPeak {
		audioType := c.AudioType
		if audioType == "" {
			audioType = "unknown"
		}
		reasons = append(reasons, fmt.Sprintf("audio_peak:%s", audioType))
	}

	if (c.AudioType == frames.AudioApplause || c.AudioType == frames.AudioMusic) && c.AudioIntensity > audioMomentMinLevel {
		reasons = append(reasons, fmt.Sprintf("audio_moment:%s", c.AudioType))
	}

	if c.SharpnessScore > verySharpThreshold {
		reasons = append(reasons, fmt.Sprintf("very_sharp:%.0f", c.SharpnessScore))
	}

	if c.IsBroll && len(c.Tags) > 0 && !s.hasSimilarBroll(c, selected) {
		reasons = append(reasons, fmt.Sprintf("unique_broll:%v", topTags(c.Tags, 3)))
	}

	return len(reasons) > 0, reasons
}

// UpdateState records a kept candidate's face clusters and composition
// so later decisions see them.
func (s *Selector) UpdateState(c *frames.Candidate) {
	for id := range c.FaceClusters() {
		s.seenFaces[id] = struct{}{}
	}
	if c.Composition == "" {
		return
	}
	if s.seenCompositions[c.SceneIndex] == nil {
		s.seenCompositions[c.SceneIndex] = make(map[frames.Composition]struct{})
	}
	s.seenCompositions[c.SceneIndex][c.Composition] = struct{}{}
}

func (s *Selector) newFaceClusters(c *frames.Candidate) []int {
	var fresh []int
	for id := range c.FaceClusters() {
		if _, seen := s.seenFaces[id]; !seen {
			fresh = append(fresh, id)
		}
	}
	sort.Ints(fresh)
	return fresh
}

// hasSimilarBroll reports whether any already-selected b-roll frame
// shares more than half its tag set with the candidate (Jaccard).
func (s *Selector) hasSimilarBroll(c *frames.Candidate, selected []*frames.Candidate) bool {
	tags := tagSet(c.Tags)
	for _, prev := range selected {
		if !prev.IsBroll {
			continue
		}
		prevTags := tagSet(prev.Tags)
		intersection := 0
		for tag := range tags {
			if _, ok := prevTags[tag]; ok {
				intersection++
			}
		}
		union := len(tags) + len(prevTags) - intersection
		if union < 1 {
			union = 1
		}
		if float64(intersection)/float64(union) > brollOverlapLimit {
			return true
		}
	}
	return false
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func topTags(tags []string, n int) []string {
	unique := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	sort.Strings(unique)
	if len(unique) > n {
		unique = unique[:n]
	}
	return unique
}

func containsCandidate(list []*frames.Candidate, c *frames.Candidate) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
