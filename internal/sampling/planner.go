// Package sampling turns scene boundaries into candidate frame
// timestamps. Every usable scene contributes an early, a midpoint, and
// a near-end frame; longer scenes are additionally sampled at a fixed
// interval between the early and near-end offsets.
package sampling

import (
	"sort"

	"framepick/internal/frames"
)

// Options controls candidate frame planning.
type Options struct {
	FPS float64
	// IntervalSeconds is the spacing of the regular samples added for
	// long scenes.
	IntervalSeconds float64
	// MinSceneSeconds: scenes shorter than this yield no frames.
	MinSceneSeconds float64
	// LongSceneSeconds: scenes longer than this get interval samples.
	LongSceneSeconds float64
	// TransitionSkipFrames caps the offset used to skip cut artifacts.
	TransitionSkipFrames int
	// TotalFrames, when positive, drops planned frames outside
	// [0, TotalFrames).
	TotalFrames int
}

// PlannedFrame maps one candidate frame number to the scene that
// claimed it. When two scenes could claim the same frame number the
// earliest-registered scene wins.
type PlannedFrame struct {
	FrameNumber int
	SceneIndex  int
}

// Plan is the de-duplicated, ascending list of candidate frames.
type Plan struct {
	Frames []PlannedFrame
}

// SceneFor returns the scene index owning frameNumber.
func (p Plan) SceneFor(frameNumber int) (int, bool) {
	for _, f := range p.Frames {
		if f.FrameNumber == frameNumber {
			return f.SceneIndex, true
		}
	}
	return 0, false
}

// FrameNumbers returns just the planned frame numbers, ascending.
func (p Plan) FrameNumbers() []int {
	numbers := make([]int, len(p.Frames))
	for i, f := range p.Frames {
		numbers[i] = f.FrameNumber
	}
	return numbers
}

// BuildPlan computes the candidate frames for the given scenes.
func BuildPlan(scenes []frames.Scene, opts Options) Plan {
	if opts.FPS <= 0 {
		return Plan{}
	}
	interval := int(opts.FPS * opts.IntervalSeconds)
	if interval < 1 {
		interval = 1
	}

	claimed := make(map[int]int)
	var numbers []int

	for _, scene := range scenes {
		duration := scene.Duration(opts.FPS)
		if duration < opts.MinSceneSeconds {
			continue
		}
		length := scene.FrameCount()

		offset := length / 4
		if offset > opts.TransitionSkipFrames {
			offset = opts.TransitionSkipFrames
		}

		candidates := make(map[int]struct{})
		candidates[scene.StartFrame+offset] = struct{}{}
		candidates[(scene.StartFrame+scene.EndFrame)/2] = struct{}{}
		candidates[scene.EndFrame-offset] = struct{}{}
		if duration > opts.LongSceneSeconds {
			for current := scene.StartFrame + offset; current < scene.EndFrame-offset; current += interval {
				candidates[current] = struct{}{}
			}
		}

		ordered := make([]int, 0, len(candidates))
		for n := range candidates {
			ordered = append(ordered, n)
		}
		sort.Ints(ordered)

		for _, n := range ordered {
			if n < 0 {
				continue
			}
			if opts.TotalFrames > 0 && n >= opts.TotalFrames {
				continue
			}
			if _, taken := claimed[n]; taken {
				continue
			}
			claimed[n] = scene.Index
			numbers = append(numbers, n)
		}
	}

	sort.Ints(numbers)
	plan := Plan{Frames: make([]PlannedFrame, 0, len(numbers))}
	for _, n := range numbers {
		plan.Frames = append(plan.Frames, PlannedFrame{FrameNumber: n, SceneIndex: claimed[n]})
	}
	return plan
}
