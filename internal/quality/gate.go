// Package quality filters candidate frames by sharpness. The gate never
// empties a non-empty input: when nothing clears the threshold it keeps
// the sharpest few frames so every video that produced at least one
// extractable frame yields at least one candidate.
package quality

import (
	"sort"

	"framepick/internal/frames"
)

// fallbackCap bounds how many frames the fallback keeps.
const fallbackCap = 3

// Result reports the gate's outcome for logging.
type Result struct {
	Kept         []*frames.Candidate
	FallbackUsed bool
}

// Gate keeps candidates whose sharpness meets threshold. If none pass
// and the input is non-empty, it keeps the top max(1, N/5) frames by
// sharpness, capped at 3.
func Gate(candidates []*frames.Candidate, threshold float64) Result {
	kept := make([]*frames.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.SharpnessScore >= threshold {
			kept = append(kept, c)
		}
	}
	if len(kept) > 0 || len(candidates) == 0 {
		return Result{Kept: kept}
	}

	sorted := make([]*frames.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SharpnessScore > sorted[j].SharpnessScore
	})

	n := len(sorted) / 5
	if n < 1 {
		n = 1
	}
	if n > fallbackCap {
		n = fallbackCap
	}
	return Result{Kept: sorted[:n], FallbackUsed: true}
}
