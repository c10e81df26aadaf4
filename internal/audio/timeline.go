// Package audio derives a timeline of classified events and a
// normalized energy curve from raw mono PCM samples. Classification is
// a fixed-order heuristic over smoothed spectral features; no model is
// involved.
package audio

import (
	"sort"

	"framepick/internal/frames"
)

// Classification thresholds, tuned for event footage.
const (
	silenceRMSThreshold        = 0.05
	speechZCRMin               = 0.2
	speechZCRMax               = 0.6
	musicCentroidThreshold     = 0.4
	musicRMSThreshold          = 0.2
	applauseBandwidthThreshold = 0.5
	applauseZCRThreshold       = 0.4
)

// Options controls feature extraction and peak queries.
type Options struct {
	SampleRate      int
	HopLength       int
	FrameLength     int
	SmoothingWindow int
}

// Timeline exposes classified audio events and energy lookups for a
// single video's audio track.
type Timeline struct {
	events   []frames.AudioEvent
	times    []float64
	energies []float64

	peakCache map[peakKey][]float64
}

type peakKey struct {
	threshold   float64
	minDistance float64
}

// NewTimeline analyzes mono PCM samples into a Timeline. Empty input
// yields an empty timeline, never an error.
func NewTimeline(samples []float64, opts Options) *Timeline {
	tl := &Timeline{peakCache: make(map[peakKey][]float64)}
	if len(samples) == 0 || opts.SampleRate <= 0 || opts.HopLength <= 0 {
		return tl
	}
	if opts.FrameLength <= 0 {
		opts.FrameLength = 2048
	}
	if opts.SmoothingWindow <= 0 {
		opts.SmoothingWindow = 10
	}

	fs := extractFeatures(samples, opts.SampleRate, opts.FrameLength, opts.HopLength)
	if len(fs.times) == 0 {
		return tl
	}

	rmsNorm := normalized(fs.rms)
	centroidNorm := normalized(fs.centroid)
	zcrNorm := normalized(fs.zcr)
	bandwidthNorm := normalized(fs.bandwidth)

	// The energy curve keeps the unsmoothed normalized RMS so peak
	// queries see genuine local maxima.
	tl.times = fs.times
	tl.energies = rmsNorm

	tl.events = classifySegments(segmentInputs{
		times:     fs.times,
		rms:       smoothed(rmsNorm, opts.SmoothingWindow),
		centroid:  smoothed(centroidNorm, opts.SmoothingWindow),
		zcr:       smoothed(zcrNorm, opts.SmoothingWindow),
		bandwidth: smoothed(bandwidthNorm, opts.SmoothingWindow),
	}, opts.SampleRate/opts.HopLength)
	return tl
}

type segmentInputs struct {
	times     []float64
	rms       []float64
	centroid  []float64
	zcr       []float64
	bandwidth []float64
}

// classifySegments buckets analysis frames into one-second windows,
// classifies each, and merges consecutive same-type segments. Silence
// runs are dropped from the emitted list.
func classifySegments(in segmentInputs, framesPerSegment int) []frames.AudioEvent {
	if framesPerSegment < 1 {
		framesPerSegment = 1
	}
	numSegments := len(in.rms) / framesPerSegment

	var events []frames.AudioEvent
	var current *frames.AudioEvent

	for seg := 0; seg < numSegments; seg++ {
		start := seg * framesPerSegment
		end := start + framesPerSegment
		if end > len(in.rms) {
			end = len(in.rms)
		}

		rms := mean(in.rms[start:end])
		centroid := mean(in.centroid[start:end])
		zcr := mean(in.zcr[start:end])
		bandwidth := mean(in.bandwidth[start:end])

		startTime := 0.0
		if start < len(in.times) {
			startTime = in.times[start]
		}
		endIdx := end
		if endIdx >= len(in.times) {
			endIdx = len(in.times) - 1
		}
		endTime := in.times[endIdx]

		eventType, confidence := classifySegment(rms, centroid, zcr, bandwidth)

		if current != nil && current.EventType == eventType {
			current.EndTime = endTime
			current.Confidence = (current.Confidence + confidence) / 2
			if rms > current.Intensity {
				current.Intensity = rms
			}
			continue
		}
		if current != nil && current.EventType != frames.AudioSilence {
			events = append(events, *current)
		}
		current = &frames.AudioEvent{
			StartTime:  startTime,
			EndTime:    endTime,
			EventType:  eventType,
			Confidence: confidence,
			Intensity:  rms,
		}
	}
	if current != nil && current.EventType != frames.AudioSilence {
		events = append(events, *current)
	}
	return events
}

// classifySegment applies the fixed decision order: silence, applause,
// speech, music, other.
func classifySegment(rms, centroid, zcr, bandwidth float64) (frames.AudioType, float64) {
	switch {
	case rms < silenceRMSThreshold:
		return frames.AudioSilence, 1.0 - rms/silenceRMSThreshold
	case bandwidth > applauseBandwidthThreshold && zcr > applauseZCRThreshold:
		// Applause reads as broadband noise with a high crossing rate.
		if bandwidth < zcr {
			return frames.AudioApplause, bandwidth
		}
		return frames.AudioApplause, zcr
	case zcr > speechZCRMin && zcr < speechZCRMax && centroid < musicCentroidThreshold:
		confidence := 1.0 - abs(zcr-0.4)
		return frames.AudioSpeech, confidence
	case centroid > musicCentroidThreshold && rms > musicRMSThreshold:
		return frames.AudioMusic, centroid
	default:
		return frames.AudioOther, 0.5
	}
}

// Events returns the merged, silence-free event list in time order.
func (t *Timeline) Events() []frames.AudioEvent {
	return t.events
}

// EnergyAt returns the normalized energy at timestamp, using a
// lower-bound lookup on the energy curve.
func (t *Timeline) EnergyAt(timestamp float64) float64 {
	if len(t.energies) == 0 {
		return 0
	}
	idx := sort.SearchFloat64s(t.times, timestamp)
	if idx <= 0 {
		return t.energies[0]
	}
	if idx >= len(t.energies) {
		return t.energies[len(t.energies)-1]
	}
	return t.energies[idx]
}

// EventAt returns the first event containing timestamp, or false when
// the timestamp falls in silence or outside the track.
func (t *Timeline) EventAt(timestamp float64) (frames.AudioEvent, bool) {
	for _, e := range t.events {
		if e.Contains(timestamp) {
			return e, true
		}
	}
	return frames.AudioEvent{}, false
}

// PeakTimestamps returns local maxima of the energy curve above
// threshold, spaced at least minDistanceSeconds apart. Higher peaks
// take precedence when spacing conflicts.
func (t *Timeline) PeakTimestamps(threshold, minDistanceSeconds float64) []float64 {
	key := peakKey{threshold: threshold, minDistance: minDistanceSeconds}
	if cached, ok := t.peakCache[key]; ok {
		return cached
	}

	peaks := t.findPeaks(threshold, minDistanceSeconds)
	t.peakCache[key] = peaks
	return peaks
}

func (t *Timeline) findPeaks(threshold, minDistanceSeconds float64) []float64 {
	if len(t.energies) < 3 {
		return nil
	}
	timeStep := 0.1
	if len(t.times) > 1 {
		timeStep = t.times[1] - t.times[0]
	}
	minDistanceSamples := int(minDistanceSeconds / timeStep)

	var maxima []int
	for i := 1; i < len(t.energies)-1; i++ {
		if t.energies[i] > t.energies[i-1] && t.energies[i] >= t.energies[i+1] && t.energies[i] >= threshold {
			maxima = append(maxima, i)
		}
	}
	// Keep the tallest peaks first, discarding any within the spacing
	// of an already kept one.
	sort.SliceStable(maxima, func(a, b int) bool {
		return t.energies[maxima[a]] > t.energies[maxima[b]]
	})
	var kept []int
	for _, candidate := range maxima {
		ok := true
		for _, existing := range kept {
			if absInt(candidate-existing) < minDistanceSamples {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, candidate)
		}
	}
	sort.Ints(kept)

	peaks := make([]float64, len(kept))
	for i, idx := range kept {
		peaks[i] = t.times[idx]
	}
	return peaks
}

// IsPeak reports whether any peak above threshold lies within window
// seconds of timestamp.
func (t *Timeline) IsPeak(timestamp, window, threshold float64) bool {
	for _, peak := range t.PeakTimestamps(threshold, defaultPeakSpacing) {
		if abs(peak-timestamp) < window {
			return true
		}
	}
	return false
}

// defaultPeakSpacing matches the spacing used for standalone peak
// queries.
const defaultPeakSpacing = 2.0

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
