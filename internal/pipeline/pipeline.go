// Package pipeline orchestrates a full analysis run: plan candidate
// frames from scene boundaries, gate them by sharpness, annotate them
// with faces, tags, smiles, crops and audio context, cluster face
// identities, and select a diverse subset per scene. The heavy lifting
// (decoding, detection, tagging) is delegated to collaborator
// interfaces; a missing optional collaborator degrades that feature to
// an empty result instead of failing the run.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"framepick/internal/audio"
	"framepick/internal/classify"
	"framepick/internal/config"
	"framepick/internal/crop"
	"framepick/internal/frames"
	"framepick/internal/identity"
	"framepick/internal/logging"
	"framepick/internal/quality"
	"framepick/internal/sampling"
	"framepick/internal/selection"
	"framepick/internal/smile"
)

// Deps bundles the external collaborators. Prober, Scenes, Extractor
// and Sharpness are required; the rest are optional and degrade to
// empty results when nil.
type Deps struct {
	Prober    MediaProber
	Scenes    SceneDetector
	Extractor FrameExtractor
	Sharpness SharpnessMeter

	Faces     FaceDetector
	Tagger    ImageTagger
	Saliency  SaliencyDetector
	Audio     AudioDecoder
	Clusterer identity.Clusterer
}

// Runner executes analysis runs for one configuration.
type Runner struct {
	cfg    config.Config
	deps   Deps
	logger *slog.Logger
}

// NewRunner validates required collaborators and returns a Runner.
func NewRunner(cfg config.Config, deps Deps, logger *slog.Logger) (*Runner, error) {
	switch {
	case deps.Prober == nil:
		return nil, errors.New("pipeline: media prober is required")
	case deps.Scenes == nil:
		return nil, errors.New("pipeline: scene detector is required")
	case deps.Extractor == nil:
		return nil, errors.New("pipeline: frame extractor is required")
	case deps.Sharpness == nil:
		return nil, errors.New("pipeline: sharpness meter is required")
	}
	return &Runner{
		cfg:    cfg,
		deps:   deps,
		logger: logging.NewComponentLogger(logger, "pipeline"),
	}, nil
}

// Run analyzes one video end to end and returns the report.
func (r *Runner) Run(ctx context.Context, video string) (*Report, error) {
	logger := r.logger.With(slog.String(logging.FieldVideo, video))
	started := time.Now()

	info, err := r.deps.Prober.Probe(ctx, video)
	if err != nil {
		return nil, err
	}
	if info.FPS <= 0 {
		return nil, errors.New("pipeline: probe returned non-positive frame rate")
	}

	scenes, err := r.deps.Scenes.DetectScenes(ctx, video)
	if err != nil {
		return nil, err
	}
	logger.Info("detected scenes", slog.Int("count", len(scenes)))

	plan := sampling.BuildPlan(scenes, sampling.Options{
		FPS:                  info.FPS,
		IntervalSeconds:      r.cfg.Sampling.IntervalSeconds,
		MinSceneSeconds:      r.cfg.Sampling.MinSceneSeconds,
		LongSceneSeconds:     r.cfg.Sampling.LongSceneSeconds,
		TransitionSkipFrames: r.cfg.Sampling.TransitionSkipFrames,
		TotalFrames:          info.TotalFrames,
	})
	logger.Info("planned candidate frames", slog.Int("count", len(plan.Frames)))

	candidates := r.extractCandidates(ctx, video, info, plan, logger)
	gate := quality.Gate(candidates, r.cfg.Quality.SharpnessThreshold)
	if gate.FallbackUsed {
		logger.Warn("no frames passed the sharpness gate, using fallback",
			slog.Int("kept", len(gate.Kept)))
	} else {
		logger.Info("sharpness gate",
			slog.Int("kept", len(gate.Kept)),
			slog.Int("extracted", len(candidates)))
	}

	timeline := r.analyzeAudio(ctx, video, logger)
	r.annotate(ctx, gate.Kept, info, timeline, logger)

	identity.Assign(gate.Kept, r.deps.Clusterer, identity.Options{
		Eps:        r.cfg.Clustering.Eps,
		MinSamples: r.cfg.Clustering.MinSamples,
	}, logger)

	var selected []*frames.Candidate
	if r.cfg.Selection.SelectVariety {
		selector := selection.New(selection.Options{
			MinPerScene:     r.cfg.Selection.MinPerScene,
			MaxPerScene:     r.cfg.Selection.MaxPerScene,
			MinTimestampGap: r.cfg.Selection.MinTimestampGap,
		}, logger)
		selected = selector.Select(gate.Kept)
	} else {
		// Passthrough mode: keep everything the gate kept and let the
		// caller cull by hand.
		selected = gate.Kept
		for _, c := range selected {
			c.SelectionReasons = []string{"quality_passed"}
		}
	}

	report := &Report{
		Video:         video,
		RunID:         uuid.NewString(),
		ProcessedAt:   time.Now().UTC(),
		TotalScenes:   len(scenes),
		TotalAnalyzed: len(gate.Kept),
		TotalSelected: len(selected),
		AudioEvents:   timeline.Events(),
		Candidates:    selected,
	}
	logger.Info("run complete",
		slog.Int("selected", report.TotalSelected),
		slog.Int("analyzed", report.TotalAnalyzed),
		slog.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}

// extractCandidates decodes every planned frame and scores sharpness.
// A frame that fails to extract or score is skipped, not fatal.
func (r *Runner) extractCandidates(ctx context.Context, video string, info MediaInfo, plan sampling.Plan, logger *slog.Logger) []*frames.Candidate {
	candidates := make([]*frames.Candidate, 0, len(plan.Frames))
	for _, pf := range plan.Frames {
		extracted, err := r.deps.Extractor.ExtractFrame(ctx, video, pf.FrameNumber)
		if err != nil {
			logger.Warn("frame extraction failed",
				slog.Int("frame", pf.FrameNumber), slog.Any("error", err))
			continue
		}
		sharpness, err := r.deps.Sharpness.Sharpness(ctx, extracted.ImagePath)
		if err != nil {
			logger.Warn("sharpness scoring failed",
				slog.Int("frame", pf.FrameNumber), slog.Any("error", err))
			continue
		}
		candidates = append(candidates, &frames.Candidate{
			FrameNumber:    pf.FrameNumber,
			Timestamp:      float64(pf.FrameNumber) / info.FPS,
			SceneIndex:     pf.SceneIndex,
			ImagePath:      extracted.ImagePath,
			RawPath:        extracted.RawPath,
			SharpnessScore: sharpness,
		})
	}
	return candidates
}

// analyzeAudio builds the audio timeline, or an empty one when no
// decoder is wired or decoding fails.
func (r *Runner) analyzeAudio(ctx context.Context, video string, logger *slog.Logger) *audio.Timeline {
	if r.deps.Audio == nil {
		logger.Debug("no audio decoder wired, skipping audio analysis")
		return audio.NewTimeline(nil, audio.Options{})
	}
	samples, err := r.deps.Audio.DecodeMono(ctx, video, r.cfg.Audio.SampleRate)
	if err != nil {
		logger.Warn("audio decoding failed", slog.Any("error", err))
		return audio.NewTimeline(nil, audio.Options{})
	}
	timeline := audio.NewTimeline(samples, audio.Options{
		SampleRate:      r.cfg.Audio.SampleRate,
		HopLength:       r.cfg.Audio.HopLength,
		FrameLength:     r.cfg.Audio.FrameLength,
		SmoothingWindow: r.cfg.Audio.SmoothingWindow,
	})
	logger.Info("audio analysis", slog.Int("events", len(timeline.Events())))
	return timeline
}

// annotate fills in faces, smiles, tags, category, composition, crops
// and audio context for every gated candidate.
func (r *Runner) annotate(ctx context.Context, candidates []*frames.Candidate, info MediaInfo, timeline *audio.Timeline, logger *slog.Logger) {
	classifier := classify.New(classify.DefaultKeywords(), info.Width, info.Height)
	ratios := crop.DefaultAspectRatios()

	for _, c := range candidates {
		c.Faces = r.detectFaces(ctx, c.ImagePath, logger)
		for i := range c.Faces {
			c.Faces[i].SmileScore = smile.Score(c.Faces[i].Landmarks)
		}
		c.Tags = r.tagImage(ctx, c.ImagePath, logger)

		c.FrameCategory = classifier.Category(c.Faces, c.Tags)
		c.Composition = classifier.Composition(c.Faces, c.Tags)
		c.IsBroll = classify.IsBroll(c.FrameCategory)

		if r.cfg.Selection.CropAspectRatios {
			c.Crops = crop.Plan(info.Width, info.Height, c.Faces, r.subjectBox(ctx, c, logger), ratios)
		}

		if event, ok := timeline.EventAt(c.Timestamp); ok {
			c.AudioType = event.EventType
		}
		c.AudioIntensity = timeline.EnergyAt(c.Timestamp)
		peaks := timeline.PeakTimestamps(r.cfg.Audio.PeakThreshold, r.cfg.Audio.PeakMinDistance)
		c.IsAudioPeak = nearPeak(peaks, c.Timestamp, r.cfg.Audio.PeakWindowSeconds)
	}
}

func nearPeak(peaks []float64, timestamp, window float64) bool {
	for _, peak := range peaks {
		if diff := peak - timestamp; diff < window && diff > -window {
			return true
		}
	}
	return false
}

func (r *Runner) detectFaces(ctx context.Context, imagePath string, logger *slog.Logger) []frames.Face {
	if r.deps.Faces == nil {
		return nil
	}
	faces, err := r.deps.Faces.DetectFaces(ctx, imagePath)
	if err != nil {
		logger.Warn("face detection failed", slog.String("image", imagePath), slog.Any("error", err))
		return nil
	}
	return faces
}

func (r *Runner) tagImage(ctx context.Context, imagePath string, logger *slog.Logger) []string {
	if r.deps.Tagger == nil {
		return nil
	}
	tags, err := r.deps.Tagger.TagImage(ctx, imagePath)
	if err != nil {
		logger.Warn("image tagging failed", slog.String("image", imagePath), slog.Any("error", err))
		return nil
	}
	return tags
}

// subjectBox consults the saliency detector only for faceless frames;
// face centers already anchor the crop otherwise.
func (r *Runner) subjectBox(ctx context.Context, c *frames.Candidate, logger *slog.Logger) *crop.SubjectBox {
	if r.deps.Saliency == nil || len(c.Faces) > 0 {
		return nil
	}
	box, err := r.deps.Saliency.SubjectBox(ctx, c.ImagePath)
	if err != nil {
		logger.Warn("saliency detection failed", slog.String("image", c.ImagePath), slog.Any("error", err))
		return nil
	}
	return box
}
