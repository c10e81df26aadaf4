// Package bundle loads a feature bundle: the materialized outputs of
// the external collaborators (scene detection, frame extraction,
// sharpness, faces, tags, saliency, decoded audio) serialized as one
// JSON document. A bundle adapts onto the pipeline's collaborator
// interfaces so the engine can run without any model runtime present.
package bundle

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"framepick/internal/crop"
	"framepick/internal/frames"
	"framepick/internal/pipeline"
)

// Frame is one pre-extracted frame with its measurements.
type Frame struct {
	FrameNumber int           `json:"frame_number"`
	ImagePath   string        `json:"image_path"`
	RawPath     string        `json:"raw_path,omitempty"`
	Sharpness   float64       `json:"sharpness_score"`
	Faces       []frames.Face `json:"faces,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	SubjectBox  *subjectBox   `json:"subject_box,omitempty"`
}

type subjectBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Media mirrors the probe result.
type Media struct {
	FPS         float64 `json:"fps"`
	TotalFrames int     `json:"total_frames"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
}

// Bundle is the full feature document for one video.
type Bundle struct {
	Video        string         `json:"video"`
	Media        Media          `json:"media"`
	Scenes       []frames.Scene `json:"scenes"`
	Frames       []Frame        `json:"frames"`
	AudioSamples []float64      `json:"audio_samples,omitempty"`

	byNumber map[int]*Frame
}

// Load reads and indexes a bundle file.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bundle: %w", err)
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decoding bundle: %w", err)
	}
	if b.Media.FPS <= 0 {
		return nil, fmt.Errorf("bundle %s: media.fps must be positive", path)
	}
	b.index()
	return &b, nil
}

func (b *Bundle) index() {
	b.byNumber = make(map[int]*Frame, len(b.Frames))
	for i := range b.Frames {
		b.byNumber[b.Frames[i].FrameNumber] = &b.Frames[i]
	}
}

// Deps adapts the bundle onto the pipeline collaborator interfaces.
// The audio decoder is omitted when the bundle carries no samples, and
// face/tag/saliency lookups return empty results for frames the bundle
// does not annotate.
func (b *Bundle) Deps() pipeline.Deps {
	deps := pipeline.Deps{
		Prober:    proberAdapter{b},
		Scenes:    scenesAdapter{b},
		Extractor: extractorAdapter{b},
		Sharpness: sharpnessAdapter{b},
		Faces:     facesAdapter{b},
		Tagger:    taggerAdapter{b},
		Saliency:  saliencyAdapter{b},
	}
	if len(b.AudioSamples) > 0 {
		deps.Audio = audioAdapter{b}
	}
	return deps
}

func (b *Bundle) frameByPath(imagePath string) *Frame {
	for i := range b.Frames {
		if b.Frames[i].ImagePath == imagePath {
			return &b.Frames[i]
		}
	}
	return nil
}

type proberAdapter struct{ b *Bundle }

func (a proberAdapter) Probe(context.Context, string) (pipeline.MediaInfo, error) {
	return pipeline.MediaInfo{
		FPS:         a.b.Media.FPS,
		TotalFrames: a.b.Media.TotalFrames,
		Width:       a.b.Media.Width,
		Height:      a.b.Media.Height,
	}, nil
}

type scenesAdapter struct{ b *Bundle }

func (a scenesAdapter) DetectScenes(context.Context, string) ([]frames.Scene, error) {
	return a.b.Scenes, nil
}

type extractorAdapter struct{ b *Bundle }

func (a extractorAdapter) ExtractFrame(_ context.Context, _ string, frameNumber int) (pipeline.ExtractedFrame, error) {
	f, ok := a.b.byNumber[frameNumber]
	if !ok {
		return pipeline.ExtractedFrame{}, fmt.Errorf("frame %d not present in bundle", frameNumber)
	}
	return pipeline.ExtractedFrame{ImagePath: f.ImagePath, RawPath: f.RawPath}, nil
}

type sharpnessAdapter struct{ b *Bundle }

func (a sharpnessAdapter) Sharpness(_ context.Context, imagePath string) (float64, error) {
	if f := a.b.frameByPath(imagePath); f != nil {
		return f.Sharpness, nil
	}
	return 0, fmt.Errorf("no sharpness recorded for %s", imagePath)
}

type facesAdapter struct{ b *Bundle }

func (a facesAdapter) DetectFaces(_ context.Context, imagePath string) ([]frames.Face, error) {
	if f := a.b.frameByPath(imagePath); f != nil {
		return f.Faces, nil
	}
	return nil, nil
}

type taggerAdapter struct{ b *Bundle }

func (a taggerAdapter) TagImage(_ context.Context, imagePath string) ([]string, error) {
	if f := a.b.frameByPath(imagePath); f != nil {
		return f.Tags, nil
	}
	return nil, nil
}

type saliencyAdapter struct{ b *Bundle }

func (a saliencyAdapter) SubjectBox(_ context.Context, imagePath string) (*crop.SubjectBox, error) {
	f := a.b.frameByPath(imagePath)
	if f == nil || f.SubjectBox == nil {
		return nil, nil
	}
	return &crop.SubjectBox{X1: f.SubjectBox.X1, Y1: f.SubjectBox.Y1, X2: f.SubjectBox.X2, Y2: f.SubjectBox.Y2}, nil
}

type audioAdapter struct{ b *Bundle }

func (a audioAdapter) DecodeMono(context.Context, string, int) ([]float64, error) {
	return a.b.AudioSamples, nil
}
