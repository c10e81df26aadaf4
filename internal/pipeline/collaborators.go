package pipeline

import (
	"context"

	"framepick/internal/crop"
	"framepick/internal/frames"
)

// MediaInfo is the probe result the planner and classifiers need.
type MediaInfo struct {
	FPS         float64
	TotalFrames int
	Width       int
	Height      int
}

// ExtractedFrame is one frame written to disk. RawPath is the ungraded
// original and may be empty when no LUT preview split exists.
type ExtractedFrame struct {
	ImagePath string
	RawPath   string
}

// MediaProber reads frame rate, frame count and dimensions.
type MediaProber interface {
	Probe(ctx context.Context, video string) (MediaInfo, error)
}

// SceneDetector finds shot boundaries.
type SceneDetector interface {
	DetectScenes(ctx context.Context, video string) ([]frames.Scene, error)
}

// FrameExtractor decodes a single frame to an image file.
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, video string, frameNumber int) (ExtractedFrame, error)
}

// SharpnessMeter computes a Laplacian-variance style sharpness score
// for an image on disk.
type SharpnessMeter interface {
	Sharpness(ctx context.Context, imagePath string) (float64, error)
}

// FaceDetector finds faces with optional landmarks and embeddings.
type FaceDetector interface {
	DetectFaces(ctx context.Context, imagePath string) ([]frames.Face, error)
}

// ImageTagger produces content tags for an image.
type ImageTagger interface {
	TagImage(ctx context.Context, imagePath string) ([]string, error)
}

// SaliencyDetector locates the salient subject. A nil box means no
// subject was found; crop planning then falls back to the frame center.
type SaliencyDetector interface {
	SubjectBox(ctx context.Context, imagePath string) (*crop.SubjectBox, error)
}

// AudioDecoder produces mono PCM samples at the requested rate.
type AudioDecoder interface {
	DecodeMono(ctx context.Context, video string, sampleRate int) ([]float64, error)
}
