package bundle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"framepick/internal/frames"
)

const sampleBundle = `{
  "video": "wedding.mp4",
  "media": {"fps": 30, "total_frames": 900, "width": 1920, "height": 1080},
  "scenes": [
    {"index": 0, "start_frame": 0, "end_frame": 450},
    {"index": 1, "start_frame": 450, "end_frame": 900}
  ],
  "frames": [
    {
      "frame_number": 45,
      "image_path": "frames/frame_000045.jpg",
      "raw_path": "frames/frame_000045_raw.jpg",
      "sharpness_score": 210.5,
      "faces": [{"bbox": [100, 100, 300, 300], "confidence": 0.98, "smile_score": 0}],
      "tags": ["garden", "outdoor"],
      "subject_box": {"x1": 10, "y1": 10, "x2": 200, "y2": 200}
    },
    {"frame_number": 500, "image_path": "frames/frame_000500.jpg", "sharpness_score": 95.0}
  ],
  "audio_samples": [0.1, -0.1, 0.2, -0.2]
}`

func writeBundle(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing bundle fixture: %v", err)
	}
	return path
}

func TestLoadAndAdapt(t *testing.T) {
	b, err := Load(writeBundle(t, sampleBundle))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Video != "wedding.mp4" || len(b.Scenes) != 2 {
		t.Fatalf("unexpected bundle: %+v", b)
	}

	deps := b.Deps()
	ctx := context.Background()

	info, err := deps.Prober.Probe(ctx, "wedding.mp4")
	if err != nil || info.FPS != 30 || info.Width != 1920 {
		t.Fatalf("probe: %+v, %v", info, err)
	}

	scenes, err := deps.Scenes.DetectScenes(ctx, "wedding.mp4")
	if err != nil || len(scenes) != 2 || scenes[1].StartFrame != 450 {
		t.Fatalf("scenes: %+v, %v", scenes, err)
	}

	extracted, err := deps.Extractor.ExtractFrame(ctx, "wedding.mp4", 45)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if extracted.RawPath != "frames/frame_000045_raw.jpg" {
		t.Fatalf("raw path missing: %+v", extracted)
	}
	if _, err := deps.Extractor.ExtractFrame(ctx, "wedding.mp4", 999); err == nil {
		t.Fatal("unknown frame number should error")
	}

	sharpness, err := deps.Sharpness.Sharpness(ctx, extracted.ImagePath)
	if err != nil || sharpness != 210.5 {
		t.Fatalf("sharpness: %v, %v", sharpness, err)
	}

	faces, err := deps.Faces.DetectFaces(ctx, extracted.ImagePath)
	if err != nil || len(faces) != 1 || faces[0].Confidence != 0.98 {
		t.Fatalf("faces: %+v, %v", faces, err)
	}

	tags, err := deps.Tagger.TagImage(ctx, extracted.ImagePath)
	if err != nil || len(tags) != 2 {
		t.Fatalf("tags: %v, %v", tags, err)
	}

	box, err := deps.Saliency.SubjectBox(ctx, extracted.ImagePath)
	if err != nil || box == nil || box.X2 != 200 {
		t.Fatalf("subject box: %+v, %v", box, err)
	}

	// Frame 500 has no annotations: lookups degrade to empty, not error.
	bare, err := deps.Extractor.ExtractFrame(ctx, "wedding.mp4", 500)
	if err != nil {
		t.Fatalf("extract bare frame: %v", err)
	}
	if faces, err := deps.Faces.DetectFaces(ctx, bare.ImagePath); err != nil || len(faces) != 0 {
		t.Fatalf("bare frame faces: %v, %v", faces, err)
	}
	if box, err := deps.Saliency.SubjectBox(ctx, bare.ImagePath); err != nil || box != nil {
		t.Fatalf("bare frame subject box: %v, %v", box, err)
	}

	if deps.Audio == nil {
		t.Fatal("bundle with samples should wire an audio decoder")
	}
	samples, err := deps.Audio.DecodeMono(ctx, "wedding.mp4", 22050)
	if err != nil || len(samples) != 4 {
		t.Fatalf("audio: %v, %v", samples, err)
	}
}

func TestLoadWithoutAudio(t *testing.T) {
	b, err := Load(writeBundle(t, `{
  "video": "clip.mov",
  "media": {"fps": 24, "total_frames": 240, "width": 1280, "height": 720},
  "scenes": [{"index": 0, "start_frame": 0, "end_frame": 240}],
  "frames": []
}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Deps().Audio != nil {
		t.Fatal("no samples means no audio decoder")
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file should error")
	}
	if _, err := Load(writeBundle(t, "{not json")); err == nil {
		t.Fatal("malformed JSON should error")
	}
	if _, err := Load(writeBundle(t, `{"video": "x", "media": {"fps": 0}}`)); err == nil {
		t.Fatal("non-positive fps should error")
	}
}

func TestFrameSceneTypesMatchDataModel(t *testing.T) {
	b, err := Load(writeBundle(t, sampleBundle))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var scene frames.Scene = b.Scenes[0]
	if scene.FrameCount() != 450 {
		t.Fatalf("unexpected frame count: %d", scene.FrameCount())
	}
}
