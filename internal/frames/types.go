package frames

// Scene is a contiguous shot boundary range produced by the external
// scene detector. Scenes are immutable and referenced by index.
type Scene struct {
	Index      int `json:"index"`
	StartFrame int `json:"start_frame"`
	EndFrame   int `json:"end_frame"`
}

// FrameCount returns the number of frames spanned by the scene.
func (s Scene) FrameCount() int {
	return s.EndFrame - s.StartFrame
}

// Duration returns the scene length in seconds at the given frame rate.
func (s Scene) Duration(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(s.FrameCount()) / fps
}

// Face is a single detected face. Landmarks and Embedding are optional;
// detectors that cannot produce them leave the slices nil.
type Face struct {
	BBox       [4]float64  `json:"bbox"`
	Confidence float64     `json:"confidence"`
	Landmarks  [][]float64 `json:"landmarks,omitempty"`
	Embedding  []float64   `json:"embedding,omitempty"`
	Age        int         `json:"age,omitempty"`
	Gender     string      `json:"gender,omitempty"`
	SmileScore float64     `json:"smile_score"`
}

// Area returns the bounding-box area in square pixels.
func (f Face) Area() float64 {
	w := f.BBox[2] - f.BBox[0]
	h := f.BBox[3] - f.BBox[1]
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Center returns the bounding-box center point.
func (f Face) Center() (x, y float64) {
	return (f.BBox[0] + f.BBox[2]) / 2, (f.BBox[1] + f.BBox[3]) / 2
}

// CropRect is a crop window, always fully inside the source image.
type CropRect struct {
	X1     int `json:"x1"`
	Y1     int `json:"y1"`
	X2     int `json:"x2"`
	Y2     int `json:"y2"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Category buckets a frame by its dominant subject.
type Category string

const (
	CategoryPeopleFace Category = "people_face"
	CategoryPeopleRoll Category = "people_roll"
	CategoryBroll      Category = "broll"
	CategoryDetail     Category = "detail"
)

// Composition buckets a frame by apparent shot distance.
type Composition string

const (
	CompositionClose  Composition = "close"
	CompositionMedium Composition = "medium"
	CompositionWide   Composition = "wide"
)

// AudioType classifies a one-second audio segment.
type AudioType string

const (
	AudioSpeech   AudioType = "speech"
	AudioMusic    AudioType = "music"
	AudioApplause AudioType = "applause"
	AudioSilence  AudioType = "silence"
	AudioOther    AudioType = "other"
)

// AudioEvent is a merged run of same-type audio segments.
type AudioEvent struct {
	StartTime  float64   `json:"start_time"`
	EndTime    float64   `json:"end_time"`
	EventType  AudioType `json:"event_type"`
	Confidence float64   `json:"confidence"`
	Intensity  float64   `json:"intensity"`
}

// Contains reports whether t falls inside the event interval.
func (e AudioEvent) Contains(t float64) bool {
	return e.StartTime <= t && t <= e.EndTime
}

// Candidate is the per-sampled-frame record the pipeline builds up.
// It is created once per extracted frame and only ever annotated.
type Candidate struct {
	FrameNumber    int                 `json:"frame_number"`
	Timestamp      float64             `json:"timestamp"`
	SceneIndex     int                 `json:"scene_index"`
	ImagePath      string              `json:"image_path"`
	RawPath        string              `json:"raw_path,omitempty"`
	SharpnessScore float64             `json:"sharpness_score"`
	Faces          []Face              `json:"faces"`
	Tags           []string            `json:"tags"`
	Crops          map[string]CropRect `json:"crops,omitempty"`
	IsBroll        bool                `json:"is_broll"`
	FrameCategory  Category            `json:"frame_category"`
	Composition    Composition         `json:"composition"`
	ClusterLabels  map[int]int         `json:"cluster_labels,omitempty"`
	AudioType      AudioType           `json:"audio_type,omitempty"`
	AudioIntensity float64             `json:"audio_intensity"`
	IsAudioPeak    bool                `json:"is_audio_peak"`

	SelectionReasons []string `json:"selection_reasons,omitempty"`
}

// MaxSmileScore returns the highest smile score across detected faces.
func (c *Candidate) MaxSmileScore() float64 {
	best := 0.0
	for _, f := range c.Faces {
		if f.SmileScore > best {
			best = f.SmileScore
		}
	}
	return best
}

// FaceClusters returns the set of cluster ids present on the candidate.
// Label -1 (unclustered) is never included.
func (c *Candidate) FaceClusters() map[int]struct{} {
	clusters := make(map[int]struct{}, len(c.ClusterLabels))
	for _, id := range c.ClusterLabels {
		if id >= 0 {
			clusters[id] = struct{}{}
		}
	}
	return clusters
}

// MeanFaceArea returns the average face bounding-box area, or 0 when no
// face has a valid box.
func (c *Candidate) MeanFaceArea() float64 {
	total := 0.0
	valid := 0
	for _, f := range c.Faces {
		if area := f.Area(); area > 0 {
			total += area
			valid++
		}
	}
	if valid == 0 {
		return 0
	}
	return total / float64(valid)
}
