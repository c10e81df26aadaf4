package config

const (
	defaultSampleInterval       = 1.5
	defaultMinSceneSeconds      = 0.3
	defaultLongSceneSeconds     = 1.0
	defaultTransitionSkipFrames = 3
	defaultSharpnessThreshold   = 50.0
	defaultAudioSampleRate      = 22050
	defaultAudioHopLength       = 512
	defaultAudioFrameLength     = 2048
	defaultSmoothingWindow      = 10
	defaultPeakThreshold        = 0.6
	defaultPeakWindowSeconds    = 0.5
	defaultPeakMinDistance      = 2.0
	defaultClusterEps           = 0.5
	defaultClusterMinSamples    = 2
	defaultMinPerScene          = 1
	defaultMaxPerScene          = 3
	defaultMinTimestampGap      = 1.0
	defaultLogLevel             = "info"
	defaultLogFormat            = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Sampling: Sampling{
			IntervalSeconds:      defaultSampleInterval,
			MinSceneSeconds:      defaultMinSceneSeconds,
			LongSceneSeconds:     defaultLongSceneSeconds,
			TransitionSkipFrames: defaultTransitionSkipFrames,
		},
		Quality: Quality{
			SharpnessThreshold: defaultSharpnessThreshold,
		},
		Audio: Audio{
			SampleRate:        defaultAudioSampleRate,
			HopLength:         defaultAudioHopLength,
			FrameLength:       defaultAudioFrameLength,
			SmoothingWindow:   defaultSmoothingWindow,
			PeakThreshold:     defaultPeakThreshold,
			PeakWindowSeconds: defaultPeakWindowSeconds,
			PeakMinDistance:   defaultPeakMinDistance,
		},
		Clustering: Clustering{
			Eps:        defaultClusterEps,
			MinSamples: defaultClusterMinSamples,
		},
		Selection: Selection{
			MinPerScene:      defaultMinPerScene,
			MaxPerScene:      defaultMaxPerScene,
			MinTimestampGap:  defaultMinTimestampGap,
			SelectVariety:    true,
			CropAspectRatios: true,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
