package audio

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	normEpsilon = 1e-8
	logEpsilon  = 1e-10
	melFilters  = 26
	numMFCC     = 13
)

// featureSet holds per-analysis-frame features. Values are raw until
// normalize is called; classification reads the smoothed copies.
type featureSet struct {
	times     []float64
	rms       []float64
	centroid  []float64
	zcr       []float64
	rolloff   []float64
	bandwidth []float64
	// mfcc is carried for downstream consumers; the segment classifier
	// does not read it.
	mfcc [][]float64
}

// extractFeatures computes framewise features over mono PCM samples.
func extractFeatures(samples []float64, sampleRate, frameLength, hopLength int) featureSet {
	if len(samples) == 0 || sampleRate <= 0 || hopLength <= 0 || frameLength <= 0 {
		return featureSet{}
	}

	numFrames := 1 + (len(samples)-1)/hopLength
	fs := featureSet{
		times:     make([]float64, numFrames),
		rms:       make([]float64, numFrames),
		centroid:  make([]float64, numFrames),
		zcr:       make([]float64, numFrames),
		rolloff:   make([]float64, numFrames),
		bandwidth: make([]float64, numFrames),
		mfcc:      make([][]float64, numFrames),
	}

	fft := fourier.NewFFT(frameLength)
	window := hannWindow(frameLength)
	filterbank := melFilterbank(melFilters, frameLength, sampleRate)
	frame := make([]float64, frameLength)
	binHz := float64(sampleRate) / float64(frameLength)

	for i := 0; i < numFrames; i++ {
		start := i * hopLength
		fs.times[i] = float64(start) / float64(sampleRate)

		for j := 0; j < frameLength; j++ {
			if start+j < len(samples) {
				frame[j] = samples[start+j]
			} else {
				frame[j] = 0
			}
		}

		fs.rms[i] = rmsEnergy(frame)
		fs.zcr[i] = zeroCrossingRate(frame)

		for j := range frame {
			frame[j] *= window[j]
		}
		coeffs := fft.Coefficients(nil, frame)
		magnitudes := make([]float64, len(coeffs))
		for k, c := range coeffs {
			magnitudes[k] = math.Hypot(real(c), imag(c))
		}

		fs.centroid[i] = spectralCentroid(magnitudes, binHz)
		fs.rolloff[i] = spectralRolloff(magnitudes, binHz, 0.85)
		fs.bandwidth[i] = spectralBandwidth(magnitudes, binHz, fs.centroid[i])
		fs.mfcc[i] = mfccFromMagnitudes(magnitudes, filterbank)
	}
	return fs
}

func rmsEnergy(frame []float64) float64 {
	sum := 0.0
	for _, v := range frame {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(frame)))
}

func zeroCrossingRate(frame []float64) float64 {
	if len(frame) < 2 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(frame); i++ {
		if (frame[i-1] >= 0) != (frame[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(frame)-1)
}

func spectralCentroid(magnitudes []float64, binHz float64) float64 {
	var weighted, total float64
	for k, m := range magnitudes {
		weighted += float64(k) * binHz * m
		total += m
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

func spectralRolloff(magnitudes []float64, binHz, fraction float64) float64 {
	total := 0.0
	for _, m := range magnitudes {
		total += m * m
	}
	if total == 0 {
		return 0
	}
	target := fraction * total
	cumulative := 0.0
	for k, m := range magnitudes {
		cumulative += m * m
		if cumulative >= target {
			return float64(k) * binHz
		}
	}
	return float64(len(magnitudes)-1) * binHz
}

func spectralBandwidth(magnitudes []float64, binHz, centroid float64) float64 {
	var weighted, total float64
	for k, m := range magnitudes {
		diff := float64(k)*binHz - centroid
		weighted += m * diff * diff
		total += m
	}
	if total == 0 {
		return 0
	}
	return math.Sqrt(weighted / total)
}

func hannWindow(n int) []float64 {
	window := make([]float64, n)
	if n == 1 {
		window[0] = 1
		return window
	}
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return window
}

func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

// melFilterbank builds triangular filters over FFT bins.
func melFilterbank(numFilters, frameLength, sampleRate int) [][]float64 {
	numBins := frameLength/2 + 1
	maxMel := hzToMel(float64(sampleRate) / 2)

	points := make([]int, numFilters+2)
	for i := range points {
		hz := melToHz(maxMel * float64(i) / float64(numFilters+1))
		bin := int(hz / (float64(sampleRate) / float64(frameLength)))
		if bin >= numBins {
			bin = numBins - 1
		}
		points[i] = bin
	}

	bank := make([][]float64, numFilters)
	for f := 0; f < numFilters; f++ {
		filter := make([]float64, numBins)
		left, center, right := points[f], points[f+1], points[f+2]
		for k := left; k <= center && k < numBins; k++ {
			if center > left {
				filter[k] = float64(k-left) / float64(center-left)
			}
		}
		for k := center; k <= right && k < numBins; k++ {
			if right > center {
				filter[k] = float64(right-k) / float64(right-center)
			}
		}
		bank[f] = filter
	}
	return bank
}

func mfccFromMagnitudes(magnitudes []float64, filterbank [][]float64) []float64 {
	energies := make([]float64, len(filterbank))
	for f, filter := range filterbank {
		sum := 0.0
		for k := 0; k < len(filter) && k < len(magnitudes); k++ {
			sum += magnitudes[k] * magnitudes[k] * filter[k]
		}
		energies[f] = math.Log(sum + logEpsilon)
	}

	coeffs := make([]float64, numMFCC)
	n := float64(len(energies))
	for k := range coeffs {
		sum := 0.0
		for i, e := range energies {
			sum += e * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/n)
		}
		coeffs[k] = sum
	}
	return coeffs
}

// normalized divides every value by the series maximum.
func normalized(values []float64) []float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / (max + normEpsilon)
	}
	return out
}

// smoothed applies a centered moving average ("same" boundary mode).
func smoothed(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	half := window / 2
	for i := range values {
		lo := i - half
		hi := lo + window
		if lo < 0 {
			lo = 0
		}
		if hi > len(values) {
			hi = len(values)
		}
		sum := 0.0
		for j := lo; j < hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(window)
	}
	return out
}
