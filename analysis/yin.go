package analysis

import (
	"math"

	"github.com/soniqlab/audition/algorithms/common"
	"github.com/soniqlab/audition/music"
)

const (
	// minYinBufferSize is the shortest buffer YIN will attempt to analyze
	minYinBufferSize = 2048

	// maxYinWindowSize caps the analysis window; longer buffers are truncated
	maxYinWindowSize = 8192

	// silenceGateRMS is the buffer RMS below which no pitch is reported
	silenceGateRMS = 0.01
)

// YinDetector estimates a single fundamental frequency and confidence for
// one buffer of samples using the YIN algorithm.
//
// Reference: de Cheveigné, A., Kawahara, H. (2002). "YIN, a fundamental
// frequency estimator for speech and music", JASA 111(4), 1917-1930.
//
// The difference function is O(halfBuffer²) - a deliberate accuracy/
// performance trade-off at sub-8192-sample windows. Callers with real-time
// budgets must account for this per call.
type YinDetector struct {
	params YinParams
}

// NewYinDetector creates a YIN detector with default parameters for the
// given sample rate
func NewYinDetector(sampleRate int) *YinDetector {
	return &YinDetector{params: DefaultYinParams(sampleRate)}
}

// NewYinDetectorWithParams creates a YIN detector with custom parameters
func NewYinDetectorWithParams(params YinParams) *YinDetector {
	return &YinDetector{params: params}
}

// Params returns the detector's parameters
func (d *YinDetector) Params() YinParams {
	return d.params
}

// Detect estimates the fundamental frequency of the buffer. It returns nil
// when no usable signal is present: buffer shorter than 2048 samples, buffer
// RMS below the silence gate, unsatisfiable lag bounds, or no lag passing
// the CMND threshold. None of these conditions is an error.
func (d *YinDetector) Detect(samples []float64) *PitchResult {
	if len(samples) < minYinBufferSize {
		return nil
	}

	rms := common.RMS(samples)
	if rms < silenceGateRMS {
		return nil
	}

	// Lag bounds derive from the frequency range by truncation, matching
	// the calibrated behavior at the C8 extreme.
	minLag := int(float64(d.params.SampleRate) / d.params.MaxFrequency)
	maxLag := int(float64(d.params.SampleRate) / d.params.MinFrequency)

	windowSize := min(len(samples), maxYinWindowSize)
	halfBuffer := windowSize / 2

	if maxLag >= halfBuffer {
		return nil // unsatisfiable parameters for this buffer
	}

	diff := differenceFunction(samples, halfBuffer)
	cmnd := cumulativeMeanNormalizedDifference(diff)

	// Absolute threshold search: first lag below threshold, then descend
	// to the local minimum.
	tau := minLag
	for tau < maxLag {
		if cmnd[tau] < d.params.Threshold {
			for tau+1 < maxLag && cmnd[tau+1] < cmnd[tau] {
				tau++
			}
			break
		}
		tau++
	}

	if tau >= maxLag || cmnd[tau] >= d.params.Threshold {
		return nil
	}

	betterTau := interpolateLag(cmnd, tau, halfBuffer)

	frequency := float64(d.params.SampleRate) / betterTau
	confidence := 1.0 - math.Min(cmnd[tau], 1.0)

	midiNote := music.MIDIFromFrequency(frequency)
	centsOffset := (music.ExactMIDIFromFrequency(frequency) - float64(midiNote)) * 100.0

	return &PitchResult{
		Frequency:   frequency,
		Confidence:  confidence,
		MIDINote:    midiNote,
		CentsOffset: centsOffset,
		RMSLevel:    rms,
	}
}

// differenceFunction computes d(tau) = sum_j (x[j] - x[j+tau])^2 over the
// first halfBuffer samples for every lag in [0, halfBuffer)
func differenceFunction(samples []float64, halfBuffer int) []float64 {
	diff := make([]float64, halfBuffer)

	for tau := 0; tau < halfBuffer; tau++ {
		sum := 0.0
		for j := 0; j < halfBuffer; j++ {
			delta := samples[j] - samples[j+tau]
			sum += delta * delta
		}
		diff[tau] = sum
	}

	return diff
}

// cumulativeMeanNormalizedDifference normalizes the difference function by
// its cumulative mean. cmnd[0] is 1 by definition; lags whose running sum is
// not positive stay at 1 so they can never pass the threshold.
func cumulativeMeanNormalizedDifference(diff []float64) []float64 {
	cmnd := make([]float64, len(diff))
	for i := range cmnd {
		cmnd[i] = 1.0
	}

	runningSum := 0.0
	for tau := 1; tau < len(diff); tau++ {
		runningSum += diff[tau]
		if runningSum > 0 {
			cmnd[tau] = diff[tau] / (runningSum / float64(tau))
		}
	}

	return cmnd
}

// interpolateLag refines the chosen lag by fitting a parabola through the
// CMND values around it. Edge lags skip interpolation.
func interpolateLag(cmnd []float64, tau, halfBuffer int) float64 {
	if tau <= 0 || tau >= halfBuffer-1 {
		return float64(tau)
	}

	s0 := cmnd[tau-1]
	s1 := cmnd[tau]
	s2 := cmnd[tau+1]

	denom := 2.0 * (2.0*s1 - s0 - s2)
	if denom == 0 {
		return float64(tau)
	}

	return float64(tau) + (s2-s0)/denom
}
