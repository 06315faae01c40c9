package analysis

import (
	"github.com/soniqlab/audition/algorithms/common"
	"github.com/soniqlab/audition/logging"
)

// Analyzer sequences pitch detection, onset detection, and dynamics
// analysis into one result set per recording. It owns the default
// parameterization; leaf detectors stay logger-free.
//
// An Analyzer holds no per-call state, so a single instance may serve
// multiple goroutines as long as each call gets its own buffer.
type Analyzer struct {
	yin    *YinDetector
	onsets *OnsetDetector
	logger logging.Logger
}

// NewAnalyzer creates an analyzer with default parameters for the given
// sample rate
func NewAnalyzer(sampleRate int) *Analyzer {
	return NewAnalyzerWithParams(DefaultYinParams(sampleRate), DefaultOnsetParams(sampleRate))
}

// NewAnalyzerWithParams creates an analyzer with custom detector parameters
func NewAnalyzerWithParams(yinParams YinParams, onsetParams OnsetParams) *Analyzer {
	return &Analyzer{
		yin:    NewYinDetectorWithParams(yinParams),
		onsets: NewOnsetDetectorWithParams(onsetParams),
		logger: logging.WithFields(logging.Fields{
			"component": "analyzer",
		}),
	}
}

// Analyze runs the full pipeline over one buffer: pitch estimation, onset
// detection, and per-note dynamics keyed by the onset boundaries. The buffer
// is borrowed for the duration of the call and never mutated. A buffer with
// no usable signal yields a Result with a nil Pitch and empty event lists.
func (a *Analyzer) Analyze(samples []float64) *Result {
	sampleRate := a.onsets.params.SampleRate

	result := &Result{
		SampleRate: sampleRate,
		Duration:   float64(len(samples)) / float64(sampleRate),
	}

	result.Pitch = a.yin.Detect(samples)
	result.Onsets = a.onsets.Detect(samples)
	result.Dynamics = AnalyzeDynamics(samples, result.Onsets, sampleRate)

	fields := logging.Fields{
		"samples": len(samples),
		"onsets":  len(result.Onsets),
	}
	if result.Pitch != nil {
		fields["frequency"] = result.Pitch.Frequency
		fields["midi_note"] = result.Pitch.MIDINote
	}
	if len(result.Onsets) > 0 {
		strengths := make([]float64, len(result.Onsets))
		for i, onset := range result.Onsets {
			strengths[i] = onset.Strength
		}
		fields["mean_strength"] = common.Mean(strengths)
	}
	a.logger.Debug("analysis complete", fields)

	return result
}
