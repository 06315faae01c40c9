package analysis

import (
	"math"

	"github.com/soniqlab/audition/algorithms/common"
	"github.com/soniqlab/audition/algorithms/spectral"
	"github.com/soniqlab/audition/algorithms/temporal"
	"github.com/soniqlab/audition/algorithms/windowing"
)

// OnsetDetector locates note onset instants by combining half-wave-rectified
// spectral flux with a time-domain energy gate.
//
// Peak picking is a strict local-maximum test: equal-valued plateaus are
// never accepted, so flat flux peaks are intentionally missed. The energy
// gate reads a single hop block per candidate, so a transient landing late
// in its analysis frame can be gated by the quieter block preceding it.
// Both effects under-report sharp transients. That behavior is calibrated
// against the reference recordings and must not be loosened without
// re-deriving the same outputs.
type OnsetDetector struct {
	params OnsetParams

	stft   *spectral.STFT
	flux   *spectral.SpectralFlux
	energy *temporal.Energy
	window *windowing.Hann
}

// NewOnsetDetector creates an onset detector with default parameters for the
// given sample rate
func NewOnsetDetector(sampleRate int) *OnsetDetector {
	return NewOnsetDetectorWithParams(DefaultOnsetParams(sampleRate))
}

// NewOnsetDetectorWithParams creates an onset detector with custom parameters
func NewOnsetDetectorWithParams(params OnsetParams) *OnsetDetector {
	return &OnsetDetector{
		params: params,
		stft:   spectral.NewSTFT(),
		flux:   spectral.NewSpectralFlux(),
		energy: temporal.NewEnergy(params.HopSize),
		window: windowing.NewHann(params.FFTSize),
	}
}

// Params returns the detector's parameters
func (d *OnsetDetector) Params() OnsetParams {
	return d.params
}

// Detect returns the onset events of the buffer in increasing time order.
// Buffers shorter than one analysis window yield an empty list, never an
// error. Consecutive events are guaranteed to be at least MinInterOnset
// seconds apart; candidates inside that gap are dropped, not merged.
func (d *OnsetDetector) Detect(samples []float64) []OnsetEvent {
	events := []OnsetEvent{}

	if len(samples) < d.params.FFTSize {
		return events
	}

	stftResult, err := d.stft.Compute(samples, d.params.FFTSize, d.params.HopSize, d.params.SampleRate, d.window)
	if err != nil {
		return events
	}

	flux := d.flux.Compute(stftResult.Magnitude)
	if len(flux) < 3 {
		return events
	}

	// Per-hop RMS of the raw signal, index-aligned with the flux sequence
	envelope := d.energy.ComputeRMSEnvelope(samples)

	for i := 1; i < len(flux)-1; i++ {
		// Strict local maximum above the flux threshold
		if !(flux[i] > flux[i-1] && flux[i] > flux[i+1]) {
			continue
		}
		if flux[i] <= d.params.FluxThreshold {
			continue
		}

		// flux[i] compares frame i+1 against frame i, so the onset lands
		// at the start of frame i+1; the energy gate samples that same frame
		if i+1 >= len(envelope) || envelope[i+1] <= d.params.EnergyThreshold {
			continue
		}

		sampleIndex := (i + 1) * d.params.HopSize
		timestamp := float64(sampleIndex) / float64(d.params.SampleRate)

		if len(events) > 0 && timestamp-events[len(events)-1].Timestamp < d.params.MinInterOnset {
			continue
		}

		events = append(events, OnsetEvent{
			Timestamp:   timestamp,
			SampleIndex: sampleIndex,
			Strength:    flux[i],
			Confidence:  d.localConfidence(flux, i),
		})
	}

	return events
}

// localConfidence relates the candidate's flux to the maximum flux within
// ConfidenceFrames frames on either side. A silent neighborhood yields 0.
func (d *OnsetDetector) localConfidence(flux []float64, i int) float64 {
	lo := max(i-d.params.ConfidenceFrames, 0)
	hi := min(i+d.params.ConfidenceFrames+1, len(flux))

	localMax := common.Max(flux[lo:hi])
	if localMax <= 0 {
		return 0.0
	}

	return math.Min(flux[i]/localMax, 1.0)
}
