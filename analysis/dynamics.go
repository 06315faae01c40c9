package analysis

import (
	"math"

	"github.com/soniqlab/audition/algorithms/common"
)

const (
	// dbFloor is the decibel level reported for effectively silent segments
	dbFloor = -60.0

	// rmsSilenceFloor guards the log: RMS below this maps straight to dbFloor
	rmsSilenceFloor = 1e-6
)

// AnalyzeDynamics computes one loudness event per onset-delimited segment,
// in onset order. Segment i spans [onset[i].SampleIndex,
// onset[i+1].SampleIndex); the last segment runs to the buffer end. The
// returned list always has exactly one event per onset.
func AnalyzeDynamics(samples []float64, onsets []OnsetEvent, sampleRate int) []DynamicsEvent {
	events := make([]DynamicsEvent, 0, len(onsets))

	for i, onset := range onsets {
		start := onset.SampleIndex
		end := len(samples)
		if i+1 < len(onsets) {
			end = onsets[i+1].SampleIndex
		}

		var segment []float64
		if start < end && start < len(samples) {
			segment = samples[start:min(end, len(samples))]
		}

		rms := common.RMS(segment)
		db := DecibelsFromRMS(rms)

		events = append(events, DynamicsEvent{
			Timestamp:    onset.Timestamp,
			RMSLevel:     rms,
			PeakLevel:    common.PeakAbs(segment),
			DBLevel:      db,
			MIDIVelocity: VelocityFromDecibels(db),
		})
	}

	return events
}

// DecibelsFromRMS converts an RMS level to decibels (20*log10(rms)),
// floored at -60 dB so silence never takes log(0)
func DecibelsFromRMS(rms float64) float64 {
	if rms < rmsSilenceFloor {
		return dbFloor
	}
	return 20.0 * math.Log10(rms)
}

// VelocityFromDecibels maps a decibel level in [-60, 0] linearly onto the
// MIDI velocity range [0, 127]. Values outside the range clamp to the
// boundaries.
func VelocityFromDecibels(db float64) int {
	normalized := common.Clamp((db-dbFloor)/-dbFloor, 0.0, 1.0)
	return int(math.Round(normalized * 127.0))
}
