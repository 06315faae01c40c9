// Package waveform downsamples sample buffers to per-pixel peak pairs for
// waveform rendering. Image encoding is out of scope.
package waveform

// PeakPair holds the minimum and maximum sample value within one pixel bucket
type PeakPair struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ComputePeaks partitions the buffer into width equal buckets and returns
// the min/max sample pair of each. Buffers shorter than width yield all-zero
// pairs, matching a flat rendered waveform.
func ComputePeaks(samples []float64, width int) []PeakPair {
	if width <= 0 {
		return []PeakPair{}
	}

	peaks := make([]PeakPair, width)

	samplesPerPixel := len(samples) / width
	if samplesPerPixel == 0 {
		return peaks
	}

	for i := 0; i < width; i++ {
		start := i * samplesPerPixel
		end := min((i+1)*samplesPerPixel, len(samples))

		var lo, hi float64
		for _, sample := range samples[start:end] {
			if sample < lo {
				lo = sample
			}
			if sample > hi {
				hi = sample
			}
		}

		peaks[i] = PeakPair{Min: lo, Max: hi}
	}

	return peaks
}
