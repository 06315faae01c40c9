// Package temporal provides time-domain energy features used by the
// onset detection pipeline.
package temporal

import (
	"math"
)

// Energy computes time-domain energy envelopes over fixed-size hops
type Energy struct {
	hopSize int
}

// NewEnergy creates a new energy calculator for the given hop size
func NewEnergy(hopSize int) *Energy {
	return &Energy{hopSize: hopSize}
}

// ComputeRMSEnvelope calculates the RMS of each contiguous hop-sized block of
// the raw (unwindowed) signal. Block j covers samples [j*hop, (j+1)*hop); a
// trailing partial block is dropped so every value averages the same number
// of samples.
func (e *Energy) ComputeRMSEnvelope(signal []float64) []float64 {
	if len(signal) < e.hopSize || e.hopSize <= 0 {
		return []float64{}
	}

	numBlocks := len(signal) / e.hopSize
	envelope := make([]float64, numBlocks)

	for i := 0; i < numBlocks; i++ {
		startIdx := i * e.hopSize
		endIdx := startIdx + e.hopSize

		sumSquares := 0.0
		for j := startIdx; j < endIdx; j++ {
			sumSquares += signal[j] * signal[j]
		}
		envelope[i] = math.Sqrt(sumSquares / float64(e.hopSize))
	}

	return envelope
}
