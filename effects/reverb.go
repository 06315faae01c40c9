// Package effects provides CPU audio effects applied before analysis.
// The pipeline treats effect output as an ordinary sample buffer.
package effects

// Comb filter delay lengths in samples, tuned for 44.1 kHz
// (Freeverb-style parallel comb bank)
var combDelaySamples = []int{1557, 1617, 1491, 1422, 1277, 1356, 1188, 1116}

// ReverbParams controls the comb bank mix
type ReverbParams struct {
	Feedback float64 `json:"feedback"` // Comb feedback gain
	Wet      float64 `json:"wet"`      // Reverberated signal share
	Dry      float64 `json:"dry"`      // Direct signal share
}

// DefaultReverbParams returns a subtle room mix (20% wet)
func DefaultReverbParams() ReverbParams {
	return ReverbParams{
		Feedback: 0.5,
		Wet:      0.2,
		Dry:      0.8,
	}
}

// Reverb is an algorithmic reverb built from parallel feedback comb filters
type Reverb struct {
	params ReverbParams
}

// NewReverb creates a reverb with default parameters
func NewReverb() *Reverb {
	return &Reverb{params: DefaultReverbParams()}
}

// NewReverbWithParams creates a reverb with custom parameters
func NewReverbWithParams(params ReverbParams) *Reverb {
	return &Reverb{params: params}
}

// Process returns a reverberated copy of the input. Delay lines are owned by
// the call, so concurrent calls on the same Reverb are safe and every call
// starts from silence.
func (r *Reverb) Process(samples []float64) []float64 {
	output := make([]float64, len(samples))

	delayBuffers := make([][]float64, len(combDelaySamples))
	for i, size := range combDelaySamples {
		delayBuffers[i] = make([]float64, size)
	}
	delayIndices := make([]int, len(combDelaySamples))

	combCount := float64(len(combDelaySamples))

	for i, input := range samples {
		reverb := 0.0

		for j := range combDelaySamples {
			delayIdx := delayIndices[j]
			delayed := delayBuffers[j][delayIdx]
			reverb += delayed

			delayBuffers[j][delayIdx] = input + delayed*r.params.Feedback
			delayIndices[j] = (delayIdx + 1) % combDelaySamples[j]
		}

		reverb /= combCount
		output[i] = input*r.params.Dry + reverb*r.params.Wet
	}

	return output
}
