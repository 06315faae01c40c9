package spectral

// SpectralFlux measures frame-to-frame spectral change, the onset detection
// feature used by the analysis pipeline
type SpectralFlux struct{}

// NewSpectralFlux creates a new spectral flux calculator
func NewSpectralFlux() *SpectralFlux {
	return &SpectralFlux{}
}

// Compute calculates half-wave-rectified spectral flux for a magnitude
// spectrogram: the sum of positive magnitude increases across all frequency
// bins versus the previous frame. The first frame has no flux value, so the
// returned sequence has length frameCount-1.
func (sf *SpectralFlux) Compute(spectrogram [][]float64) []float64 {
	if len(spectrogram) < 2 {
		return []float64{}
	}

	flux := make([]float64, len(spectrogram)-1)

	for t := 1; t < len(spectrogram); t++ {
		sum := 0.0
		for f := 0; f < len(spectrogram[t]); f++ {
			diff := spectrogram[t][f] - spectrogram[t-1][f]
			if diff > 0 { // only energy increases
				sum += diff
			}
		}
		flux[t-1] = sum
	}

	return flux
}
