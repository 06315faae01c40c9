package analysis

// YinParams contains parameters for YIN pitch detection
type YinParams struct {
	Threshold    float64 `json:"threshold"`     // Absolute CMND threshold, in (0, 1]
	MinFrequency float64 `json:"min_frequency"` // Minimum detectable frequency (Hz)
	MaxFrequency float64 `json:"max_frequency"` // Maximum detectable frequency (Hz), at most Nyquist
	SampleRate   int     `json:"sample_rate"`   // Audio sample rate (Hz)
}

// DefaultYinParams returns YIN parameters tuned for the full piano range
// (A0 through C8)
func DefaultYinParams(sampleRate int) YinParams {
	return YinParams{
		Threshold:    0.1,
		MinFrequency: 27.5,   // A0
		MaxFrequency: 4186.0, // C8
		SampleRate:   sampleRate,
	}
}

// OnsetParams contains parameters for spectral-flux onset detection
type OnsetParams struct {
	HopSize          int     `json:"hop_size"`          // Frame advance in samples
	FFTSize          int     `json:"fft_size"`          // Analysis window size in samples
	FluxThreshold    float64 `json:"flux_threshold"`    // Minimum flux for a candidate peak
	MinInterOnset    float64 `json:"min_inter_onset"`   // Minimum gap between onsets (seconds)
	EnergyThreshold  float64 `json:"energy_threshold"`  // Minimum RMS energy at the candidate frame
	SampleRate       int     `json:"sample_rate"`       // Audio sample rate (Hz)
	ConfidenceFrames int     `json:"confidence_frames"` // Half-width of the local confidence window
}

// DefaultOnsetParams returns onset detection parameters suitable for
// note-level rhythm analysis
func DefaultOnsetParams(sampleRate int) OnsetParams {
	return OnsetParams{
		HopSize:          256,
		FFTSize:          512,
		FluxThreshold:    0.3,
		MinInterOnset:    0.05,
		EnergyThreshold:  0.01,
		SampleRate:       sampleRate,
		ConfidenceFrames: 10,
	}
}
